package signature

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/features/verify/message"
	"social-verifier-backend/internal/features/verify/models"
)

// signTypedData produces the 0x-prefixed signature token a wallet would
// embed in a post.
func signTypedData(t *testing.T, msg message.Canonical, walletStyleV bool) (token, address string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	hash, _, err := apitypes.TypedDataAndHash(msg.TypedData())
	require.NoError(t, err)

	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)
	if walletStyleV {
		sig[crypto.RecoveryIDOffset] += 27
	}

	return hexutil.Encode(sig), crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func TestVerifyTypedDataAccepts(t *testing.T) {
	msg := message.Build(models.KindTwitterEcdsa, "")

	for _, walletStyleV := range []bool{false, true} {
		token, address := signTypedData(t, msg, walletStyleV)

		result := VerifyTypedData(msg, token, address)
		assert.True(t, result.Accepted)
		assert.Equal(t, address, result.Recovered)
	}
}

func TestVerifyTypedDataChecksumInsensitiveInput(t *testing.T) {
	msg := message.Build(models.KindTwitterEcdsaV2, "alice")
	token, address := signTypedData(t, msg, true)

	// The claimed address may arrive lowercased; the comparison happens on
	// the checksummed encodings.
	result := VerifyTypedData(msg, token, "0x"+lower(address[2:]))
	assert.True(t, result.Accepted)
}

func TestVerifyTypedDataMismatchReportsRecovered(t *testing.T) {
	msg := message.Build(models.KindTwitterEcdsa, "")
	token, address := signTypedData(t, msg, false)

	other := "0x000000000000000000000000000000000000dEaD"
	result := VerifyTypedData(msg, token, other)
	assert.False(t, result.Accepted)
	assert.Equal(t, apperrors.ErrCodeSignatureMismatch, result.Reason)
	assert.Equal(t, address, result.Recovered)
}

func TestVerifyTypedDataDifferentMessageRecoversDifferentSigner(t *testing.T) {
	signed := message.Build(models.KindTwitterEcdsa, "")
	token, address := signTypedData(t, signed, false)

	tampered := message.Build(models.KindTwitterEcdsaV2, "alice")
	result := VerifyTypedData(tampered, token, address)
	assert.False(t, result.Accepted)
}

func TestVerifyTypedDataMalformed(t *testing.T) {
	msg := message.Build(models.KindTwitterEcdsa, "")
	token, address := signTypedData(t, msg, false)

	tests := []struct {
		name    string
		token   string
		address string
	}{
		{"truncated signature", token[:100], address},
		{"not hex", "sig-goes-here", address},
		{"missing 0x prefix", token[2:], address},
		{"invalid recovery id", token[:130] + "ff", address},
		{"claimed address not hex", token, "not-an-address"},
		{"empty token", "", address},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				result := VerifyTypedData(msg, tt.token, tt.address)
				assert.False(t, result.Accepted)
				assert.Equal(t, apperrors.ErrCodeMalformedSignature, result.Reason)
			})
		})
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'F' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
