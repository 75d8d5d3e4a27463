package signature

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/features/verify/message"
	"social-verifier-backend/internal/features/verify/models"
)

// VerifyTypedData recovers the signer of an EIP-712 typed-data signature over
// msg and compares it against the claimed address in checksummed form. A
// malformed token or claimed address never panics; it comes back as a
// not-accepted result. Stateless and safe for concurrent use.
func VerifyTypedData(msg message.Canonical, token, claimedAddress string) models.VerificationResult {
	malformed := models.VerificationResult{Reason: apperrors.ErrCodeMalformedSignature}

	if !common.IsHexAddress(claimedAddress) {
		return malformed
	}

	raw, err := hexutil.Decode(token)
	if err != nil || len(raw) != crypto.SignatureLength {
		return malformed
	}

	sig := make([]byte, crypto.SignatureLength)
	copy(sig, raw)
	// Wallets emit V as 27/28; go-ethereum recovery expects 0/1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return malformed
	}

	hash, _, err := apitypes.TypedDataAndHash(msg.TypedData())
	if err != nil {
		return malformed
	}

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return malformed
	}

	recovered := crypto.PubkeyToAddress(*pub)
	// Checksummed comparison: Hex() is the EIP-55 mixed-case encoding, so
	// the claimed address may arrive in either case.
	if recovered.Hex() != common.HexToAddress(claimedAddress).Hex() {
		return models.VerificationResult{
			Recovered: recovered.Hex(),
			Reason:    apperrors.ErrCodeSignatureMismatch,
		}
	}

	return models.VerificationResult{Accepted: true, Recovered: recovered.Hex()}
}
