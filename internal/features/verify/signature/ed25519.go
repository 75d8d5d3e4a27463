package signature

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/features/verify/message"
	"social-verifier-backend/internal/features/verify/models"
)

// VerifyDetached checks a detached ed25519 signature over the canonical
// message bytes. There is no recovery step: the claimed address is the
// base58-encoded public key itself. Stateless and safe for concurrent use.
func VerifyDetached(msg message.Canonical, token, claimedAddress string) models.VerificationResult {
	malformed := models.VerificationResult{Reason: apperrors.ErrCodeMalformedSignature}

	sig, err := base58.Decode(token)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return malformed
	}

	pub, err := base58.Decode(claimedAddress)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return malformed
	}

	if !ed25519.Verify(ed25519.PublicKey(pub), msg.Bytes(), sig) {
		return models.VerificationResult{Reason: apperrors.ErrCodeSignatureMismatch}
	}

	return models.VerificationResult{Accepted: true}
}
