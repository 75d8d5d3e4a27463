package models

import (
	"strings"

	apperrors "social-verifier-backend/internal/common/errors"
)

// SignatureScheme selects how an embedded signature is checked.
type SignatureScheme int

const (
	// SchemeEcdsaTypedData recovers the signer address from an EIP-712
	// typed-data signature.
	SchemeEcdsaTypedData SignatureScheme = iota
	// SchemeEd25519Detached verifies a detached ed25519 signature against
	// the claimed address used directly as the public key.
	SchemeEd25519Detached
)

// VerificationKind identifies one proof flavour exposed by the API.
type VerificationKind string

const (
	KindTwitterEcdsa   VerificationKind = "twitter-ecdsa"
	KindTwitterEcdsaV2 VerificationKind = "twitter-ecdsa-v2"
	KindTwitterSolana  VerificationKind = "twitter-solana"
	KindGithubEcdsa    VerificationKind = "github-ecdsa"
)

// Scheme returns the signature scheme used by the kind.
func (k VerificationKind) Scheme() SignatureScheme {
	if k == KindTwitterSolana {
		return SchemeEd25519Detached
	}
	return SchemeEcdsaTypedData
}

// BindingKey returns the sub-record key the kind occupies inside an address
// entry of the registry document.
func (k VerificationKind) BindingKey() string {
	if k == KindGithubEcdsa {
		return "github"
	}
	return "twitter"
}

// IsGithub reports whether the proof source is a gist rather than a tweet.
func (k VerificationKind) IsGithub() bool {
	return k == KindGithubEcdsa
}

// ProofRequest is one verification attempt as received from a client.
type ProofRequest struct {
	Kind    VerificationKind
	Address string
	Handle  string // twitter kinds
	GistID  string // github kind
}

// Validate checks the request parameters before any outbound call is made.
func (r ProofRequest) Validate() error {
	if strings.TrimSpace(r.Address) == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "missing addr parameter")
	}
	if r.Kind.IsGithub() {
		if strings.TrimSpace(r.GistID) == "" {
			return apperrors.New(apperrors.ErrCodeValidation, "missing gist_id parameter")
		}
		return nil
	}
	if strings.TrimSpace(r.Handle) == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "missing handle parameter")
	}
	return nil
}

// Post is one candidate piece of content fetched from a provider.
type Post struct {
	ID           string
	Text         string
	AuthorHandle string
}

// GistContent is a gist resolved through the content provider, with the owner
// identity the proof message must be bound to.
type GistContent struct {
	ID      string
	Owner   string
	OwnerID int64
	Posts   []Post
}

// ExtractedSignature is the signature token selected from candidate posts.
type ExtractedSignature struct {
	Token        string
	PostID       string
	AuthorHandle string
}

// VerificationResult is the outcome of a signature check.
type VerificationResult struct {
	Accepted  bool
	Recovered string // checksummed recovered address, ECDSA only
	Reason    apperrors.ErrorCode
}

// Verification is the outcome of a completed verification attempt.
type Verification struct {
	Kind         VerificationKind
	Address      string
	Owner        string // bound handle or username
	ProofRef     string // tweet id or gist id used as evidence
	AlreadyBound bool
}
