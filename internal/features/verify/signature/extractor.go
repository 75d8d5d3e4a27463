// Package signature locates embedded proof signatures in fetched content and
// checks them against a claimed address.
package signature

import (
	"strings"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/features/verify/models"
)

const (
	// Marker preceding the signature token inside a post.
	marker = "sig:"

	// 65-byte recoverable signature, hex-encoded with 0x prefix.
	ecdsaTokenLen = 132
)

var (
	// ErrNoPosts means the provider returned no content for the account at
	// all, as opposed to content without a signature.
	ErrNoPosts = apperrors.New(apperrors.ErrCodeSourceNotFound, "no posts found for the account")

	// ErrNoSignature means none of the candidate posts carry the marker.
	ErrNoSignature = apperrors.New(apperrors.ErrCodeSignatureNotFound, "could not find a post containing sig:")
)

// Extract scans posts in the order given and selects the signature token of
// the first post containing the marker. First match wins; that keeps the
// result reproducible regardless of timestamps or token length.
func Extract(posts []models.Post, scheme models.SignatureScheme) (*models.ExtractedSignature, error) {
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}

	for _, post := range posts {
		idx := strings.Index(post.Text, marker)
		if idx < 0 {
			continue
		}
		token := post.Text[idx+len(marker):]
		if nl := strings.IndexByte(token, '\n'); nl >= 0 {
			token = token[:nl]
		}
		token = strings.TrimSpace(token)
		token = truncateForScheme(token, scheme)
		if token == "" {
			continue
		}
		return &models.ExtractedSignature{
			Token:        token,
			PostID:       post.ID,
			AuthorHandle: post.AuthorHandle,
		}, nil
	}

	return nil, ErrNoSignature
}

func truncateForScheme(token string, scheme models.SignatureScheme) string {
	switch scheme {
	case models.SchemeEcdsaTypedData:
		if len(token) > ecdsaTokenLen {
			token = token[:ecdsaTokenLen]
		}
		return token
	case models.SchemeEd25519Detached:
		// Keep the full base58 run; cut at the first foreign character.
		if end := strings.IndexFunc(token, func(r rune) bool { return !isBase58(r) }); end >= 0 {
			token = token[:end]
		}
		return token
	}
	return token
}

func isBase58(r rune) bool {
	switch {
	case r >= '1' && r <= '9':
		return true
	case r >= 'A' && r <= 'Z':
		return r != 'I' && r != 'O'
	case r >= 'a' && r <= 'z':
		return r != 'l'
	}
	return false
}
