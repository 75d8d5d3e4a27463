// Package service drives one end-to-end verification attempt: fetch proof
// content, extract the embedded signature, reconstruct the signed message,
// check the signature and record the verified binding.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/common/logger"
	"social-verifier-backend/internal/features/verify/message"
	"social-verifier-backend/internal/features/verify/models"
	"social-verifier-backend/internal/features/verify/signature"
	"social-verifier-backend/internal/features/verify/store"
)

// TweetSource fetches recent posts of a handle.
type TweetSource interface {
	RecentPosts(ctx context.Context, handle string) ([]models.Post, error)
}

// GistSource fetches a gist and resolves its owner.
type GistSource interface {
	Gist(ctx context.Context, id string) (*models.GistContent, error)
}

// Paths locate the registry documents per signature family. The two
// documents are independent and never cross-referenced.
type Paths struct {
	Ecdsa  string
	Solana string
}

type Service struct {
	tweets  TweetSource
	gists   GistSource
	records *store.RecordStore
	paths   Paths
}

func New(tweets TweetSource, gists GistSource, records *store.RecordStore, paths Paths) *Service {
	return &Service{
		tweets:  tweets,
		gists:   gists,
		records: records,
		paths:   paths,
	}
}

// Verify processes one proof request. Requests are independent and may run
// concurrently; the only shared resource is the remote registry document,
// coordinated inside the record store.
func (s *Service) Verify(ctx context.Context, req models.ProofRequest) (*models.Verification, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	posts, owner, gist, err := s.fetchContent(ctx, req)
	if err != nil {
		return nil, err
	}

	extracted, err := signature.Extract(posts, req.Kind.Scheme())
	if err != nil {
		return nil, err
	}

	// The signer proves control of the account that published the matched
	// post. When the provider exposes the author, it must be the account the
	// message is bound to.
	if extracted.AuthorHandle != "" && !strings.EqualFold(extracted.AuthorHandle, owner) {
		return nil, apperrors.Newf(apperrors.ErrCodeSourceNotFound,
			"matched post belongs to %s, not %s", extracted.AuthorHandle, owner)
	}

	msg := message.Build(req.Kind, owner)

	var result models.VerificationResult
	switch req.Kind.Scheme() {
	case models.SchemeEd25519Detached:
		result = signature.VerifyDetached(msg, extracted.Token, req.Address)
	default:
		result = signature.VerifyTypedData(msg, extracted.Token, req.Address)
	}

	if !result.Accepted {
		// Nothing is written on a failed check.
		if result.Reason == apperrors.ErrCodeMalformedSignature {
			return nil, apperrors.New(apperrors.ErrCodeMalformedSignature, "signature does not decode")
		}
		mismatch := apperrors.New(apperrors.ErrCodeSignatureMismatch, "address doesn't match the signer")
		if result.Recovered != "" {
			mismatch = mismatch.WithDetail("recovered", result.Recovered)
		}
		return nil, mismatch
	}

	address := s.normalizeAddress(req)
	binding := s.buildBinding(req, owner, extracted.PostID, gist)

	outcome, err := s.records.Apply(ctx, s.registryPath(req.Kind), address, req.Kind.BindingKey(), binding)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("kind", string(req.Kind)).
		Str("address", address).
		Str("owner", owner).
		Bool("already_bound", outcome == store.OutcomeAlreadyBound).
		Msg("verification succeeded")

	return &models.Verification{
		Kind:         req.Kind,
		Address:      address,
		Owner:        owner,
		ProofRef:     extracted.PostID,
		AlreadyBound: outcome == store.OutcomeAlreadyBound,
	}, nil
}

// fetchContent returns the candidate posts plus the account name the proof
// message is bound to. For gists that is the owner login resolved from the
// provider, never caller input.
func (s *Service) fetchContent(ctx context.Context, req models.ProofRequest) ([]models.Post, string, *models.GistContent, error) {
	if req.Kind.IsGithub() {
		gist, err := s.gists.Gist(ctx, req.GistID)
		if err != nil {
			return nil, "", nil, err
		}
		return gist.Posts, gist.Owner, gist, nil
	}

	handle := strings.TrimSpace(req.Handle)
	posts, err := s.tweets.RecentPosts(ctx, handle)
	if err != nil {
		return nil, "", nil, err
	}
	return posts, handle, nil, nil
}

// normalizeAddress fixes the document key casing: EIP-55 checksummed form
// for the ECDSA family, the base58 key verbatim for the solana family.
func (s *Service) normalizeAddress(req models.ProofRequest) string {
	if req.Kind.Scheme() == models.SchemeEcdsaTypedData {
		return common.HexToAddress(req.Address).Hex()
	}
	return req.Address
}

func (s *Service) buildBinding(req models.ProofRequest, owner, postID string, gist *models.GistContent) *models.Binding {
	now := time.Now().UnixMilli()
	if req.Kind.IsGithub() {
		return &models.Binding{
			Timestamp: now,
			Username:  owner,
			GistID:    req.GistID,
			UserID:    gist.OwnerID,
		}
	}
	return &models.Binding{
		Timestamp: now,
		TweetID:   postID,
		Handle:    owner,
	}
}

func (s *Service) registryPath(kind models.VerificationKind) string {
	if kind.Scheme() == models.SchemeEd25519Detached {
		return s.paths.Solana
	}
	return s.paths.Ecdsa
}
