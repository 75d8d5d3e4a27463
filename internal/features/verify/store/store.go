// Package store applies verified bindings to the shared registry documents
// using optimistic concurrency against the remote document store.
package store

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/common/logger"
	"social-verifier-backend/internal/features/verify/models"
)

// DocumentStore is the remote document client the record store writes
// through. Read returns the current content and an opaque version tag; Write
// must fail with an ErrCodeConflict error when the tag no longer matches the
// stored document.
type DocumentStore interface {
	Read(ctx context.Context, path string) (content []byte, versionTag string, err error)
	Write(ctx context.Context, path string, content []byte, expectedTag string) error
}

// Outcome of one Apply call.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	// OutcomeAlreadyBound means the exact (address, kind, owner) binding is
	// already recorded; nothing was written.
	OutcomeAlreadyBound
)

const defaultWriteAttempts = 3

// RecordStore merges verified bindings into a registry document with a
// read-merge-write cycle guarded by the document's version tag.
type RecordStore struct {
	docs     DocumentStore
	attempts int
}

func NewRecordStore(docs DocumentStore, attempts int) *RecordStore {
	if attempts <= 0 {
		attempts = defaultWriteAttempts
	}
	return &RecordStore{docs: docs, attempts: attempts}
}

// Apply records binding under (address, kind) in the document at path. The
// document is read fresh on every attempt, mutated in memory and written back
// once with the version tag from the read as precondition. A losing writer
// retries the whole cycle; concurrent updates to other addresses or kinds are
// never overwritten.
func (s *RecordStore) Apply(ctx context.Context, path, address, kind string, binding *models.Binding) (Outcome, error) {
	for attempt := 1; attempt <= s.attempts; attempt++ {
		content, tag, err := s.docs.Read(ctx, path)
		if err != nil {
			return 0, apperrors.Wrapf(err, apperrors.ErrCodeStoreUnavailable, "reading registry %s", path)
		}

		registry := models.Registry{}
		if len(content) > 0 {
			if err := json.Unmarshal(content, &registry); err != nil {
				return 0, apperrors.Wrapf(err, apperrors.ErrCodeStoreUnavailable, "decoding registry %s", path)
			}
		}

		record := registry[address]
		if record == nil {
			record = models.AddressRecord{}
		}
		if existing := record[kind]; existing != nil && strings.EqualFold(existing.Owner(), binding.Owner()) {
			return OutcomeAlreadyBound, nil
		}
		record[kind] = binding
		registry[address] = record

		encoded, err := json.Marshal(registry)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrCodeStoreUnavailable, "encoding registry")
		}

		err = s.docs.Write(ctx, path, encoded, tag)
		if err == nil {
			return OutcomeApplied, nil
		}
		if apperrors.CodeOf(err) != apperrors.ErrCodeConflict {
			return 0, apperrors.Wrapf(err, apperrors.ErrCodeStoreUnavailable, "writing registry %s", path)
		}

		logger.Debug().
			Str("path", path).
			Str("address", address).
			Int("attempt", attempt).
			Msg("registry changed since read, retrying")
	}

	return 0, apperrors.Newf(apperrors.ErrCodeConflict, "registry %s kept changing; gave up after %d attempts", path, s.attempts)
}
