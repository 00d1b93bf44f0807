package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/storage"
)

// ExpertRepository implements storage.ExpertRepository for BadgerDB.
type ExpertRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ExpertRepository = (*ExpertRepository)(nil)

// NewExpertRepository creates a new ExpertRepository.
func NewExpertRepository(backend *Backend) (*ExpertRepository, error) {
	idSeq, err := backend.GetSequence(expertIDSeq)
	if err != nil {
		return nil, err
	}

	return &ExpertRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ExpertRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ExpertRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddExpertProfiles adds one or more profiles to storage.
func (r *ExpertRepository) AddExpertProfiles(ctx context.Context, profiles ...*core.ExpertProfile) ([]*core.ExpertProfile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			if err := core.ValidateExpertProfile(profile); err != nil {
				return err
			}

			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			profile.Id = core.ID(nextID)

			profile.CreatedAt = time.Now().UTC()
			profile.UpdatedAt = profile.CreatedAt

			key := makeExpertKey(profile.Id)
			if err := tx.Set(key, storage.MarshalExpertProfile(profile)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// UpdateExpertProfiles updates existing profiles. Editing any text-bearing
// field invalidates the stored embedding in the same transaction; an
// unchanged text keeps the stored embedding regardless of what the caller
// passed, so a vector can never outlive its snapshot.
func (r *ExpertRepository) UpdateExpertProfiles(ctx context.Context, profiles ...*core.ExpertProfile) ([]*core.ExpertProfile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			key := makeExpertKey(profile.Id)

			// Read old profile to detect text changes
			old, err := r.readExpertProfile(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			profile.CreatedAt = old.CreatedAt
			profile.UpdatedAt = time.Now().UTC()

			if embedTextChanged(old, profile) {
				// Staleness contract: the edit clears the vector and its
				// snapshot; regeneration happens on the next reembed run.
				profile.Vector = nil
				profile.EmbedText = ""
				profile.EmbeddedAt = time.Time{}
			} else {
				profile.Vector = old.Vector
				profile.EmbedText = old.EmbedText
				profile.EmbeddedAt = old.EmbeddedAt
				// A non-text edit bumps UpdatedAt, but the snapshot still
				// matches the vector. Re-stamp EmbeddedAt so the profile
				// is not mistaken for stale and dropped from search.
				if old.HasEmbedding() {
					profile.EmbeddedAt = profile.UpdatedAt
				}
			}

			if err := core.ValidateExpertProfile(profile); err != nil {
				return err
			}

			if err := tx.Set(key, storage.MarshalExpertProfile(profile)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// DeleteExpertProfiles removes profiles by their IDs.
func (r *ExpertRepository) DeleteExpertProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeExpertKey(id)

			profile, err := r.readExpertProfile(tx, key)
			if err != nil {
				return err
			}
			if profile == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetExpertProfile retrieves a single profile by ID.
func (r *ExpertRepository) GetExpertProfile(ctx context.Context, id core.ID) (*core.ExpertProfile, error) {
	var result *core.ExpertProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readExpertProfile(tx, makeExpertKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetExpertProfiles retrieves multiple profiles by their IDs.
// Missing profiles are silently skipped.
func (r *ExpertRepository) GetExpertProfiles(ctx context.Context, ids ...core.ID) ([]*core.ExpertProfile, error) {
	results := make([]*core.ExpertProfile, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			profile, err := r.readExpertProfile(tx, makeExpertKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				results = append(results, profile)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListExpertProfiles retrieves all profiles, ordered by ID.
func (r *ExpertRepository) ListExpertProfiles(ctx context.Context) ([]*core.ExpertProfile, error) {
	return r.scan(func(p *core.ExpertProfile) bool { return true })
}

// ListEmbedded retrieves profiles whose embedding is present and fresh.
// Profiles without a vector, and profiles edited after their vector was
// generated, are excluded: they never reach the ranking stage.
func (r *ExpertRepository) ListEmbedded(ctx context.Context) ([]*core.ExpertProfile, error) {
	return r.scan(func(p *core.ExpertProfile) bool {
		return p.HasEmbedding() && !p.EmbeddingStale()
	})
}

// ListNeedingEmbedding retrieves profiles whose vector is absent or stale.
func (r *ExpertRepository) ListNeedingEmbedding(ctx context.Context) ([]*core.ExpertProfile, error) {
	return r.scan(func(p *core.ExpertProfile) bool {
		return !p.HasEmbedding() || p.EmbeddingStale()
	})
}

// SetEmbedding stores the embedding triple for a profile.
func (r *ExpertRepository) SetEmbedding(ctx context.Context, id core.ID, vector []float32, text string, at time.Time) error {
	if len(vector) > 0 && text == "" {
		return core.ErrOrphanedVector
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeExpertKey(id)

		profile, err := r.readExpertProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		profile.Vector = vector
		profile.EmbedText = text
		profile.EmbeddedAt = at.UTC()

		if err := tx.Set(key, storage.MarshalExpertProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ClearEmbedding removes the embedding triple from a profile.
func (r *ExpertRepository) ClearEmbedding(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeExpertKey(id)

		profile, err := r.readExpertProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		profile.Vector = nil
		profile.EmbedText = ""
		profile.EmbeddedAt = time.Time{}

		if err := tx.Set(key, storage.MarshalExpertProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// scan iterates all expert records and collects those matching keep.
// Results are sorted by ID (key order is lexicographic, not numeric).
func (r *ExpertRepository) scan(keep func(*core.ExpertProfile) bool) ([]*core.ExpertProfile, error) {
	var results []*core.ExpertProfile

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(expertRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var profile *core.ExpertProfile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalExpertProfile(val)
				return err
			})
			if err != nil {
				return err
			}
			if profile != nil && keep(profile) {
				results = append(results, profile)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.ExpertProfile) int {
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		default:
			return 0
		}
	})

	return results, nil
}

// readExpertProfile reads and unmarshals a profile within a transaction.
// Returns nil (no error) if the key doesn't exist.
func (r *ExpertRepository) readExpertProfile(tx *badger.Txn, key []byte) (*core.ExpertProfile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.ExpertProfile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalExpertProfile(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// embedTextChanged reports whether the edit changed the profile's embedding
// input. Fingerprints are compared rather than fields, so edits that leave
// the normalized embed text identical (e.g. whitespace-only ones) keep the
// stored vector.
func embedTextChanged(old, updated *core.ExpertProfile) bool {
	return core.TextFingerprint(old.EmbedInput()) != core.TextFingerprint(updated.EmbedInput())
}
