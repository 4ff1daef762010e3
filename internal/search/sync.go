package search

import (
	"context"

	"github.com/crmlite/customers/internal/model"

	apperrors "github.com/crmlite/customers/internal/errors"
)

// Syncer propagates record store mutations to the search index, one
// direction only and strictly after the authoritative write committed.
// It performs no retries and no queueing - a failed propagation leaves
// the index stale until the record mutates again or Rebuild runs.
type Syncer struct {
	index CustomerIndex
}

func NewSyncer(index CustomerIndex) *Syncer {
	return &Syncer{index: index}
}

func (s *Syncer) CustomerCreated(ctx context.Context, c *model.Customer) error {
	if err := s.index.Index(ctx, c.ID, DocumentOf(c)); err != nil {
		return apperrors.NewPropagationErr("create", c.ID, err)
	}
	return nil
}

func (s *Syncer) CustomerUpdated(ctx context.Context, c *model.Customer) error {
	if err := s.index.Update(ctx, c.ID, DocumentOf(c)); err != nil {
		return apperrors.NewPropagationErr("update", c.ID, err)
	}
	return nil
}

func (s *Syncer) CustomerDeleted(ctx context.Context, id int64) error {
	if err := s.index.Delete(ctx, id); err != nil {
		return apperrors.NewPropagationErr("delete", id, err)
	}
	return nil
}

// Rebuild replays the given record store state into the index, document
// by document. Indexing is idempotent, so replaying repairs any drift a
// failed propagation left behind. Returns how many documents were
// indexed, the first error is reported after the replay completes.
func (s *Syncer) Rebuild(ctx context.Context, customers []*model.Customer) (int, error) {
	var firstErr error

	indexed := 0
	for _, c := range customers {
		if err := s.index.Index(ctx, c.ID, DocumentOf(c)); err != nil {
			if firstErr == nil {
				firstErr = apperrors.NewPropagationErr("rebuild", c.ID, err)
			}
			continue
		}
		indexed++
	}
	return indexed, firstErr
}

// DocumentOf derives the search projection of a customer
func DocumentOf(c *model.Customer) Document {
	return Document{
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		ContactNumber: c.ContactNumber,
	}
}
