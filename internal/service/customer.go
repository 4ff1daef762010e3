package service

import (
	"context"
	"time"

	"github.com/crmlite/customers/internal/cache"
	"github.com/crmlite/customers/internal/model"
	"github.com/crmlite/customers/internal/repository"
	"github.com/crmlite/customers/internal/search"
	"github.com/sirupsen/logrus"

	apperrors "github.com/crmlite/customers/internal/errors"
)

const (
	msgCustomerNotFound = "Customer not found."
	msgEmailTaken       = "Customer with this email already exists."
)

type CustomerService interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int64) (*model.Customer, error)
	Search(context.Context, string) ([]search.Document, error)
	Create(context.Context, model.NewCustomer) (*model.Customer, error)
	Update(context.Context, model.PatchCustomer) (*model.Customer, error)
	DeleteByID(context.Context, int64) error
	ReindexAll(context.Context) (int, error)
}

type customerService struct {
	customerRepo  repository.CustomerRepository
	customerCache cache.CustomerCache
	index         search.CustomerIndex
	syncer        *search.Syncer
	logger        logrus.FieldLogger
}

func NewCustomerService(customerRepo repository.CustomerRepository, customerCache cache.CustomerCache, index search.CustomerIndex, logger logrus.FieldLogger) CustomerService {
	return &customerService{
		customerRepo:  customerRepo,
		customerCache: customerCache,
		index:         index,
		syncer:        search.NewSyncer(index),
		logger:        logger,
	}
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *customerService) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		s.logger.Errorf("failed to read customer %d from cache - %v", id, err)
	}
	if c != nil {
		return c, nil
	}

	c, err = s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NewNotFoundErr(msgCustomerNotFound)
	}

	if err := s.customerCache.Cache(ctx, c); err != nil {
		s.logger.Errorf("failed to cache customer %d - %v", id, err)
	}
	return c, nil
}

// Search queries the search index directly, matched documents are
// returned as stored and are not hydrated back from the record store.
// An unreachable index degrades to an empty result set.
func (s *customerService) Search(ctx context.Context, query string) ([]search.Document, error) {
	docs, err := s.index.Search(ctx, query)
	if err != nil {
		s.logger.Errorf("customer search for %q failed, degrading to empty result - %v", query, err)
		return []search.Document{}, nil
	}
	return docs, nil
}

func (s *customerService) Create(ctx context.Context, nc model.NewCustomer) (*model.Customer, error) {
	email := model.NormalizeEmail(nc.Email)

	existing, err := s.customerRepo.FindByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictErr(msgEmailTaken)
	}

	now := time.Now().UTC()
	c := &model.Customer{
		FirstName:     nc.FirstName,
		LastName:      nc.LastName,
		Email:         email,
		ContactNumber: nc.ContactNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	if err := s.syncer.CustomerCreated(ctx, c); err != nil {
		s.logger.Error(err) // record store write stays committed
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, patch model.PatchCustomer) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundErr(msgCustomerNotFound)
	}

	merged := existing.MergePatch(patch)

	if patch.Email != nil {
		collision, err := s.customerRepo.FindByEmail(ctx, merged.Email, merged.ID)
		if err != nil {
			return nil, err
		}
		if collision != nil {
			return nil, apperrors.NewConflictErr(msgEmailTaken)
		}
	}

	merged.UpdatedAt = time.Now().UTC()

	if err := s.customerCache.EvictByID(ctx, merged.ID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	if err := s.syncer.CustomerUpdated(ctx, &merged); err != nil {
		s.logger.Error(err)
	}
	return &merged, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.customerCache.EvictByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.customerRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFoundErr(msgCustomerNotFound)
	}

	if err := s.syncer.CustomerDeleted(ctx, id); err != nil {
		s.logger.Error(err)
	}
	return nil
}

// ReindexAll replays every record store row into the search index to
// repair drift after failed propagations or manual store edits
func (s *customerService) ReindexAll(ctx context.Context) (int, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	indexed, err := s.syncer.Rebuild(ctx, customers)
	if err != nil {
		s.logger.Errorf("reindex finished partially, %d of %d documents indexed - %v", indexed, len(customers), err)
	}
	return indexed, nil
}
