package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/crmlite/customers/internal/model"
	"github.com/crmlite/customers/internal/search"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	cacheMocks "github.com/crmlite/customers/internal/cache/mocks"
	apperrors "github.com/crmlite/customers/internal/errors"
	rpsMocks "github.com/crmlite/customers/internal/repository/mocks"
	searchMocks "github.com/crmlite/customers/internal/search/mocks"
)

type customerTestData struct {
	ctx      context.Context
	customer *model.Customer
}

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc       CustomerService
	customerRpsMock   *rpsMocks.CustomerRepository
	customerCacheMock *cacheMocks.CustomerCache
	customerIndexMock *searchMocks.CustomerIndex
	testData          *customerTestData
}

func (s *customerServiceTestSuite) SetupSuite() {
	contactNumber := "09216732715"
	s.testData = &customerTestData{
		ctx: context.Background(),
		customer: &model.Customer{
			ID:            17,
			FirstName:     "Jason",
			LastName:      "Yecyec",
			Email:         "jasonyecyec@somemail.com",
			ContactNumber: &contactNumber,
		},
	}
}

func (s *customerServiceTestSuite) SetupTest() {
	t := s.T()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.customerCacheMock = cacheMocks.NewCustomerCache(t)
	s.customerIndexMock = searchMocks.NewCustomerIndex(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.customerSvc = NewCustomerService(s.customerRpsMock, s.customerCacheMock, s.customerIndexMock, logger)
}

func (s *customerServiceTestSuite) TestCreateSuccessfully() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByEmail", ctx, "alice.johnson@somemail.com", int64(0)).Return(nil, nil).Once()
	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Customer).ID = 1
	}).Return(nil).Once()
	s.customerIndexMock.On("Index", ctx, int64(1), mock.AnythingOfType("search.Document")).Return(nil).Once()

	s.T().Log("customer must be created and propagated to the index")
	{
		c, err := s.customerSvc.Create(ctx, model.NewCustomer{
			FirstName: "Alice",
			LastName:  "Johnson",
			Email:     "Alice.Johnson@somemail.com",
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(int64(1), c.ID, "id must be assigned by the store")
		s.Assert().Equal("alice.johnson@somemail.com", c.Email, "email must be normalized to lower case")
		s.Assert().False(c.CreatedAt.IsZero(), "created_at must be system-managed")
	}
}

func (s *customerServiceTestSuite) TestCreateEmailTaken() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByEmail", ctx, customer.Email, int64(0)).Return(customer, nil).Once()

	s.T().Log("email is taken, no row created and no index write attempted")
	{
		_, err := s.customerSvc.Create(ctx, model.NewCustomer{
			FirstName: "Jason",
			LastName:  "Yecyec",
			Email:     customer.Email,
		})

		var confErr *apperrors.ConflictErr
		s.Assert().ErrorAs(err, &confErr, "conflict error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Customer"))
		s.customerIndexMock.AssertNotCalled(s.T(), "Index", ctx, mock.Anything, mock.Anything)
	}
}

func (s *customerServiceTestSuite) TestCreateIndexPropagationFailed() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByEmail", ctx, "bob@somemail.com", int64(0)).Return(nil, nil).Once()
	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Customer).ID = 5
	}).Return(nil).Once()
	s.customerIndexMock.On("Index", ctx, int64(5), mock.AnythingOfType("search.Document")).Return(errors.New("index err")).Once()

	s.T().Log("index write failed, create must still succeed")
	{
		c, err := s.customerSvc.Create(ctx, model.NewCustomer{
			FirstName: "Bob",
			LastName:  "Stone",
			Email:     "bob@somemail.com",
		})
		s.Assert().NoError(err, "index failure must not fail the primary operation")
		s.Assert().Equal(int64(5), c.ID)
	}
}

func (s *customerServiceTestSuite) TestFindByIDFromCache() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()

	s.T().Log("customer must be found in cache")
	{
		_, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()

	s.T().Log("customer is missing in cache and in the record store")
	{
		_, err := s.customerSvc.FindByID(ctx, customer.ID)

		var nfErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &nfErr, "not found error must be raised")
		s.customerCacheMock.AssertNotCalled(s.T(), "Cache", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestFindByIDCached() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerCacheMock.On("Cache", ctx, customer).Return(nil).Once()

	s.T().Log("customer is not in cache, found in the record store and cached")
	{
		c, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(c, "customer must be found")
	}
}

func (s *customerServiceTestSuite) TestUpdatePartial() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	newEmail := "new.jason@somemail.com"

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerRpsMock.On("FindByEmail", ctx, newEmail, customer.ID).Return(nil, nil).Once()
	s.customerCacheMock.On("EvictByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("Update", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()
	s.customerIndexMock.On("Update", ctx, customer.ID, mock.AnythingOfType("search.Document")).Return(nil).Once()

	s.T().Log("only email changes, other fields keep prior values")
	{
		c, err := s.customerSvc.Update(ctx, model.PatchCustomer{ID: customer.ID, Email: &newEmail})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(newEmail, c.Email, "email must be updated")
		s.Assert().Equal(customer.FirstName, c.FirstName, "first name must keep its prior value")
		s.Assert().Equal(customer.ContactNumber, c.ContactNumber, "contact number must keep its prior value")
	}
}

func (s *customerServiceTestSuite) TestUpdateNotFound() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByID", ctx, int64(999)).Return(nil, nil).Once()

	s.T().Log("update of a non-existent id must fail")
	{
		firstName := "Ghost"
		_, err := s.customerSvc.Update(ctx, model.PatchCustomer{ID: 999, FirstName: &firstName})

		var nfErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &nfErr, "not found error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Update", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestUpdateEmailCollision() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	otherEmail := "taken@somemail.com"
	other := &model.Customer{ID: 99, Email: otherEmail}

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerRpsMock.On("FindByEmail", ctx, otherEmail, customer.ID).Return(other, nil).Once()

	s.T().Log("new email collides with a different row")
	{
		_, err := s.customerSvc.Update(ctx, model.PatchCustomer{ID: customer.ID, Email: &otherEmail})

		var confErr *apperrors.ConflictErr
		s.Assert().ErrorAs(err, &confErr, "conflict error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Update", ctx, mock.AnythingOfType("*model.Customer"))
		s.customerIndexMock.AssertNotCalled(s.T(), "Update", ctx, mock.Anything, mock.Anything)
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("EvictByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(true, nil).Once()
	s.customerIndexMock.On("Delete", ctx, customer.ID).Return(nil).Once()

	s.T().Log("deleted successfully")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDNotFound() {
	ctx := s.testData.ctx

	s.customerCacheMock.On("EvictByID", ctx, int64(999)).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, int64(999)).Return(false, nil).Once()

	s.T().Log("second delete of the same id must report not found")
	{
		err := s.customerSvc.DeleteByID(ctx, 999)

		var nfErr *apperrors.NotFoundErr
		s.Assert().ErrorAs(err, &nfErr, "not found error must be raised")
		s.customerIndexMock.AssertNotCalled(s.T(), "Delete", ctx, int64(999))
	}
}

func (s *customerServiceTestSuite) TestSearchDegradesToEmpty() {
	ctx := s.testData.ctx

	s.customerIndexMock.On("Search", ctx, "jas").Return(nil, errors.New("index unreachable")).Once()

	s.T().Log("unreachable index degrades to empty result set")
	{
		docs, err := s.customerSvc.Search(ctx, "jas")
		s.Assert().NoError(err, "search failure must not surface to the caller")
		s.Assert().Empty(docs, "result set must be empty")
		s.Assert().NotNil(docs, "result must be an empty sequence, not nil")
	}
}

func (s *customerServiceTestSuite) TestSearchReturnsRawDocuments() {
	ctx := s.testData.ctx

	matched := []search.Document{
		{FirstName: "Jason", LastName: "Yecyec", Email: "jasonyecyec@somemail.com"},
	}
	s.customerIndexMock.On("Search", ctx, "jas").Return(matched, nil).Once()

	s.T().Log("matched documents are returned as stored, not hydrated")
	{
		docs, err := s.customerSvc.Search(ctx, "jas")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(matched, docs)
		s.customerRpsMock.AssertNotCalled(s.T(), "FindAll", ctx)
	}
}

func (s *customerServiceTestSuite) TestReindexAll() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	second := &model.Customer{ID: 18, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@somemail.com"}

	s.customerRpsMock.On("FindAll", ctx).Return([]*model.Customer{customer, second}, nil).Once()
	s.customerIndexMock.On("Index", ctx, customer.ID, search.DocumentOf(customer)).Return(nil).Once()
	s.customerIndexMock.On("Index", ctx, second.ID, search.DocumentOf(second)).Return(errors.New("index err")).Once()

	s.T().Log("reindex replays every row and survives per-document failures")
	{
		indexed, err := s.customerSvc.ReindexAll(ctx)
		s.Assert().NoError(err, "partial failure is logged, not raised")
		s.Assert().Equal(1, indexed, "only successfully indexed documents are counted")
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
