package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/listing"
	listingMocks "github.com/x-xyz/p2pmarket/domain/listing/mocks"
	"github.com/x-xyz/p2pmarket/domain/mocks"
	"github.com/x-xyz/p2pmarket/domain/order"
	orderMocks "github.com/x-xyz/p2pmarket/domain/order/mocks"
	userMocks "github.com/x-xyz/p2pmarket/domain/user/mocks"
)

var (
	mockTxHash = domain.TxHash("0x" + strings.Repeat("1", 64))
	mockNow    = time.Unix(1000, 0).UTC()

	mockSettlement = order.Settlement{TxHash: mockTxHash, OnChainId: "7", Price: "12.50"}
)

type orderUsecaseSuite struct {
	suite.Suite

	ctx         ctx.Ctx
	repo        *orderMocks.Repo
	listingRepo *listingMocks.Repo
	userRepo    *userMocks.Repo
	userUC      *userMocks.Usecase
	tx          *mocks.Transactor
	verifier    *orderMocks.PaymentVerifier
	notifier    *orderMocks.DisputeNotifier
	im          order.Usecase

	buyer, seller primitive.ObjectID
}

func TestOrderUsecaseSuite(t *testing.T) {
	suite.Run(t, new(orderUsecaseSuite))
}

func (s *orderUsecaseSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.repo = &orderMocks.Repo{}
	s.listingRepo = &listingMocks.Repo{}
	s.userRepo = &userMocks.Repo{}
	s.userUC = &userMocks.Usecase{}
	s.verifier = &orderMocks.PaymentVerifier{}
	s.notifier = &orderMocks.DisputeNotifier{}
	s.tx = &mocks.Transactor{}
	s.tx.On("RunWithTransaction", mock.Anything, mock.Anything).Return(func(c ctx.Ctx, fn func(ctx.Ctx) error) error {
		return fn(c)
	}).Maybe()
	s.im = New(&OrderUseCaseCfg{
		OrderRepo:   s.repo,
		ListingRepo: s.listingRepo,
		UserRepo:    s.userRepo,
		UserUC:      s.userUC,
		Transactor:  s.tx,
		Verifier:    s.verifier,
		Notifier:    s.notifier,
	})
	s.buyer = primitive.NewObjectID()
	s.seller = primitive.NewObjectID()
	timeNow = func() time.Time { return mockNow }
}

func (s *orderUsecaseSuite) TearDownTest() {
	timeNow = time.Now
	s.repo.AssertExpectations(s.T())
	s.listingRepo.AssertExpectations(s.T())
	s.userRepo.AssertExpectations(s.T())
	s.userUC.AssertExpectations(s.T())
	s.verifier.AssertExpectations(s.T())
	s.notifier.AssertExpectations(s.T())
}

func (s *orderUsecaseSuite) activeListing() *listing.Listing {
	return &listing.Listing{
		Id:        primitive.NewObjectID(),
		Seller:    s.seller,
		Price:     "12.50",
		Status:    listing.StatusActive,
		OnChainId: "7",
	}
}

func (s *orderUsecaseSuite) payload(l *listing.Listing) order.CreatePayload {
	return order.CreatePayload{
		ListingId:       l.Id.Hex(),
		TransactionHash: mockTxHash.String(),
		ShippingAddress: order.ShippingAddress{Address: "1 Main St", City: "NYC", PostalCode: "10001", Country: "US"},
	}
}

func (s *orderUsecaseSuite) order(status order.Status) *order.Order {
	return &order.Order{
		Id:              primitive.NewObjectID(),
		Buyer:           s.buyer,
		Seller:          s.seller,
		Listing:         primitive.NewObjectID(),
		Price:           "12.50",
		Status:          status,
		PaymentStatus:   order.PaymentProcessing,
		TransactionHash: mockTxHash,
		OnChainId:       "7",
		DisputeStatus:   order.DisputeNone,
	}
}

func (s *orderUsecaseSuite) TestCreate() {
	l := s.activeListing()
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.verifier.On("VerifyPayment", mock.Anything, mockSettlement).Return(order.PaymentCompleted, nil).Once()
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Buyer == s.buyer && o.Seller == s.seller && o.Listing == l.Id &&
			o.Price == "12.50" && o.Status == order.StatusPending &&
			o.PaymentStatus == order.PaymentCompleted && o.DisputeStatus == order.DisputeNone &&
			o.OnChainId == "7" && o.CreatedAt.Equal(mockNow)
	})).Return(nil).Once()
	s.listingRepo.On("SetStatus", mock.Anything, l.Id, listing.StatusActive, listing.StatusSold, mockNow).Return(&listing.Listing{}, nil).Once()
	s.userRepo.On("AddOrder", mock.Anything, s.buyer, mock.Anything).Return(nil).Once()
	s.userRepo.On("AddOrder", mock.Anything, s.seller, mock.Anything).Return(nil).Once()
	s.userUC.On("InvalidateProfile", mock.Anything, []primitive.ObjectID{s.buyer, s.seller}).Return().Once()

	res, err := s.im.Create(s.ctx, s.buyer, s.payload(l))
	s.Require().NoError(err)
	s.False(res.Id.IsZero())
	s.Equal(order.PaymentCompleted, res.PaymentStatus)
	s.Equal("12.50", res.Price)
}

func (s *orderUsecaseSuite) TestCreateUnverifiedPayment() {
	l := s.activeListing()
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.verifier.On("VerifyPayment", mock.Anything, mockSettlement).Return(order.PaymentPending, errors.New("rpc down")).Once()
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.PaymentStatus == order.PaymentProcessing
	})).Return(nil).Once()
	s.listingRepo.On("SetStatus", mock.Anything, l.Id, listing.StatusActive, listing.StatusSold, mockNow).Return(&listing.Listing{}, nil).Once()
	s.userRepo.On("AddOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	s.userUC.On("InvalidateProfile", mock.Anything, []primitive.ObjectID{s.buyer, s.seller}).Return().Once()

	res, err := s.im.Create(s.ctx, s.buyer, s.payload(l))
	s.Require().NoError(err)
	s.Equal(order.PaymentProcessing, res.PaymentStatus)
}

func (s *orderUsecaseSuite) TestCreateRejected() {
	l := s.activeListing()

	_, err := s.im.Create(s.ctx, primitive.NilObjectID, s.payload(l))
	s.Equal(domain.ErrForbidden, err)

	bad := s.payload(l)
	bad.ShippingAddress.Country = ""
	_, err = s.im.Create(s.ctx, s.buyer, bad)
	s.True(errors.Is(err, domain.ErrBadParamInput))

	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	_, err = s.im.Create(s.ctx, s.seller, s.payload(l))
	s.True(errors.Is(err, domain.ErrForbidden))

	sold := s.activeListing()
	sold.Status = listing.StatusSold
	s.listingRepo.On("FindOne", mock.Anything, sold.Id).Return(sold, nil).Once()
	_, err = s.im.Create(s.ctx, s.buyer, s.payload(sold))
	s.True(errors.Is(err, domain.ErrConflict))

	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.verifier.On("VerifyPayment", mock.Anything, mockSettlement).Return(order.PaymentFailed, nil).Once()
	_, err = s.im.Create(s.ctx, s.buyer, s.payload(l))
	s.True(errors.Is(err, domain.ErrBadParamInput))

	missing := s.activeListing()
	s.listingRepo.On("FindOne", mock.Anything, missing.Id).Return(nil, domain.ErrNotFound).Once()
	_, err = s.im.Create(s.ctx, s.buyer, s.payload(missing))
	s.Equal(domain.ErrNotFound, err)
}

func (s *orderUsecaseSuite) TestCreateRollsBackOnBackReference() {
	l := s.activeListing()
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.verifier.On("VerifyPayment", mock.Anything, mockSettlement).Return(order.PaymentCompleted, nil).Once()
	s.listingRepo.On("SetStatus", mock.Anything, l.Id, listing.StatusActive, listing.StatusSold, mockNow).Return(&listing.Listing{}, nil).Once()
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	s.userRepo.On("AddOrder", mock.Anything, s.buyer, mock.Anything).Return(domain.ErrNotFound).Once()

	_, err := s.im.Create(s.ctx, s.buyer, s.payload(l))
	s.Equal(domain.ErrNotFound, err)
	s.userUC.AssertNotCalled(s.T(), "InvalidateProfile", mock.Anything, mock.Anything)
}

func (s *orderUsecaseSuite) TestCreateListingClaimedConcurrently() {
	l := s.activeListing()
	s.listingRepo.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.verifier.On("VerifyPayment", mock.Anything, mockSettlement).Return(order.PaymentCompleted, nil).Once()
	s.listingRepo.On("SetStatus", mock.Anything, l.Id, listing.StatusActive, listing.StatusSold, mockNow).Return(nil, domain.ErrConflict).Once()

	_, err := s.im.Create(s.ctx, s.buyer, s.payload(l))
	s.Equal(domain.ErrConflict, err)
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.userRepo.AssertNotCalled(s.T(), "AddOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *orderUsecaseSuite) TestListMine() {
	s.repo.On("FindAll", mock.Anything, mock.MatchedBy(func(opts []order.FindAllOptionsFunc) bool {
		o, err := order.GetFindAllOptions(opts...)
		return err == nil && *o.Participant == s.buyer && *o.Status == order.StatusPending
	})).Return([]*order.Order{s.order(order.StatusPending)}, nil).Once()

	res, err := s.im.ListMine(s.ctx, s.buyer, order.ListParams{Status: "pending"})
	s.Require().NoError(err)
	s.Len(res, 1)

	s.repo.On("FindAll", mock.Anything, mock.Anything).Return(nil, domain.NewValidationError().Add("status", "invalid")).Once()
	_, err = s.im.ListMine(s.ctx, s.buyer, order.ListParams{Status: "lost"})
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *orderUsecaseSuite) TestGetOne() {
	o := s.order(order.StatusPending)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	res, err := s.im.GetOne(s.ctx, s.seller, o.Id)
	s.Require().NoError(err)
	s.Equal(o, res)

	admin, stranger := primitive.NewObjectID(), primitive.NewObjectID()
	s.userUC.On("IsAdmin", mock.Anything, admin).Return(true, nil).Once()
	s.userUC.On("IsAdmin", mock.Anything, stranger).Return(false, nil).Once()

	res, err = s.im.GetOne(s.ctx, admin, o.Id)
	s.Require().NoError(err)
	s.Equal(o, res)

	_, err = s.im.GetOne(s.ctx, stranger, o.Id)
	s.Equal(domain.ErrForbidden, err)
}

func (s *orderUsecaseSuite) TestRefreshPayment() {
	o := s.order(order.StatusPending)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil).Once()
	s.verifier.On("VerifyPayment", mock.Anything, mockSettlement).Return(order.PaymentCompleted, nil).Once()
	updated := *o
	updated.PaymentStatus = order.PaymentCompleted
	s.repo.On("Patch", mock.Anything, o.Id, order.StatusPending, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.PaymentStatus == order.PaymentCompleted && p.Status == nil
	})).Return(&updated, nil).Once()

	res, err := s.im.RefreshPayment(s.ctx, s.buyer, o.Id)
	s.Require().NoError(err)
	s.Equal(order.PaymentCompleted, res.PaymentStatus)

	// final payments are not checked again
	s.repo.On("FindOne", mock.Anything, o.Id).Return(&updated, nil).Once()
	res, err = s.im.RefreshPayment(s.ctx, s.buyer, o.Id)
	s.Require().NoError(err)
	s.Equal(&updated, res)
}

func (s *orderUsecaseSuite) TestComplete() {
	o := s.order(order.StatusPending)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	_, err := s.im.Complete(s.ctx, s.seller, o.Id)
	s.Equal(domain.ErrForbidden, err)

	s.repo.On("Patch", mock.Anything, o.Id, order.StatusPending, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.Status == order.StatusCompleted
	})).Return(nil, order.ErrInvalidTransition).Once()
	_, err = s.im.Complete(s.ctx, s.buyer, o.Id)
	s.True(errors.Is(err, domain.ErrConflict))
}

func (s *orderUsecaseSuite) TestCancel() {
	o := s.order(order.StatusPending)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)
	cancelled := *o
	cancelled.Status = order.StatusCancelled
	s.repo.On("Patch", mock.Anything, o.Id, order.StatusPending, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.Status == order.StatusCancelled
	})).Return(&cancelled, nil).Once()
	s.listingRepo.On("SetStatus", mock.Anything, o.Listing, listing.StatusSold, listing.StatusActive, mockNow).Return(&listing.Listing{}, nil).Once()

	res, err := s.im.Cancel(s.ctx, s.seller, o.Id)
	s.Require().NoError(err)
	s.Equal(order.StatusCancelled, res.Status)

	_, err = s.im.Cancel(s.ctx, primitive.NewObjectID(), o.Id)
	s.Equal(domain.ErrForbidden, err)
}

func (s *orderUsecaseSuite) TestOpenDispute() {
	o := s.order(order.StatusCompleted)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil).Once()
	disputed := *o
	disputed.Status = order.StatusDisputed
	disputed.DisputeStatus = order.DisputeOpen
	disputed.DisputeReason = "broken"
	s.repo.On("Patch", mock.Anything, o.Id, order.StatusCompleted, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.Status == order.StatusDisputed && *p.DisputeStatus == order.DisputeOpen && *p.DisputeReason == "broken"
	})).Return(&disputed, nil).Once()
	s.notifier.On("NotifyDispute", mock.Anything, &disputed).Return(errors.New("discord down")).Once()

	res, err := s.im.OpenDispute(s.ctx, s.buyer, o.Id, order.DisputePayload{Reason: " broken "})
	s.Require().NoError(err)
	s.Equal(order.DisputeOpen, res.DisputeStatus)

	_, err = s.im.OpenDispute(s.ctx, s.buyer, o.Id, order.DisputePayload{})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	s.repo.On("FindOne", mock.Anything, o.Id).Return(&disputed, nil).Once()
	_, err = s.im.OpenDispute(s.ctx, s.seller, o.Id, order.DisputePayload{Reason: "again"})
	s.Equal(order.ErrInvalidTransition, err)
}

func (s *orderUsecaseSuite) TestResolveDispute() {
	admin := primitive.NewObjectID()
	s.userUC.On("IsAdmin", mock.Anything, admin).Return(true, nil)
	s.userUC.On("IsAdmin", mock.Anything, s.buyer).Return(false, nil).Once()

	o := s.order(order.StatusDisputed)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	_, err := s.im.ResolveDispute(s.ctx, s.buyer, o.Id, order.ResolvePayload{Resolution: "refund", Status: order.DisputeResolved})
	s.Equal(domain.ErrForbidden, err)

	resolved := *o
	resolved.Status = order.StatusCompleted
	s.repo.On("Patch", mock.Anything, o.Id, order.StatusDisputed, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.Status == order.StatusCompleted && *p.DisputeStatus == order.DisputeResolved
	})).Return(&resolved, nil).Once()
	res, err := s.im.ResolveDispute(s.ctx, admin, o.Id, order.ResolvePayload{Resolution: "shipped", Status: order.DisputeResolved})
	s.Require().NoError(err)
	s.Equal(order.StatusCompleted, res.Status)

	closed := *o
	closed.Status = order.StatusCancelled
	s.repo.On("Patch", mock.Anything, o.Id, order.StatusDisputed, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.Status == order.StatusCancelled && *p.DisputeStatus == order.DisputeClosed && *p.DisputeResolution == "refund"
	})).Return(&closed, nil).Once()
	s.listingRepo.On("SetStatus", mock.Anything, o.Listing, listing.StatusSold, listing.StatusActive, mockNow).Return(nil, domain.ErrNotFound).Once()
	res, err = s.im.ResolveDispute(s.ctx, admin, o.Id, order.ResolvePayload{Resolution: "refund", Status: order.DisputeClosed})
	s.Require().NoError(err)
	s.Equal(order.StatusCancelled, res.Status)
}

func (s *orderUsecaseSuite) TestRate() {
	o := s.order(order.StatusCompleted)
	s.repo.On("FindOne", mock.Anything, o.Id).Return(o, nil)

	_, err := s.im.Rate(s.ctx, s.buyer, o.Id, order.RatingPayload{Rating: 9})
	s.True(errors.Is(err, domain.ErrBadParamInput))

	_, err = s.im.Rate(s.ctx, s.seller, o.Id, order.RatingPayload{Rating: 5})
	s.Equal(domain.ErrForbidden, err)

	rated := *o
	rated.Rating = 5
	s.repo.On("Patch", mock.Anything, o.Id, order.StatusCompleted, mock.MatchedBy(func(p order.Patchable) bool {
		return *p.Rating == 5 && *p.Review == "great"
	})).Return(&rated, nil).Once()
	res, err := s.im.Rate(s.ctx, s.buyer, o.Id, order.RatingPayload{Rating: 5, Review: "great"})
	s.Require().NoError(err)
	s.Equal(5, res.Rating)
}
