package usecase

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/domain/user"
)

var timeNow = time.Now

type OrderUseCaseCfg struct {
	OrderRepo   order.Repo
	ListingRepo listing.Repo
	UserRepo    user.Repo
	UserUC      user.Usecase
	Transactor  domain.Transactor
	Verifier    order.PaymentVerifier
	Notifier    order.DisputeNotifier
}

type impl struct {
	repo        order.Repo
	listingRepo listing.Repo
	userRepo    user.Repo
	userUC      user.Usecase
	transactor  domain.Transactor
	verifier    order.PaymentVerifier
	notifier    order.DisputeNotifier
}

func New(cfg *OrderUseCaseCfg) order.Usecase {
	return &impl{
		repo:        cfg.OrderRepo,
		listingRepo: cfg.ListingRepo,
		userRepo:    cfg.UserRepo,
		userUC:      cfg.UserUC,
		transactor:  cfg.Transactor,
		verifier:    cfg.Verifier,
		notifier:    cfg.Notifier,
	}
}

func (im *impl) Create(c ctx.Ctx, buyerId primitive.ObjectID, payload order.CreatePayload) (*order.Order, error) {
	if buyerId.IsZero() {
		return nil, domain.ErrForbidden
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	l, err := im.listingRepo.FindOne(c, payload.ListingObjectId())
	if err != nil {
		c.WithFields(log.Fields{
			"listing": payload.ListingId,
			"err":     err,
		}).Error("listingRepo.FindOne failed")
		return nil, err
	}
	if l.Status != listing.StatusActive {
		return nil, xerrors.Errorf("listing is %s: %w", l.Status, domain.ErrConflict)
	}
	if l.Seller == buyerId {
		return nil, xerrors.Errorf("cannot buy own listing: %w", domain.ErrForbidden)
	}

	txHash := domain.TxHash(payload.TransactionHash)
	paymentStatus := im.verify(c, order.Settlement{
		TxHash:    txHash,
		OnChainId: l.OnChainId,
		Price:     l.Price,
	})
	if paymentStatus == order.PaymentFailed {
		return nil, domain.NewValidationError().Add("transactionHash", "transaction does not pay for this listing")
	}

	now := timeNow()
	o := &order.Order{
		Id:              primitive.NewObjectID(),
		Buyer:           buyerId,
		Seller:          l.Seller,
		Listing:         l.Id,
		Price:           l.Price,
		Status:          order.StatusPending,
		PaymentStatus:   paymentStatus,
		TransactionHash: txHash,
		OnChainId:       l.OnChainId,
		ShippingAddress: payload.ShippingAddress,
		DisputeStatus:   order.DisputeNone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		// the listing is claimed first so a concurrent order for it aborts here
		if _, err := im.listingRepo.SetStatus(c, l.Id, listing.StatusActive, listing.StatusSold, now); err != nil {
			c.WithField("err", err).Error("listingRepo.SetStatus failed")
			return err
		}
		if err := im.repo.Create(c, o); err != nil {
			c.WithField("err", err).Error("repo.Create failed")
			return err
		}
		for _, id := range []primitive.ObjectID{o.Buyer, o.Seller} {
			if err := im.userRepo.AddOrder(c, id, o.Id); err != nil {
				c.WithFields(log.Fields{
					"user": id,
					"err":  err,
				}).Error("userRepo.AddOrder failed")
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	im.userUC.InvalidateProfile(c, o.Buyer, o.Seller)
	return o, nil
}

// verify never fails the caller, an unreachable chain leaves the payment processing
func (im *impl) verify(c ctx.Ctx, settlement order.Settlement) order.PaymentStatus {
	status, err := im.verifier.VerifyPayment(c, settlement)
	if err != nil {
		c.WithFields(log.Fields{
			"txHash": settlement.TxHash,
			"err":    err,
		}).Warn("verifier.VerifyPayment failed")
		return order.PaymentProcessing
	}
	return status
}

func (im *impl) ListMine(c ctx.Ctx, userId primitive.ObjectID, params order.ListParams) ([]*order.Order, error) {
	opts := []order.FindAllOptionsFunc{order.WithParticipant(userId)}
	if params.Status != "" {
		opts = append(opts, order.WithStatus(order.Status(params.Status)))
	}
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetOne(c ctx.Ctx, userId, id primitive.ObjectID) (*order.Order, error) {
	o, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if o.IsParticipant(userId) {
		return o, nil
	}
	isAdmin, err := im.userUC.IsAdmin(c, userId)
	if err != nil {
		c.WithField("err", err).Error("userUC.IsAdmin failed")
		return nil, err
	}
	if !isAdmin {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// participant loads the order and makes sure userId takes part in it
func (im *impl) participant(c ctx.Ctx, userId, id primitive.ObjectID) (*order.Order, error) {
	o, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !o.IsParticipant(userId) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (im *impl) RefreshPayment(c ctx.Ctx, userId, id primitive.ObjectID) (*order.Order, error) {
	o, err := im.participant(c, userId, id)
	if err != nil {
		return nil, err
	}
	if o.PaymentStatus.IsFinal() {
		return o, nil
	}

	status := im.verify(c, o.Settlement())
	if status == o.PaymentStatus {
		return o, nil
	}
	now := timeNow()
	return im.repo.Patch(c, id, o.Status, order.Patchable{PaymentStatus: &status, UpdatedAt: &now})
}

func (im *impl) Complete(c ctx.Ctx, userId, id primitive.ObjectID) (*order.Order, error) {
	o, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if o.Buyer != userId {
		return nil, domain.ErrForbidden
	}
	status := order.StatusCompleted
	now := timeNow()
	return im.repo.Patch(c, id, order.StatusPending, order.Patchable{Status: &status, UpdatedAt: &now})
}

func (im *impl) Cancel(c ctx.Ctx, userId, id primitive.ObjectID) (*order.Order, error) {
	o, err := im.participant(c, userId, id)
	if err != nil {
		return nil, err
	}
	var res *order.Order
	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		res, err = im.cancel(c, o, order.StatusPending, order.Patchable{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// cancel moves o from status from to cancelled and puts its listing back on sale.
// Must run inside a transaction.
func (im *impl) cancel(c ctx.Ctx, o *order.Order, from order.Status, patchable order.Patchable) (*order.Order, error) {
	now := timeNow()
	cancelled := order.StatusCancelled
	patchable.Status = &cancelled
	patchable.UpdatedAt = &now
	res, err := im.repo.Patch(c, o.Id, from, patchable)
	if err != nil {
		return nil, err
	}

	if _, err := im.listingRepo.SetStatus(c, o.Listing, listing.StatusSold, listing.StatusActive, now); err == domain.ErrNotFound || err == domain.ErrConflict {
		c.WithFields(log.Fields{
			"listing": o.Listing,
			"err":     err,
		}).Warn("listing of cancelled order not reactivated")
	} else if err != nil {
		c.WithField("err", err).Error("listingRepo.SetStatus failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) OpenDispute(c ctx.Ctx, userId, id primitive.ObjectID, payload order.DisputePayload) (*order.Order, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	o, err := im.participant(c, userId, id)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusPending && o.Status != order.StatusCompleted {
		return nil, order.ErrInvalidTransition
	}

	now := timeNow()
	disputed := order.StatusDisputed
	open := order.DisputeOpen
	res, err := im.repo.Patch(c, id, o.Status, order.Patchable{
		Status:        &disputed,
		DisputeStatus: &open,
		DisputeReason: &payload.Reason,
		UpdatedAt:     &now,
	})
	if err != nil {
		return nil, err
	}

	if err := im.notifier.NotifyDispute(c, res); err != nil {
		c.WithFields(log.Fields{
			"order": id,
			"err":   err,
		}).Warn("notifier.NotifyDispute failed")
	}
	return res, nil
}

func (im *impl) ResolveDispute(c ctx.Ctx, adminId, id primitive.ObjectID, payload order.ResolvePayload) (*order.Order, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	isAdmin, err := im.userUC.IsAdmin(c, adminId)
	if err != nil {
		c.WithField("err", err).Error("userUC.IsAdmin failed")
		return nil, err
	}
	if !isAdmin {
		return nil, domain.ErrForbidden
	}

	o, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	patchable := order.Patchable{
		DisputeStatus:     &payload.Status,
		DisputeResolution: &payload.Resolution,
	}
	if payload.Status == order.DisputeClosed {
		var res *order.Order
		err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
			res, err = im.cancel(c, o, order.StatusDisputed, patchable)
			return err
		})
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	now := timeNow()
	completed := order.StatusCompleted
	patchable.Status = &completed
	patchable.UpdatedAt = &now
	return im.repo.Patch(c, id, order.StatusDisputed, patchable)
}

func (im *impl) Rate(c ctx.Ctx, userId, id primitive.ObjectID, payload order.RatingPayload) (*order.Order, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	o, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if o.Buyer != userId {
		return nil, domain.ErrForbidden
	}

	now := timeNow()
	return im.repo.Patch(c, id, order.StatusCompleted, order.Patchable{
		Rating:    &payload.Rating,
		Review:    &payload.Review,
		UpdatedAt: &now,
	})
}
