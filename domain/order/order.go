package order

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	bvalidator "github.com/x-xyz/p2pmarket/base/validator"
	"github.com/x-xyz/p2pmarket/domain"
)

var validate = bvalidator.New()

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusDisputed  Status = "disputed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusDisputed:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

// IsFinal reports whether the payment can no longer change
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

type DisputeStatus string

const (
	DisputeNone     DisputeStatus = "none"
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
	DisputeClosed   DisputeStatus = "closed"
)

// ErrInvalidTransition is returned when an order is not in a state allowing the action
var ErrInvalidTransition = fmt.Errorf("order state does not allow this action: %w", domain.ErrConflict)

type ShippingAddress struct {
	Address    string `json:"address" bson:"address" validate:"required,max=200"`
	City       string `json:"city" bson:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required,max=20"`
	Country    string `json:"country" bson:"country" validate:"required,max=100"`
}

type Order struct {
	Id      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Buyer   primitive.ObjectID `json:"buyer" bson:"buyer"`
	Seller  primitive.ObjectID `json:"seller" bson:"seller"`
	Listing primitive.ObjectID `json:"listing" bson:"listing"`
	// Price is the listing price when the order was placed
	Price             string          `json:"price" bson:"price"`
	Status            Status          `json:"status" bson:"status"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus" bson:"paymentStatus"`
	TransactionHash   domain.TxHash   `json:"transactionHash" bson:"transactionHash"`
	OnChainId         string          `json:"onChainId,omitempty" bson:"onChainId,omitempty"`
	ShippingAddress   ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	DisputeReason     string          `json:"disputeReason,omitempty" bson:"disputeReason,omitempty"`
	DisputeStatus     DisputeStatus   `json:"disputeStatus" bson:"disputeStatus"`
	DisputeResolution string          `json:"disputeResolution,omitempty" bson:"disputeResolution,omitempty"`
	Rating            int             `json:"rating,omitempty" bson:"rating,omitempty"`
	Review            string          `json:"review,omitempty" bson:"review,omitempty"`
	CreatedAt         time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt" bson:"updatedAt"`
}

func (o *Order) IsParticipant(userId primitive.ObjectID) bool {
	return o.Buyer == userId || o.Seller == userId
}

func (o *Order) Settlement() Settlement {
	return Settlement{
		TxHash:    o.TransactionHash,
		OnChainId: o.OnChainId,
		Price:     o.Price,
	}
}

type Patchable struct {
	Status            *Status        `bson:"status,omitempty"`
	PaymentStatus     *PaymentStatus `bson:"paymentStatus,omitempty"`
	DisputeReason     *string        `bson:"disputeReason,omitempty"`
	DisputeStatus     *DisputeStatus `bson:"disputeStatus,omitempty"`
	DisputeResolution *string        `bson:"disputeResolution,omitempty"`
	Rating            *int           `bson:"rating,omitempty"`
	Review            *string        `bson:"review,omitempty"`
	UpdatedAt         *time.Time     `bson:"updatedAt,omitempty"`
}

type CreatePayload struct {
	ListingId       string          `json:"listing" validate:"required,len=24,hexadecimal"`
	TransactionHash string          `json:"transactionHash" validate:"required,txhash"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

func (p *CreatePayload) Validate() error {
	p.ShippingAddress.Address = strings.TrimSpace(p.ShippingAddress.Address)
	p.ShippingAddress.City = strings.TrimSpace(p.ShippingAddress.City)
	p.ShippingAddress.PostalCode = strings.TrimSpace(p.ShippingAddress.PostalCode)
	p.ShippingAddress.Country = strings.TrimSpace(p.ShippingAddress.Country)
	return bvalidator.ToValidationError(validate.Struct(p))
}

// ListingObjectId must only be called on a validated payload
func (p *CreatePayload) ListingObjectId() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(p.ListingId)
	return id
}

type DisputePayload struct {
	Reason string `json:"reason" validate:"required,min=1,max=1000"`
}

func (p *DisputePayload) Validate() error {
	p.Reason = strings.TrimSpace(p.Reason)
	return bvalidator.ToValidationError(validate.Struct(p))
}

type ResolvePayload struct {
	Resolution string        `json:"resolution" validate:"required,max=1000"`
	Status     DisputeStatus `json:"status" validate:"required,oneof=resolved closed"`
}

func (p *ResolvePayload) Validate() error {
	p.Resolution = strings.TrimSpace(p.Resolution)
	return bvalidator.ToValidationError(validate.Struct(p))
}

type RatingPayload struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"max=500"`
}

func (p *RatingPayload) Validate() error {
	p.Review = strings.TrimSpace(p.Review)
	return bvalidator.ToValidationError(validate.Struct(p))
}

type ListParams struct {
	Status string `query:"status"`
}

type FindAllOptions struct {
	Participant *primitive.ObjectID
	Listing     *primitive.ObjectID
	Status      *Status
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// WithParticipant matches orders where userId is the buyer or the seller
func WithParticipant(userId primitive.ObjectID) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Participant = &userId
		return nil
	}
}

func WithListing(listingId primitive.ObjectID) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Listing = &listingId
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if !status.IsValid() {
			return domain.NewValidationError().Add("status", "must be one of pending, completed, cancelled, disputed")
		}
		options.Status = &status
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Order, error)
	FindOne(c ctx.Ctx, id primitive.ObjectID) (*Order, error)
	Create(c ctx.Ctx, order *Order) error
	// Patch only applies while the order is still in status from, otherwise ErrInvalidTransition
	Patch(c ctx.Ctx, id primitive.ObjectID, from Status, patchable Patchable) (*Order, error)
}

// Settlement is the purchase an order claims to have paid on chain
type Settlement struct {
	TxHash domain.TxHash
	// OnChainId is the marketplace contract's listing id
	OnChainId string
	// Price in ether, the purchase must pay at least this much
	Price string
}

// PaymentVerifier looks up the on-chain settlement of a transaction. Only a
// successful transaction carrying the marketplace's purchase event for the
// same listing counts as paid.
type PaymentVerifier interface {
	VerifyPayment(c ctx.Ctx, s Settlement) (PaymentStatus, error)
}

// DisputeNotifier tells the moderators about a newly opened dispute
type DisputeNotifier interface {
	NotifyDispute(c ctx.Ctx, order *Order) error
}

type Usecase interface {
	Create(c ctx.Ctx, buyerId primitive.ObjectID, payload CreatePayload) (*Order, error)
	ListMine(c ctx.Ctx, userId primitive.ObjectID, params ListParams) ([]*Order, error)
	GetOne(c ctx.Ctx, userId, id primitive.ObjectID) (*Order, error)
	RefreshPayment(c ctx.Ctx, userId, id primitive.ObjectID) (*Order, error)
	Complete(c ctx.Ctx, userId, id primitive.ObjectID) (*Order, error)
	Cancel(c ctx.Ctx, userId, id primitive.ObjectID) (*Order, error)
	OpenDispute(c ctx.Ctx, userId, id primitive.ObjectID, payload DisputePayload) (*Order, error)
	ResolveDispute(c ctx.Ctx, adminId, id primitive.ObjectID, payload ResolvePayload) (*Order, error)
	Rate(c ctx.Ctx, userId, id primitive.ObjectID, payload RatingPayload) (*Order, error)
}
