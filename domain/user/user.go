package user

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/p2pmarket/base/ctx"
	bvalidator "github.com/x-xyz/p2pmarket/base/validator"
	"github.com/x-xyz/p2pmarket/domain"
)

var validate = bvalidator.New()

type User struct {
	Id            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username      string               `json:"username" bson:"username"`
	Email         string               `json:"email,omitempty" bson:"email"`
	Password      string               `json:"-" bson:"password"`
	WalletAddress domain.Address       `json:"walletAddress" bson:"walletAddress"`
	Bio           string               `json:"bio" bson:"bio"`
	ProfileImage  string               `json:"profileImage" bson:"profileImage"`
	IsAdmin       bool                 `json:"isAdmin" bson:"isAdmin"`
	Listings      []primitive.ObjectID `json:"listings" bson:"listings"`
	Orders        []primitive.ObjectID `json:"orders" bson:"orders"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Public drops the fields only the owner may see
func (u User) Public() User {
	u.Email = ""
	u.Password = ""
	return u
}

func (u *User) OwnsListing(id primitive.ObjectID) bool {
	for _, l := range u.Listings {
		if l == id {
			return true
		}
	}
	return false
}

// Profile is a user as shown to the user itself
type Profile struct {
	User    `bson:"inline"`
	EnsName string `json:"ensName,omitempty" bson:"-"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Patchable struct {
	Username      *string         `bson:"username,omitempty"`
	Email         *string         `bson:"email,omitempty"`
	Password      *string         `bson:"password,omitempty"`
	WalletAddress *domain.Address `bson:"walletAddress,omitempty"`
	Bio           *string         `bson:"bio,omitempty"`
	ProfileImage  *string         `bson:"profileImage,omitempty"`
	IsAdmin       *bool           `bson:"isAdmin,omitempty"`
	UpdatedAt     *time.Time      `bson:"updatedAt,omitempty"`
}

type RegisterPayload struct {
	Username      string         `json:"username" validate:"required,min=3,max=30"`
	Email         string         `json:"email" validate:"required,email"`
	Password      string         `json:"password" validate:"required,min=6,max=72"`
	WalletAddress domain.Address `json:"walletAddress" validate:"required,hexaddr"`
	Bio           string         `json:"bio" validate:"max=500"`
	ProfileImage  string         `json:"profileImage" validate:"max=500"`
}

func (p *RegisterPayload) Validate() error {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = NormalizeEmail(p.Email)
	return bvalidator.ToValidationError(validate.Struct(p))
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginPayload) Validate() error {
	p.Email = NormalizeEmail(p.Email)
	return bvalidator.ToValidationError(validate.Struct(p))
}

// UpdatePayload holds the profile fields to change, nil fields stay untouched
type UpdatePayload struct {
	Username      *string         `json:"username" validate:"omitempty,min=3,max=30"`
	Email         *string         `json:"email" validate:"omitempty,email"`
	Password      *string         `json:"password" validate:"omitempty,min=6,max=72"`
	WalletAddress *domain.Address `json:"walletAddress" validate:"omitempty,hexaddr"`
	Bio           *string         `json:"bio" validate:"omitempty,max=500"`
	ProfileImage  *string         `json:"profileImage" validate:"omitempty,max=500"`
}

func (p *UpdatePayload) Validate() error {
	if p.Username != nil {
		*p.Username = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		*p.Email = NormalizeEmail(*p.Email)
	}
	return bvalidator.ToValidationError(validate.Struct(p))
}

// NormalizeEmail lower cases and trims an email so lookups are case insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type FindOneOptions struct {
	Id            *primitive.ObjectID
	Username      *string
	Email         *string
	WalletAddress *domain.Address
}

type FindOneOptionsFunc func(*FindOneOptions) error

func GetFindOneOptions(opts ...FindOneOptionsFunc) (FindOneOptions, error) {
	res := FindOneOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithId(id primitive.ObjectID) FindOneOptionsFunc {
	return func(options *FindOneOptions) error {
		options.Id = &id
		return nil
	}
}

func WithUsername(username string) FindOneOptionsFunc {
	return func(options *FindOneOptions) error {
		options.Username = &username
		return nil
	}
}

func WithEmail(email string) FindOneOptionsFunc {
	return func(options *FindOneOptions) error {
		email = NormalizeEmail(email)
		options.Email = &email
		return nil
	}
}

func WithWalletAddress(address domain.Address) FindOneOptionsFunc {
	return func(options *FindOneOptions) error {
		if !bvalidator.IsValidAddress(string(address)) {
			return domain.ErrInvalidAddress
		}
		address = address.ToLower()
		options.WalletAddress = &address
		return nil
	}
}

type Repo interface {
	FindOne(c ctx.Ctx, opts ...FindOneOptionsFunc) (*User, error)
	// Create returns ErrConflict when username, email or walletAddress is taken
	Create(c ctx.Ctx, user *User) error
	Patch(c ctx.Ctx, id primitive.ObjectID, patchable Patchable) error
	AddListing(c ctx.Ctx, id, listingId primitive.ObjectID) error
	RemoveListing(c ctx.Ctx, id, listingId primitive.ObjectID) error
	AddOrder(c ctx.Ctx, id, orderId primitive.ObjectID) error
}

type Usecase interface {
	Register(c ctx.Ctx, payload RegisterPayload) (*AuthResult, error)
	Login(c ctx.Ctx, payload LoginPayload) (*AuthResult, error)
	GetProfile(c ctx.Ctx, id primitive.ObjectID) (*Profile, error)
	GetPublicProfile(c ctx.Ctx, id primitive.ObjectID) (*User, error)
	UpdateProfile(c ctx.Ctx, id primitive.ObjectID, payload UpdatePayload) (*Profile, error)
	// InvalidateProfile drops cached profiles after their listings or orders changed
	InvalidateProfile(c ctx.Ctx, ids ...primitive.ObjectID)
	IsAdmin(c ctx.Ctx, id primitive.ObjectID) (bool, error)
}
