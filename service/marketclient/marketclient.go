package marketclient

import (
	"errors"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/domain/user"
)

var (
	ErrNotOnChain      = errors.New("listing has no on-chain id")
	ErrListingInactive = errors.New("listing is not active on chain")
	ErrNoImages        = errors.New("at least one image is required")
)

// API is the marketplace REST api as seen by a wallet client
type API interface {
	Login(c ctx.Ctx, p user.LoginPayload) (*user.AuthResult, error)
	ListListings(c ctx.Ctx, p listing.ListParams) (*listing.Page, error)
	SearchListings(c ctx.Ctx, p listing.SearchParams) ([]*listing.Listing, error)
	GetListing(c ctx.Ctx, id string) (*listing.Listing, error)
	UploadImages(c ctx.Ctx, uploads []file.Upload) ([]string, error)
	CreateListing(c ctx.Ctx, p listing.CreatePayload) (*listing.Listing, error)
	CreateOrder(c ctx.Ctx, p order.CreatePayload) (*order.Order, error)
}
