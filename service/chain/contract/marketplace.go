package contract

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/p2pmarket/base/abi"
	bCtx "github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/wallet"
)

var ErrMissingEvent = errors.New("expected event not found in receipt")

type OnChainListing struct {
	Id     *big.Int
	Seller domain.Address
	Price  *big.Int
	Active bool
}

// Marketplace wraps a provider bound to the marketplace contract
type Marketplace struct {
	provider wallet.Provider
}

func NewMarketplace(provider wallet.Provider) *Marketplace {
	return &Marketplace{provider: provider}
}

func (m *Marketplace) GetListing(ctx bCtx.Ctx, id *big.Int) (*OnChainListing, error) {
	unpacked, err := m.provider.Call(ctx, baseabi.MarketplaceGetListing, id)
	if err != nil {
		return nil, err
	}
	if len(unpacked) != 4 {
		return nil, fmt.Errorf("getListing returned %d values", len(unpacked))
	}
	listingId, ok1 := unpacked[0].(*big.Int)
	seller, ok2 := unpacked[1].(common.Address)
	price, ok3 := unpacked[2].(*big.Int)
	active, ok4 := unpacked[3].(bool)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("getListing returned unexpected types %T %T %T %T", unpacked[0], unpacked[1], unpacked[2], unpacked[3])
	}
	return &OnChainListing{
		Id:     listingId,
		Seller: domain.Address(seller.Hex()),
		Price:  price,
		Active: active,
	}, nil
}

// CreateListing returns the contract's id of the new listing taken from ListingCreated
func (m *Marketplace) CreateListing(ctx bCtx.Ctx, title, description string, price *big.Int, category, image string) (*wallet.Receipt, *big.Int, error) {
	receipt, err := m.provider.Send(ctx, baseabi.MarketplaceCreateListing, nil, title, description, price, category, image)
	if err != nil {
		return receipt, nil, err
	}
	ev, ok := receipt.FindEvent(baseabi.EventListingCreated)
	if !ok {
		return receipt, nil, ErrMissingEvent
	}
	id, ok := ev.Fields["listingId"].(*big.Int)
	if !ok {
		return receipt, nil, ErrMissingEvent
	}
	return receipt, id, nil
}

// PurchaseListing pays price along with the call and waits for ListingPurchased
func (m *Marketplace) PurchaseListing(ctx bCtx.Ctx, id, price *big.Int) (*wallet.Receipt, error) {
	receipt, err := m.provider.Send(ctx, baseabi.MarketplacePurchaseListing, price, id)
	if err != nil {
		return receipt, err
	}
	if _, ok := receipt.FindEvent(baseabi.EventListingPurchased); !ok {
		return receipt, ErrMissingEvent
	}
	return receipt, nil
}
