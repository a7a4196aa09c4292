package marketclient

import (
	"errors"
	"math/big"

	"golang.org/x/xerrors"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/ethereum"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/base/txprogress"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/file"
	"github.com/x-xyz/p2pmarket/domain/listing"
	"github.com/x-xyz/p2pmarket/domain/order"
	"github.com/x-xyz/p2pmarket/domain/wallet"
	"github.com/x-xyz/p2pmarket/service/chain/contract"
)

type FlowsCfg struct {
	API API
	// Marketplace and Token are providers bound to the marketplace contract and the payment token
	Marketplace        wallet.Provider
	Token              wallet.Provider
	MarketplaceAddress domain.Address
}

// Flows runs the multi-step wallet operations and narrates them on a tracker.
// Each call must be given its own tracker.
type Flows struct {
	api             API
	marketplace     *contract.Marketplace
	token           *contract.Erc20
	marketplaceAddr domain.Address
}

func NewFlows(cfg FlowsCfg) *Flows {
	return &Flows{
		api:             cfg.API,
		marketplace:     contract.NewMarketplace(cfg.Marketplace),
		token:           contract.NewErc20(cfg.Token),
		marketplaceAddr: cfg.MarketplaceAddress,
	}
}

// ListingDraft is a listing before its images are uploaded and it is put on chain.
// Images and the chain fields of Payload are filled in by CreateListing.
type ListingDraft struct {
	Payload listing.CreatePayload
	Images  []file.Upload
}

func (f *Flows) CreateListing(c ctx.Ctx, tracker *txprogress.Tracker, draft ListingDraft) (*listing.Listing, error) {
	tracker.Start(txprogress.DefaultSteps(txprogress.KindListing)...)
	c = ctx.WithFields(c, log.Fields{"flow": txprogress.KindListing, "title": draft.Payload.Title})

	fail := func(msg string, err error) (*listing.Listing, error) {
		c.WithField("err", err).Error(msg)
		tracker.Fail(err.Error())
		return nil, err
	}

	if len(draft.Images) == 0 {
		return fail("no images", ErrNoImages)
	}
	price, err := ethereum.ToWei(draft.Payload.Price)
	if err != nil {
		return fail("ethereum.ToWei failed", xerrors.Errorf("price %q: %w", draft.Payload.Price, domain.ErrBadParamInput))
	}

	tracker.UpdateMessage("Approving marketplace for " + draft.Payload.Price)
	if _, err := f.token.Approve(c, f.marketplaceAddr, price); err != nil {
		return fail("token.Approve failed", err)
	}

	tracker.Advance("Uploading images")
	uris, err := f.api.UploadImages(c, draft.Images)
	if err != nil {
		return fail("api.UploadImages failed", err)
	}

	p := draft.Payload
	p.Images = uris

	tracker.Advance("Creating listing on chain")
	receipt, onChainId, err := f.marketplace.CreateListing(c, p.Title, p.Description, price, string(p.Category), uris[0])
	if err != nil {
		return fail("marketplace.CreateListing failed", err)
	}

	tracker.Advance("Saving listing")
	p.TransactionHash = receipt.TxHash.String()
	p.OnChainId = onChainId.String()
	p.ContractAddress = f.marketplaceAddr
	res, err := f.api.CreateListing(c, p)
	if err != nil {
		return fail("api.CreateListing failed", err)
	}

	tracker.Complete("Listing created")
	return res, nil
}

func (f *Flows) Purchase(c ctx.Ctx, tracker *txprogress.Tracker, listingId string, shipping order.ShippingAddress) (*order.Order, error) {
	tracker.Start(txprogress.DefaultSteps(txprogress.KindPurchase)...)
	c = ctx.WithFields(c, log.Fields{"flow": txprogress.KindPurchase, "listingId": listingId})

	fail := func(msg string, err error) (*order.Order, error) {
		c.WithField("err", err).Error(msg)
		tracker.Fail(err.Error())
		return nil, err
	}

	l, err := f.api.GetListing(c, listingId)
	if err != nil {
		return fail("api.GetListing failed", err)
	}
	id, ok := new(big.Int).SetString(l.OnChainId, 10)
	if !ok {
		return fail("invalid on-chain id", ErrNotOnChain)
	}

	tracker.UpdateMessage("Checking listing on chain")
	onChain, err := f.marketplace.GetListing(c, id)
	if err != nil {
		return fail("marketplace.GetListing failed", err)
	}
	if !onChain.Active {
		return fail("listing inactive", ErrListingInactive)
	}

	tracker.Advance("Paying " + ethereum.FromWei(onChain.Price))
	receipt, err := f.marketplace.PurchaseListing(c, id, onChain.Price)
	if errors.Is(err, contract.ErrMissingEvent) {
		tracker.Advance()
		return fail("purchase not observed", err)
	} else if err != nil {
		return fail("marketplace.PurchaseListing failed", err)
	}

	tracker.Advance("Ownership transferred")

	tracker.Advance("Saving order")
	res, err := f.api.CreateOrder(c, order.CreatePayload{
		ListingId:       listingId,
		TransactionHash: receipt.TxHash.String(),
		ShippingAddress: shipping,
	})
	if err != nil {
		return fail("api.CreateOrder failed", err)
	}

	tracker.Complete("Purchase complete")
	return res, nil
}
