package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	baseabi "github.com/x-xyz/p2pmarket/base/abi"
	bCtx "github.com/x-xyz/p2pmarket/base/ctx"
	bEthereum "github.com/x-xyz/p2pmarket/base/ethereum"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain/order"
)

type receiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type paymentVerifier struct {
	reader      receiptReader
	marketplace common.Address
}

// NewPaymentVerifier maps a transaction receipt to an order payment status.
// The receipt must hold a ListingPurchased event emitted by marketplace.
func NewPaymentVerifier(reader receiptReader, marketplace common.Address) order.PaymentVerifier {
	return &paymentVerifier{
		reader:      reader,
		marketplace: marketplace,
	}
}

func (v *paymentVerifier) VerifyPayment(c bCtx.Ctx, s order.Settlement) (order.PaymentStatus, error) {
	c = bCtx.WithFields(c, log.Fields{"txHash": s.TxHash, "onChainId": s.OnChainId})

	r, err := v.reader.TransactionReceipt(c, common.HexToHash(s.TxHash.String()))
	if err == ethereum.NotFound {
		return order.PaymentProcessing, nil
	} else if err != nil {
		c.WithField("err", err).Error("TransactionReceipt failed")
		return "", upstream("verify payment", err)
	}
	if r.Status != types.ReceiptStatusSuccessful {
		return order.PaymentFailed, nil
	}

	listingId, ok := new(big.Int).SetString(s.OnChainId, 10)
	if !ok {
		c.Warn("listing has no on-chain id")
		return order.PaymentFailed, nil
	}
	price, err := bEthereum.ToWei(s.Price)
	if err != nil {
		c.WithField("err", err).Warn("ToWei failed")
		return order.PaymentFailed, nil
	}

	for _, l := range r.Logs {
		if l.Address != v.marketplace {
			continue
		}
		ev, err := decodeLog(baseabi.MarketplaceABI, l)
		if err != nil || ev.Name != baseabi.EventListingPurchased {
			continue
		}
		id, _ := ev.Fields["listingId"].(*big.Int)
		paid, _ := ev.Fields["price"].(*big.Int)
		if id == nil || paid == nil || id.Cmp(listingId) != 0 {
			continue
		}
		if paid.Cmp(price) < 0 {
			c.WithField("paid", paid.String()).Warn("purchase paid less than the listing price")
			return order.PaymentFailed, nil
		}
		return order.PaymentCompleted, nil
	}

	c.Warn("transaction carries no matching ListingPurchased event")
	return order.PaymentFailed, nil
}

type unconfiguredVerifier struct{}

// NewUnconfiguredVerifier leaves every payment processing, used when no rpc is configured
func NewUnconfiguredVerifier() order.PaymentVerifier {
	return unconfiguredVerifier{}
}

func (unconfiguredVerifier) VerifyPayment(c bCtx.Ctx, s order.Settlement) (order.PaymentStatus, error) {
	return order.PaymentProcessing, nil
}
