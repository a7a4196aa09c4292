package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/log"
)

var (
	ErrUnknownEvent    = errors.New("unknown event")
	ErrChainIdMismatch = errors.New("chain id mismatch")
)

// Backend is the part of an rpc client used for calls, transactions, receipts and logs
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Dial connects to an rpc url, the returned client satisfies Backend
func Dial(ctx bCtx.Ctx, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": url,
		}).Error("failed to dial rpc")
		return nil, err
	}
	return client, nil
}
