package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/p2pmarket/base/abi"
	bCtx "github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
	"github.com/x-xyz/p2pmarket/domain/wallet"
)

// Erc20 wraps a provider bound to the payment token
type Erc20 struct {
	provider wallet.Provider
}

func NewErc20(provider wallet.Provider) *Erc20 {
	return &Erc20{provider: provider}
}

func (e *Erc20) Approve(ctx bCtx.Ctx, spender domain.Address, amount *big.Int) (*wallet.Receipt, error) {
	return e.provider.Send(ctx, baseabi.ERC20Approve, nil, common.HexToAddress(string(spender)), amount)
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, owner, spender domain.Address) (*big.Int, error) {
	unpacked, err := e.provider.Call(ctx, baseabi.ERC20Allowance, common.HexToAddress(string(owner)), common.HexToAddress(string(spender)))
	if err != nil {
		return nil, err
	}
	if len(unpacked) != 1 {
		return nil, fmt.Errorf("allowance returned %d values", len(unpacked))
	}
	res, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("allowance returned %T", unpacked[0])
	}
	return res, nil
}
