package ens

import (
	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
)

// ENS resolves the primary name of a wallet for profile display
type ENS interface {
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}
