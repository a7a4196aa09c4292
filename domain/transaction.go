package domain

import "github.com/x-xyz/p2pmarket/base/ctx"

// Transactor runs fn so that every write it performs commits or aborts together
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}
