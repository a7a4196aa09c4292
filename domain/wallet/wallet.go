package wallet

import (
	"errors"
	"math/big"

	"github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/domain"
)

var (
	ErrTransactionFailed = errors.New("transaction reverted")
	ErrNotConnected      = errors.New("wallet not connected")
)

type ReceiptStatus string

const (
	ReceiptSucceeded ReceiptStatus = "succeeded"
	ReceiptFailed    ReceiptStatus = "failed"
)

// Event is one decoded contract log, indexed and non-indexed arguments share Fields
type Event struct {
	Name        string                 `json:"name"`
	TxHash      domain.TxHash          `json:"transactionHash"`
	BlockNumber uint64                 `json:"blockNumber"`
	Fields      map[string]interface{} `json:"fields"`
}

type Receipt struct {
	TxHash      domain.TxHash `json:"transactionHash"`
	BlockNumber uint64        `json:"blockNumber"`
	Status      ReceiptStatus `json:"status"`
	Events      []Event       `json:"events"`
}

func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptSucceeded
}

// FindEvent returns the first event with the given name
func (r *Receipt) FindEvent(name string) (Event, bool) {
	for _, e := range r.Events {
		if e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}

// Subscription delivers events until Unsubscribe is called or Err yields
type Subscription interface {
	Unsubscribe()
	Err() <-chan error
}

// Provider is bound to one contract and one signing account
type Provider interface {
	Connect(c ctx.Ctx) (domain.Address, error)
	Address() domain.Address
	Call(c ctx.Ctx, method string, args ...interface{}) ([]interface{}, error)
	// Send submits a transaction and waits for its receipt. A reverted transaction
	// returns the receipt together with ErrTransactionFailed.
	Send(c ctx.Ctx, method string, value *big.Int, args ...interface{}) (*Receipt, error)
	Subscribe(c ctx.Ctx, event string, handler func(Event)) (Subscription, error)
}
