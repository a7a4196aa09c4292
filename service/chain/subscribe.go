package chain

import (
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/p2pmarket/base/ctx"
	"github.com/x-xyz/p2pmarket/base/goroutine"
	"github.com/x-xyz/p2pmarket/base/log"
	"github.com/x-xyz/p2pmarket/domain/wallet"
)

type subscription struct {
	sub  ethereum.Subscription
	done chan struct{}
	errc chan error
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.sub.Unsubscribe()
	})
}

func (s *subscription) Err() <-chan error {
	return s.errc
}

// Subscribe calls handler for every new log of event emitted by the contract.
// The handler runs on a single goroutine in log order.
func (p *provider) Subscribe(c bCtx.Ctx, event string, handler func(wallet.Event)) (wallet.Subscription, error) {
	ev, ok := p.abi.Events[event]
	if !ok {
		return nil, ErrUnknownEvent
	}

	logs := make(chan types.Log, 16)
	query := ethereum.FilterQuery{
		Addresses: []common.Address{p.address},
		Topics:    [][]common.Hash{{ev.ID}},
	}
	sub, err := p.backend.SubscribeFilterLogs(c, query, logs)
	if err != nil {
		c.WithFields(log.Fields{
			"event": event,
			"err":   err,
		}).Error("backend.SubscribeFilterLogs failed")
		return nil, upstream("subscribe "+event, err)
	}

	s := &subscription{
		sub:  sub,
		done: make(chan struct{}),
		errc: make(chan error, 1),
	}

	c = bCtx.WithFields(c, log.Fields{"event": event})
	goroutine.Go("chain.subscribe."+event, func() {
		for {
			select {
			case <-s.done:
				return
			case err := <-sub.Err():
				if err != nil {
					c.WithField("err", err).Error("subscription failed")
					s.errc <- upstream("subscription "+event, err)
				}
				return
			case l := <-logs:
				e, err := decodeLog(p.abi, &l)
				if err != nil {
					c.WithField("err", err).Warn("decodeLog failed")
					continue
				}
				handler(e)
			}
		}
	}, func(ev goroutine.PanicEvent) {
		select {
		case s.errc <- xerrors.Errorf("%s handler panicked: %v", event, ev.Panic):
		default:
		}
	})

	return s, nil
}
