package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/p2pmarket/base/log"
)

type PanicEvent struct {
	Name  string
	Panic interface{}
	Stack []byte
}

// Go runs f on its own goroutine. A panic is recovered, logged with its stack,
// passed to every onPanic hook and then sent on the returned channel. The
// channel is closed without a value when f returns normally.
func Go(name string, f func(), onPanic ...func(PanicEvent)) <-chan PanicEvent {
	res := make(chan PanicEvent, 1)

	go func() {
		defer func() {
			p := recover()
			if p == nil {
				close(res)
				return
			}
			ev := PanicEvent{Name: name, Panic: p, Stack: debug.Stack()}
			log.Log().WithFields(log.Fields{
				"goroutine": name,
				"err":       p,
				"stack":     string(ev.Stack),
			}).Error("panic")
			for _, fn := range onPanic {
				fn(ev)
			}
			res <- ev
		}()

		f()
	}()

	return res
}
