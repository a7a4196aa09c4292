package cache

import (
	"github.com/x-xyz/p2pmarket/base/ctx"
)

type layered struct {
	layers []Service
}

// NewLayered chains caches from fastest to slowest. A hit in a slower layer
// back fills the faster ones.
func NewLayered(layers ...Service) Service {
	return &layered{
		layers: layers,
	}
}

func (l *layered) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	return getByFunc(c, l, key, container, getter)
}

func (l *layered) Get(c ctx.Ctx, key string, container interface{}) error {
	hitIdx := -1
	for idx, lyr := range l.layers {
		err := lyr.Get(c, key, container)
		if err == ErrNotFound {
			continue
		} else if err != nil {
			return err
		}
		hitIdx = idx
		break
	}

	if hitIdx == -1 {
		return ErrNotFound
	}

	// a failed back fill only costs a slower next read
	for idx := 0; idx < hitIdx; idx++ {
		if err := l.layers[idx].Set(c, key, container); err != nil {
			c.WithField("err", err).WithField("key", key).Warn("back fill failed")
		}
	}
	return nil
}

func (l *layered) Set(c ctx.Ctx, key string, value interface{}) error {
	for _, lyr := range l.layers {
		if err := lyr.Set(c, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (l *layered) Del(c ctx.Ctx, key string) error {
	for _, lyr := range l.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
