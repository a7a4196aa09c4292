package healthcheck

import (
	"github.com/x-xyz/p2pmarket/base/ctx"
)

const (
	StatusOk   = "ok"
	StatusDown = "down"
)

// Report holds one status per dependency
type Report struct {
	Mongo string `json:"mongo"`
	Redis string `json:"redis"`
}

func (r Report) Healthy() bool {
	return r.Mongo == StatusOk && r.Redis == StatusOk
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) Report
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
	PingCache(context ctx.Ctx) error
}
