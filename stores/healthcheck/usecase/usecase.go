package usecase

import (
	"github.com/x-xyz/p2pmarket/base/ctx"
	hcdomain "github.com/x-xyz/p2pmarket/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) hcdomain.Report {
	return hcdomain.Report{
		Mongo: status(im.repo.PingDB(context)),
		Redis: status(im.repo.PingCache(context)),
	}
}

func status(err error) string {
	if err != nil {
		return hcdomain.StatusDown
	}
	return hcdomain.StatusOk
}
