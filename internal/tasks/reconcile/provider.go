package reconcile

import (
	loader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/config_loader"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 暴露对账任务构造器供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(ProvideRunner)

// ProvideRunner 从配置展开对账任务的节奏参数。
func ProvideRunner(videos services.VideoRepo, accounts services.AccountRepo, cfg *loader.ReconcileConfig, logger log.Logger) (*Runner, error) {
	return NewRunner(RunnerParams{
		Videos:      videos,
		Accounts:    accounts,
		Interval:    cfg.Interval.AsDuration(),
		GracePeriod: cfg.GracePeriod.AsDuration(),
		Logger:      logger,
	})
}
