// Package controllers 实现 HTTP 接入层，将请求解析后委派给 Service 层。
package controllers

import (
	loader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/config_loader"

	"github.com/google/wire"
)

// ProviderSet 聚合 controllers 层的依赖注入提供者。
var ProviderSet = wire.NewSet(
	ProvideHandlerTimeouts,
	NewBaseHandler,
	NewVideoHandler,
)

// ProvideHandlerTimeouts 从服务端配置展开 Handler 超时策略。
func ProvideHandlerTimeouts(cfg *loader.ServerConfig) HandlerTimeouts {
	if cfg == nil {
		return HandlerTimeouts{}
	}
	return HandlerTimeouts{
		Default: cfg.HTTP.Timeout.AsDuration(),
		Command: cfg.HTTP.CommandTimeout.AsDuration(),
		Query:   cfg.HTTP.QueryTimeout.AsDuration(),
		Upload:  cfg.HTTP.UploadTimeout.AsDuration(),
	}
}
