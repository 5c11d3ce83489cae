package services

import (
	loader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/config_loader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 暴露 Service 层的构造函数供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(
	ProvideUploadService,
	NewVideoQueryService,
	NewVideoCommandService,
)

// ProvideUploadService 从存储配置展开上传编排所需的参数。
func ProvideUploadService(accounts AccountRepo, videos VideoRepo, storage StorageClient, cfg *loader.StorageConfig, logger log.Logger) (*UploadService, error) {
	return NewUploadService(accounts, videos, storage, cfg.Folder, cfg.ChunkSizeBytes, logger)
}
