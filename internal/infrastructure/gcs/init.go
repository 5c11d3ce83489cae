package gcs

import (
	"github.com/google/wire"

	"github.com/bionicotaku/lingo-services-media/internal/services"
)

// ProviderSet 暴露 GCS 上传器构造器供 Wire 依赖注入使用。
var ProviderSet = wire.NewSet(
	NewStreamUploader,
	ProvideStorageClient,
)

// ProvideStorageClient 将具体实现绑定到服务层接口。
func ProvideStorageClient(u *StreamUploader) services.StorageClient {
	return u
}
