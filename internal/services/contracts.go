package services

import (
	"context"
	"io"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/google/uuid"
)

// StorageDestination 描述一次流式上传的目标与传输参数。
type StorageDestination struct {
	Folder      string
	ObjectName  string
	ContentType string
	// ResourceType 是存储后端的资源分类，视频负载固定为 "video"。
	ResourceType string
	// ChunkSize 约束传输期间后端客户端的内存占用。
	ChunkSize int
}

// StorageClient 抽象远端对象存储的流式上传能力。
// 每次调用恰好解析一次：返回公开 URL 或错误。
type StorageClient interface {
	Upload(ctx context.Context, src io.Reader, dst StorageDestination) (string, error)
}

// UpdateVideoInfoInput 描述整体覆盖式更新的字段。
type UpdateVideoInfoInput struct {
	VideoID     uuid.UUID
	Title       string
	Description string
	Category    string
	Keywords    []string
}

// VideoRepo 定义视频记录存储的访问接口，由 Repository 层实现。
type VideoRepo interface {
	Create(ctx context.Context, video *po.Video) (*po.Video, error)
	// BumpViewsAndGet 以单条条件更新原子地递增观看计数并返回含所有者投影的记录；
	// 记录不存在时无副作用。
	BumpViewsAndGet(ctx context.Context, videoID uuid.UUID) (*po.VideoWithOwner, error)
	UpdateInfo(ctx context.Context, input UpdateVideoInfoInput) (time.Time, error)
	Delete(ctx context.Context, videoID uuid.UUID) error
	// ListOrphaned 返回超过宽限期、且不在其所有者归属列表中的视频记录。
	ListOrphaned(ctx context.Context, olderThan time.Duration, limit int32) ([]po.Video, error)
}

// DanglingRef 描述归属列表中指向已不存在视频的条目。
type DanglingRef struct {
	AccountID uuid.UUID
	VideoID   uuid.UUID
}

// AccountRepo 定义账号归属列表存储的访问接口，由 Repository 层实现。
type AccountRepo interface {
	FindByID(ctx context.Context, accountID uuid.UUID) (*po.Account, error)
	// AppendOwnedVideo 以集合语义追加：同一 id 至多出现一次。
	AppendOwnedVideo(ctx context.Context, accountID, videoID uuid.UUID) error
	RemoveOwnedVideo(ctx context.Context, accountID, videoID uuid.UUID) error
	ListDanglingRefs(ctx context.Context, limit int32) ([]DanglingRef, error)
}
