// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，经 Views 层转换为 API 响应，隔离内部数据结构。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/google/uuid"
)

// VideoCreated 封装上传成功后返回给调用方的完整视频视图。
type VideoCreated struct {
	VideoID     uuid.UUID `json:"video_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Keywords    []string  `json:"keywords"`
	FileURL     string    `json:"file_url"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewVideoCreated 从领域实体构造上传结果 VO。
func NewVideoCreated(video *po.Video) *VideoCreated {
	if video == nil {
		return nil
	}
	return &VideoCreated{
		VideoID:     video.VideoID,
		OwnerID:     video.OwnerID,
		Title:       video.Title,
		Description: video.Description,
		Category:    video.Category,
		Keywords:    append([]string(nil), video.Keywords...), // 防御性拷贝
		FileURL:     video.FileURL,
		Views:       video.Views,
		CreatedAt:   video.CreatedAt,
	}
}

// VideoOwner 是视频详情中反规范化的所有者公开字段。
type VideoOwner struct {
	AccountID uuid.UUID `json:"account_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
}

// VideoDetail 封装单个视频的读取视图，含所有者投影与最新观看计数。
type VideoDetail struct {
	VideoID     uuid.UUID  `json:"video_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Keywords    []string   `json:"keywords"`
	FileURL     string     `json:"file_url"`
	Views       int64      `json:"views"`
	Owner       VideoOwner `json:"owner"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewVideoDetail 从聚合实体构造详情 VO。
func NewVideoDetail(record *po.VideoWithOwner) *VideoDetail {
	if record == nil {
		return nil
	}
	return &VideoDetail{
		VideoID:     record.VideoID,
		Title:       record.Title,
		Description: record.Description,
		Category:    record.Category,
		Keywords:    append([]string(nil), record.Keywords...),
		FileURL:     record.FileURL,
		Views:       record.Views,
		Owner: VideoOwner{
			AccountID: record.Owner.AccountID,
			FirstName: record.Owner.FirstName,
			LastName:  record.Owner.LastName,
			Email:     record.Owner.Email,
			Username:  record.Owner.Username,
		},
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// VideoUpdated 封装更新操作的结果。
type VideoUpdated struct {
	VideoID   uuid.UUID `json:"video_id"`
	UpdatedAt time.Time `json:"updated_at"`
}
