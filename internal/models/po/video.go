// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射数据库表结构，不直接暴露给上层业务逻辑。
package po

import (
	"time"

	"github.com/google/uuid"
)

// Video 表示 media.videos 表的数据库实体。
// 记录仅在远端对象上传成功后创建，因此 FileURL 一旦存在即非空且不可变。
type Video struct {
	VideoID     uuid.UUID `db:"video_id"`    // 主键（UUID v4）
	OwnerID     uuid.UUID `db:"owner_id"`    // 上传者账号 ID，创建后不可变
	Title       string    `db:"title"`       // 视频标题
	Description string    `db:"description"` // 视频描述
	Category    string    `db:"category"`    // 分类标签
	Keywords    []string  `db:"keywords"`    // 关键词（PostgreSQL text[]，可为空，保序）
	FileURL     string    `db:"file_url"`    // 远端对象公开 URL，创建时写入一次
	Views       int64     `db:"views"`       // 观看计数，单调不减
	CreatedAt   time.Time `db:"created_at"`  // 记录创建时间
	UpdatedAt   time.Time `db:"updated_at"`  // 最近更新时间
}

// OwnerProfile 是账号实体面向视频详情的公开字段投影。
type OwnerProfile struct {
	AccountID uuid.UUID `db:"account_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Username  string    `db:"username"`
}

// VideoWithOwner 聚合视频实体与其所有者的公开字段投影。
type VideoWithOwner struct {
	Video
	Owner OwnerProfile
}
