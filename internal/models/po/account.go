package po

import (
	"time"

	"github.com/google/uuid"
)

// Account 表示 media.accounts 表中与视频归属相关的切片。
// 认证、密码等字段不属于本服务，不在此映射。
type Account struct {
	AccountID   uuid.UUID   `db:"account_id"`
	FirstName   string      `db:"first_name"`
	LastName    string      `db:"last_name"`
	Email       string      `db:"email"`
	Username    string      `db:"username"`
	OwnedVideos []uuid.UUID `db:"owned_videos"` // 应用层保证集合语义：同一 id 至多出现一次
	CreatedAt   time.Time   `db:"created_at"`
}

// Owns 判断账号的归属列表中是否包含指定视频。
// 该列表是增删改授权的唯一依据。
func (a *Account) Owns(videoID uuid.UUID) bool {
	if a == nil {
		return false
	}
	for _, id := range a.OwnedVideos {
		if id == videoID {
			return true
		}
	}
	return false
}

// Profile 返回账号的公开字段投影。
func (a *Account) Profile() OwnerProfile {
	if a == nil {
		return OwnerProfile{}
	}
	return OwnerProfile{
		AccountID: a.AccountID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Username:  a.Username,
	}
}
