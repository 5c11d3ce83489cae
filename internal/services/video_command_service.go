package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/vo"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// UpdateVideoInput 为更新用例的服务层输入。字段整体覆盖，不做局部合并。
type UpdateVideoInput struct {
	VideoID     uuid.UUID
	AccountID   uuid.UUID
	Title       string
	Description string
	Category    string
	// Keywords 这里是结构化数组；上传接口则是字符串编码，两种外部形态都保留。
	Keywords []string
}

// VideoCommandService 封装更新与删除用例。
type VideoCommandService struct {
	videos   VideoRepo
	accounts AccountRepo
	log      *log.Helper
}

// NewVideoCommandService 构造视频命令服务。
func NewVideoCommandService(videos VideoRepo, accounts AccountRepo, logger log.Logger) *VideoCommandService {
	return &VideoCommandService{
		videos:   videos,
		accounts: accounts,
		log:      log.NewHelper(logger),
	}
}

// UpdateVideo 整体覆盖视频的可变字段。
//
// 归属判定先于记录存在性：归属列表是授权的唯一依据，不在列表中的操作方
// 无论视频记录是否存在都得到权限错误。
func (s *VideoCommandService) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*vo.VideoUpdated, error) {
	account, err := s.accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.Owns(input.VideoID) {
		return nil, ErrNotOwner
	}

	updatedAt, err := s.videos.UpdateInfo(ctx, UpdateVideoInfoInput{
		VideoID:     input.VideoID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Keywords:    input.Keywords,
	})
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			// 归属列表里有 id 但记录不在：读侧必须容忍的悬挂引用，交给对账任务。
			return nil, ErrVideoNotFound
		}
		s.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", input.VideoID, err)
		return nil, errors.InternalServer(ReasonPersistFailed, "failed to update video").WithCause(fmt.Errorf("update video info: %w", err))
	}

	s.log.WithContext(ctx).Infof("video updated: video_id=%s account_id=%s", input.VideoID, input.AccountID)
	return &vo.VideoUpdated{VideoID: input.VideoID, UpdatedAt: updatedAt}, nil
}

// DeleteVideo 删除视频记录并移除所有者归属列表中的引用。
//
// 两步删除刻意保持先记录后引用的顺序且不做跨表事务：第二步失败只留下
// 悬挂引用（降级但非致命），由对账任务清理，调用方仍得到成功。
func (s *VideoCommandService) DeleteVideo(ctx context.Context, videoID, accountID uuid.UUID) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.Owns(videoID) {
		return ErrNotOwner
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return ErrVideoNotFound
		}
		s.log.WithContext(ctx).Errorf("delete video failed: video_id=%s err=%v", videoID, err)
		return errors.InternalServer(ReasonPersistFailed, "failed to delete video").WithCause(fmt.Errorf("delete video: %w", err))
	}

	if err := s.accounts.RemoveOwnedVideo(ctx, accountID, videoID); err != nil {
		s.log.WithContext(ctx).Warnf("remove owned video failed, dangling reference left for reconcile: account_id=%s video_id=%s err=%v",
			accountID, videoID, err)
		return nil
	}

	s.log.WithContext(ctx).Infof("video deleted: video_id=%s account_id=%s", videoID, accountID)
	return nil
}
