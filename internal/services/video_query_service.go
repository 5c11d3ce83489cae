package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/vo"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// VideoQueryService 封装视频只读用例。
type VideoQueryService struct {
	videos VideoRepo
	log    *log.Helper
}

// NewVideoQueryService 构造视频查询服务。
func NewVideoQueryService(videos VideoRepo, logger log.Logger) *VideoQueryService {
	return &VideoQueryService{
		videos: videos,
		log:    log.NewHelper(logger),
	}
}

// GetVideo 查询视频详情并计入一次观看。
// 计数递增以 increment-if-exists 的单条条件更新实现：记录不存在时无任何副作用。
func (s *VideoQueryService) GetVideo(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error) {
	record, err := s.videos.BumpViewsAndGet(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		if errors.Is(err, context.DeadlineExceeded) {
			s.log.WithContext(ctx).Warnf("get video timeout: video_id=%s", videoID)
			return nil, errors.GatewayTimeout(ReasonQueryTimeout, "query timeout")
		}
		s.log.WithContext(ctx).Errorf("get video failed: video_id=%s err=%v", videoID, err)
		return nil, errors.InternalServer(ReasonPersistFailed, "failed to query video").WithCause(fmt.Errorf("bump views and get: %w", err))
	}

	s.log.WithContext(ctx).Debugf("GetVideo: video_id=%s views=%d", record.VideoID, record.Views)
	return vo.NewVideoDetail(record), nil
}
