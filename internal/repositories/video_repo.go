// Package repositories 提供数据访问层实现，负责与持久化存储交互。
// 该层实现 Service 层定义的 Repository 接口，隔离底层存储细节。
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// videoRepo 是 services.VideoRepo 接口的实现，基于 pgxpool 访问 media.videos。
type videoRepo struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewVideoRepo 构造 VideoRepo 接口的实现实例。
func NewVideoRepo(pool *pgxpool.Pool, logger log.Logger) services.VideoRepo {
	return &videoRepo{
		pool: pool,
		log:  log.NewHelper(logger),
	}
}

// Create 创建新视频记录。
// 使用 INSERT ... RETURNING 获取数据库生成的计数与时间戳。
func (r *videoRepo) Create(ctx context.Context, v *po.Video) (*po.Video, error) {
	query := `
		INSERT INTO media.videos (
			video_id, owner_id, title, description, category, keywords, file_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING views, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		v.VideoID,
		v.OwnerID,
		v.Title,
		v.Description,
		v.Category,
		v.Keywords,
		v.FileURL,
	).Scan(&v.Views, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		r.log.WithContext(ctx).Errorf("create video failed: video_id=%s err=%v", v.VideoID, err)
		return nil, fmt.Errorf("insert video: %w", err)
	}

	r.log.WithContext(ctx).Infof("created video: video_id=%s", v.VideoID)
	return v, nil
}

// BumpViewsAndGet 原子地递增观看计数并返回含所有者投影的记录。
// 条件更新保证对不存在的记录没有任何副作用。
// 内联 JOIN 假定所有者行一定存在：账号删除不在本服务范围内，
// owned_videos 的悬挂引用也只出现在账号侧而非视频侧。
func (r *videoRepo) BumpViewsAndGet(ctx context.Context, videoID uuid.UUID) (*po.VideoWithOwner, error) {
	query := `
		WITH bumped AS (
			UPDATE media.videos
			SET views = views + 1
			WHERE video_id = $1
			RETURNING video_id, owner_id, title, description, category,
			          keywords, file_url, views, created_at, updated_at
		)
		SELECT
			b.video_id, b.owner_id, b.title, b.description, b.category,
			b.keywords, b.file_url, b.views, b.created_at, b.updated_at,
			a.account_id, a.first_name, a.last_name, a.email, a.username
		FROM bumped b
		JOIN media.accounts a ON a.account_id = b.owner_id
	`

	var rec po.VideoWithOwner
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&rec.VideoID, &rec.OwnerID, &rec.Title, &rec.Description, &rec.Category,
		&rec.Keywords, &rec.FileURL, &rec.Views, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Owner.AccountID, &rec.Owner.FirstName, &rec.Owner.LastName, &rec.Owner.Email, &rec.Owner.Username,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrVideoNotFound
		}
		r.log.WithContext(ctx).Errorf("bump views failed: video_id=%s err=%v", videoID, err)
		return nil, fmt.Errorf("bump views and get: %w", err)
	}
	return &rec, nil
}

// UpdateInfo 整体覆盖视频的可变字段。
func (r *videoRepo) UpdateInfo(ctx context.Context, input services.UpdateVideoInfoInput) (time.Time, error) {
	query := `
		UPDATE media.videos
		SET
			title = $2,
			description = $3,
			category = $4,
			keywords = $5,
			updated_at = now()
		WHERE video_id = $1
		RETURNING updated_at
	`

	var updatedAt time.Time
	err := r.pool.QueryRow(ctx, query,
		input.VideoID,
		input.Title,
		input.Description,
		input.Category,
		input.Keywords,
	).Scan(&updatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, services.ErrVideoNotFound
		}
		r.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", input.VideoID, err)
		return time.Time{}, fmt.Errorf("update video: %w", err)
	}

	r.log.WithContext(ctx).Infof("updated video: video_id=%s", input.VideoID)
	return updatedAt, nil
}

// Delete 删除视频记录。
func (r *videoRepo) Delete(ctx context.Context, videoID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media.videos WHERE video_id = $1`, videoID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("delete video failed: video_id=%s err=%v", videoID, err)
		return fmt.Errorf("delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrVideoNotFound
	}

	r.log.WithContext(ctx).Infof("deleted video: video_id=%s", videoID)
	return nil
}

// ListOrphaned 返回超过宽限期、且不在其所有者归属列表中的视频记录。
// 对账任务用它找出“记录已落库但归属追加失败”的残留。
func (r *videoRepo) ListOrphaned(ctx context.Context, olderThan time.Duration, limit int32) ([]po.Video, error) {
	query := `
		SELECT v.video_id, v.owner_id, v.title, v.description, v.category,
		       v.keywords, v.file_url, v.views, v.created_at, v.updated_at
		FROM media.videos v
		JOIN media.accounts a ON a.account_id = v.owner_id
		WHERE NOT (a.owned_videos @> ARRAY[v.video_id])
		  AND v.created_at < $1
		ORDER BY v.created_at
		LIMIT $2
	`

	cutoff := time.Now().Add(-olderThan)
	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list orphaned videos: %w", err)
	}
	defer rows.Close()

	var videos []po.Video
	for rows.Next() {
		var v po.Video
		if err := rows.Scan(
			&v.VideoID, &v.OwnerID, &v.Title, &v.Description, &v.Category,
			&v.Keywords, &v.FileURL, &v.Views, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orphaned video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orphaned videos: %w", err)
	}
	return videos, nil
}
