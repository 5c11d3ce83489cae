package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accountRepo 是 services.AccountRepo 接口的实现，基于 pgxpool 访问 media.accounts。
// 只触碰归属列表相关的切片，账号的其余字段归认证服务所有。
type accountRepo struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewAccountRepo 构造 AccountRepo 接口的实现实例。
func NewAccountRepo(pool *pgxpool.Pool, logger log.Logger) services.AccountRepo {
	return &accountRepo{
		pool: pool,
		log:  log.NewHelper(logger),
	}
}

// FindByID 根据 account_id 查询账号切片。
func (r *accountRepo) FindByID(ctx context.Context, accountID uuid.UUID) (*po.Account, error) {
	query := `
		SELECT account_id, first_name, last_name, email, username, owned_videos, created_at
		FROM media.accounts
		WHERE account_id = $1
	`

	var a po.Account
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&a.AccountID, &a.FirstName, &a.LastName, &a.Email, &a.Username, &a.OwnedVideos, &a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrAccountNotFound
		}
		r.log.WithContext(ctx).Errorf("find account failed: account_id=%s err=%v", accountID, err)
		return nil, fmt.Errorf("query account by id: %w", err)
	}
	return &a, nil
}

// AppendOwnedVideo 把视频 id 以集合语义追加到归属列表。
// CASE 保证重复追加是幂等空操作；影响行数为零意味着账号不存在。
func (r *accountRepo) AppendOwnedVideo(ctx context.Context, accountID, videoID uuid.UUID) error {
	query := `
		UPDATE media.accounts
		SET owned_videos = CASE
			WHEN owned_videos @> ARRAY[$2]::uuid[] THEN owned_videos
			ELSE array_append(owned_videos, $2)
		END
		WHERE account_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, accountID, videoID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("append owned video failed: account_id=%s video_id=%s err=%v", accountID, videoID, err)
		return fmt.Errorf("append owned video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrAccountNotFound
	}

	r.log.WithContext(ctx).Infof("appended owned video: account_id=%s video_id=%s", accountID, videoID)
	return nil
}

// RemoveOwnedVideo 从归属列表移除视频 id；id 不在列表中时是空操作。
func (r *accountRepo) RemoveOwnedVideo(ctx context.Context, accountID, videoID uuid.UUID) error {
	query := `
		UPDATE media.accounts
		SET owned_videos = array_remove(owned_videos, $2)
		WHERE account_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, accountID, videoID)
	if err != nil {
		r.log.WithContext(ctx).Errorf("remove owned video failed: account_id=%s video_id=%s err=%v", accountID, videoID, err)
		return fmt.Errorf("remove owned video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrAccountNotFound
	}

	r.log.WithContext(ctx).Infof("removed owned video: account_id=%s video_id=%s", accountID, videoID)
	return nil
}

// ListDanglingRefs 列出归属列表中指向已不存在视频的条目，供对账任务清理。
func (r *accountRepo) ListDanglingRefs(ctx context.Context, limit int32) ([]services.DanglingRef, error) {
	query := `
		SELECT a.account_id, ref.video_id
		FROM media.accounts a
		CROSS JOIN LATERAL unnest(a.owned_videos) AS ref(video_id)
		WHERE NOT EXISTS (
			SELECT 1 FROM media.videos v WHERE v.video_id = ref.video_id
		)
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list dangling refs: %w", err)
	}
	defer rows.Close()

	var refs []services.DanglingRef
	for rows.Next() {
		var ref services.DanglingRef
		if err := rows.Scan(&ref.AccountID, &ref.VideoID); err != nil {
			return nil, fmt.Errorf("scan dangling ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dangling refs: %w", err)
	}
	return refs, nil
}
