// Package reconcile 实现两步写入的后台对账：上传与删除的两次持久化写入
// 不在同一事务里，失败残留（孤儿视频记录、悬挂归属引用）由本任务周期性补偿清理。
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
)

// sweepBatchSize 限制单轮处理的残留条目数，避免一次扫描长时间占用连接。
const sweepBatchSize = 100

// RunnerParams 注入构建 Runner 所需的依赖。
type RunnerParams struct {
	Videos   services.VideoRepo
	Accounts services.AccountRepo
	Interval time.Duration
	// GracePeriod 内新建的孤儿记录不处理，避免与进行中的上传竞争。
	GracePeriod time.Duration
	Logger      log.Logger
}

// Runner 周期性扫描并修复两类残留：
//   - 孤儿视频：记录已落库但归属列表追加失败 → 补偿删除记录
//   - 悬挂引用：记录已删除但归属列表移除失败 → 清掉列表条目
type Runner struct {
	videos   services.VideoRepo
	accounts services.AccountRepo
	interval time.Duration
	grace    time.Duration
	log      *log.Helper

	cancel context.CancelFunc
}

// NewRunner 构造对账 Runner。
func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Videos == nil {
		return nil, fmt.Errorf("reconcile: video repository is required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("reconcile: account repository is required")
	}
	if params.Interval <= 0 {
		return nil, fmt.Errorf("reconcile: interval must be positive")
	}
	if params.GracePeriod <= 0 {
		return nil, fmt.Errorf("reconcile: grace period must be positive")
	}

	return &Runner{
		videos:   params.Videos,
		accounts: params.Accounts,
		interval: params.Interval,
		grace:    params.GracePeriod,
		log:      log.NewHelper(params.Logger),
	}, nil
}

// Run 启动对账循环，直到 ctx 取消。单轮失败只记录日志，下一轮重试。
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.WithContext(ctx).Infof("reconcile runner started: interval=%s grace=%s", r.interval, r.grace)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("reconcile runner stopped")
			return nil
		case <-ticker.C:
			r.SweepOnce(ctx)
		}
	}
}

// SweepOnce 执行一轮补偿扫描。
func (r *Runner) SweepOnce(ctx context.Context) {
	r.sweepOrphanedVideos(ctx)
	r.sweepDanglingRefs(ctx)
}

func (r *Runner) sweepOrphanedVideos(ctx context.Context) {
	orphans, err := r.videos.ListOrphaned(ctx, r.grace, sweepBatchSize)
	if err != nil {
		r.log.WithContext(ctx).Errorf("list orphaned videos failed: %v", err)
		return
	}

	for _, video := range orphans {
		if err := r.videos.Delete(ctx, video.VideoID); err != nil {
			r.log.WithContext(ctx).Errorf("compensate orphaned video failed: video_id=%s err=%v", video.VideoID, err)
			continue
		}
		r.log.WithContext(ctx).Warnf("compensated orphaned video: video_id=%s owner_id=%s created_at=%s",
			video.VideoID, video.OwnerID, video.CreatedAt.Format(time.RFC3339))
	}
}

func (r *Runner) sweepDanglingRefs(ctx context.Context) {
	refs, err := r.accounts.ListDanglingRefs(ctx, sweepBatchSize)
	if err != nil {
		r.log.WithContext(ctx).Errorf("list dangling refs failed: %v", err)
		return
	}

	for _, ref := range refs {
		if err := r.accounts.RemoveOwnedVideo(ctx, ref.AccountID, ref.VideoID); err != nil {
			r.log.WithContext(ctx).Errorf("prune dangling ref failed: account_id=%s video_id=%s err=%v", ref.AccountID, ref.VideoID, err)
			continue
		}
		r.log.WithContext(ctx).Warnf("pruned dangling ref: account_id=%s video_id=%s", ref.AccountID, ref.VideoID)
	}
}

// Start 实现 transport.Server，使 Runner 可以作为 Kratos App 的一个组件运行。
func (r *Runner) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	return r.Run(runCtx)
}

// Stop 实现 transport.Server。
func (r *Runner) Stop(_ context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}
