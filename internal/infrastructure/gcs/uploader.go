// Package gcs 提供与 Google Cloud Storage 交互的基础设施封装。
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/api/option"

	loader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/config_loader"
	"github.com/bionicotaku/lingo-services-media/internal/services"
)

// StreamUploader 将字节流上传为 bucket 内的对象，返回公开访问 URL。
// 每次调用恰好产生一个结果：成功 URL 或错误；Close 成功前对象不可见。
type StreamUploader struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
	log           *log.Helper
}

// Option 定义可选配置。
type Option func(*StreamUploader)

// WithClient 直接注入 storage.Client（测试友好）。
func WithClient(client *storage.Client) Option {
	return func(u *StreamUploader) {
		if client != nil {
			u.client = client
		}
	}
}

// NewStreamUploader 创建 StreamUploader。凭据来自配置指定的 service account JSON，
// 否则走默认凭据链。
func NewStreamUploader(ctx context.Context, cfg *loader.StorageConfig, logger log.Logger, opts ...Option) (*StreamUploader, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("gcs uploader: storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, nil, errors.New("gcs uploader: bucket is required")
	}

	uploader := &StreamUploader{
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		log:           log.NewHelper(logger),
	}
	for _, opt := range opts {
		opt(uploader)
	}

	if uploader.client == nil {
		var clientOpts []option.ClientOption
		if cfg.CredentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("init gcs client: %w", err)
		}
		uploader.client = client
	}

	cleanup := func() {
		if err := uploader.client.Close(); err != nil {
			uploader.log.Warnf("close gcs client: %v", err)
		}
	}
	return uploader, cleanup, nil
}

// Upload 实现 services.StorageClient。
//
// src 被直接接到对象 Writer 上，GCS 客户端按 ChunkSize 分块缓冲传输，
// 不会把整个负载再物化一份到内存。Copy 或 Close 的首个错误即终态。
func (u *StreamUploader) Upload(ctx context.Context, src io.Reader, dst services.StorageDestination) (string, error) {
	if dst.ObjectName == "" {
		return "", errors.New("object name is required")
	}

	objectPath := dst.ObjectName
	if dst.Folder != "" {
		objectPath = dst.Folder + "/" + dst.ObjectName
	}

	w := u.client.Bucket(u.bucket).Object(objectPath).NewWriter(ctx)
	if dst.ChunkSize > 0 {
		w.ChunkSize = dst.ChunkSize
	}
	if dst.ContentType != "" {
		w.ContentType = dst.ContentType
	}
	if dst.ResourceType != "" {
		w.Metadata = map[string]string{"resource_type": dst.ResourceType}
	}

	written, err := io.Copy(w, src)
	if err != nil {
		_ = w.Close()
		u.log.WithContext(ctx).Errorf("upload stream failed: object=%s err=%v", objectPath, err)
		return "", fmt.Errorf("upload write %q: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		u.log.WithContext(ctx).Errorf("upload finalize failed: object=%s err=%v", objectPath, err)
		return "", fmt.Errorf("upload close %q: %w", objectPath, err)
	}

	u.log.WithContext(ctx).Infof("uploaded object: bucket=%s object=%s bytes=%d", u.bucket, objectPath, written)
	return u.ObjectURL(objectPath), nil
}

// ObjectURL 拼接对象的公开访问地址。
func (u *StreamUploader) ObjectURL(objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, u.bucket, objectPath)
}
