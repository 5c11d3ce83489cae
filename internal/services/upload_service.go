package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// resourceTypeVideo 是存储后端的资源分类。
const resourceTypeVideo = "video"

// UploadVideoInput 为上传编排的服务层输入。File 是请求中已缓冲的完整负载。
type UploadVideoInput struct {
	OwnerID     uuid.UUID
	FileName    string
	ContentType string
	File        []byte
	Title       string
	Description string
	Category    string
	// KeywordsJSON 是字符串编码的关键词序列（JSON 数组），与更新接口的结构化数组
	// 刻意保持不同的外部形态。
	KeywordsJSON string
}

// UploadService 实现上传编排用例：
// 校验 → 账号确认 → 对象命名 → 流式上传 → 视频落库 → 归属列表追加。
type UploadService struct {
	accounts  AccountRepo
	videos    VideoRepo
	storage   StorageClient
	folder    string
	chunkSize int
	log       *log.Helper

	newObjectName func(uuid.UUID, string) string
}

// NewUploadService 创建 UploadService。
func NewUploadService(accounts AccountRepo, videos VideoRepo, storage StorageClient, folder string, chunkSize int, logger log.Logger) (*UploadService, error) {
	switch {
	case accounts == nil:
		return nil, errors.New("upload service: account repository is required")
	case videos == nil:
		return nil, errors.New("upload service: video repository is required")
	case storage == nil:
		return nil, errors.New("upload service: storage client is required")
	case folder == "":
		return nil, errors.New("upload service: storage folder is required")
	case chunkSize <= 0:
		return nil, errors.New("upload service: chunk size must be positive")
	}

	return &UploadService{
		accounts:      accounts,
		videos:        videos,
		storage:       storage,
		folder:        folder,
		chunkSize:     chunkSize,
		log:           log.NewHelper(logger),
		newObjectName: NewObjectName,
	}, nil
}

// UploadVideo 执行上传编排。
//
// 关键词在远端上传开始前解析，坏负载不消耗一次远端传输。
// 视频记录仅在上传成功后创建，归属列表追加严格跟在记录创建之后；
// 追加失败留下的孤儿记录由后台对账任务补偿删除。
func (s *UploadService) UploadVideo(ctx context.Context, input UploadVideoInput) (*vo.VideoCreated, error) {
	if len(input.File) == 0 {
		return nil, ErrFileRequired
	}

	keywords, err := parseKeywords(input.KeywordsJSON)
	if err != nil {
		return nil, ErrKeywordsInvalid
	}

	account, err := s.accounts.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	objectName := s.newObjectName(account.AccountID, input.FileName)

	// 有界生产者（已缓冲的负载）接管道喂给存储适配器；传输期间的内存
	// 由适配器的分块大小约束。
	pr, pw := io.Pipe()
	// 适配器出错时可能未读到 EOF 就返回；关闭读端让生产者的阻塞写立即失败退出。
	defer pr.Close()
	go func() {
		_, copyErr := io.Copy(pw, bytes.NewReader(input.File))
		pw.CloseWithError(copyErr)
	}()

	fileURL, err := s.storage.Upload(ctx, pr, StorageDestination{
		Folder:       s.folder,
		ObjectName:   objectName,
		ContentType:  input.ContentType,
		ResourceType: resourceTypeVideo,
		ChunkSize:    s.chunkSize,
	})
	if err != nil {
		s.log.WithContext(ctx).Errorf("upload video failed: owner_id=%s object=%s err=%v", account.AccountID, objectName, err)
		return nil, kerrors.InternalServer(ReasonUploadFailed, "error uploading video").WithCause(err)
	}

	video := &po.Video{
		VideoID:     uuid.New(),
		OwnerID:     account.AccountID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Keywords:    keywords,
		FileURL:     fileURL,
	}

	created, err := s.videos.Create(ctx, video)
	if err != nil {
		return nil, kerrors.InternalServer(ReasonPersistFailed, "failed to persist video").WithCause(err)
	}

	if err := s.accounts.AppendOwnedVideo(ctx, account.AccountID, created.VideoID); err != nil {
		// 视频记录已落库但归属追加失败：孤儿记录留给对账任务回收。
		s.log.WithContext(ctx).Errorf("append owned video failed, orphan left for reconcile: account_id=%s video_id=%s err=%v",
			account.AccountID, created.VideoID, err)
		return nil, kerrors.InternalServer(ReasonPersistFailed, "failed to register video ownership").WithCause(err)
	}

	s.log.WithContext(ctx).Infof("video uploaded: video_id=%s owner_id=%s object=%s", created.VideoID, account.AccountID, objectName)
	return vo.NewVideoCreated(created), nil
}

// parseKeywords 严格解析字符串编码的关键词序列。
func parseKeywords(raw string) ([]string, error) {
	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}
