package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/bionicotaku/lingo-services-media/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-services-media/internal/views"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// maxUploadBytes 限制单次上传请求体的大小，超出即拒绝而不是吞进内存。
const maxUploadBytes = 1 << 30

// VideoHandler 暴露视频资源的 HTTP 接口。
type VideoHandler struct {
	*BaseHandler

	uploader *services.UploadService
	queries  *services.VideoQueryService
	commands *services.VideoCommandService
	log      *log.Helper
}

// NewVideoHandler 构造视频 Handler。
func NewVideoHandler(
	base *BaseHandler,
	uploader *services.UploadService,
	queries *services.VideoQueryService,
	commands *services.VideoCommandService,
	logger log.Logger,
) *VideoHandler {
	return &VideoHandler{
		BaseHandler: base,
		uploader:    uploader,
		queries:     queries,
		commands:    commands,
		log:         log.NewHelper(log.With(logger, "module", "controllers/video")),
	}
}

// Routes 注册全部视频路由并返回可挂载的 mux。
func (h *VideoHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/videos", h.Upload)
	mux.HandleFunc("GET /api/v1/videos/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/videos/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/videos/{id}", h.Delete)
	return mux
}

// Upload 处理 multipart 视频上传，文件字段名为 video。
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.WithTimeout(r.Context(), HandlerTypeUpload)
	defer cancel()

	accountID, err := h.AccountID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, r, kerrors.BadRequest(services.ReasonRequestInvalid, "invalid multipart form").WithCause(err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("video")
	if err != nil {
		h.writeError(w, r, services.ErrFileRequired)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, r, kerrors.BadRequest(services.ReasonRequestInvalid, "failed to read upload payload").WithCause(err))
		return
	}

	created, err := h.uploader.UploadVideo(ctx, services.UploadVideoInput{
		OwnerID:      accountID,
		FileName:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		File:         payload,
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Category:     r.FormValue("category"),
		KeywordsJSON: r.FormValue("keywords"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, views.VideoUploaded(created))
}

// Get 返回单个视频详情，并把观看计数加一。
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.WithTimeout(r.Context(), HandlerTypeQuery)
	defer cancel()

	videoID, err := h.videoID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail, err := h.queries.GetVideo(ctx, videoID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views.VideoFetched(detail))
}

// Update 整体覆盖视频元信息，仅所有者可操作。
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.WithTimeout(r.Context(), HandlerTypeCommand)
	defer cancel()

	accountID, err := h.AccountID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	videoID, err := h.videoID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req dto.UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, kerrors.BadRequest(services.ReasonRequestInvalid, "invalid request body").WithCause(err))
		return
	}

	if _, err := h.commands.UpdateVideo(ctx, services.UpdateVideoInput{
		VideoID:     videoID,
		AccountID:   accountID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Keywords:    req.Keywords,
	}); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views.VideoInfoUpdated())
}

// Delete 删除视频并把引用从所有者账号中移除，仅所有者可操作。
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.WithTimeout(r.Context(), HandlerTypeCommand)
	defer cancel()

	accountID, err := h.AccountID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	videoID, err := h.videoID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.commands.DeleteVideo(ctx, videoID, accountID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VideoHandler) videoID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	videoID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, kerrors.BadRequest(services.ReasonVideoIDInvalid, "invalid video id")
	}
	return videoID, nil
}

func (h *VideoHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

func (h *VideoHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	khttp.DefaultErrorEncoder(w, r, err)
}
