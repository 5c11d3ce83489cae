package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/controllers"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

const identityHeader = "x-md-global-user-id"

type videoRepoStub struct {
	record    *po.VideoWithOwner
	updatedAt time.Time
	deleted   []uuid.UUID
	deleteErr error
	updateErr error
	createErr error
}

func (s *videoRepoStub) Create(_ context.Context, video *po.Video) (*po.Video, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	stored := *video
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (s *videoRepoStub) BumpViewsAndGet(_ context.Context, videoID uuid.UUID) (*po.VideoWithOwner, error) {
	if s.record == nil || s.record.VideoID != videoID {
		return nil, services.ErrVideoNotFound
	}
	s.record.Views++
	snapshot := *s.record
	return &snapshot, nil
}

func (s *videoRepoStub) UpdateInfo(_ context.Context, _ services.UpdateVideoInfoInput) (time.Time, error) {
	if s.updateErr != nil {
		return time.Time{}, s.updateErr
	}
	if s.updatedAt.IsZero() {
		s.updatedAt = time.Now()
	}
	return s.updatedAt, nil
}

func (s *videoRepoStub) Delete(_ context.Context, videoID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, videoID)
	return nil
}

func (s *videoRepoStub) ListOrphaned(_ context.Context, _ time.Duration, _ int32) ([]po.Video, error) {
	return nil, nil
}

type accountRepoStub struct {
	account *po.Account
}

func (s *accountRepoStub) FindByID(_ context.Context, accountID uuid.UUID) (*po.Account, error) {
	if s.account == nil || s.account.AccountID != accountID {
		return nil, services.ErrAccountNotFound
	}
	return s.account, nil
}

func (s *accountRepoStub) AppendOwnedVideo(_ context.Context, _, _ uuid.UUID) error { return nil }

func (s *accountRepoStub) RemoveOwnedVideo(_ context.Context, _, _ uuid.UUID) error { return nil }

func (s *accountRepoStub) ListDanglingRefs(_ context.Context, _ int32) ([]services.DanglingRef, error) {
	return nil, nil
}

type storageStub struct {
	url string
}

func (s storageStub) Upload(_ context.Context, src io.Reader, _ services.StorageDestination) (string, error) {
	if _, err := io.Copy(io.Discard, src); err != nil {
		return "", err
	}
	return s.url, nil
}

func newHandler(t *testing.T, accounts services.AccountRepo, videos services.VideoRepo) *controllers.VideoHandler {
	t.Helper()
	logger := log.NewStdLogger(io.Discard)
	uploader, err := services.NewUploadService(accounts, videos, storageStub{url: "https://storage.example/bucket/Dev/object"}, "Dev", 60_000_000, logger)
	if err != nil {
		t.Fatalf("NewUploadService: %v", err)
	}
	queries := services.NewVideoQueryService(videos, logger)
	commands := services.NewVideoCommandService(videos, accounts, logger)
	base := controllers.NewBaseHandler(controllers.HandlerTimeouts{})
	return controllers.NewVideoHandler(base, uploader, queries, commands, logger)
}

type errorBody struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body
}

func multipartUpload(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if withFile {
		part, err := mw.CreateFormFile("video", "clip.mp4")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake video payload")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func TestVideoHandler_Upload(t *testing.T) {
	ownerID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: ownerID, Username: "casey"}}
	handler := newHandler(t, accounts, &videoRepoStub{})

	body, contentType := multipartUpload(t, map[string]string{
		"title":       "Title",
		"description": "Description",
		"category":    "education",
		"keywords":    `["golang"]`,
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(identityHeader, ownerID.String())
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Video struct {
				VideoID string `json:"video_id"`
				FileURL string `json:"file_url"`
			} `json:"video"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Message != "video has been uploaded" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data.Video.VideoID == "" || resp.Data.Video.FileURL == "" {
		t.Fatalf("incomplete video payload: %+v", resp.Data.Video)
	}
}

func TestVideoHandler_UploadMissingFile(t *testing.T) {
	ownerID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: ownerID}}
	handler := newHandler(t, accounts, &videoRepoStub{})

	body, contentType := multipartUpload(t, map[string]string{"keywords": "[]"}, false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(identityHeader, ownerID.String())
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got.Reason != services.ReasonFileRequired {
		t.Fatalf("unexpected reason: %s", got.Reason)
	}
}

func TestVideoHandler_UploadMissingIdentity(t *testing.T) {
	handler := newHandler(t, &accountRepoStub{}, &videoRepoStub{})

	body, contentType := multipartUpload(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got.Reason != services.ReasonAccountNotFound {
		t.Fatalf("unexpected reason: %s", got.Reason)
	}
}

func TestVideoHandler_Get(t *testing.T) {
	videoID := uuid.New()
	videos := &videoRepoStub{record: &po.VideoWithOwner{
		Video: po.Video{VideoID: videoID, Title: "Title"},
		Owner: po.OwnerProfile{AccountID: uuid.New(), Username: "casey"},
	}}
	handler := newHandler(t, &accountRepoStub{}, videos)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+videoID.String(), nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Video struct {
				Views int64 `json:"views"`
				Owner struct {
					Username string `json:"username"`
				} `json:"owner"`
			} `json:"video"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Video.Views != 1 {
		t.Fatalf("expected one recorded view, got %d", resp.Data.Video.Views)
	}
	if resp.Data.Video.Owner.Username != "casey" {
		t.Fatalf("owner projection missing: %+v", resp.Data.Video)
	}
}

func TestVideoHandler_GetInvalidID(t *testing.T) {
	handler := newHandler(t, &accountRepoStub{}, &videoRepoStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got.Reason != services.ReasonVideoIDInvalid {
		t.Fatalf("unexpected reason: %s", got.Reason)
	}
}

func TestVideoHandler_UpdateNotOwner(t *testing.T) {
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID}}
	handler := newHandler(t, accounts, &videoRepoStub{})

	payload := strings.NewReader(`{"title":"T","description":"D","category":"C","keywords":["k"]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/videos/"+uuid.NewString(), payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identityHeader, accountID.String())
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got.Reason != services.ReasonNotOwner {
		t.Fatalf("unexpected reason: %s", got.Reason)
	}
}

func TestVideoHandler_Update(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}}}
	handler := newHandler(t, accounts, &videoRepoStub{updatedAt: time.Now()})

	payload := strings.NewReader(`{"title":"T","description":"D","category":"C","keywords":["k"]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/videos/"+videoID.String(), payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identityHeader, accountID.String())
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Message != "video information has been updated" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Data) != 0 {
		t.Fatalf("update response must not carry a body entity: %s", resp.Data)
	}
}

func TestVideoHandler_Delete(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}}}
	videos := &videoRepoStub{}
	handler := newHandler(t, accounts, videos)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/videos/"+videoID.String(), nil)
	req.Header.Set(identityHeader, accountID.String())
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(videos.deleted) != 1 || videos.deleted[0] != videoID {
		t.Fatalf("record not deleted: %v", videos.deleted)
	}
}
