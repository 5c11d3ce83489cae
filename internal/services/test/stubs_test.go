package services_test

import (
	"context"
	"io"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

func newTestLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

type videoRepoStub struct {
	created   *po.Video
	createErr error

	record    *po.VideoWithOwner
	bumpErr   error
	bumpCalls int

	updatedAt   time.Time
	updateErr   error
	updateInput services.UpdateVideoInfoInput
	updateCalls int

	deleteErr error
	deleted   []uuid.UUID

	orphans []po.Video
	listErr error
}

func (s *videoRepoStub) Create(_ context.Context, video *po.Video) (*po.Video, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	now := time.Now()
	stored := *video
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.created = &stored
	return &stored, nil
}

func (s *videoRepoStub) BumpViewsAndGet(_ context.Context, videoID uuid.UUID) (*po.VideoWithOwner, error) {
	if s.bumpErr != nil {
		return nil, s.bumpErr
	}
	if s.record == nil || s.record.VideoID != videoID {
		return nil, services.ErrVideoNotFound
	}
	s.bumpCalls++
	s.record.Views++
	snapshot := *s.record
	return &snapshot, nil
}

func (s *videoRepoStub) UpdateInfo(_ context.Context, input services.UpdateVideoInfoInput) (time.Time, error) {
	s.updateCalls++
	s.updateInput = input
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
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.orphans, nil
}

type accountRepoStub struct {
	account *po.Account
	findErr error

	appendErr error
	appended  []uuid.UUID

	removeErr error
	removed   []uuid.UUID

	danglings []services.DanglingRef
	listErr   error
}

func (s *accountRepoStub) FindByID(_ context.Context, accountID uuid.UUID) (*po.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.account == nil || s.account.AccountID != accountID {
		return nil, services.ErrAccountNotFound
	}
	return s.account, nil
}

func (s *accountRepoStub) AppendOwnedVideo(_ context.Context, _ uuid.UUID, videoID uuid.UUID) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, videoID)
	return nil
}

func (s *accountRepoStub) RemoveOwnedVideo(_ context.Context, _ uuid.UUID, videoID uuid.UUID) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, videoID)
	return nil
}

func (s *accountRepoStub) ListDanglingRefs(_ context.Context, _ int32) ([]services.DanglingRef, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.danglings, nil
}

type storageStub struct {
	url   string
	err   error
	calls int
	dst   services.StorageDestination
	read  []byte
}

func (s *storageStub) Upload(_ context.Context, src io.Reader, dst services.StorageDestination) (string, error) {
	s.calls++
	s.dst = dst
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	s.read = data
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}
