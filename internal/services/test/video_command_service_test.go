package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
)

func TestVideoCommandService_UpdateVideo(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}}}
	videos := &videoRepoStub{updatedAt: time.Now()}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	updated, err := svc.UpdateVideo(context.Background(), services.UpdateVideoInput{
		VideoID:     videoID,
		AccountID:   accountID,
		Title:       "New Title",
		Description: "New Description",
		Category:    "music",
		Keywords:    []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("UpdateVideo: %v", err)
	}
	if updated.VideoID != videoID {
		t.Fatalf("unexpected video id: %s", updated.VideoID)
	}
	if !updated.UpdatedAt.Equal(videos.updatedAt) {
		t.Fatalf("unexpected updated_at: %s", updated.UpdatedAt)
	}
	if videos.updateInput.Title != "New Title" || len(videos.updateInput.Keywords) != 2 {
		t.Fatalf("repository received partial input: %+v", videos.updateInput)
	}
}

func TestVideoCommandService_UpdateNotOwner(t *testing.T) {
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID}}
	videos := &videoRepoStub{}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	_, err := svc.UpdateVideo(context.Background(), services.UpdateVideoInput{
		VideoID:   uuid.New(),
		AccountID: accountID,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if kerr := kerrors.FromError(err); kerr.Code != 403 || kerr.Reason != services.ReasonNotOwner {
		t.Fatalf("expected ownership error, got %v", err)
	}
	if videos.updateCalls != 0 {
		t.Fatal("non-owners must not reach the repository")
	}
}

func TestVideoCommandService_UpdateUnknownAccount(t *testing.T) {
	svc := services.NewVideoCommandService(&videoRepoStub{}, &accountRepoStub{}, newTestLogger())

	_, err := svc.UpdateVideo(context.Background(), services.UpdateVideoInput{
		VideoID:   uuid.New(),
		AccountID: uuid.New(),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if kerr := kerrors.FromError(err); kerr.Code != 401 || kerr.Reason != services.ReasonAccountNotFound {
		t.Fatalf("expected account error, got %v", err)
	}
}

func TestVideoCommandService_UpdateDanglingReference(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}}}
	videos := &videoRepoStub{updateErr: services.ErrVideoNotFound}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	_, err := svc.UpdateVideo(context.Background(), services.UpdateVideoInput{
		VideoID:   videoID,
		AccountID: accountID,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if kerr := kerrors.FromError(err); kerr.Code != 404 || kerr.Reason != services.ReasonVideoNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestVideoCommandService_DeleteVideo(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}}}
	videos := &videoRepoStub{}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	if err := svc.DeleteVideo(context.Background(), videoID, accountID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if len(videos.deleted) != 1 || videos.deleted[0] != videoID {
		t.Fatalf("record not deleted: %v", videos.deleted)
	}
	if len(accounts.removed) != 1 || accounts.removed[0] != videoID {
		t.Fatalf("reference not removed: %v", accounts.removed)
	}
}

func TestVideoCommandService_DeleteNotOwner(t *testing.T) {
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID}}
	videos := &videoRepoStub{}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	err := svc.DeleteVideo(context.Background(), uuid.New(), accountID)
	if err == nil {
		t.Fatal("expected error")
	}
	if kerr := kerrors.FromError(err); kerr.Code != 403 || kerr.Reason != services.ReasonNotOwner {
		t.Fatalf("expected ownership error, got %v", err)
	}
	if len(videos.deleted) != 0 {
		t.Fatal("non-owners must not delete records")
	}
}

func TestVideoCommandService_DeleteRemoveRefFailureIsNonFatal(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{
		account:   &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}},
		removeErr: context.DeadlineExceeded,
	}
	videos := &videoRepoStub{}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	// 第二步失败只留下悬挂引用，调用方仍得到成功。
	if err := svc.DeleteVideo(context.Background(), videoID, accountID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if len(videos.deleted) != 1 {
		t.Fatalf("record not deleted: %v", videos.deleted)
	}
}

func TestVideoCommandService_DeleteMissingVideo(t *testing.T) {
	videoID := uuid.New()
	accountID := uuid.New()
	accounts := &accountRepoStub{account: &po.Account{AccountID: accountID, OwnedVideos: []uuid.UUID{videoID}}}
	videos := &videoRepoStub{deleteErr: services.ErrVideoNotFound}
	svc := services.NewVideoCommandService(videos, accounts, newTestLogger())

	err := svc.DeleteVideo(context.Background(), videoID, accountID)
	if err == nil {
		t.Fatal("expected error")
	}
	if kerr := kerrors.FromError(err); kerr.Code != 404 || kerr.Reason != services.ReasonVideoNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
