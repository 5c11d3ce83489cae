package gcs_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/api/option"

	loader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/config_loader"
	gcs "github.com/bionicotaku/lingo-services-media/internal/infrastructure/gcs"
	"github.com/bionicotaku/lingo-services-media/internal/services"
)

func newFakeGCS(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	uploads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/upload/") {
			http.NotFound(w, r)
			return
		}
		uploads++
		if _, err := io.Copy(io.Discard, r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"name":%q,"bucket":"media-test"}`, r.URL.Query().Get("name"))
	}))
	t.Cleanup(server.Close)
	return server, &uploads
}

func newUploader(t *testing.T, endpoint string) (*gcs.StreamUploader, func()) {
	t.Helper()
	ctx := context.Background()
	client, err := storage.NewClient(ctx,
		option.WithEndpoint(endpoint),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("storage.NewClient: %v", err)
	}

	uploader, cleanup, err := gcs.NewStreamUploader(ctx, &loader.StorageConfig{
		Bucket:        "media-test",
		PublicBaseURL: "https://storage.googleapis.com/",
	}, log.NewStdLogger(io.Discard), gcs.WithClient(client))
	if err != nil {
		t.Fatalf("NewStreamUploader: %v", err)
	}
	return uploader, cleanup
}

func TestStreamUploader_Upload(t *testing.T) {
	server, uploads := newFakeGCS(t)
	uploader, cleanup := newUploader(t, server.URL)
	defer cleanup()

	url, err := uploader.Upload(context.Background(), strings.NewReader("payload"), services.StorageDestination{
		Folder:       "Dev",
		ObjectName:   "owner-token-123-clip.mp4",
		ContentType:  "video/mp4",
		ResourceType: "video",
		ChunkSize:    60_000_000,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if *uploads != 1 {
		t.Fatalf("expected one upload call, got %d", *uploads)
	}
	want := "https://storage.googleapis.com/media-test/Dev/owner-token-123-clip.mp4"
	if url != want {
		t.Fatalf("unexpected object url: %s", url)
	}
}

func TestStreamUploader_RequiresObjectName(t *testing.T) {
	server, _ := newFakeGCS(t)
	uploader, cleanup := newUploader(t, server.URL)
	defer cleanup()

	_, err := uploader.Upload(context.Background(), strings.NewReader("payload"), services.StorageDestination{})
	if err == nil {
		t.Fatal("expected error for empty object name")
	}
}

func TestNewStreamUploader_Validation(t *testing.T) {
	ctx := context.Background()
	logger := log.NewStdLogger(io.Discard)

	if _, _, err := gcs.NewStreamUploader(ctx, nil, logger); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, _, err := gcs.NewStreamUploader(ctx, &loader.StorageConfig{}, logger); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestStreamUploader_ObjectURLTrimsBase(t *testing.T) {
	server, _ := newFakeGCS(t)
	uploader, cleanup := newUploader(t, server.URL)
	defer cleanup()

	if got := uploader.ObjectURL("Dev/object"); got != "https://storage.googleapis.com/media-test/Dev/object" {
		t.Fatalf("unexpected url: %s", got)
	}
}
