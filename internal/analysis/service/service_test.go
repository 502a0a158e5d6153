package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"renoquote_backend/internal/adapters/storage"
	"renoquote_backend/internal/analysis/repository"
	estimation "renoquote_backend/internal/estimation/service"

	"github.com/google/uuid"
)

// fakeStorage presigns deterministic URLs.
type fakeStorage struct {
	expiresAt time.Time
}

func (f *fakeStorage) GenerateUploadURL(_ context.Context, _, folder, fileName, _ string, _ int64) (*storage.PresignedURL, error) {
	key := folder + "/" + fileName
	return &storage.PresignedURL{URL: "https://store.test/put/" + key, FileKey: key, ExpiresAt: f.expiresAt}, nil
}

func (f *fakeStorage) GenerateDownloadURL(_ context.Context, _, fileKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://store.test/get/" + fileKey, FileKey: fileKey, ExpiresAt: f.expiresAt}, nil
}

func (f *fakeStorage) DeleteObject(context.Context, string, string) error { return nil }

func (f *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

func (f *fakeStorage) ValidatePhoto(string, int64) error { return nil }

func TestJobResponse_WithoutResult(t *testing.T) {
	job := &repository.Job{
		ID:          uuid.New(),
		QuoteID:     uuid.New(),
		Status:      repository.JobStatusRunning,
		TotalPhotos: 3,
		Progress:    33,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	resp, err := jobResponse(job)
	if err != nil {
		t.Fatalf("jobResponse: %v", err)
	}
	if resp.Result != nil {
		t.Errorf("expected nil result for a running job, got %+v", resp.Result)
	}
	if resp.Progress != 33 {
		t.Errorf("progress = %d, want 33", resp.Progress)
	}
}

func TestJobResponse_DecodesStoredResult(t *testing.T) {
	stored := estimation.ConsolidatedEstimate{
		WorkCategories: []string{"painting", "flooring"},
		TotalEstimate:  1234.5,
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	job := &repository.Job{
		ID:      uuid.New(),
		QuoteID: uuid.New(),
		Status:  repository.JobStatusCompleted,
		Result:  raw,
	}

	resp, err := jobResponse(job)
	if err != nil {
		t.Fatalf("jobResponse: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("expected decoded result")
	}
	if got := resp.Result.TotalEstimate; got != 1234.5 {
		t.Errorf("total estimate = %v, want 1234.5", got)
	}
	if len(resp.Result.WorkCategories) != 2 {
		t.Errorf("work categories = %v, want 2 entries", resp.Result.WorkCategories)
	}
}

func TestPresignPhotos_MapsPhotosWithDownloadURLs(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute)
	svc := &Service{storage: &fakeStorage{expiresAt: exp}, photoBucket: "quote-photos"}

	desc := "north wall"
	photos := []repository.Photo{
		{FileKey: "owner/quote/a.jpg", Description: &desc, ExplicitCategories: []string{"painting"}, DetectedCategories: []string{"painting"}, Position: 0},
		{FileKey: "owner/quote/b.jpg", ExplicitCategories: []string{}, DetectedCategories: []string{"flooring"}, Position: 1},
	}

	out, err := svc.presignPhotos(context.Background(), photos)
	if err != nil {
		t.Fatalf("presignPhotos: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(out))
	}
	for i, photo := range photos {
		if out[i].FileKey != photo.FileKey {
			t.Errorf("photo %d: file key = %q, want %q", i, out[i].FileKey, photo.FileKey)
		}
		if out[i].Position != photo.Position {
			t.Errorf("photo %d: position = %d, want %d", i, out[i].Position, photo.Position)
		}
		if want := "https://store.test/get/" + photo.FileKey; out[i].DownloadURL != want {
			t.Errorf("photo %d: download url = %q, want %q", i, out[i].DownloadURL, want)
		}
		if !out[i].ExpiresAt.Equal(exp) {
			t.Errorf("photo %d: unexpected expiry %v", i, out[i].ExpiresAt)
		}
	}
	if out[0].Description == nil || *out[0].Description != desc {
		t.Errorf("photo 0: description not carried over")
	}
}

func TestPhotoKeyInScope(t *testing.T) {
	ownerID := uuid.New()
	quoteID := uuid.New()

	if key := fmt.Sprintf("%s/%s/kitchen.jpg", ownerID, quoteID); !photoKeyInScope(ownerID, quoteID, key) {
		t.Errorf("expected %q to be in scope", key)
	}
	if key := fmt.Sprintf("%s/%s/kitchen.jpg", uuid.New(), quoteID); photoKeyInScope(ownerID, quoteID, key) {
		t.Errorf("expected foreign-owner key %q to be out of scope", key)
	}
	if key := fmt.Sprintf("%s/%s/kitchen.jpg", ownerID, uuid.New()); photoKeyInScope(ownerID, quoteID, key) {
		t.Errorf("expected foreign-quote key %q to be out of scope", key)
	}
	if photoKeyInScope(ownerID, quoteID, "kitchen.jpg") {
		t.Error("expected bare file name to be out of scope")
	}
}

func TestJobResponse_MalformedResult(t *testing.T) {
	job := &repository.Job{
		ID:     uuid.New(),
		Status: repository.JobStatusCompleted,
		Result: []byte("{not json"),
	}
	if _, err := jobResponse(job); err == nil {
		t.Fatal("expected error for malformed stored result")
	}
}
