// Package service orchestrates the asynchronous photo-analysis workflow:
// job creation, sequential photo processing with progress reporting, and
// populating the quote from the consolidated result.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"renoquote_backend/internal/adapters/storage"
	"renoquote_backend/internal/analysis/repository"
	"renoquote_backend/internal/analysis/transport"
	estimation "renoquote_backend/internal/estimation/service"
	"renoquote_backend/internal/events"
	quotesdomain "renoquote_backend/internal/quotes/domain"
	quotes "renoquote_backend/internal/quotes/service"
	"renoquote_backend/internal/scheduler"
	"renoquote_backend/platform/apperr"
	"renoquote_backend/platform/config"
	"renoquote_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service runs the photo-analysis workflow.
type Service struct {
	repo         *repository.Repository
	quotes       *quotes.Service
	consolidator *estimation.Consolidator
	enqueuer     scheduler.AnalysisEnqueuer
	storage      storage.PhotoStorage
	photoBucket  string
	bus          events.Bus
	log          *logger.Logger
	photoDelay   time.Duration
	maxPhotos    int
}

// New creates the analysis service. storageSvc may be nil when MinIO is
// not configured; upload URL generation is then unavailable.
func New(
	repo *repository.Repository,
	quotesSvc *quotes.Service,
	consolidator *estimation.Consolidator,
	enqueuer scheduler.AnalysisEnqueuer,
	storageSvc storage.PhotoStorage,
	photoBucket string,
	bus events.Bus,
	log *logger.Logger,
	cfg config.AnalysisConfig,
) *Service {
	return &Service{
		repo:         repo,
		quotes:       quotesSvc,
		consolidator: consolidator,
		enqueuer:     enqueuer,
		storage:      storageSvc,
		photoBucket:  photoBucket,
		bus:          bus,
		log:          log,
		photoDelay:   cfg.GetAnalysisPhotoDelay(),
		maxPhotos:    cfg.GetAnalysisMaxPhotos(),
	}
}

// GenerateUploadURLs issues presigned PUT URLs for a photo batch. The
// URLs are independent, so the batch is signed concurrently.
func (s *Service) GenerateUploadURLs(ctx context.Context, quoteID, ownerID uuid.UUID, req transport.UploadURLRequest) ([]transport.UploadURLResponse, error) {
	if s.storage == nil {
		return nil, apperr.Internal("photo storage is not configured")
	}
	summary, err := s.quotes.Summary(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if summary.OwnerID != ownerID {
		return nil, apperr.NotFound("quote not found")
	}

	folder := fmt.Sprintf("%s/%s", ownerID, quoteID)
	out := make([]transport.UploadURLResponse, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range req.Files {
		g.Go(func() error {
			presigned, err := s.storage.GenerateUploadURL(gctx, s.photoBucket, folder, file.FileName, file.ContentType, file.SizeBytes)
			if err != nil {
				return apperr.Wrap(apperr.KindValidation, apperr.CodeValidationFailed, err.Error(), err)
			}
			out[i] = transport.UploadURLResponse{
				FileName:  file.FileName,
				URL:       presigned.URL,
				FileKey:   presigned.FileKey,
				ExpiresAt: presigned.ExpiresAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePhotos removes uploaded photo objects before an analysis starts,
// e.g. when the client replaces a bad shot. Keys are only accepted under
// the caller's own quote folder.
func (s *Service) DeletePhotos(ctx context.Context, quoteID, ownerID uuid.UUID, req transport.DeletePhotosRequest) error {
	if s.storage == nil {
		return apperr.Internal("photo storage is not configured")
	}
	summary, err := s.quotes.Summary(ctx, quoteID)
	if err != nil {
		return err
	}
	if summary.OwnerID != ownerID {
		return apperr.NotFound("quote not found")
	}

	for _, key := range req.FileKeys {
		if !photoKeyInScope(ownerID, quoteID, key) {
			return apperr.Validation(fmt.Sprintf("file key %q does not belong to this quote", key))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range req.FileKeys {
		g.Go(func() error {
			return s.storage.DeleteObject(gctx, s.photoBucket, key)
		})
	}
	return g.Wait()
}

// photoKeyInScope reports whether fileKey sits under the quote's upload
// folder. Upload URLs prefix every key with "{owner}/{quote}/".
func photoKeyInScope(ownerID, quoteID uuid.UUID, fileKey string) bool {
	return strings.HasPrefix(fileKey, fmt.Sprintf("%s/%s/", ownerID, quoteID))
}

// ListJobPhotos returns a job's photos with presigned download URLs, so
// the client can render the batch next to the detection results.
func (s *Service) ListJobPhotos(ctx context.Context, jobID, quoteID, ownerID uuid.UUID) ([]transport.JobPhotoResponse, error) {
	if s.storage == nil {
		return nil, apperr.Internal("photo storage is not configured")
	}
	job, err := s.repo.GetJobForQuote(ctx, jobID, quoteID, ownerID)
	if err != nil {
		return nil, err
	}
	photos, err := s.repo.ListPhotos(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	return s.presignPhotos(ctx, photos)
}

func (s *Service) presignPhotos(ctx context.Context, photos []repository.Photo) ([]transport.JobPhotoResponse, error) {
	out := make([]transport.JobPhotoResponse, len(photos))

	g, gctx := errgroup.WithContext(ctx)
	for i, photo := range photos {
		g.Go(func() error {
			presigned, err := s.storage.GenerateDownloadURL(gctx, s.photoBucket, photo.FileKey)
			if err != nil {
				return fmt.Errorf("presign photo %s: %w", photo.FileKey, err)
			}
			out[i] = transport.JobPhotoResponse{
				FileKey:            photo.FileKey,
				Position:           photo.Position,
				Description:        photo.Description,
				ExplicitCategories: photo.ExplicitCategories,
				DetectedCategories: photo.DetectedCategories,
				DownloadURL:        presigned.URL,
				ExpiresAt:          presigned.ExpiresAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateJob starts an analysis run: the quote moves draft → analyzing,
// the job row is created pending and the work is enqueued.
func (s *Service) CreateJob(ctx context.Context, quoteID, ownerID uuid.UUID, req transport.CreateAnalysisRequest) (*transport.JobResponse, error) {
	if len(req.Photos) > s.maxPhotos {
		return nil, apperr.Validation(fmt.Sprintf("at most %d photos per analysis", s.maxPhotos))
	}

	summary, err := s.quotes.Summary(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if summary.OwnerID != ownerID {
		return nil, apperr.NotFound("quote not found")
	}

	now := time.Now()
	job := repository.Job{
		ID:          uuid.New(),
		QuoteID:     quoteID,
		OwnerID:     ownerID,
		Status:      repository.JobStatusPending,
		TotalPhotos: len(req.Photos),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	photos := make([]repository.Photo, len(req.Photos))
	for i, p := range req.Photos {
		explicit := p.ExplicitCategories
		if explicit == nil {
			explicit = []string{}
		}
		photos[i] = repository.Photo{
			ID:                 uuid.New(),
			JobID:              job.ID,
			FileKey:            p.FileKey,
			Description:        p.Description,
			ExplicitCategories: explicit,
			DetectedCategories: []string{},
			Position:           i,
		}
	}
	if err := s.repo.CreateJob(ctx, &job, photos); err != nil {
		return nil, err
	}

	if err := s.quotes.TransitionStatus(ctx, quoteID, quotesdomain.StatusAnalyzing); err != nil {
		return nil, err
	}

	if err := s.enqueuer.EnqueueAnalysisRun(ctx, scheduler.AnalysisRunPayload{
		JobID:   job.ID.String(),
		QuoteID: quoteID.String(),
	}); err != nil {
		// Undo the status change so the quote does not sit in analyzing
		// with no worker ever picking the job up.
		if terr := s.quotes.TransitionStatus(ctx, quoteID, quotesdomain.StatusPending); terr != nil {
			s.log.Error("failed to revert quote status after enqueue failure",
				"quote_id", quoteID, "error", terr)
		}
		if ferr := s.repo.FailJob(ctx, job.ID, "failed to enqueue analysis task"); ferr != nil {
			s.log.Error("failed to mark job failed after enqueue failure",
				"job_id", job.ID, "error", ferr)
		}
		return nil, fmt.Errorf("enqueue analysis run: %w", err)
	}

	return jobResponse(&job)
}

// GetJob returns a job's status and, once completed, its result.
func (s *Service) GetJob(ctx context.Context, jobID, quoteID, ownerID uuid.UUID) (*transport.JobResponse, error) {
	job, err := s.repo.GetJobForQuote(ctx, jobID, quoteID, ownerID)
	if err != nil {
		return nil, err
	}
	return jobResponse(job)
}

func jobResponse(job *repository.Job) (*transport.JobResponse, error) {
	resp := &transport.JobResponse{
		ID:              job.ID,
		QuoteID:         job.QuoteID,
		Status:          job.Status,
		TotalPhotos:     job.TotalPhotos,
		ProcessedPhotos: job.ProcessedPhotos,
		Progress:        job.Progress,
		FailureReason:   job.FailureReason,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if len(job.Result) > 0 {
		var result estimation.ConsolidatedEstimate
		if err := json.Unmarshal(job.Result, &result); err != nil {
			return nil, fmt.Errorf("decode analysis result: %w", err)
		}
		resp.Result = &result
	}
	return resp, nil
}
