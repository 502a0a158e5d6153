package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"renoquote_backend/internal/analysis/repository"
	estimation "renoquote_backend/internal/estimation/service"
	"renoquote_backend/internal/events"
	quotesdomain "renoquote_backend/internal/quotes/domain"

	"github.com/google/uuid"
)

// RunJob processes a queued analysis job. It runs inside the asynq worker.
//
// Each photo is analyzed sequentially with a fixed per-photo delay, so a
// client polling the job sees progress move rather than jump 0 → 100. A
// failure marks the job failed and returns the quote to pending; the error
// is not propagated so the task is not retried against a failed job.
func (s *Service) RunJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load analysis job %s: %w", jobID, err)
	}
	if job.Status != repository.JobStatusPending {
		s.log.Warn("analysis job not pending, skipping", "job_id", jobID, "status", job.Status)
		return nil
	}

	if err := s.process(ctx, job); err != nil {
		s.log.Error("analysis job failed", "job_id", jobID, "quote_id", job.QuoteID, "error", err)
		s.fail(ctx, job, err)
		return nil
	}
	return nil
}

func (s *Service) process(ctx context.Context, job *repository.Job) error {
	photos, err := s.repo.ListPhotos(ctx, job.ID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateJobStatus(ctx, job.ID, repository.JobStatusRunning); err != nil {
		return err
	}

	analyses := make([]estimation.SourceAnalysis, 0, len(photos))
	total := len(photos)
	for i, photo := range photos {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.photoDelay):
		}

		description := ""
		if photo.Description != nil {
			description = *photo.Description
		}
		detected := estimation.DetectWorkTypes(description, photo.ExplicitCategories)
		if detected == nil {
			detected = []string{}
		}
		if err := s.repo.SetPhotoDetections(ctx, photo.ID, detected); err != nil {
			return err
		}
		analyses = append(analyses, estimation.SourceAnalysis{DetectedCategories: detected})

		processed := i + 1
		percent := processed * 100 / total
		if err := s.repo.UpdateProgress(ctx, job.ID, processed, percent); err != nil {
			return err
		}
		s.log.AnalysisProgress(job.ID.String(), processed, total, percent)
	}

	summary, err := s.quotes.Summary(ctx, job.QuoteID)
	if err != nil {
		return err
	}
	consolidated := s.consolidator.Consolidate(analyses, estimation.ConsolidateOptions{
		RoomType:    summary.RoomType,
		SurfaceArea: summary.SurfaceArea,
	})

	if _, err := s.quotes.GenerateFromConsolidated(ctx, job.QuoteID, nil, consolidated); err != nil {
		return err
	}
	if err := s.quotes.TransitionStatus(ctx, job.QuoteID, quotesdomain.StatusPending); err != nil {
		return err
	}

	result, err := json.Marshal(consolidated)
	if err != nil {
		return fmt.Errorf("encode analysis result: %w", err)
	}
	if err := s.repo.CompleteJob(ctx, job.ID, result); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.AnalysisCompleted{
		BaseEvent:      events.NewBaseEvent(),
		JobID:          job.ID,
		QuoteID:        job.QuoteID,
		WorkCategories: consolidated.WorkCategories,
		TotalEstimate:  consolidated.TotalEstimate,
	})
	return nil
}

// fail records the failure and returns the quote to pending so it stays
// editable. Uses a fresh context: the run context may already be canceled.
func (s *Service) fail(ctx context.Context, job *repository.Job, cause error) {
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
	}

	if err := s.repo.FailJob(ctx, job.ID, cause.Error()); err != nil {
		s.log.Error("failed to mark analysis job failed", "job_id", job.ID, "error", err)
	}
	if err := s.quotes.TransitionStatus(ctx, job.QuoteID, quotesdomain.StatusPending); err != nil {
		s.log.Error("failed to return quote to pending after analysis failure",
			"quote_id", job.QuoteID, "error", err)
	}

	s.bus.Publish(ctx, events.AnalysisFailed{
		BaseEvent: events.NewBaseEvent(),
		JobID:     job.ID,
		QuoteID:   job.QuoteID,
		Reason:    cause.Error(),
	})
}
