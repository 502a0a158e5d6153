// Package transport defines the HTTP DTOs for the analysis module.
package transport

import (
	"time"

	estimation "renoquote_backend/internal/estimation/service"

	"github.com/google/uuid"
)

// PhotoInput references one uploaded photo for analysis. Explicit
// categories skip detection for that photo.
type PhotoInput struct {
	FileKey            string   `json:"fileKey" validate:"required"`
	Description        *string  `json:"description"`
	ExplicitCategories []string `json:"explicitCategories"`
}

// CreateAnalysisRequest starts a photo-analysis job on a quote.
type CreateAnalysisRequest struct {
	Photos []PhotoInput `json:"photos" validate:"required,min=1,dive"`
}

// UploadFileSpec describes one photo the client wants to upload.
type UploadFileSpec struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"gt=0"`
}

// UploadURLRequest asks for presigned upload URLs for a photo batch.
type UploadURLRequest struct {
	Files []UploadFileSpec `json:"files" validate:"required,min=1,dive"`
}

// UploadURLResponse is one presigned upload slot.
type UploadURLResponse struct {
	FileName  string    `json:"fileName"`
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DeletePhotosRequest removes uploaded photo objects the client no longer
// wants analyzed.
type DeletePhotosRequest struct {
	FileKeys []string `json:"fileKeys" validate:"required,min=1,dive,required"`
}

// JobPhotoResponse is one photo of a job with a presigned download URL.
type JobPhotoResponse struct {
	FileKey            string    `json:"fileKey"`
	Position           int       `json:"position"`
	Description        *string   `json:"description"`
	ExplicitCategories []string  `json:"explicitCategories"`
	DetectedCategories []string  `json:"detectedCategories"`
	DownloadURL        string    `json:"downloadUrl"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

// JobResponse is the job status view polled by the client.
type JobResponse struct {
	ID              uuid.UUID                        `json:"id"`
	QuoteID         uuid.UUID                        `json:"quoteId"`
	Status          string                           `json:"status"`
	TotalPhotos     int                              `json:"totalPhotos"`
	ProcessedPhotos int                              `json:"processedPhotos"`
	Progress        int                              `json:"progress"`
	Result          *estimation.ConsolidatedEstimate `json:"result,omitempty"`
	FailureReason   *string                          `json:"failureReason,omitempty"`
	CreatedAt       time.Time                        `json:"createdAt"`
	UpdatedAt       time.Time                        `json:"updatedAt"`
}
