// Package scheduler provides the asynq task plumbing for background jobs.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskAnalysisRun processes one photo-analysis job end to end.
const TaskAnalysisRun = "analysis.run"

// AnalysisRunPayload identifies the job an analysis.run task processes.
type AnalysisRunPayload struct {
	JobID   string `json:"jobId"`
	QuoteID string `json:"quoteId"`
}

// NewAnalysisRunTask builds an analysis.run task.
func NewAnalysisRunTask(payload AnalysisRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalysisRun, data), nil
}

// ParseAnalysisRunPayload decodes an analysis.run task payload.
func ParseAnalysisRunPayload(task *asynq.Task) (AnalysisRunPayload, error) {
	var payload AnalysisRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AnalysisRunPayload{}, err
	}
	return payload, nil
}
