package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"autoradio/internal/export"
	"autoradio/internal/transcode"
	"autoradio/pkg/utils"
)

type ExportRequest struct {
	SourceDir string `json:"source_dir"`
	OutputDir string `json:"output_dir"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	SourceDir   string    `json:"source_dir"`
	OutputDir   string    `json:"output_dir"`
	Status      JobStatus `json:"status"`
	Progress    int       `json:"progress"`
	Total       int       `json:"total"`
	Succeeded   int       `json:"succeeded"`
	FailedItems []string  `json:"failed_items,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   string    `json:"created_at"`
	StartedAt   *string   `json:"started_at,omitempty"`
	CompletedAt *string   `json:"completed_at,omitempty"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.SourceDir == "" {
		http.Error(w, "source_dir is required", http.StatusBadRequest)
		return
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.config.OutputDir
	}

	job := s.jobMgr.CreateJob(req.SourceDir, outputDir, s.config)
	s.logger.Info("Created job %s for %s", job.ID, req.SourceDir)

	// Run the export in the background
	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobToResponse(job))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = s.jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id} or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Handle GET /api/jobs/{id}
	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.jobToResponse(job))
		return
	}

	// Handle POST /api/jobs/{id}/cancel
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if job.Cancel != nil {
			job.Cancel()
		}

		s.jobMgr.UpdateJob(jobID, func(j *Job) {
			j.Status = StatusCancelled
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

func (s *Server) processJob(job *Job) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store cancel function in job
	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusRunning
	})

	s.logger.Info("Starting job %s", job.ID)

	fail := func(err error) {
		s.logger.Error("Job %s failed: %v", job.ID, err)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
	}

	ffmpegPath, err := transcode.FindFFmpeg()
	if err != nil {
		fail(err)
		return
	}

	tempDir, err := utils.CreateTempDir()
	if err != nil {
		fail(err)
		return
	}
	defer utils.Cleanup(tempDir)

	exp := export.New(job.Config.Profile(), s.logger, transcode.New(ffmpegPath, s.logger), tempDir)
	exp.OnProgress = func(done, total int) {
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Progress = done
			j.Total = total
		})
	}

	report, err := exp.Run(ctx, job.SourceDir, job.OutputDir)
	if err != nil {
		if ctx.Err() != nil {
			// Already marked cancelled by the cancel handler.
			return
		}
		fail(err)
		return
	}

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCompleted
		j.Succeeded = report.Succeeded
		for _, f := range report.Failed {
			j.FailedItems = append(j.FailedItems, f.Name)
		}
	})

	s.logger.Info("Job %s completed: %d exported, %d failed", job.ID, report.Succeeded, len(report.Failed))
}

func (s *Server) jobToResponse(job *Job) *JobResponse {
	resp := &JobResponse{
		ID:          job.ID,
		SourceDir:   job.SourceDir,
		OutputDir:   job.OutputDir,
		Status:      job.Status,
		Progress:    job.Progress,
		Total:       job.Total,
		Succeeded:   job.Succeeded,
		FailedItems: job.FailedItems,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}

	return resp
}
