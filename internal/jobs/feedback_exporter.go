package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"prepcoach/coach/internal/feedback"
)

// FeedbackExporterJob periodically writes positively rated exchanges to
// JSONL files for later fine-tuning runs.
type FeedbackExporterJob struct {
	feedbackManager *feedback.FeedbackManager
	config          *ExporterConfig
	cron            *cron.Cron
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

func NewFeedbackExporterJob(feedbackManager *feedback.FeedbackManager, config *ExporterConfig) *FeedbackExporterJob {
	return &FeedbackExporterJob{
		feedbackManager: feedbackManager,
		config:          config,
		cron:            cron.New(),
	}
}

// Start begins the scheduled export job
func (fej *FeedbackExporterJob) Start() error {
	if !fej.config.ExportEnabled {
		log.Println("Feedback export is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting feedback exporter with schedule: %s", fej.config.Schedule)

	_, err := fej.cron.AddFunc(fej.config.Schedule, func() {
		if err := fej.RunExport(); err != nil {
			log.Printf("Export job failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	fej.cron.Start()
	log.Println("Feedback exporter started successfully")

	return nil
}

// Stop stops the scheduled export job
func (fej *FeedbackExporterJob) Stop() {
	if fej.cron != nil {
		fej.cron.Stop()
		log.Println("Feedback exporter stopped")
	}
}

// RunExport performs a single export run
func (fej *FeedbackExporterJob) RunExport() error {
	records, err := fej.feedbackManager.GetUnexportedFeedback(0) // no limit
	if err != nil {
		return fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	if len(records) == 0 {
		log.Println("No unexported feedback found")
		return nil
	}

	jsonlData, err := fej.feedbackManager.ExportToJSONL(records)
	if err != nil {
		return fmt.Errorf("failed to export to JSONL: %w", err)
	}

	positiveCount := 0
	for _, record := range records {
		if record.IsPositive {
			positiveCount++
		}
	}

	feedbackIDs := make([]uint, len(records))
	for i, record := range records {
		feedbackIDs[i] = record.ID
	}

	if positiveCount == 0 {
		log.Println("No positive feedback to export, skipping file creation")
		// still mark as exported so negative records are not reprocessed
		return fej.feedbackManager.MarkAsExported(feedbackIDs)
	}

	if err := os.MkdirAll(fej.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("feedback_export_%s.jsonl", timestamp)
	path := filepath.Join(fej.config.ExportDir, filename)

	if err := os.WriteFile(path, jsonlData, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	log.Printf("Exported %d positive exchanges to %s", positiveCount, path)

	return fej.feedbackManager.MarkAsExported(feedbackIDs)
}
