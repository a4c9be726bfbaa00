// Package worker runs the asynchronous CV extraction pipeline: it
// consumes cv.uploaded events, decodes the stored file, extracts a
// structured profile, and persists it.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/cvparser"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/decoder"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage/models"
	"github.com/rs/zerolog"
)

// ExtractionWorker consumes cv.uploaded events and turns stored CV files
// into student profiles.
type ExtractionWorker struct {
	store         *storage.Storage
	extractor     *cvparser.Extractor
	logger        zerolog.Logger
	retryInterval time.Duration
}

// NewExtractionWorker wires the worker to its storage backends.
func NewExtractionWorker(store *storage.Storage, cfg *config.RabbitMQConfig, log zerolog.Logger) *ExtractionWorker {
	return &ExtractionWorker{
		store:         store,
		extractor:     cvparser.NewExtractor(cvparser.WithLogger(log)),
		logger:        log,
		retryInterval: config.GetDuration(cfg.RetryInterval, 5*time.Second),
	}
}

// Run consumes events until the context is cancelled, reconnecting after
// consumer failures.
func (w *ExtractionWorker) Run(ctx context.Context) error {
	if w.store.RabbitMQ == nil {
		return fmt.Errorf("rabbitmq is not configured, extraction worker cannot start")
	}

	for {
		err := w.store.RabbitMQ.ConsumeCVUploaded(ctx, w.processEvent)
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.Error().Err(err).Dur("retry_in", w.retryInterval).
			Msg("cv extraction consumer stopped, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.retryInterval):
		}
	}
}

// processEvent runs one submission through decode, extract, and persist.
// Failures mark the submission failed and are returned so the delivery
// is nacked.
func (w *ExtractionWorker) processEvent(ctx context.Context, event storage.CVUploadedEvent) error {
	log := w.logger.With().
		Str("submission", event.SubmissionUUID).
		Str("student", event.StudentID).
		Logger()
	log.Info().Str("object_key", event.ObjectKey).Msg("processing uploaded cv")

	if err := w.markStatus(ctx, event.SubmissionUUID, models.SubmissionStatusProcessing, ""); err != nil {
		return err
	}

	profile, err := w.extractProfile(ctx, event)
	if err != nil {
		if markErr := w.markStatus(ctx, event.SubmissionUUID, models.SubmissionStatusFailed, err.Error()); markErr != nil {
			log.Error().Err(markErr).Msg("marking submission failed")
		}
		return err
	}

	if err := w.persistProfile(ctx, event.StudentID, profile); err != nil {
		if markErr := w.markStatus(ctx, event.SubmissionUUID, models.SubmissionStatusFailed, err.Error()); markErr != nil {
			log.Error().Err(markErr).Msg("marking submission failed")
		}
		return err
	}

	if err := w.markStatus(ctx, event.SubmissionUUID, models.SubmissionStatusCompleted, ""); err != nil {
		return err
	}

	if warnings := cvparser.Validate(profile); len(warnings) > 0 {
		log.Info().Strs("warnings", warnings).Msg("cv extracted with gaps")
	} else {
		log.Info().Msg("cv extracted")
	}
	return nil
}

func (w *ExtractionWorker) extractProfile(ctx context.Context, event storage.CVUploadedEvent) (*cvparser.CandidateProfile, error) {
	if w.store.MinIO == nil {
		return nil, fmt.Errorf("minio is not configured")
	}

	data, err := w.store.MinIO.GetCVFile(ctx, event.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("fetching cv file: %w", err)
	}

	text, err := decoder.ExtractText(data, event.FileExt)
	if err != nil {
		return nil, fmt.Errorf("decoding cv file: %w", err)
	}

	result := w.extractor.Extract(text)
	if !result.Success {
		return nil, fmt.Errorf("extracting cv data: %s", result.Message)
	}
	return result.Data, nil
}

func (w *ExtractionWorker) persistProfile(ctx context.Context, studentID string, profile *cvparser.CandidateProfile) error {
	if w.store.MySQL == nil {
		return fmt.Errorf("mysql is not configured")
	}

	student, err := w.store.MySQL.GetStudent(ctx, studentID)
	if err != nil {
		if !errors.Is(err, storage.ErrStudentNotFound) {
			return err
		}
		student = &models.Student{StudentID: studentID}
	}
	if err := student.ApplyProfile(profile); err != nil {
		return err
	}
	return w.store.MySQL.SaveStudent(ctx, student)
}

func (w *ExtractionWorker) markStatus(ctx context.Context, submissionUUID, status, errorMessage string) error {
	if w.store.MySQL == nil {
		return fmt.Errorf("mysql is not configured")
	}
	return w.store.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, status, errorMessage)
}
