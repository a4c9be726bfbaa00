package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/cvparser"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/decoder"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/logger"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/matcher"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage/models"
	"github.com/gofrs/uuid/v5"
)

// Handler-facing errors mapped to HTTP statuses by the router.
var (
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrExtensionDenied    = errors.New("file type not allowed")
	ErrRateLimited        = errors.New("too many extraction requests")
	ErrStudentNotFound    = storage.ErrStudentNotFound
	ErrSubmissionNotFound = storage.ErrSubmissionNotFound
	ErrUnsupportedType    = decoder.ErrUnsupportedFormat
)

// downloadURLExpiry bounds how long a presigned CV download link stays
// valid.
const downloadURLExpiry = 15 * time.Minute

// StudentHandler coordinates CV uploads, extraction, and course matching
// for a student.
type StudentHandler struct {
	cfg       *config.Config
	storage   *storage.Storage
	extractor *cvparser.Extractor
}

// NewStudentHandler creates the handler.
func NewStudentHandler(cfg *config.Config, store *storage.Storage) *StudentHandler {
	return &StudentHandler{
		cfg:       cfg,
		storage:   store,
		extractor: cvparser.NewExtractor(cvparser.WithLogger(logger.Logger)),
	}
}

// CVUploadResponse reports the outcome of an upload.
type CVUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// ExtractResponse is the synchronous extraction result.
type ExtractResponse struct {
	Success  bool                       `json:"success"`
	Profile  *cvparser.CandidateProfile `json:"profile,omitempty"`
	Warnings []string                   `json:"warnings,omitempty"`
	Message  string                     `json:"message,omitempty"`
}

// HandleCVUpload stores the file in object storage, records the
// submission, and publishes a cv.uploaded event for asynchronous
// extraction. A file already uploaded by the same student short-circuits
// with the original submission UUID.
func (h *StudentHandler) HandleCVUpload(ctx context.Context, studentID string, reader io.Reader, fileSize int64, filename string) (*CVUploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if err := h.validateUpload(ext, fileSize); err != nil {
		return nil, err
	}

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}

	fileMD5 := md5Hex(fileBytes)
	if h.storage.Redis != nil {
		duplicate, firstSubmission, err := h.storage.Redis.CheckFileMD5(ctx, studentID, fileMD5)
		if err != nil {
			logger.Warn().Err(err).Str("md5", fileMD5).Msg("file md5 dedupe check failed, continuing")
		} else if duplicate {
			logger.Info().Str("md5", fileMD5).Str("filename", filename).
				Msg("duplicate cv upload skipped")
			return &CVUploadResponse{SubmissionUUID: firstSubmission, Status: "duplicate_file_skipped"}, nil
		}
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating submission uuid: %w", err)
	}
	submissionUUID := uuidV7.String()

	if h.storage.MinIO == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	objectKey, err := h.storage.MinIO.UploadCVFile(ctx, submissionUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return nil, fmt.Errorf("storing cv file: %w", err)
	}

	if h.storage.MySQL != nil {
		submission := &models.CVSubmission{
			SubmissionUUID:   submissionUUID,
			StudentID:        studentID,
			OriginalFilename: filename,
			FileExt:          ext,
			ObjectKey:        objectKey,
			FileMD5:          fileMD5,
			Status:           models.SubmissionStatusUploaded,
		}
		if err := h.storage.MySQL.CreateSubmission(ctx, submission); err != nil {
			return nil, err
		}
	}

	// The dedupe record must point at a stored file and submission row,
	// so it is written only after both exist.
	if h.storage.Redis != nil {
		if err := h.storage.Redis.RecordFileMD5(ctx, studentID, fileMD5, submissionUUID); err != nil {
			logger.Warn().Err(err).Str("md5", fileMD5).Msg("recording file md5 failed")
		}
	}

	if h.storage.RabbitMQ != nil {
		event := storage.CVUploadedEvent{
			SubmissionUUID: submissionUUID,
			StudentID:      studentID,
			ObjectKey:      objectKey,
			FileExt:        ext,
			UploadedAt:     time.Now(),
		}
		if err := h.storage.RabbitMQ.PublishCVUploaded(ctx, event); err != nil {
			// The file is stored; extraction can be retriggered later.
			logger.Error().Err(err).Str("submission", submissionUUID).
				Msg("publishing cv uploaded event failed")
			return &CVUploadResponse{SubmissionUUID: submissionUUID, Status: "uploaded_event_failed"}, nil
		}
	}

	return &CVUploadResponse{SubmissionUUID: submissionUUID, Status: models.SubmissionStatusUploaded}, nil
}

// HandleCVExtract decodes and extracts the uploaded file synchronously
// and persists the resulting profile. Subject to the per-student rate
// limit.
func (h *StudentHandler) HandleCVExtract(ctx context.Context, studentID string, reader io.Reader, fileSize int64, filename string) (*ExtractResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if err := h.validateUpload(ext, fileSize); err != nil {
		return nil, err
	}

	if h.storage.Redis != nil {
		allowed, err := h.storage.Redis.AllowExtraction(ctx, studentID)
		if err != nil {
			logger.Warn().Err(err).Msg("rate limit check failed, allowing request")
		} else if !allowed {
			return nil, ErrRateLimited
		}
	}

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}

	text, err := decoder.ExtractText(fileBytes, ext)
	if err != nil {
		return nil, err
	}

	result := h.extractor.Extract(text)
	if !result.Success {
		return &ExtractResponse{Success: false, Message: result.Message}, nil
	}

	if h.storage.MySQL != nil {
		if err := h.saveProfile(ctx, studentID, result.Data); err != nil {
			return nil, err
		}
	}

	return &ExtractResponse{
		Success:  true,
		Profile:  result.Data,
		Warnings: cvparser.Validate(result.Data),
	}, nil
}

// GetSubmissionStatus returns one of the student's submission records.
// A submission belonging to another student is reported as not found.
func (h *StudentHandler) GetSubmissionStatus(ctx context.Context, studentID, submissionUUID string) (*models.CVSubmission, error) {
	if h.storage.MySQL == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	submission, err := h.storage.MySQL.GetSubmission(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}
	if submission.StudentID != studentID {
		return nil, ErrSubmissionNotFound
	}
	return submission, nil
}

// GetCVDownloadURL returns a time-limited download link for a stored CV.
func (h *StudentHandler) GetCVDownloadURL(ctx context.Context, studentID, submissionUUID string) (string, error) {
	submission, err := h.GetSubmissionStatus(ctx, studentID, submissionUUID)
	if err != nil {
		return "", err
	}
	if submission.Status == models.SubmissionStatusDeleted {
		return "", ErrSubmissionNotFound
	}
	if h.storage.MinIO == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	return h.storage.MinIO.GetPresignedURL(ctx, submission.ObjectKey, downloadURLExpiry)
}

// HandleCVDelete removes the stored CV file and marks the submission
// deleted. Deleting an already-deleted submission is a no-op.
func (h *StudentHandler) HandleCVDelete(ctx context.Context, studentID, submissionUUID string) error {
	submission, err := h.GetSubmissionStatus(ctx, studentID, submissionUUID)
	if err != nil {
		return err
	}
	if submission.Status == models.SubmissionStatusDeleted {
		return nil
	}

	if h.storage.MinIO == nil {
		return fmt.Errorf("object storage is not configured")
	}
	if err := h.storage.MinIO.DeleteCVFile(ctx, submission.ObjectKey); err != nil {
		return fmt.Errorf("deleting cv file: %w", err)
	}
	if err := h.storage.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, models.SubmissionStatusDeleted, ""); err != nil {
		return err
	}

	logger.Info().Str("submission", submissionUUID).Str("student", studentID).
		Msg("cv submission deleted")
	return nil
}

// GetProfile returns the stored student record.
func (h *StudentHandler) GetProfile(ctx context.Context, studentID string) (*models.Student, error) {
	if h.storage.MySQL == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	return h.storage.MySQL.GetStudent(ctx, studentID)
}

// MatchCourses ranks every course against the student's stored profile
// and the supplied preferences.
func (h *StudentHandler) MatchCourses(ctx context.Context, studentID string, prefs matcher.Preferences) ([]matcher.CourseMatch, error) {
	if h.storage.MySQL == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	student, err := h.storage.MySQL.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courses, err := h.storage.MySQL.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	profile := &cvparser.CandidateProfile{
		EducationLevel: cvparser.EducationLevel(student.EducationLevel),
		Skills:         models.StringsFromJSON(student.Skills),
	}
	return matcher.RankCourses(profile, prefs, courses), nil
}

// Health reports which storage backends are reachable.
func (h *StudentHandler) Health(ctx context.Context) map[string]string {
	status := map[string]string{"service": "ok"}
	if h.storage.MySQL != nil {
		status["mysql"] = "ok"
	}
	if h.storage.Redis != nil {
		if err := h.storage.Redis.Ping(ctx); err != nil {
			status["redis"] = "unreachable"
		} else {
			status["redis"] = "ok"
		}
	}
	if h.storage.MinIO != nil {
		status["minio"] = "ok"
	}
	if h.storage.RabbitMQ != nil {
		status["rabbitmq"] = "ok"
	}
	return status
}

func (h *StudentHandler) validateUpload(ext string, fileSize int64) error {
	maxBytes := int64(h.cfg.Upload.MaxFileSizeMB) * 1024 * 1024
	if maxBytes > 0 && fileSize > maxBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fileSize)
	}
	if len(h.cfg.Upload.AllowedExtensions) == 0 {
		return nil
	}
	for _, allowed := range h.cfg.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrExtensionDenied, ext)
}

func (h *StudentHandler) saveProfile(ctx context.Context, studentID string, profile *cvparser.CandidateProfile) error {
	student, err := h.storage.MySQL.GetStudent(ctx, studentID)
	if err != nil {
		if !errors.Is(err, storage.ErrStudentNotFound) {
			return err
		}
		student = &models.Student{StudentID: studentID}
	}
	if err := student.ApplyProfile(profile); err != nil {
		return err
	}
	return h.storage.MySQL.SaveStudent(ctx, student)
}

func md5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
