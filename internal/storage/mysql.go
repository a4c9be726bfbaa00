package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrStudentNotFound is returned when no student matches the given ID.
var ErrStudentNotFound = errors.New("student not found")

// ErrSubmissionNotFound is returned when no submission matches the given
// UUID.
var ErrSubmissionNotFound = errors.New("submission not found")

// Database is the relational persistence interface used by handlers and
// the extraction worker.
type Database interface {
	DB() *gorm.DB
	Close() error

	GetStudent(ctx context.Context, studentID string) (*models.Student, error)
	SaveStudent(ctx context.Context, student *models.Student) error

	CreateSubmission(ctx context.Context, submission *models.CVSubmission) error
	GetSubmission(ctx context.Context, submissionUUID string) (*models.CVSubmission, error)
	UpdateSubmissionStatus(ctx context.Context, submissionUUID, status, errorMessage string) error

	ListCourses(ctx context.Context) ([]models.UniversityCourse, error)
}

var _ Database = (*MySQL)(nil)

// MySQL provides relational persistence via GORM.
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL opens the database connection, configures the pool, and
// migrates the schema.
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql config cannot be nil")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.ConnectTimeoutSeconds)

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		PrepareStmt:                              true,
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{db: db, cfg: cfg}
	if err := m.autoMigrateSchema(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return m, nil
}

func (m *MySQL) autoMigrateSchema() error {
	silent := m.db.Session(&gorm.Session{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	return silent.AutoMigrate(
		&models.Student{},
		&models.CVSubmission{},
		&models.UniversityCourse{},
	)
}

// DB returns the GORM handle for callers that need raw query access.
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close closes the underlying connection pool.
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// GetStudent fetches a student by public ID.
func (m *MySQL) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	err := m.db.WithContext(ctx).Where("student_id = ?", studentID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("querying student %s: %w", studentID, err)
	}
	return &student, nil
}

// SaveStudent creates or updates the student record.
func (m *MySQL) SaveStudent(ctx context.Context, student *models.Student) error {
	if err := m.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("saving student %s: %w", student.StudentID, err)
	}
	return nil
}

// CreateSubmission records a new CV submission.
func (m *MySQL) CreateSubmission(ctx context.Context, submission *models.CVSubmission) error {
	if err := m.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("creating submission %s: %w", submission.SubmissionUUID, err)
	}
	return nil
}

// GetSubmission fetches a submission by UUID.
func (m *MySQL) GetSubmission(ctx context.Context, submissionUUID string) (*models.CVSubmission, error) {
	var submission models.CVSubmission
	err := m.db.WithContext(ctx).Where("submission_uuid = ?", submissionUUID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("querying submission %s: %w", submissionUUID, err)
	}
	return &submission, nil
}

// UpdateSubmissionStatus advances a submission through the pipeline.
// errorMessage is only stored for failed submissions.
func (m *MySQL) UpdateSubmissionStatus(ctx context.Context, submissionUUID, status, errorMessage string) error {
	updates := map[string]interface{}{"status": status}
	if status == models.SubmissionStatusFailed {
		updates["error_message"] = errorMessage
	}
	err := m.db.WithContext(ctx).
		Model(&models.CVSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("updating submission %s status: %w", submissionUUID, err)
	}
	return nil
}

// ListCourses returns every course in a stable order for matching.
func (m *MySQL) ListCourses(ctx context.Context) ([]models.UniversityCourse, error) {
	var courses []models.UniversityCourse
	if err := m.db.WithContext(ctx).Order("id asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}
