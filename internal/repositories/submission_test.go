package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-predictor/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestSubmissionRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectExec(`INSERT INTO "submissions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(&models.Submission{
		ID:       uuid.New(),
		Filename: "cv.pdf",
		Status:   models.SubmissionPending,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryMarkSucceeded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSucceeded(uuid.New(), &models.PredictionResult{
		ATSScore: 92,
		Verdict:  "Excellent",
		Payload:  []byte(`{"ats_score":92}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryMarkFailedReturnsErrorWhenNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubmissionRepository(db)

	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkFailed(uuid.New(), "Unsupported file type")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepositoryFindRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubmissionRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "filename", "status", "created_at", "updated_at"}).
		AddRow(id.String(), "cv.pdf", string(models.SubmissionSucceeded), time.Now(), time.Now())

	mock.ExpectQuery(`SELECT \* FROM "submissions" ORDER BY created_at DESC`).
		WillReturnRows(rows)

	submissions, err := repo.FindRecent(5)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, id, submissions[0].ID)
	assert.Equal(t, models.SubmissionSucceeded, submissions[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopSubmissionRepository(t *testing.T) {
	repo := NewNoopSubmissionRepository()

	assert.NoError(t, repo.Create(&models.Submission{}))
	assert.NoError(t, repo.MarkDiscarded(uuid.New()))

	submissions, err := repo.FindRecent(10)
	require.NoError(t, err)
	assert.Empty(t, submissions)
}
