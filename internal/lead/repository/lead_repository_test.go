package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

var leadColumnNames = []string{
	"id", "source", "name", "company_name", "email", "linkedin_url", "campaign_id", "status",
	"send_count", "last_sent_at", "next_scheduled_at", "last_message_id", "thread_id", "subject",
	"body", "company_summary", "product_summary", "metadata", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func leadRow(id, status string, sendCount int, sentAt any, metadata []byte) []driver.Value {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "csv", "Ada Lovelace", "Analytical Engines", "ada@engines.io", nil, "default", status,
		sendCount, sentAt, nil, nil, nil, "Hello", "Body", "", "", metadata, now, now,
	}
}

func TestPostgreSQLLeadRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgreSQLLeadRepository(db)

	now := time.Now().UTC()
	lead := &leadDomain.Lead{
		ID:          "lead-1",
		Source:      "csv",
		Name:        "Ada Lovelace",
		CompanyName: "Analytical Engines",
		Email:       "ada@engines.io",
		CampaignID:  leadDomain.DefaultCampaignID,
		Status:      leadDomain.StatusNew(),
		Metadata:    map[string]any{"title": "CTO"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(
			"lead-1", "csv", "Ada Lovelace", "Analytical Engines", "ada@engines.io", nil, "default", "new", 0,
			nil, nil, nil, nil, "", "", "", "", []byte(`{"title":"CTO"}`), now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), lead)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLLeadRepository_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)
		sentAt := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT (.+) FROM leads WHERE id = \\$1").
			WithArgs("lead-1").
			WillReturnRows(sqlmock.NewRows(leadColumnNames).
				AddRow(leadRow("lead-1", "sent_step0", 1, sentAt, []byte(`{"title":"CTO"}`))...))

		lead, err := repo.Get(context.Background(), "lead-1")
		require.NoError(t, err)
		assert.Equal(t, "lead-1", lead.ID)
		assert.Equal(t, leadDomain.StatusSent(0), lead.Status)
		assert.Equal(t, 1, lead.SendCount)
		assert.Equal(t, "ada@engines.io", lead.Email)
		assert.Equal(t, "", lead.LinkedInURL)
		require.NotNil(t, lead.LastSentAt)
		assert.Equal(t, sentAt, *lead.LastSentAt)
		assert.Nil(t, lead.NextScheduledAt)
		assert.Equal(t, "CTO", lead.Metadata["title"])
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM leads").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		lead, err := repo.Get(context.Background(), "missing")
		assert.Nil(t, lead)
		assert.ErrorIs(t, err, leadDomain.ErrLeadNotFound)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("CorruptStatus", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM leads").
			WithArgs("lead-1").
			WillReturnRows(sqlmock.NewRows(leadColumnNames).
				AddRow(leadRow("lead-1", "contacted", 0, nil, nil)...))

		lead, err := repo.Get(context.Background(), "lead-1")
		assert.Nil(t, lead)
		assert.ErrorIs(t, err, leadDomain.ErrInvalidStatus)
	})
}

func TestPostgreSQLLeadRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectExec("UPDATE leads").WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &leadDomain.Lead{ID: "lead-1", Status: leadDomain.StatusEnriched()})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectExec("UPDATE leads").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &leadDomain.Lead{ID: "lead-1", Status: leadDomain.StatusEnriched()})
		assert.ErrorIs(t, err, leadDomain.ErrLeadNotFound)
	})
}

func TestPostgreSQLLeadRepository_CompareAndSwap(t *testing.T) {
	sentAt := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	lead := &leadDomain.Lead{
		ID:            "lead-1",
		Status:        leadDomain.StatusSent(0),
		SendCount:     1,
		LastSentAt:    &sentAt,
		LastMessageID: "msg-1",
		ThreadID:      "th_lead-1_1",
		UpdatedAt:     sentAt,
	}

	t.Run("Swapped", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectExec("UPDATE leads (.+) WHERE id = \\$8 AND status = \\$9 AND send_count = \\$10").
			WithArgs("sent_step0", 1, sentAt, "msg-1", "th_lead-1_1", nil, sentAt, "lead-1", "processed", 0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CompareAndSwap(context.Background(), lead, leadDomain.StatusProcessed(), 0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectExec("UPDATE leads").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CompareAndSwap(context.Background(), lead, leadDomain.StatusProcessed(), 0)
		assert.ErrorIs(t, err, leadDomain.ErrConcurrentUpdate)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})
}

func TestPostgreSQLLeadRepository_List(t *testing.T) {
	t.Run("FilteredByStatus", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)
		status := leadDomain.StatusProcessed()

		mock.ExpectQuery("SELECT (.+) FROM leads WHERE status = \\$1").
			WithArgs("processed", 10, 0).
			WillReturnRows(sqlmock.NewRows(leadColumnNames).
				AddRow(leadRow("lead-2", "processed", 0, nil, nil)...).
				AddRow(leadRow("lead-1", "processed", 0, nil, nil)...))

		leads, err := repo.List(context.Background(), &status, 0, 10)
		require.NoError(t, err)
		require.Len(t, leads, 2)
		assert.Equal(t, "lead-2", leads[0].ID)
	})

	t.Run("Empty", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewPostgreSQLLeadRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM leads").
			WithArgs(50, 0).
			WillReturnRows(sqlmock.NewRows(leadColumnNames))

		leads, err := repo.List(context.Background(), nil, 0, 50)
		require.NoError(t, err)
		assert.NotNil(t, leads)
		assert.Len(t, leads, 0)
	})
}

func TestMySQLLeadRepository_Update_IdenticalWrite(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLLeadRepository(db)

	mock.ExpectExec("UPDATE leads").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM leads WHERE id = \\?").
		WithArgs("lead-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	err := repo.Update(context.Background(), &leadDomain.Lead{ID: "lead-1", Status: leadDomain.StatusNew()})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLLeadRepository_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLLeadRepository(db)

	mock.ExpectExec("UPDATE leads").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM leads").WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &leadDomain.Lead{ID: "lead-1", Status: leadDomain.StatusNew()})
	assert.ErrorIs(t, err, leadDomain.ErrLeadNotFound)
}

func TestMySQLLeadRepository_CompareAndSwap_Conflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLLeadRepository(db)

	mock.ExpectExec("UPDATE leads (.+) WHERE id = \\? AND status = \\? AND send_count = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CompareAndSwap(
		context.Background(),
		&leadDomain.Lead{ID: "lead-1", Status: leadDomain.StatusSent(0), SendCount: 1},
		leadDomain.StatusProcessed(),
		0,
	)
	assert.ErrorIs(t, err, leadDomain.ErrConcurrentUpdate)
}

func TestMySQLLeadRepository_Get_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLLeadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE id = \\?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, leadDomain.ErrLeadNotFound)
}
