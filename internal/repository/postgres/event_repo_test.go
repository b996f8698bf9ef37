package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guestalbum/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventColumnNames = []string{"id", "name", "event_code", "organizer_id", "organizer_email", "event_date", "start_time", "payment_status", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Name:           "Ana & Ben",
				EventCode:      "AbCd12",
				OrganizerID:    "user-1",
				OrganizerEmail: "ana@example.com",
				Date:           "2024-06-01",
				StartTime:      "20:00",
				PaymentStatus:  domain.PaymentPending,
				CreatedAt:      created,
				UpdatedAt:      created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, event_code, organizer_id, organizer_email, event_date, start_time, payment_status, created_at, updated_at\)`).
					WithArgs("Ana & Ben", "abcd12", "user-1", "ana@example.com", "2024-06-01", "20:00", "pending", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "no start time stored as null",
			event: &domain.Event{
				Name:          "Party",
				EventCode:     "wxyz",
				OrganizerID:   "user-1",
				Date:          "2024-06-01",
				PaymentStatus: domain.PaymentPaid,
				CreatedAt:     created,
				UpdatedAt:     created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Party", "wxyz", "user-1", "", "2024-06-01", nil, "paid", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-2"))
			},
			wantID: "ev-uuid-2",
		},
		{
			name:  "db error",
			event: &domain.Event{Name: "Party", EventCode: "wxyz", OrganizerID: "user-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, event_code, organizer_id, organizer_email, event_date, start_time, payment_status, created_at, updated_at FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventColumnNames).
						AddRow("ev-1", "Party", "abcd", "user-1", "org@example.com", "2024-06-01", nil, "paid", created, created))
			},
			want: &domain.Event{
				ID: "ev-1", Name: "Party", EventCode: "abcd", OrganizerID: "user-1", OrganizerEmail: "org@example.com",
				Date: "2024-06-01", PaymentStatus: domain.PaymentPaid, CreatedAt: created, UpdatedAt: created,
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM events WHERE id = \$1`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(db).GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(eventColumnNames).
		AddRow("ev-1", "A", "aaaa", "user-1", "a@example.com", "2024-06-01", "20:00", "paid", created, created).
		AddRow("ev-2", "B", "bbbb", "user-2", "b@example.com", nil, nil, "pending", created, created)
	mock.ExpectQuery(`SELECT .* FROM events ORDER BY created_at ASC`).WillReturnRows(rows)

	got, err := NewEventRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "20:00", got[0].StartTime)
	require.Equal(t, "", got[1].Date)
	require.Equal(t, domain.PaymentPending, got[1].PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListByOrganizerID(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .* FROM events WHERE organizer_id = \$1 ORDER BY created_at DESC`).
			WithArgs("user-none").
			WillReturnRows(sqlmock.NewRows(eventColumnNames))

		got, err := NewEventRepository(db).ListByOrganizerID(ctx, "user-none")
		require.NoError(t, err)
		require.Equal(t, []*domain.Event{}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .* FROM events WHERE organizer_id = \$1`).
			WithArgs("user-1").
			WillReturnError(sql.ErrConnDone)

		_, err = NewEventRepository(db).ListByOrganizerID(ctx, "user-1")
		require.Error(t, err)
	})
}

func TestEventRepository_GetByEventCode(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM events WHERE event_code = \$1`).
		WithArgs("abcd").
		WillReturnRows(sqlmock.NewRows(eventColumnNames).
			AddRow("ev-1", "Party", "abcd", "user-1", "", "2024-06-01", nil, "paid", created, created))
	mock.ExpectQuery(`SELECT .* FROM events WHERE event_code = \$1`).
		WithArgs("zzzz").
		WillReturnError(sql.ErrNoRows)

	repo := NewEventRepository(db)
	got, err := repo.GetByEventCode(ctx, "  ABCD ")
	require.NoError(t, err)
	require.Equal(t, "ev-1", got.ID)

	_, err = repo.GetByEventCode(ctx, "zzzz")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE events SET payment_status = \$1, updated_at = NOW\(\)`).
		WithArgs("paid", "ev-1").
		WillReturnRows(sqlmock.NewRows(eventColumnNames).
			AddRow("ev-1", "Party", "abcd", "user-1", "", "2024-06-01", nil, "paid", created, created))
	mock.ExpectQuery(`UPDATE events SET payment_status`).
		WithArgs("failed", "ev-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewEventRepository(db)
	got, err := repo.UpdatePaymentStatus(ctx, "ev-1", domain.PaymentPaid)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	_, err = repo.UpdatePaymentStatus(ctx, "ev-missing", domain.PaymentFailed)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).WithArgs("ev-1").WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).WithArgs("ev-1").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events`).WithArgs("ev-1").WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewEventRepository(db).Delete(ctx, "ev-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
