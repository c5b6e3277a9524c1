package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/infras/otel/mocks"
	"fixmycondo/infras/postgres"
	"fixmycondo/internal/domains/user/model"
	"fixmycondo/internal/domains/user/repository"
)

var recordLogin = regexp.QuoteMeta("UPDATE users\nSET last_login = $1")

func newRepository(t *testing.T) (repository.User, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")

	return repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), mock
}

func TestUserRepository_RecordLogin(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rehashed string
		execErr  error
		wantErr  bool
	}{
		{name: "keeps the stored hash"},
		{name: "stores the upgraded hash", rehashed: "$2a$10$upgraded"},
		{name: "database error", execErr: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)

			exec := mock.ExpectExec(recordLogin).WithArgs(at, tt.rehashed, "user-1")
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.RecordLogin(context.Background(), "user-1", at, tt.rehashed)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.execErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ExistByEmail(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("owner@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exist(context.Background(), model.ByEmail(" Owner@Example.com"))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
