package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
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
	"fixmycondo/shared"
	"fixmycondo/shared/dto"
	"fixmycondo/shared/repository"
)

type Stamp struct {
	CreatedAt time.Time `db:"created_at"`
}

type slot struct {
	ID           string `db:"id"`
	FacilityID   string `db:"facility_id"`
	FacilityName string `column:"name" db:"facility_name" table:"facilities"`
	Note         string `db:"-"`
	Stamp
}

func (slot) GetJoinQuery() string {
	return "LEFT JOIN facilities ON facilities.id = slots.facility_id"
}

func newRepository(t *testing.T) (repository.Repository[slot], sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "postgres")

	return repository.NewRepository[slot]("slot", "slots", "id", &postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return shared.FilterByID(id, "id", "slots")
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT slots.id, slots.facility_id, facilities.name AS facility_name, slots.created_at FROM slots " +
			"LEFT JOIN facilities ON facilities.id = slots.facility_id WHERE (slots.id = $1) LIMIT 1",
	)).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id", "facility_name", "created_at"}).
			AddRow("s-1", "f-1", "Pool", time.Now()))

	got, err := repo.Get(context.Background(), byID("s-1"))
	require.NoError(t, err)
	assert.Equal(t, "Pool", got.FacilityName)
}

func TestRepository_GetNoRows(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery("SELECT slots.id FROM slots").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), byID("missing"), "id")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestRepository_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		params    dto.QueryParams
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "page two",
			params:    dto.QueryParams{Page: 2, Limit: 10, SortBy: "slots.created_at", SortDir: dto.SortDirAsc},
			wantQuery: "WHERE (slots.id = $1) ORDER BY slots.created_at ASC LIMIT $2 OFFSET $3",
			wantArgs:  []any{"s-1", 10, 10},
		},
		{
			name:      "first page and unknown direction",
			params:    dto.QueryParams{Page: 1, Limit: 5, SortBy: "slots.created_at", SortDir: "sideways"},
			wantQuery: "WHERE (slots.id = $1) ORDER BY slots.created_at DESC LIMIT $2",
			wantArgs:  []any{"s-1", 5},
		},
		{
			name:      "unpaged",
			wantQuery: "WHERE (slots.id = $1)",
			wantArgs:  []any{"s-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)

			args := make([]driver.Value, len(tt.wantArgs))
			for i, arg := range tt.wantArgs {
				args[i] = arg
			}

			mock.ExpectQuery(regexp.QuoteMeta(tt.wantQuery) + "$").
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s-1"))

			got, err := repo.GetAll(context.Background(), tt.params, byID("s-1"), "id")
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(slots.id) FROM slots LEFT JOIN facilities ON facilities.id = slots.facility_id")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slots (id, facility_id, created_at) VALUES ($1, $2, $3)")).
		WithArgs("s-1", "f-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), slot{ID: "s-1", FacilityID: "f-1", FacilityName: "ignored"}))
}

func TestRepository_WritesRequireFilter(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Update(ctx, map[string]any{"facility_id": "f-2"}, dto.FilterGroup{}), repository.ErrRequiredFilter)
	assert.ErrorIs(t, repo.Delete(ctx, dto.FilterGroup{}), repository.ErrRequiredFilter)

	_, err := repo.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, repository.ErrRequiredFilter)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE slots SET created_at = $1, facility_id = $2 WHERE (slots.id = $3)")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"facility_id": "f-2", "created_at": time.Now()}, byID("s-1"))
	require.NoError(t, err)

	err = repo.Update(context.Background(), map[string]any{"id": "s-2"}, byID("s-1"))
	assert.ErrorContains(t, err, "collides")
}

func TestRepository_UpdateAffected(t *testing.T) {
	repo, mock := newRepository(t)

	guarded := byID("s-1")
	guarded.Filters = append(guarded.Filters, dto.Filter{
		ArgName: "current_facility", Field: "facility_id", Operator: dto.FilterOperatorEq, Value: "f-1", Table: "slots",
	})

	query := regexp.QuoteMeta("UPDATE slots SET facility_id = $1 WHERE (slots.id = $2 AND slots.facility_id = $3)")
	mock.ExpectExec(query).WithArgs("f-2", "s-1", "f-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("f-2", "s-1", "f-1").WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateAffected(context.Background(), map[string]any{"facility_id": "f-2"}, guarded)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateAffected(context.Background(), map[string]any{"facility_id": "f-2"}, guarded)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestRepository_WithTx(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO slots").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.WithTx(context.Background(), sql.LevelReadCommitted, func(tx *sqlx.Tx) error {
			return repo.InsertTx(context.Background(), tx, slot{ID: "s-1"})
		})
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		repo, mock := newRepository(t)
		boom := errors.New("overlap")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.WithTx(context.Background(), sql.LevelSerializable, func(*sqlx.Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = repo.WithTx(context.Background(), sql.LevelSerializable, func(*sqlx.Tx) error { panic("bad state") })
		})
	})
}
