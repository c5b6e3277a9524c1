package repository

import (
	"context"
	"database/sql"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/dto"
	"fixmycondo/shared/logger"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

// execer is satisfied by both the write pool and a transaction.
type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	query := repo.schema.insertQuery(repo.table)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, tx, model)
}

// update sets the columns of mod on every row matching filter. Columns are rendered in
// sorted order so the statement text is stable.
func (repo *Repository[T]) update(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.scope(ctx, "update")
	defer scope.End()

	clause, args := where(filter)
	if clause == "" {
		return 0, ErrRequiredFilter
	}

	if len(mod) == 0 {
		return 0, nil
	}

	assignments := make([]string, 0, len(mod))

	for _, col := range slices.Sorted(maps.Keys(mod)) {
		if _, clash := args[col]; clash {
			return 0, fmt.Errorf("update column %s collides with a filter argument (%s)", col, repo.entity)
		}

		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
		args[col] = mod[col]
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), clause)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	return affected, nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, repo.db.Write, mod, filter)

	return err
}

// UpdateAffected is Update reporting how many rows matched the filter.
func (repo *Repository[T]) UpdateAffected(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

// UpdateTxAffected runs the update inside tx and reports how many rows matched the filter.
func (repo *Repository[T]) UpdateTxAffected(ctx context.Context, tx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, tx, mod, filter)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	clause, args := where(filter)
	if clause == "" {
		return ErrRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, clause)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

// WithTx runs fn inside a write transaction at the given isolation level. The transaction
// commits when fn returns nil and rolls back on an error or a panic.
func (repo *Repository[T]) WithTx(ctx context.Context, isolation sql.IsolationLevel, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.scope(ctx, "WithTx")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tx, err := repo.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entity, err)
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entity, err)
	}

	committed = true

	return nil
}
