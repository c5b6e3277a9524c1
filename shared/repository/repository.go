package repository

import (
	"context"
	"database/sql"
	"errors"
	"fixmycondo/infras/otel"
	"fixmycondo/infras/postgres"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/dto"
	"fixmycondo/shared/logger"
	"fmt"
	"strings"
)

// ErrRequiredFilter guards writes and existence checks against running without a WHERE clause.
var ErrRequiredFilter = errors.New("required filter")

// Repository implements the CRUD queries shared by every table backed model. T is scanned
// with sqlx, so its fields carry db tags.
type Repository[T any] struct {
	db         *postgres.Connection
	otel       otel.Otel
	table      string
	entity     string
	primaryKey string
	schema     schema
}

func NewRepository[T any](entity, table, primaryKey string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:         db,
		otel:       otl,
		table:      table,
		entity:     entity,
		primaryKey: primaryKey,
		schema:     newSchema(table, zero),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

// fail records err on the scope and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, operation string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", operation, repo.entity, err)
}

func where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == "" {
		return "", map[string]any{}
	}

	return "WHERE " + clause, args
}

// read expands the named query into positional bind vars and hands it to scan.
func (repo *Repository[T]) read(query string, args map[string]any, scan func(query string, args ...any) error) error {
	bound, values, err := repo.db.Read.BindNamed(query, args)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	return scan(bound, values...)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	clause, args := where(filter)
	if clause == "" {
		return false, ErrRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, clause)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	err := repo.read(query, args, func(q string, values ...any) error {
		return repo.db.Read.GetContext(ctx, &exist, q, values...)
	})
	if err != nil {
		return false, repo.fail(scope, "check existence", err)
	}

	return exist, nil
}

// Get returns the first row matching filter, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	clause, args := where(filter)
	query := repo.selectQuery(clause, columns...) + " LIMIT 1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := repo.read(query, args, func(q string, values ...any) error {
		return repo.db.Read.GetContext(ctx, &model, q, values...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	clause, args := where(filter)
	query := repo.selectQuery(clause, columns...) + orderBy(params) + paginate(params, args)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	err := repo.read(query, args, func(q string, values ...any) error {
		return repo.db.Read.SelectContext(ctx, &models, q, values...)
	})
	if err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	clause, args := where(filter)
	query := joinClauses(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primaryKey, repo.table), repo.schema.join, clause)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.read(query, args, func(q string, values ...any) error {
		return repo.db.Read.GetContext(ctx, &count, q, values...)
	})
	if err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) selectQuery(clause string, columns ...string) string {
	return joinClauses("SELECT "+repo.schema.selectList(columns...), "FROM "+repo.table, repo.schema.join, clause)
}

func joinClauses(parts ...string) string {
	clauses := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			clauses = append(clauses, part)
		}
	}

	return strings.Join(clauses, " ")
}

// orderBy trusts SortBy, which QueryParams only fills from an allowlist.
func orderBy(params dto.QueryParams) string {
	if params.SortBy == "" {
		return ""
	}

	dir := dto.SortDirDesc
	if strings.EqualFold(params.SortDir, dto.SortDirAsc) {
		dir = dto.SortDirAsc
	}

	return fmt.Sprintf(" ORDER BY %s %s", params.SortBy, dir)
}

func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page <= 1 {
		return " LIMIT :limit"
	}

	args["offset"] = (params.Page - 1) * params.Limit

	return " LIMIT :limit OFFSET :offset"
}
