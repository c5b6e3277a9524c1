package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fixmycondo/infras/otel"
	"fixmycondo/infras/postgres"
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/logger"
	gRepo "fixmycondo/shared/repository"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrVersionConflict is returned by ApplyChange when the complaint changed since it was read.
var ErrVersionConflict = errors.New("complaint was modified concurrently")

const complianceQuery = `SELECT
	COUNT(*) AS total_resolved,
	COUNT(*) FILTER (WHERE resolved_at <= sla_deadline) AS resolved_on_time
FROM complaints
WHERE status IN ($1, $2) AND ($3 = '' OR building_id = $3)`

const tallyQuery = `SELECT category, status, priority, COUNT(*) AS total
FROM complaints
WHERE created_at >= $1 AND ($2 = '' OR building_id = $2)
GROUP BY GROUPING SETS ((category), (status), (priority))`

const resolutionQuery = `SELECT COALESCE(AVG(EXTRACT(EPOCH FROM resolved_at - created_at)) / 3600, 0) AS avg_resolution_hours
FROM complaints
WHERE created_at >= $1 AND ($2 = '' OR building_id = $2) AND status IN ($3, $4) AND resolved_at IS NOT NULL`

// technicianQuery counts a complaint as breached when it was resolved late or is still open past its deadline.
const technicianQuery = `SELECT users.id, COALESCE(NULLIF(users.full_name, ''), users.email) AS name,
	COUNT(complaints.id) AS total_assigned,
	COUNT(complaints.id) FILTER (WHERE complaints.status IN ($1, $2)) AS completed,
	COUNT(complaints.id) FILTER (WHERE complaints.resolved_at > complaints.sla_deadline
		OR (complaints.status NOT IN ($1, $2, $3) AND complaints.sla_deadline < $4)) AS sla_breached,
	COALESCE(AVG(EXTRACT(EPOCH FROM complaints.resolved_at - complaints.created_at)) / 3600, 0) AS avg_resolution_hours
FROM users
LEFT JOIN complaints ON complaints.assigned_to = users.id AND complaints.created_at >= $5
WHERE users.level = $6 AND users.active AND ($7 = '' OR users.building_id = $7)
GROUP BY users.id, users.full_name, users.email`

type Complaint interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Complaint, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Complaint, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CreateWithTimeline(ctx context.Context, complaint model.Complaint, entry model.Update) error
	ApplyChange(ctx context.Context, id string, version int, fields map[string]any, entries ...model.Update) error
	Timeline(ctx context.Context, complaintID string) ([]model.Update, error)
	Compliance(ctx context.Context, buildingID string) (model.Compliance, error)
	Stats(ctx context.Context, buildingID string, since time.Time) (model.Stats, error)
	TechnicianStats(ctx context.Context, buildingID string, since, now time.Time) ([]model.TechnicianStats, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BreachCandidates(ctx context.Context, now time.Time, limit int) ([]model.Complaint, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Complaint]
	updates gRepo.Repository[model.Update]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Complaint {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Complaint](model.EntityName, model.TableName, model.FieldID, db, otel),
		updates:    gRepo.NewRepository[model.Update](model.UpdateEntityName, model.UpdateTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateWithTimeline inserts the complaint and its first timeline entry in one transaction.
func (r *repositoryImpl) CreateWithTimeline(ctx context.Context, complaint model.Complaint, entry model.Update) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.CreateWithTimeline")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return r.WithTx(ctx, sql.LevelReadCommitted, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		if err := r.InsertTx(ctx, tx, complaint); err != nil {
			return err //nolint:wrapcheck
		}

		return r.updates.InsertTx(ctx, tx, entry) //nolint:wrapcheck
	})
}

// ApplyChange writes fields guarded by the expected version and appends entries to the
// timeline in the same transaction. The version column is bumped on every change.
func (r *repositoryImpl) ApplyChange(ctx context.Context, id string, version int, fields map[string]any, entries ...model.Update) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.ApplyChange")
	defer scope.End()
	defer scope.TraceIfError(&err)

	fields[model.FieldVersion] = version + 1

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName},
			gDto.Filter{ArgName: "expected_version", Field: model.FieldVersion, Operator: gDto.FilterOperatorEq, Value: version, Table: model.TableName},
		},
	}

	return r.WithTx(ctx, sql.LevelReadCommitted, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		affected, err := r.UpdateTxAffected(ctx, tx, fields, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if affected == 0 {
			return ErrVersionConflict
		}

		for _, entry := range entries {
			if err := r.updates.InsertTx(ctx, tx, entry); err != nil {
				return err //nolint:wrapcheck
			}
		}

		return nil
	})
}

// Timeline returns the entries of a complaint, oldest first.
func (r *repositoryImpl) Timeline(ctx context.Context, complaintID string) (res []model.Update, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.Timeline")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", model.UpdateTableName, constant.FieldCreatedAt),
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldComplaintID, Operator: gDto.FilterOperatorEq, Value: complaintID, Table: model.UpdateTableName},
		},
	}

	return r.updates.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) Compliance(ctx context.Context, buildingID string) (res model.Compliance, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.Compliance")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, complianceQuery)

	err = r.db.Read.GetContext(ctx, &res, complianceQuery, lifecycle.StatusCompleted, lifecycle.StatusClosed, buildingID)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get compliance stats: %w", err)
	}

	return res, nil
}

// Stats counts the complaints created since the given time by category, status and priority.
func (r *repositoryImpl) Stats(ctx context.Context, buildingID string, since time.Time) (res model.Stats, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.Stats")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, tallyQuery)

	res.Tallies = []model.Tally{}
	if err = r.db.Read.SelectContext(ctx, &res.Tallies, tallyQuery, since, buildingID); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to count complaints: %w", err)
	}

	err = r.db.Read.GetContext(ctx, &res.AvgResolutionHours, resolutionQuery,
		since, buildingID, lifecycle.StatusCompleted, lifecycle.StatusClosed)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get resolution time: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) TechnicianStats(ctx context.Context, buildingID string, since, now time.Time) (res []model.TechnicianStats, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.TechnicianStats")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, technicianQuery)

	res = []model.TechnicianStats{}

	err = r.db.Read.SelectContext(ctx, &res, technicianQuery,
		lifecycle.StatusCompleted, lifecycle.StatusClosed, lifecycle.StatusCancelled, now,
		since, constant.RoleTechnician, buildingID)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get technician stats: %w", err)
	}

	return res, nil
}

// BreachCandidates returns tracked complaints whose deadline has passed and that were not
// escalated yet, most overdue first.
func (r *repositoryImpl) BreachCandidates(ctx context.Context, now time.Time, limit int) (res []model.Complaint, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".complaint.BreachCandidates")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params := gDto.QueryParams{
		Limit:   limit,
		SortBy:  fmt.Sprintf("%s.%s", model.TableName, model.FieldSLADeadline),
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    TrackedStatuses(),
				Table:    model.TableName,
			},
			gDto.Filter{Field: model.FieldSLADeadline, Operator: gDto.FilterOperatorLess, Value: now, Table: model.TableName},
			gDto.Filter{Field: model.FieldBreachNotifiedAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// TrackedStatuses lists the statuses still measured against the SLA.
func TrackedStatuses() []lifecycle.Status {
	res := []lifecycle.Status{}

	for _, status := range lifecycle.Statuses {
		if !status.IsTerminal() {
			res = append(res, status)
		}
	}

	return res
}
