package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Complaint=MockComplaintService

import (
	"context"
	"errors"
	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	"fixmycondo/infras/metrics"
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/internal/domains/complaint/model/dto"
	"fixmycondo/internal/domains/complaint/repository"
	"fixmycondo/shared"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetComplaint    = "complaint:get"
	cacheGetAllComplaint = "complaint:gets"
	cacheCountComplaint  = "complaint:count"
)

const (
	submittedMessage = "Complaint submitted"
	// conflictRetries is how often a change is re-read and re-applied after losing a version race.
	conflictRetries = 1
)

type Complaint interface {
	Create(ctx context.Context, req dto.CreateComplaintRequest) (dto.ComplaintResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.ComplaintQuery) (dto.GetComplaintsResponse, error)
	Get(ctx context.Context, id string) (dto.ComplaintResponse, error)
	Update(ctx context.Context, req dto.UpdateComplaintRequest, id string) (dto.ComplaintResponse, error)
	AddUpdate(ctx context.Context, req dto.CreateComplaintUpdateRequest, id string) (dto.ComplaintUpdateResponse, error)
	Timeline(ctx context.Context, id string) ([]dto.ComplaintUpdateResponse, error)
	Compliance(ctx context.Context, buildingID string) (dto.ComplianceResponse, error)
	ComplaintStats(ctx context.Context, query dto.StatsQuery) (dto.ComplaintStatsResponse, error)
	TechnicianStats(ctx context.Context, query dto.StatsQuery) (dto.TechnicianStatsResponse, error)
	Delete(ctx context.Context, id string) error
	Statuses(ctx context.Context) []lifecycle.Presentation
}

type serviceImpl struct {
	repo    repository.Complaint
	engine  *lifecycle.Engine
	kafka   kafka.Client
	metrics *metrics.Metrics
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

// NewEngine builds the lifecycle engine from the SLA section of the configuration.
func NewEngine(cfg *config.Config) *lifecycle.Engine {
	policy := lifecycle.DefaultSLAPolicy()

	if cfg.SLA.CriticalHours > 0 {
		policy.Critical = cfg.SLA.CriticalHours
	}

	if cfg.SLA.HighHours > 0 {
		policy.High = cfg.SLA.HighHours
	}

	if cfg.SLA.MediumHours > 0 {
		policy.Medium = cfg.SLA.MediumHours
	}

	if cfg.SLA.LowHours > 0 {
		policy.Low = cfg.SLA.LowHours
	}

	return lifecycle.NewEngine(policy, lifecycle.ReopenPolicy(cfg.SLA.ReopenPolicy))
}

func New(repo repository.Complaint, engine *lifecycle.Engine, kafka kafka.Client, metrics *metrics.Metrics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Complaint {
	return &serviceImpl{
		repo:    repo,
		engine:  engine,
		kafka:   kafka,
		metrics: metrics,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateComplaintRequest) (res dto.ComplaintResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := shared.Actor(ctx)
	now := timezone.Now()

	record, err := s.engine.Create(req.Input(), now)
	if err != nil {
		return res, invalidInput(err)
	}

	complaint, err := req.ToModel(uuid.NewString(), user, record)
	if err != nil {
		return res, invalidInput(err)
	}

	status := lifecycle.StatusSubmitted
	entry := model.Update{
		ID:          uuid.NewString(),
		ComplaintID: complaint.ID,
		Status:      &status,
		Message:     submittedMessage,
		Photos:      complaint.Photos,
		CreatedAt:   now,
		CreatedBy:   user,
	}

	if err = s.repo.CreateWithTimeline(ctx, complaint, entry); err != nil {
		log.Error().Err(err).Msg("failed to create complaint")

		return res, fmt.Errorf("failed to create complaint: %w", err)
	}

	res.FromModel(complaint, now)

	s.publish(ctx, constant.EventComplaintCreated, constant.Empty, complaint)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllComplaint)
		shared.InvalidateCaches(c, s.cache, cacheCountComplaint)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.ComplaintQuery) (res dto.GetComplaintsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(model.TableName+"."+constant.FieldCreatedAt, gDto.SortDirDesc)

	filter := s.listFilter(ctx, query)

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count complaints")

		return res, fmt.Errorf("failed to count complaints: %w", err)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllComplaint, req, filter)

	var models []model.Complaint

	if err = s.cache.Get(ctx, cacheKey, &models); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for complaints")
	} else {
		models, err = s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get complaints")

			return res, fmt.Errorf("failed to get complaints: %w", err)
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, models, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save complaints to cache")
			}
		}()
	}

	res.FromModels(models, total, req.Limit, timezone.Now())

	return res, nil
}

// listFilter applies role scoping before the explicit query filters.
// Residents only see what they reported; technicians see everything unless they ask for their own work.
func (s *serviceImpl) listFilter(ctx context.Context, query dto.ComplaintQuery) gDto.FilterGroup {
	user, role := shared.Actor(ctx)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	eq := func(field string, value any) {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: field, Operator: gDto.FilterOperatorEq, Value: value, Table: model.TableName})
	}

	if role == constant.RoleResident || query.CreatedByMe {
		eq(constant.FieldCreatedBy, user)
	}

	if query.AssignedToMe {
		eq(model.FieldAssignedTo, user)
	}

	if query.Status != constant.Empty {
		eq(model.FieldStatus, query.Status)
	}

	if query.Category != constant.Empty {
		eq(model.FieldCategory, query.Category)
	}

	if query.Priority != constant.Empty {
		eq(model.FieldPriority, query.Priority)
	}

	if query.BuildingID != constant.Empty && shared.IsManagement(role) {
		eq(model.FieldBuildingID, query.BuildingID)
	}

	if query.IsOverdue != nil {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Not:      !*query.IsOverdue,
			Filters: []any{
				gDto.Filter{ArgName: "tracked_status", Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: repository.TrackedStatuses(), Table: model.TableName},
				gDto.Filter{ArgName: "overdue_at", Field: model.FieldSLADeadline, Operator: gDto.FilterOperatorLess, Value: timezone.Now(), Table: model.TableName},
			},
		})
	}

	if query.Search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: constant.QueryParamSearch, Field: model.FieldTitle, Operator: gDto.FilterOperatorLike, Value: query.Search, Table: model.TableName},
				gDto.Filter{ArgName: constant.QueryParamSearch, Field: model.FieldDescription, Operator: gDto.FilterOperatorLike, Value: query.Search, Table: model.TableName},
			},
		})
	}

	return filter
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountComplaint, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count complaints: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save complaint count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ComplaintResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	complaint, err := s.cached(ctx, id)
	if err != nil {
		return res, err
	}

	if err = canView(ctx, complaint); err != nil {
		return res, err
	}

	res.FromModel(complaint, timezone.Now())

	return res, nil
}

// cached reads a complaint through the cache. Writes always go through load instead.
func (s *serviceImpl) cached(ctx context.Context, id string) (res model.Complaint, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetComplaint, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for complaint")

		return res, nil
	}

	res, err = s.load(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save complaint to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res model.Complaint, err error) {
	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaint")

		return res, fmt.Errorf("failed to get complaint: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("complaint not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateComplaintRequest, id string) (res dto.ComplaintResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	visit, err := req.VisitTime()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	change := mutation{
		status:               req.Status,
		message:              req.Message,
		priority:             req.Priority,
		assignedTo:           req.AssignedTo,
		estimatedCost:        req.EstimatedCost,
		resolutionNotes:      req.ResolutionNotes,
		preferredVisitTime:   visit,
		allowTechnicianEntry: req.AllowTechnicianEntry,
	}

	complaint, _, err := s.apply(ctx, id, change)
	if err != nil {
		return res, err
	}

	res.FromModel(complaint, timezone.Now())

	return res, nil
}

func (s *serviceImpl) AddUpdate(ctx context.Context, req dto.CreateComplaintUpdateRequest, id string) (res dto.ComplaintUpdateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddUpdate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	change := mutation{
		status:     req.Status,
		message:    req.Message,
		photos:     req.Photos,
		costUpdate: req.CostUpdate,
	}

	_, entry, err := s.apply(ctx, id, change)
	if err != nil {
		return res, err
	}

	res.FromModel(entry)

	return res, nil
}

// apply runs a change against the latest stored version, re-reading once when a concurrent
// writer got there first.
func (s *serviceImpl) apply(ctx context.Context, id string, change mutation) (complaint model.Complaint, entry model.Update, err error) {
	var from lifecycle.Status

	for attempt := 0; ; attempt++ {
		complaint, entry, from, err = s.applyOnce(ctx, id, change)
		if !errors.Is(err, repository.ErrVersionConflict) || attempt >= conflictRetries {
			break
		}

		log.Warn().Str("complaintID", id).Int("attempt", attempt+1).Msg("complaint changed concurrently, retrying")
	}

	if errors.Is(err, repository.ErrVersionConflict) {
		return complaint, entry, failure.Conflict("complaint was modified by someone else, please reload") // nolint:wrapcheck
	}

	if err != nil {
		return complaint, entry, err
	}

	if from != complaint.Status {
		if s.metrics != nil {
			s.metrics.ComplaintTransitions.WithLabelValues(string(from), string(complaint.Status)).Inc()
		}

		s.publish(ctx, constant.EventComplaintStatusChanged, from, complaint)
	}

	go EvictCaches(context.WithoutCancel(ctx), s.cache, id)

	return complaint, entry, nil
}

func (s *serviceImpl) applyOnce(ctx context.Context, id string, change mutation) (complaint model.Complaint, entry model.Update, from lifecycle.Status, err error) {
	user, role := shared.Actor(ctx)
	now := timezone.Now()

	complaint, err = s.load(ctx, id)
	if err != nil {
		return complaint, entry, from, err
	}

	from = complaint.Status

	if err = authorize(user, role, complaint, change); err != nil {
		return complaint, entry, from, err
	}

	fields, err := s.plan(&complaint, change, now)
	if err != nil {
		return complaint, entry, from, err
	}

	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = user
	complaint.ModifiedAt = now
	complaint.ModifiedBy = user

	entries := []model.Update{}

	if change.status != constant.Empty || change.message != constant.Empty {
		entry = model.Update{
			ID:          uuid.NewString(),
			ComplaintID: complaint.ID,
			Message:     change.message,
			Photos:      change.photos,
			CreatedAt:   now,
			CreatedBy:   user,
		}

		if change.status != constant.Empty {
			status := change.status
			entry.Status = &status
		}

		if change.costUpdate != nil {
			entry.CostUpdate = decimal.NewNullDecimal(*change.costUpdate)
		}

		entries = append(entries, entry)
	}

	if err = s.repo.ApplyChange(ctx, id, complaint.Version, fields, entries...); err != nil {
		if !errors.Is(err, repository.ErrVersionConflict) {
			log.Error().Err(err).Msg("failed to update complaint")

			err = fmt.Errorf("failed to update complaint: %w", err)
		}

		return complaint, entry, from, err
	}

	complaint.Version++

	return complaint, entry, from, nil
}

// plan applies the change to complaint in memory and returns the columns to write.
func (s *serviceImpl) plan(complaint *model.Complaint, change mutation, now time.Time) (map[string]any, error) {
	fields := map[string]any{}

	if change.priority != constant.Empty && change.priority != complaint.Priority {
		if err := s.engine.Reprioritize(&complaint.Record, change.priority); err != nil {
			return nil, failure.BadRequest(err) // nolint:wrapcheck
		}

		fields[model.FieldPriority] = complaint.Priority
		fields[model.FieldSLAHours] = complaint.SLAHours
		fields[model.FieldSLADeadline] = complaint.SLADeadline
	}

	if change.assignedTo != nil {
		assignee := *change.assignedTo
		complaint.AssignedTo = &assignee
		fields[model.FieldAssignedTo] = assignee
	}

	if change.status != constant.Empty {
		if change.status == lifecycle.StatusAssigned && complaint.AssignedTo == nil {
			return nil, failure.BadRequestFromString("assigned_to is required when assigning a complaint") // nolint:wrapcheck
		}

		applied, err := s.engine.Transition(&complaint.Record, change.status, change.message, now)
		if err != nil {
			return nil, transitionFailure(err)
		}

		fields[model.FieldStatus] = complaint.Status
		fields[model.FieldResolvedAt] = complaint.ResolvedAt

		if applied.Rebased {
			complaint.BreachNotifiedAt = nil
			fields[model.FieldSLAStartedAt] = complaint.SLAStartedAt
			fields[model.FieldSLADeadline] = complaint.SLADeadline
			fields[model.FieldBreachNotifiedAt] = nil
		}
	}

	if change.estimatedCost != nil {
		complaint.EstimatedCost = *change.estimatedCost
		fields[model.FieldEstimatedCost] = complaint.EstimatedCost
	}

	if change.costUpdate != nil {
		complaint.ActualCost = complaint.ActualCost.Add(*change.costUpdate)
		fields[model.FieldActualCost] = complaint.ActualCost
	}

	if change.resolutionNotes != nil {
		complaint.ResolutionNotes = *change.resolutionNotes
		fields[model.FieldResolutionNotes] = complaint.ResolutionNotes
	}

	if change.preferredVisitTime != nil {
		complaint.PreferredVisitTime = change.preferredVisitTime
		fields[model.FieldPreferredVisitTime] = *change.preferredVisitTime
	}

	if change.allowTechnicianEntry != nil {
		complaint.AllowTechnicianEntry = *change.allowTechnicianEntry
		fields[model.FieldAllowTechnicianEntry] = complaint.AllowTechnicianEntry
	}

	return fields, nil
}

// invalidInput is a 400 naming the offending field when the engine reported one.
func invalidInput(err error) error {
	var validation *lifecycle.ValidationError
	if errors.As(err, &validation) {
		return failure.WithDetail(failure.BadRequest(err), "field", validation.Field) // nolint:wrapcheck
	}

	return failure.BadRequest(err) // nolint:wrapcheck
}

func transitionFailure(err error) error {
	var (
		invalid    *lifecycle.InvalidTransitionError
		validation *lifecycle.ValidationError
	)

	switch {
	case errors.As(err, &invalid):
		return failure.WithDetail(failure.Conflict(err.Error()), "allowed_transitions", invalid.From.Next()) // nolint:wrapcheck
	case errors.As(err, &validation):
		return invalidInput(err)
	default:
		return fmt.Errorf("failed to change complaint status: %w", err)
	}
}

func (s *serviceImpl) Timeline(ctx context.Context, id string) (res []dto.ComplaintUpdateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Timeline")
	defer scope.End()
	defer scope.TraceIfError(&err)

	complaint, err := s.cached(ctx, id)
	if err != nil {
		return res, err
	}

	if err = canView(ctx, complaint); err != nil {
		return res, err
	}

	updates, err := s.repo.Timeline(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaint timeline")

		return res, fmt.Errorf("failed to get complaint timeline: %w", err)
	}

	return dto.FromUpdates(updates), nil
}

func (s *serviceImpl) Compliance(ctx context.Context, buildingID string) (res dto.ComplianceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Compliance")
	defer scope.End()
	defer scope.TraceIfError(&err)

	stats, err := s.repo.Compliance(ctx, buildingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get compliance stats")

		return res, fmt.Errorf("failed to get compliance stats: %w", err)
	}

	res.FromModel(stats)

	return res, nil
}

func (s *serviceImpl) ComplaintStats(ctx context.Context, query dto.StatsQuery) (res dto.ComplaintStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ComplaintStats")
	defer scope.End()
	defer scope.TraceIfError(&err)

	since := timezone.Now().AddDate(0, 0, -query.Days)

	stats, err := s.repo.Stats(ctx, query.BuildingID, since)
	if err != nil {
		log.Error().Err(err).Msg("failed to get complaint stats")

		return res, fmt.Errorf("failed to get complaint stats: %w", err)
	}

	compliance, err := s.repo.Compliance(ctx, query.BuildingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get compliance stats")

		return res, fmt.Errorf("failed to get compliance stats: %w", err)
	}

	res.FromModel(query.Days, stats, compliance)

	return res, nil
}

func (s *serviceImpl) TechnicianStats(ctx context.Context, query dto.StatsQuery) (res dto.TechnicianStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TechnicianStats")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()

	stats, err := s.repo.TechnicianStats(ctx, query.BuildingID, now.AddDate(0, 0, -query.Days), now)
	if err != nil {
		log.Error().Err(err).Msg("failed to get technician stats")

		return res, fmt.Errorf("failed to get technician stats: %w", err)
	}

	res.FromModels(query.Days, stats)

	return res, nil
}

// Delete removes a complaint and, through the foreign key, its timeline.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if complaint exists")

		return fmt.Errorf("failed to check if complaint exists: %w", err)
	}

	if !exist {
		return failure.NotFound("complaint not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete complaint")

		return fmt.Errorf("failed to delete complaint: %w", err)
	}

	go EvictCaches(context.WithoutCancel(ctx), s.cache, id)

	return nil
}

func (s *serviceImpl) Statuses(_ context.Context) []lifecycle.Presentation {
	return lifecycle.Catalog()
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, from lifecycle.Status, complaint model.Complaint) {
	if !s.cfg.Kafka.Enable {
		return
	}

	actor, _ := shared.Actor(ctx)
	event := dto.ComplaintEvent{
		Type:        eventType,
		ComplaintID: complaint.ID,
		BuildingID:  complaint.BuildingID,
		From:        from,
		To:          complaint.Status,
		Priority:    complaint.Priority,
		AssignedTo:  complaint.AssignedTo,
		SLADeadline: complaint.SLADeadline,
		ActorID:     actor,
		OccurredAt:  timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Complaint, kafka.Message{Key: complaint.ID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("complaintID", complaint.ID).Str("event", eventType).Msg("failed to publish complaint event")
		}
	}()
}

// EvictCaches drops the cached copy of complaint id together with every cached list and count.
func EvictCaches(ctx context.Context, redisCache cache.RedisCache, id string) {
	if err := redisCache.Delete(ctx, shared.BuildCacheKey(cacheGetComplaint, id)); err != nil {
		log.Error().Err(err).Str("complaintID", id).Msg("failed to delete complaint cache")
	}

	shared.InvalidateCaches(ctx, redisCache, cacheGetAllComplaint)
	shared.InvalidateCaches(ctx, redisCache, cacheCountComplaint)
}
