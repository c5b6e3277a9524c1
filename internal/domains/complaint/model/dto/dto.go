package dto

import (
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	gModel "fixmycondo/shared/model"
	"fixmycondo/shared/timezone"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sortable lists the columns a complaint listing may be ordered by.
var Sortable = gDto.NewSortColumns(model.TableName,
	constant.FieldCreatedAt, model.FieldSLADeadline, model.FieldPriority, model.FieldStatus, model.FieldTitle)

type CreateComplaintRequest struct {
	Title                string             `json:"title"                  validate:"required,min=5,max=100"`
	Description          string             `json:"description"            validate:"omitempty,max=500"`
	Category             lifecycle.Category `json:"category"               validate:"required,enum"`
	Priority             lifecycle.Priority `json:"priority"               validate:"omitempty,enum"`
	BuildingID           string             `json:"building_id"            validate:"omitempty,max=64"`
	UnitID               string             `json:"unit_id"                validate:"omitempty,max=64"`
	Photos               []string           `json:"photos"                 validate:"omitempty,dive,url"`
	Videos               []string           `json:"videos"                 validate:"omitempty,dive,url"`
	PreferredVisitTime   string             `json:"preferred_visit_time"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AllowTechnicianEntry *bool              `json:"allow_technician_entry"`
}

func (c *CreateComplaintRequest) Input() lifecycle.CreateInput {
	return lifecycle.CreateInput{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
	}
}

func (c *CreateComplaintRequest) ToModel(id, user string, record lifecycle.Record) (model.Complaint, error) {
	visit, err := parseTime(c.PreferredVisitTime)
	if err != nil {
		return model.Complaint{}, err
	}

	allowEntry := true
	if c.AllowTechnicianEntry != nil {
		allowEntry = *c.AllowTechnicianEntry
	}

	return model.Complaint{
		ID:                   id,
		BuildingID:           c.BuildingID,
		UnitID:               c.UnitID,
		Title:                c.Title,
		Description:          c.Description,
		Record:               record,
		Photos:               c.Photos,
		Videos:               c.Videos,
		PreferredVisitTime:   visit,
		AllowTechnicianEntry: allowEntry,
		EstimatedCost:        decimal.Zero,
		ActualCost:           decimal.Zero,
		Version:              1,
		Metadata:             gModel.NewMetadata(user, record.SLAStartedAt),
	}, nil
}

type UpdateComplaintRequest struct {
	Status               lifecycle.Status   `json:"status"                 validate:"omitempty,enum"`
	Message              string             `json:"message"                validate:"omitempty,max=1000"`
	Priority             lifecycle.Priority `json:"priority"               validate:"omitempty,enum"`
	AssignedTo           *string            `json:"assigned_to"            validate:"omitempty,uuid"`
	EstimatedCost        *decimal.Decimal   `json:"estimated_cost"         validate:"omitempty,decimalmin=0"`
	ResolutionNotes      *string            `json:"resolution_notes"       validate:"omitempty,max=2000"`
	PreferredVisitTime   *string            `json:"preferred_visit_time"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AllowTechnicianEntry *bool              `json:"allow_technician_entry"`
}

func (u *UpdateComplaintRequest) IsEmpty() bool {
	return *u == UpdateComplaintRequest{}
}

func (u *UpdateComplaintRequest) VisitTime() (*time.Time, error) {
	if u.PreferredVisitTime == nil {
		return nil, nil
	}

	return parseTime(*u.PreferredVisitTime)
}

type CreateComplaintUpdateRequest struct {
	Status     lifecycle.Status `json:"status"      validate:"omitempty,enum"`
	Message    string           `json:"message"     validate:"required,max=1000"`
	Photos     []string         `json:"photos"      validate:"omitempty,dive,url"`
	CostUpdate *decimal.Decimal `json:"cost_update" validate:"omitempty,decimalmin=0"`
}

// ComplaintQuery carries the listing filters of GET /complaints.
type ComplaintQuery struct {
	Status       lifecycle.Status
	Category     lifecycle.Category
	Priority     lifecycle.Priority
	BuildingID   string
	AssignedToMe bool
	CreatedByMe  bool
	IsOverdue    *bool
	Search       string
}

type ComplaintResponse struct {
	ID                   string                 `json:"id"`
	BuildingID           string                 `json:"building_id,omitempty"`
	UnitID               string                 `json:"unit_id,omitempty"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	Category             lifecycle.Category     `json:"category"`
	Priority             lifecycle.Priority     `json:"priority"`
	Status               lifecycle.Status       `json:"status"`
	StatusDisplay        lifecycle.Presentation `json:"status_display"`
	AllowedTransitions   []lifecycle.Status     `json:"allowed_transitions"`
	AssignedTo           *string                `json:"assigned_to"`
	Photos               []string               `json:"photos"`
	Videos               []string               `json:"videos"`
	SLAHours             int                    `json:"sla_hours"`
	SLAStartedAt         string                 `json:"sla_started_at"`
	SLADeadline          string                 `json:"sla_deadline"`
	IsSLABreached        bool                   `json:"is_sla_breached"`
	Urgency              lifecycle.Urgency      `json:"urgency"`
	RemainingMinutes     int64                  `json:"remaining_minutes"`
	ResolvedAt           *string                `json:"resolved_at"`
	PreferredVisitTime   *string                `json:"preferred_visit_time"`
	AllowTechnicianEntry bool                   `json:"allow_technician_entry"`
	ResolutionNotes      string                 `json:"resolution_notes"`
	EstimatedCost        decimal.Decimal        `json:"estimated_cost"`
	ActualCost           decimal.Decimal        `json:"actual_cost"`
	Version              int                    `json:"version"`
	gDto.Metadata
}

// FromModel fills the response. Breach, urgency and remaining time are evaluated at now.
func (r *ComplaintResponse) FromModel(model model.Complaint, now time.Time) {
	r.ID = model.ID
	r.BuildingID = model.BuildingID
	r.UnitID = model.UnitID
	r.Title = model.Title
	r.Description = model.Description
	r.Category = model.Category
	r.Priority = model.Priority
	r.Status = model.Status
	r.StatusDisplay = lifecycle.Describe(model.Status)
	r.AllowedTransitions = model.Status.Next()
	r.AssignedTo = model.AssignedTo
	r.Photos = nonNil(model.Photos)
	r.Videos = nonNil(model.Videos)
	r.SLAHours = model.SLAHours
	r.SLAStartedAt = timezone.Format(model.SLAStartedAt, constant.DateFormat)
	r.SLADeadline = timezone.Format(model.SLADeadline, constant.DateFormat)
	r.IsSLABreached = lifecycle.IsBreached(model.Record, now)
	r.Urgency = lifecycle.UrgencyOf(model.Record, now)
	r.RemainingMinutes = int64(lifecycle.Remaining(model.Record, now) / time.Minute)
	r.ResolvedAt = formatOptional(model.ResolvedAt)
	r.PreferredVisitTime = formatOptional(model.PreferredVisitTime)
	r.AllowTechnicianEntry = model.AllowTechnicianEntry
	r.ResolutionNotes = model.ResolutionNotes
	r.EstimatedCost = model.EstimatedCost
	r.ActualCost = model.ActualCost
	r.Version = model.Version
	r.Metadata.FromModel(model.Metadata)
}

type GetComplaintsResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	gDto.Pagination
}

func (r *GetComplaintsResponse) FromModels(models []model.Complaint, totalData, limit int, now time.Time) {
	r.Pagination = gDto.NewPagination(totalData, limit)

	r.Complaints = make([]ComplaintResponse, len(models))
	for i, mod := range models {
		r.Complaints[i].FromModel(mod, now)
	}
}

type ComplaintUpdateResponse struct {
	ID          string            `json:"id"`
	ComplaintID string            `json:"complaint_id"`
	Status      *lifecycle.Status `json:"status"`
	StatusLabel string            `json:"status_label,omitempty"`
	Message     string            `json:"message"`
	Photos      []string          `json:"photos"`
	CostUpdate  *decimal.Decimal  `json:"cost_update"`
	CreatedAt   string            `json:"created_at"`
	CreatedBy   string            `json:"created_by"`
}

func (r *ComplaintUpdateResponse) FromModel(model model.Update) {
	r.ID = model.ID
	r.ComplaintID = model.ComplaintID
	r.Status = model.Status
	r.Message = model.Message
	r.Photos = nonNil(model.Photos)
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	r.CreatedBy = model.CreatedBy

	if model.Status != nil {
		r.StatusLabel = lifecycle.Describe(*model.Status).Label
	}

	if model.CostUpdate.Valid {
		cost := model.CostUpdate.Decimal
		r.CostUpdate = &cost
	}
}

func FromUpdates(models []model.Update) []ComplaintUpdateResponse {
	res := make([]ComplaintUpdateResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type ComplianceResponse struct {
	TotalResolved  int     `json:"total_resolved"`
	ResolvedOnTime int     `json:"resolved_on_time"`
	ResolvedLate   int     `json:"resolved_late"`
	ComplianceRate float64 `json:"compliance_rate"`
}

// FromModel derives the late count and the rate. With nothing resolved the rate is 100.
func (r *ComplianceResponse) FromModel(model model.Compliance) {
	r.TotalResolved = model.TotalResolved
	r.ResolvedOnTime = model.ResolvedOnTime
	r.ResolvedLate = model.TotalResolved - model.ResolvedOnTime
	r.ComplianceRate = 100

	if model.TotalResolved > 0 {
		r.ComplianceRate = decimal.NewFromInt(int64(model.ResolvedOnTime)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(model.TotalResolved))).
			Round(2).
			InexactFloat64()
	}
}

// ComplaintEvent is published on the complaint topic.
type ComplaintEvent struct {
	Type        string             `json:"type"`
	ComplaintID string             `json:"complaint_id"`
	BuildingID  string             `json:"building_id,omitempty"`
	From        lifecycle.Status   `json:"from,omitempty"`
	To          lifecycle.Status   `json:"to"`
	Priority    lifecycle.Priority `json:"priority"`
	AssignedTo  *string            `json:"assigned_to,omitempty"`
	SLADeadline time.Time          `json:"sla_deadline"`
	ActorID     string             `json:"actor_id"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func parseTime(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil
	}

	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", value, err)
	}

	return &parsed, nil
}

func formatOptional(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
