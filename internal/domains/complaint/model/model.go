package model

import (
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/shared/model"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "complaints"
	EntityName = "complaint"

	FieldID                   = "id"
	FieldBuildingID           = "building_id"
	FieldUnitID               = "unit_id"
	FieldTitle                = "title"
	FieldDescription          = "description"
	FieldStatus               = "status"
	FieldPriority             = "priority"
	FieldCategory             = "category"
	FieldSLAHours             = "sla_hours"
	FieldSLAStartedAt         = "sla_started_at"
	FieldSLADeadline          = "sla_deadline"
	FieldResolvedAt           = "resolved_at"
	FieldAssignedTo           = "assigned_to"
	FieldPhotos               = "photos"
	FieldVideos               = "videos"
	FieldPreferredVisitTime   = "preferred_visit_time"
	FieldAllowTechnicianEntry = "allow_technician_entry"
	FieldResolutionNotes      = "resolution_notes"
	FieldEstimatedCost        = "estimated_cost"
	FieldActualCost           = "actual_cost"
	FieldBreachNotifiedAt     = "breach_notified_at"
	FieldVersion              = "version"
)

const (
	UpdateTableName  = "complaint_updates"
	UpdateEntityName = "complaint_update"

	FieldComplaintID = "complaint_id"
	FieldMessage     = "message"
	FieldCostUpdate  = "cost_update"
)

type Complaint struct {
	ID          string `db:"id"`
	BuildingID  string `db:"building_id"`
	UnitID      string `db:"unit_id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	lifecycle.Record
	AssignedTo           *string         `db:"assigned_to"`
	Photos               pq.StringArray  `db:"photos"`
	Videos               pq.StringArray  `db:"videos"`
	PreferredVisitTime   *time.Time      `db:"preferred_visit_time"`
	AllowTechnicianEntry bool            `db:"allow_technician_entry"`
	ResolutionNotes      string          `db:"resolution_notes"`
	EstimatedCost        decimal.Decimal `db:"estimated_cost"`
	ActualCost           decimal.Decimal `db:"actual_cost"`
	BreachNotifiedAt     *time.Time      `db:"breach_notified_at"`
	Version              int             `db:"version"`
	model.Metadata
}

// Update is one timeline entry. Entries are append-only.
type Update struct {
	ID          string              `db:"id"`
	ComplaintID string              `db:"complaint_id"`
	Status      *lifecycle.Status   `db:"status"`
	Message     string              `db:"message"`
	Photos      pq.StringArray      `db:"photos"`
	CostUpdate  decimal.NullDecimal `db:"cost_update"`
	CreatedAt   time.Time           `db:"created_at"`
	CreatedBy   string              `db:"created_by"`
}

// Compliance is the aggregate of resolved complaints against their deadlines.
type Compliance struct {
	TotalResolved  int `db:"total_resolved"`
	ResolvedOnTime int `db:"resolved_on_time"`
}

// Tally is one grouped count. Exactly one of the dimensions is set per row.
type Tally struct {
	Category *lifecycle.Category `db:"category"`
	Status   *lifecycle.Status   `db:"status"`
	Priority *lifecycle.Priority `db:"priority"`
	Total    int                 `db:"total"`
}

// Stats summarizes the complaints created in a reporting window.
type Stats struct {
	Tallies            []Tally
	AvgResolutionHours decimal.Decimal `db:"avg_resolution_hours"`
}

// TechnicianStats is the workload of one technician in a reporting window.
type TechnicianStats struct {
	ID                 string          `db:"id"`
	Name               string          `db:"name"`
	TotalAssigned      int             `db:"total_assigned"`
	Completed          int             `db:"completed"`
	SLABreached        int             `db:"sla_breached"`
	AvgResolutionHours decimal.Decimal `db:"avg_resolution_hours"`
}
