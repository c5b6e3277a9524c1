package dto

import (
	"cmp"
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/shared/constant"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultStatsDays = 30

var hundred = decimal.NewFromInt(100)

// StatsQuery is the reporting window of the dashboard endpoints.
type StatsQuery struct {
	BuildingID string `json:"building_id" validate:"omitempty,max=64"`
	Days       int    `json:"days"        validate:"min=7,max=365"`
}

// StatsQueryFrom reads building_id and days, defaulting the window to 30 days.
func StatsQueryFrom(values url.Values) (StatsQuery, error) {
	query := StatsQuery{
		BuildingID: strings.TrimSpace(values.Get(model.FieldBuildingID)),
		Days:       DefaultStatsDays,
	}

	if raw := values.Get(constant.QueryParamDays); raw != constant.Empty {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("days must be a whole number: %w", err)
		}

		query.Days = days
	}

	return query, nil
}

type ComplaintStatsResponse struct {
	Days                   int                        `json:"days"`
	ByCategory             map[lifecycle.Category]int `json:"by_category"`
	ByStatus               map[lifecycle.Status]int   `json:"by_status"`
	ByPriority             map[lifecycle.Priority]int `json:"by_priority"`
	AvgResolutionTimeHours decimal.Decimal            `json:"avg_resolution_time_hours"`
	SLACompliance          ComplianceResponse         `json:"sla_compliance"`
}

func (r *ComplaintStatsResponse) FromModel(days int, stats model.Stats, compliance model.Compliance) {
	r.Days = days
	r.ByCategory = map[lifecycle.Category]int{}
	r.ByStatus = map[lifecycle.Status]int{}
	r.ByPriority = map[lifecycle.Priority]int{}

	for _, tally := range stats.Tallies {
		switch {
		case tally.Category != nil:
			r.ByCategory[*tally.Category] += tally.Total
		case tally.Status != nil:
			r.ByStatus[*tally.Status] += tally.Total
		case tally.Priority != nil:
			r.ByPriority[*tally.Priority] += tally.Total
		}
	}

	r.AvgResolutionTimeHours = stats.AvgResolutionHours.Round(2)
	r.SLACompliance.FromModel(compliance)
}

type TechnicianStatResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	TotalAssigned      int             `json:"total_assigned"`
	Completed          int             `json:"completed"`
	InProgress         int             `json:"in_progress"`
	SLABreached        int             `json:"sla_breached"`
	CompletionRate     decimal.Decimal `json:"completion_rate"`
	AvgResolutionHours decimal.Decimal `json:"avg_resolution_hours"`
}

func (r *TechnicianStatResponse) FromModel(stats model.TechnicianStats) {
	r.ID = stats.ID
	r.Name = stats.Name
	r.TotalAssigned = stats.TotalAssigned
	r.Completed = stats.Completed
	r.InProgress = stats.TotalAssigned - stats.Completed
	r.SLABreached = stats.SLABreached
	r.AvgResolutionHours = stats.AvgResolutionHours.Round(1)
	r.CompletionRate = decimal.Zero

	if stats.TotalAssigned > 0 {
		r.CompletionRate = decimal.NewFromInt(int64(stats.Completed)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(stats.TotalAssigned))).
			Round(1)
	}
}

type TechnicianStatsResponse struct {
	Days        int                      `json:"days"`
	Technicians []TechnicianStatResponse `json:"technicians"`
}

// FromModels orders technicians by completion rate, best first, then by name.
func (r *TechnicianStatsResponse) FromModels(days int, models []model.TechnicianStats) {
	r.Days = days
	r.Technicians = make([]TechnicianStatResponse, len(models))

	for i, mod := range models {
		r.Technicians[i].FromModel(mod)
	}

	slices.SortStableFunc(r.Technicians, func(a, b TechnicianStatResponse) int {
		if c := b.CompletionRate.Cmp(a.CompletionRate); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})
}
