// Package lifecycle holds the complaint status state machine and the SLA arithmetic
// that goes with it. Every function takes the current instant as a parameter and
// never reads a clock.
package lifecycle

import (
	"strings"
	"time"
	"unicode/utf8"
)

type Status string

const (
	StatusSubmitted     Status = "submitted"
	StatusReviewing     Status = "reviewing"
	StatusAssigned      Status = "assigned"
	StatusInProgress    Status = "in_progress"
	StatusPendingParts  Status = "pending_parts"
	StatusPendingVendor Status = "pending_vendor"
	StatusCompleted     Status = "completed"
	StatusClosed        Status = "closed"
	StatusReopened      Status = "reopened"
	StatusCancelled     Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusSubmitted,
	StatusReviewing,
	StatusAssigned,
	StatusInProgress,
	StatusPendingParts,
	StatusPendingVendor,
	StatusCompleted,
	StatusClosed,
	StatusReopened,
	StatusCancelled,
}

var transitions = map[Status][]Status{
	StatusSubmitted:     {StatusReviewing, StatusCancelled},
	StatusReviewing:     {StatusAssigned, StatusCancelled},
	StatusAssigned:      {StatusInProgress, StatusCancelled},
	StatusInProgress:    {StatusPendingParts, StatusPendingVendor, StatusCompleted, StatusCancelled},
	StatusPendingParts:  {StatusInProgress, StatusCancelled},
	StatusPendingVendor: {StatusInProgress, StatusCancelled},
	StatusCompleted:     {StatusClosed, StatusReopened},
	StatusClosed:        {StatusReopened},
	StatusReopened:      {StatusReviewing, StatusInProgress},
}

func (s Status) Valid() bool {
	_, ok := presentations[s]

	return ok
}

// IsTerminal reports whether the status is no longer SLA tracked.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusClosed || s == StatusCancelled
}

// IsResolved reports whether a complaint in this status carries a resolved_at.
func (s Status) IsResolved() bool {
	return s == StatusCompleted || s == StatusClosed
}

// CanTransition reports whether the edge s -> to exists.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

// Next returns the statuses reachable from s in one step.
func (s Status) Next() []Status {
	return append([]Status(nil), transitions[s]...)
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryLift       Category = "lift"
	CategorySecurity   Category = "security"
	CategoryCommonArea Category = "common_area"
	CategoryCleaning   Category = "cleaning"
	CategoryRenovation Category = "renovation"
	CategoryStructural Category = "structural"
	CategoryPest       Category = "pest"
	CategoryParking    Category = "parking"
	CategoryOther      Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryLift, CategorySecurity, CategoryCommonArea,
		CategoryCleaning, CategoryRenovation, CategoryStructural, CategoryPest, CategoryParking, CategoryOther:
		return true
	default:
		return false
	}
}

type Urgency string

const (
	UrgencyOK       Urgency = "ok"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
	UrgencyBreached Urgency = "breached"
)

const (
	CriticalWindow = 4 * time.Hour
	WarningWindow  = 24 * time.Hour
)

const (
	TitleMinLength       = 5
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
)

// SLAPolicy maps each priority to the hours allotted for resolution.
type SLAPolicy struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{Critical: 4, High: 24, Medium: 48, Low: 72}
}

func (p SLAPolicy) Hours(priority Priority) int {
	switch priority {
	case PriorityCritical:
		return p.Critical
	case PriorityHigh:
		return p.High
	case PriorityLow:
		return p.Low
	default:
		return p.Medium
	}
}

// ReopenPolicy decides what happens to the deadline when a resolved complaint is reopened.
type ReopenPolicy string

const (
	// ReopenExtend restarts the SLA clock at the reopen instant.
	ReopenExtend ReopenPolicy = "extend"
	// ReopenKeep leaves the original deadline in place.
	ReopenKeep ReopenPolicy = "keep"
)

// Record is the SLA relevant state of a complaint.
type Record struct {
	Status       Status     `db:"status"`
	Priority     Priority   `db:"priority"`
	Category     Category   `db:"category"`
	SLAHours     int        `db:"sla_hours"`
	SLAStartedAt time.Time  `db:"sla_started_at"`
	SLADeadline  time.Time  `db:"sla_deadline"`
	ResolvedAt   *time.Time `db:"resolved_at"`
}

type CreateInput struct {
	Title       string
	Description string
	Category    Category
	Priority    Priority
}

// Change describes one applied transition. The caller records it as a timeline entry.
type Change struct {
	From    Status
	To      Status
	Message string
	At      time.Time
	// Rebased is set when a reopen restarted the SLA clock.
	Rebased bool
}

type Engine struct {
	policy SLAPolicy
	reopen ReopenPolicy
}

func NewEngine(policy SLAPolicy, reopen ReopenPolicy) *Engine {
	if reopen != ReopenKeep {
		reopen = ReopenExtend
	}

	return &Engine{policy: policy, reopen: reopen}
}

func (e *Engine) Policy() SLAPolicy {
	return e.policy
}

// Create validates the input and returns the initial record of a new complaint.
func (e *Engine) Create(input CreateInput, now time.Time) (Record, error) {
	titleLength := utf8.RuneCountInString(strings.TrimSpace(input.Title))
	if titleLength < TitleMinLength || titleLength > TitleMaxLength {
		return Record{}, &ValidationError{Field: "title", Reason: "must be between 5 and 100 characters"}
	}

	if utf8.RuneCountInString(input.Description) > DescriptionMaxLength {
		return Record{}, &ValidationError{Field: "description", Reason: "must be at most 500 characters"}
	}

	if !input.Category.Valid() {
		return Record{}, &ValidationError{Field: "category", Reason: "unknown category " + string(input.Category)}
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	if !priority.Valid() {
		return Record{}, &ValidationError{Field: "priority", Reason: "unknown priority " + string(priority)}
	}

	hours := e.policy.Hours(priority)

	return Record{
		Status:       StatusSubmitted,
		Priority:     priority,
		Category:     input.Category,
		SLAHours:     hours,
		SLAStartedAt: now,
		SLADeadline:  now.Add(time.Duration(hours) * time.Hour),
	}, nil
}

// Transition moves rec to the target status. rec is only modified when the edge is allowed.
func (e *Engine) Transition(rec *Record, to Status, message string, now time.Time) (Change, error) {
	if strings.TrimSpace(message) == "" {
		return Change{}, &ValidationError{Field: "message", Reason: "is required when changing status"}
	}

	if !rec.Status.CanTransition(to) {
		return Change{}, &InvalidTransitionError{From: rec.Status, To: to}
	}

	change := Change{From: rec.Status, To: to, Message: message, At: now}

	switch {
	case to.IsResolved():
		resolvedAt := now
		rec.ResolvedAt = &resolvedAt
	case to == StatusReopened:
		rec.ResolvedAt = nil

		if e.reopen == ReopenExtend {
			rec.SLAStartedAt = now
			rec.SLADeadline = now.Add(time.Duration(rec.SLAHours) * time.Hour)
			change.Rebased = true
		}
	}

	rec.Status = to

	return change, nil
}

// Reprioritize applies a revised priority and recomputes the deadline from the SLA start.
func (e *Engine) Reprioritize(rec *Record, priority Priority) error {
	if !priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "unknown priority " + string(priority)}
	}

	rec.Priority = priority
	rec.SLAHours = e.policy.Hours(priority)
	rec.SLADeadline = rec.SLAStartedAt.Add(time.Duration(rec.SLAHours) * time.Hour)

	return nil
}

// IsBreached reports whether the deadline has passed on a complaint that is still tracked.
func IsBreached(rec Record, now time.Time) bool {
	return !rec.Status.IsTerminal() && now.After(rec.SLADeadline)
}

// Remaining is the time left until the deadline, negative once it has passed.
func Remaining(rec Record, now time.Time) time.Duration {
	return rec.SLADeadline.Sub(now)
}

func UrgencyOf(rec Record, now time.Time) Urgency {
	if rec.Status.IsTerminal() {
		return UrgencyOK
	}

	if IsBreached(rec, now) {
		return UrgencyBreached
	}

	switch remaining := Remaining(rec, now); {
	case remaining <= CriticalWindow:
		return UrgencyCritical
	case remaining <= WarningWindow:
		return UrgencyWarning
	default:
		return UrgencyOK
	}
}
