package service

import (
	"context"
	"fixmycondo/internal/domains/complaint/lifecycle"
	"fixmycondo/internal/domains/complaint/model"
	"fixmycondo/shared"
	"fixmycondo/shared/constant"
	"fixmycondo/shared/failure"
	"time"

	"github.com/shopspring/decimal"
)

// mutation is the common shape of a PATCH and a timeline post.
type mutation struct {
	status               lifecycle.Status
	message              string
	priority             lifecycle.Priority
	assignedTo           *string
	estimatedCost        *decimal.Decimal
	costUpdate           *decimal.Decimal
	photos               []string
	resolutionNotes      *string
	preferredVisitTime   *time.Time
	allowTechnicianEntry *bool
}

// residentStatuses are the only transitions a reporter may request on their own complaint.
var residentStatuses = map[lifecycle.Status]bool{
	lifecycle.StatusCancelled: true,
	lifecycle.StatusReopened:  true,
}

func canView(ctx context.Context, complaint model.Complaint) error {
	user, role := shared.Actor(ctx)

	if role == constant.RoleResident && complaint.CreatedBy != user {
		return failure.Forbidden("you can only access your own complaints") // nolint:wrapcheck
	}

	return nil
}

// authorize checks who may change what. Management may change anything, field staff work the
// lifecycle and the costs, residents cancel, reopen and comment on their own complaints.
func authorize(user, role string, complaint model.Complaint, change mutation) error {
	switch {
	case shared.IsManagement(role), role == constant.RoleSystem:
		return nil
	case shared.IsFieldStaff(role):
		if change.priority != constant.Empty || change.assignedTo != nil {
			return failure.Forbidden("only management can reprioritize or reassign complaints") // nolint:wrapcheck
		}

		return nil
	case role == constant.RoleResident:
		if complaint.CreatedBy != user {
			return failure.Forbidden("you can only update your own complaints") // nolint:wrapcheck
		}

		if change.status != constant.Empty && !residentStatuses[change.status] {
			return failure.Forbidden("residents can only cancel or reopen their complaints") // nolint:wrapcheck
		}

		if change.priority != constant.Empty || change.assignedTo != nil || change.estimatedCost != nil ||
			change.costUpdate != nil || change.resolutionNotes != nil {
			return failure.Forbidden("residents cannot change the handling of a complaint") // nolint:wrapcheck
		}

		return nil
	default:
		return failure.ForbiddenError
	}
}
