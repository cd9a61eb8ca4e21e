package commands

import (
	"context"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// CancelMeetingCommand marks a stored meeting cancelled.
type CancelMeetingCommand struct {
	MeetingID uuid.UUID
	UserID    uuid.UUID
}

// CancelMeetingResult contains the new meeting snapshot.
type CancelMeetingResult struct {
	Meeting domain.Meeting
	Events  []sharedDomain.DomainEvent
}

// CancelMeetingHandler handles the CancelMeetingCommand.
type CancelMeetingHandler struct {
	meetingRepo domain.MeetingRepository
	uow         sharedApplication.UnitOfWork
	audit       *eventbus.AuditTrail
	clock       sharedApplication.Clock
}

// NewCancelMeetingHandler creates a new CancelMeetingHandler.
func NewCancelMeetingHandler(
	meetingRepo domain.MeetingRepository,
	uow sharedApplication.UnitOfWork,
	audit *eventbus.AuditTrail,
	clock sharedApplication.Clock,
) *CancelMeetingHandler {
	return &CancelMeetingHandler{
		meetingRepo: meetingRepo,
		uow:         uow,
		audit:       audit,
		clock:       clock.OrSystem(),
	}
}

// Handle executes the CancelMeetingCommand. Cancelling an already
// cancelled meeting succeeds without recording anything.
func (h *CancelMeetingHandler) Handle(ctx context.Context, cmd CancelMeetingCommand) (*CancelMeetingResult, error) {
	var result *CancelMeetingResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		meeting, err := h.meetingRepo.FindByID(txCtx, cmd.MeetingID)
		if err != nil {
			return err
		}
		if meeting.UserID() != cmd.UserID {
			return domain.ErrMeetingNotFound
		}
		if meeting.Status() == domain.MeetingStatusCancelled {
			result = &CancelMeetingResult{Meeting: meeting}
			return nil
		}

		cancelled := meeting.WithStatus(domain.MeetingStatusCancelled, h.clock())
		if err := h.meetingRepo.Save(txCtx, cancelled); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewMeetingCancelled(cancelled.ID())}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, cmd.UserID))

		result = &CancelMeetingResult{Meeting: cancelled, Events: events}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.audit.Record(ctx, result.Events...)

	return result, nil
}
