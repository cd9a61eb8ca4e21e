package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// RecordMeetingCommand stores an existing meeting so later searches treat
// its time as taken.
type RecordMeetingCommand struct {
	UserID uuid.UUID
	Title  string
	Start  time.Time
	End    time.Time
	// Status defaults to scheduled.
	Status string
}

// RecordMeetingResult contains the stored meeting.
type RecordMeetingResult struct {
	MeetingID uuid.UUID
	Meeting   domain.Meeting
	Events    []sharedDomain.DomainEvent
}

// RecordMeetingHandler handles the RecordMeetingCommand.
type RecordMeetingHandler struct {
	meetingRepo domain.MeetingRepository
	uow         sharedApplication.UnitOfWork
	audit       *eventbus.AuditTrail
	clock       sharedApplication.Clock
}

// NewRecordMeetingHandler creates a new RecordMeetingHandler.
func NewRecordMeetingHandler(
	meetingRepo domain.MeetingRepository,
	uow sharedApplication.UnitOfWork,
	audit *eventbus.AuditTrail,
	clock sharedApplication.Clock,
) *RecordMeetingHandler {
	return &RecordMeetingHandler{
		meetingRepo: meetingRepo,
		uow:         uow,
		audit:       audit,
		clock:       clock.OrSystem(),
	}
}

// Handle executes the RecordMeetingCommand.
func (h *RecordMeetingHandler) Handle(ctx context.Context, cmd RecordMeetingCommand) (*RecordMeetingResult, error) {
	dateRange, err := domain.NewTimeRange(cmd.Start, cmd.End)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting time: %w", err)
	}

	status := domain.MeetingStatusScheduled
	if cmd.Status != "" {
		status, err = domain.ParseMeetingStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
	}

	now := h.clock()
	meeting, err := domain.NewMeeting(cmd.UserID, cmd.Title, dateRange, now)
	if err != nil {
		return nil, err
	}
	if status != domain.MeetingStatusScheduled {
		meeting = meeting.WithStatus(status, now)
	}

	var result *RecordMeetingResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.meetingRepo.Save(txCtx, meeting); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewMeetingRecorded(meeting)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, cmd.UserID))

		result = &RecordMeetingResult{
			MeetingID: meeting.ID(),
			Meeting:   meeting,
			Events:    events,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.audit.Record(ctx, result.Events...)

	return result, nil
}
