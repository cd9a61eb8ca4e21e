package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/execassist/internal/app"
	meetingCommands "github.com/felixgeelhaar/execassist/internal/scheduling/application/commands"
	meetingQueries "github.com/felixgeelhaar/execassist/internal/scheduling/application/queries"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/mcp-go"
)

type meetingRecordInput struct {
	Title  string `json:"title" jsonschema:"required"`
	Start  string `json:"start" jsonschema:"required"`
	End    string `json:"end" jsonschema:"required"`
	Status string `json:"status,omitempty"`
}

type meetingIDInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"required"`
}

type meetingListInput struct {
	From             string `json:"from,omitempty"`
	Days             int    `json:"days,omitempty"`
	IncludeCancelled bool   `json:"include_cancelled,omitempty"`
}

type meetingRequestInput struct {
	Title           string   `json:"title"`
	Duration        int      `json:"duration"`
	Attendees       []string `json:"attendees"`
	PreferredTimes  []string `json:"preferred_times,omitempty"`
	Earliest        string   `json:"earliest,omitempty"`
	Latest          string   `json:"latest,omitempty"`
	WorkStart       string   `json:"work_start,omitempty"`
	WorkEnd         string   `json:"work_end,omitempty"`
	IncludeWeekends bool     `json:"include_weekends,omitempty"`
	BufferMinutes   *int     `json:"buffer_minutes,omitempty"`
}

func (in meetingRequestInput) toApp() app.MeetingRequestInput {
	return app.MeetingRequestInput{
		Title:           in.Title,
		DurationMinutes: in.Duration,
		Attendees:       in.Attendees,
		PreferredTimes:  in.PreferredTimes,
		Earliest:        in.Earliest,
		Latest:          in.Latest,
		WorkStart:       in.WorkStart,
		WorkEnd:         in.WorkEnd,
		IncludeWeekends: in.IncludeWeekends,
		BufferMinutes:   in.BufferMinutes,
	}
}

type validateOutput struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func registerMeetingTools(srv *mcp.Server, t *toolSet) {
	srv.Tool("meeting.record").
		Description("Record a meeting that blocks time on the calendar").
		Handler(t.meetingRecord)

	srv.Tool("meeting.cancel").
		Description("Cancel a recorded meeting").
		Handler(t.meetingCancel)

	srv.Tool("meeting.list").
		Description("List recorded meetings in a period").
		Handler(t.meetingList)

	srv.Tool("meeting.validate").
		Description("Check a meeting request without searching for slots").
		Handler(t.meetingValidate)

	srv.Tool("meeting.suggest").
		Description("Suggest ranked meeting times around existing meetings").
		Handler(t.meetingSuggest)
}

func (t *toolSet) meetingRecord(ctx context.Context, input meetingRecordInput) (meetingQueries.MeetingDTO, error) {
	return timed(ctx, t, "meeting.record", func(ctx context.Context) (meetingQueries.MeetingDTO, error) {
		if strings.TrimSpace(input.Title) == "" {
			return meetingQueries.MeetingDTO{}, errors.New("title is required")
		}
		start, err := t.c.RequestDefaults.ParseTime(input.Start)
		if err != nil {
			return meetingQueries.MeetingDTO{}, err
		}
		end, err := t.c.RequestDefaults.ParseTime(input.End)
		if err != nil {
			return meetingQueries.MeetingDTO{}, err
		}

		res, err := t.c.RecordMeetingHandler.Handle(ctx, meetingCommands.RecordMeetingCommand{
			UserID: t.c.UserID,
			Title:  input.Title,
			Start:  start,
			End:    end,
			Status: input.Status,
		})
		if err != nil {
			return meetingQueries.MeetingDTO{}, err
		}
		return meetingQueries.NewMeetingDTO(res.Meeting), nil
	})
}

func (t *toolSet) meetingCancel(ctx context.Context, input meetingIDInput) (meetingQueries.MeetingDTO, error) {
	return timed(ctx, t, "meeting.cancel", func(ctx context.Context) (meetingQueries.MeetingDTO, error) {
		id, err := parseUUID(input.MeetingID)
		if err != nil {
			return meetingQueries.MeetingDTO{}, err
		}
		res, err := t.c.CancelMeetingHandler.Handle(ctx, meetingCommands.CancelMeetingCommand{
			MeetingID: id,
			UserID:    t.c.UserID,
		})
		if err != nil {
			return meetingQueries.MeetingDTO{}, err
		}
		return meetingQueries.NewMeetingDTO(res.Meeting), nil
	})
}

func (t *toolSet) meetingList(ctx context.Context, input meetingListInput) ([]meetingQueries.MeetingDTO, error) {
	return timed(ctx, t, "meeting.list", func(ctx context.Context) ([]meetingQueries.MeetingDTO, error) {
		start := t.c.Clock()
		if input.From != "" {
			var err error
			if start, err = t.c.RequestDefaults.ParseTime(input.From); err != nil {
				return nil, err
			}
		}
		days := input.Days
		if days <= 0 {
			days = 7
		}
		return t.c.ListMeetingsHandler.Handle(ctx, meetingQueries.ListMeetingsQuery{
			UserID:           t.c.UserID,
			Start:            start,
			End:              start.Add(time.Duration(days) * 24 * time.Hour),
			IncludeCancelled: input.IncludeCancelled,
		})
	})
}

func (t *toolSet) meetingValidate(ctx context.Context, input meetingRequestInput) (validateOutput, error) {
	return timed(ctx, t, "meeting.validate", func(context.Context) (validateOutput, error) {
		req, err := t.c.RequestDefaults.BuildSchedulingRequest(input.toApp())
		if err != nil {
			return validateOutput{}, err
		}
		errs := schedulingDomain.ValidateMeetingRequest(req)
		if errs == nil {
			errs = []string{}
		}
		return validateOutput{Valid: len(errs) == 0, Errors: errs}, nil
	})
}

func (t *toolSet) meetingSuggest(ctx context.Context, input meetingRequestInput) (meetingQueries.SchedulingResultDTO, error) {
	return timed(ctx, t, "meeting.suggest", func(ctx context.Context) (meetingQueries.SchedulingResultDTO, error) {
		req, err := t.c.RequestDefaults.BuildSchedulingRequest(input.toApp())
		if err != nil {
			return meetingQueries.SchedulingResultDTO{}, err
		}
		res, err := t.c.SuggestMeetingTimesHandler.Handle(ctx, meetingQueries.SuggestMeetingTimesQuery{
			UserID:  t.c.UserID,
			Request: req,
		})
		if err != nil {
			return meetingQueries.SchedulingResultDTO{}, err
		}
		return meetingQueries.NewSchedulingResultDTO(res, req.Loc()), nil
	})
}
