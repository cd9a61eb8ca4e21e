package caldav

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarObject(path string, events ...*ical.Event) *caldav.CalendarObject {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	for _, event := range events {
		cal.Children = append(cal.Children, event.Component)
	}
	return &caldav.CalendarObject{Path: path, Data: cal}
}

func timedEvent(uid, summary string, start, end time.Time) *ical.Event {
	event := ical.NewEvent()
	if uid != "" {
		event.Props.SetText(ical.PropUID, uid)
	}
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)
	return event
}

func TestNewSource(t *testing.T) {
	source := NewSource("https://caldav.example.com", "user", "pass", nil)

	require.NotNil(t, source)
	assert.Equal(t, "https://caldav.example.com", source.baseURL)
	assert.Equal(t, "user", source.username)
	assert.Equal(t, "pass", source.password)
	assert.Empty(t, source.calendarPath)
	assert.Equal(t, 30*time.Second, source.timeout)

	assert.Same(t, source, source.WithCalendarPath("/calendars/user/work/"))
	assert.Equal(t, "/calendars/user/work/", source.calendarPath)
}

func TestToMeeting(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, time.June, 11, 14, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	t.Run("maps a timed event", func(t *testing.T) {
		obj := calendarObject("/cal/planning.ics", timedEvent("planning-1", "Planning", start, end))

		meeting, ok := toMeeting(userID, obj)

		require.True(t, ok)
		assert.Equal(t, userID, meeting.UserID())
		assert.Equal(t, "Planning", meeting.Title())
		assert.True(t, meeting.DateRange().Start().Equal(start))
		assert.True(t, meeting.DateRange().End().Equal(end))
		assert.Equal(t, schedulingDomain.MeetingStatusScheduled, meeting.Status())
		assert.Equal(t, schedulingDomain.SourceCalDAV, meeting.Source())
		assert.Equal(t, "planning-1", meeting.ExternalID())
	})

	t.Run("identity is stable across fetches", func(t *testing.T) {
		first, ok := toMeeting(userID, calendarObject("/cal/a.ics", timedEvent("same-uid", "A", start, end)))
		require.True(t, ok)
		second, ok := toMeeting(userID, calendarObject("/cal/a.ics", timedEvent("same-uid", "A", start, end)))
		require.True(t, ok)

		assert.Equal(t, first.ID(), second.ID())
	})

	t.Run("falls back to the object path without a UID", func(t *testing.T) {
		meeting, ok := toMeeting(userID, calendarObject("/cal/no-uid.ics", timedEvent("", "Review", start, end)))

		require.True(t, ok)
		assert.Equal(t, "/cal/no-uid.ics", meeting.ExternalID())
	})

	t.Run("cancelled status does not block time", func(t *testing.T) {
		event := timedEvent("cancelled-1", "Offsite", start, end)
		event.Props.SetText(ical.PropStatus, "CANCELLED")

		meeting, ok := toMeeting(userID, calendarObject("/cal/offsite.ics", event))

		require.True(t, ok)
		assert.Equal(t, schedulingDomain.MeetingStatusCancelled, meeting.Status())
		assert.False(t, meeting.BlocksTime())
	})

	t.Run("tentative status still blocks time", func(t *testing.T) {
		event := timedEvent("tentative-1", "Maybe", start, end)
		event.Props.SetText(ical.PropStatus, "TENTATIVE")

		meeting, ok := toMeeting(userID, calendarObject("/cal/maybe.ics", event))

		require.True(t, ok)
		assert.True(t, meeting.BlocksTime())
	})

	t.Run("skips all-day events", func(t *testing.T) {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, "holiday")
		event.Props.SetDate(ical.PropDateTimeStart, time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC))
		event.Props.SetDate(ical.PropDateTimeEnd, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))

		_, ok := toMeeting(userID, calendarObject("/cal/holiday.ics", event))

		assert.False(t, ok)
	})

	t.Run("skips events ending before they start", func(t *testing.T) {
		_, ok := toMeeting(userID, calendarObject("/cal/bad.ics", timedEvent("bad", "Bad", end, start)))

		assert.False(t, ok)
	})

	t.Run("skips objects without events", func(t *testing.T) {
		_, ok := toMeeting(userID, calendarObject("/cal/empty.ics"))
		assert.False(t, ok)

		_, ok = toMeeting(userID, &caldav.CalendarObject{Path: "/cal/nil.ics"})
		assert.False(t, ok)

		_, ok = toMeeting(userID, nil)
		assert.False(t, ok)
	})
}

func TestEventQuery(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	start := time.Date(2024, time.June, 10, 8, 0, 0, 0, loc)
	end := start.Add(48 * time.Hour)

	query := eventQuery(start, end)

	require.Len(t, query.CompFilter.Comps, 1)
	filter := query.CompFilter.Comps[0]
	assert.Equal(t, "VEVENT", filter.Name)
	assert.Equal(t, time.UTC, filter.Start.Location())
	assert.True(t, filter.Start.Equal(start))
	assert.True(t, filter.End.Equal(end))
	assert.Contains(t, query.CompRequest.Comps[0].Props, "STATUS")
}
