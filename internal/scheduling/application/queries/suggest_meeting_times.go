package queries

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/application/services"
	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/execassist/internal/shared/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// ResultCache stores computed scheduling results by key.
type ResultCache interface {
	Get(ctx context.Context, key string) (domain.SchedulingResult, bool, error)
	Set(ctx context.Context, key string, result domain.SchedulingResult) error
}

// MeetingSource supplies meetings held outside the local store, such as a
// connected calendar.
type MeetingSource interface {
	ListMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.Meeting, error)
}

// SuggestMeetingTimesQuery asks for ranked meeting slots.
type SuggestMeetingTimesQuery struct {
	UserID  uuid.UUID
	Request domain.SchedulingRequest
}

// SuggestMeetingTimesResult carries the ranked slots and the audit entry.
type SuggestMeetingTimesResult struct {
	domain.SchedulingResult
	Events             []sharedDomain.DomainEvent
	FromCache          bool
	MeetingsConsidered int
}

// SuggestMeetingTimesHandler handles the SuggestMeetingTimesQuery.
type SuggestMeetingTimesHandler struct {
	meetingRepo domain.MeetingRepository
	source      MeetingSource
	cache       ResultCache
	engine      *services.SchedulerEngine
	audit       *eventbus.AuditTrail
	clock       sharedApplication.Clock
	logger      *slog.Logger
}

// NewSuggestMeetingTimesHandler creates a new SuggestMeetingTimesHandler.
func NewSuggestMeetingTimesHandler(
	meetingRepo domain.MeetingRepository,
	engine *services.SchedulerEngine,
	audit *eventbus.AuditTrail,
	clock sharedApplication.Clock,
	logger *slog.Logger,
) *SuggestMeetingTimesHandler {
	if engine == nil {
		engine = services.NewSchedulerEngine(services.EngineOptions{})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestMeetingTimesHandler{
		meetingRepo: meetingRepo,
		engine:      engine,
		audit:       audit,
		clock:       clock.OrSystem(),
		logger:      logger,
	}
}

// WithMeetingSource adds an external meeting source.
func (h *SuggestMeetingTimesHandler) WithMeetingSource(source MeetingSource) *SuggestMeetingTimesHandler {
	h.source = source
	return h
}

// WithCache enables result caching.
func (h *SuggestMeetingTimesHandler) WithCache(cache ResultCache) *SuggestMeetingTimesHandler {
	h.cache = cache
	return h
}

// Handle executes the SuggestMeetingTimesQuery. An invalid request is not an
// error: the result carries the validation messages and no suggestions.
func (h *SuggestMeetingTimesHandler) Handle(ctx context.Context, query SuggestMeetingTimesQuery) (*SuggestMeetingTimesResult, error) {
	now := h.clock()
	req := query.Request

	if errs := domain.ValidateMeetingRequest(req); len(errs) > 0 {
		result := domain.SchedulingResult{ValidationErrors: errs, EvaluatedAt: now}
		return h.finish(ctx, query, &SuggestMeetingTimesResult{SchedulingResult: result}), nil
	}

	earliest, latest := h.engine.SearchPeriod(req, now)
	if earliest.Before(now) {
		earliest = now
	}
	buffer := req.Buffer()
	meetings, err := h.gatherMeetings(ctx, query.UserID, earliest.Add(-buffer), latest.Add(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}

	key := resultCacheKey(query.UserID, req, meetings, now)
	if cached, ok := h.lookup(ctx, key); ok {
		return h.finish(ctx, query, &SuggestMeetingTimesResult{
			SchedulingResult:   cached,
			FromCache:          true,
			MeetingsConsidered: len(meetings),
		}), nil
	}

	result := h.engine.SuggestMeetingTimes(req, meetings, now)
	h.store(ctx, key, result)

	return h.finish(ctx, query, &SuggestMeetingTimesResult{
		SchedulingResult:   result,
		MeetingsConsidered: len(meetings),
	}), nil
}

// gatherMeetings merges stored meetings with the external source. Stored
// snapshots win on duplicate ids; source failures only reduce coverage.
func (h *SuggestMeetingTimesHandler) gatherMeetings(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.Meeting, error) {
	stored, err := h.meetingRepo.FindInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if h.source == nil {
		return stored, nil
	}

	external, err := h.source.ListMeetings(ctx, userID, start, end)
	if err != nil {
		h.logger.WarnContext(ctx, "meeting source unavailable",
			"user_id", userID,
			"error", err,
		)
		return stored, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(stored))
	merged := make([]domain.Meeting, 0, len(stored)+len(external))
	for _, m := range stored {
		seen[m.ID()] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range external {
		if _, ok := seen[m.ID()]; ok {
			continue
		}
		seen[m.ID()] = struct{}{}
		merged = append(merged, m)
	}
	return merged, nil
}

func (h *SuggestMeetingTimesHandler) lookup(ctx context.Context, key string) (domain.SchedulingResult, bool) {
	if h.cache == nil {
		return domain.SchedulingResult{}, false
	}
	result, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "scheduling cache read failed", "error", err)
		return domain.SchedulingResult{}, false
	}
	return result, ok
}

func (h *SuggestMeetingTimesHandler) store(ctx context.Context, key string, result domain.SchedulingResult) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, key, result); err != nil {
		h.logger.WarnContext(ctx, "scheduling cache write failed", "error", err)
	}
}

func (h *SuggestMeetingTimesHandler) finish(ctx context.Context, query SuggestMeetingTimesQuery, res *SuggestMeetingTimesResult) *SuggestMeetingTimesResult {
	events := []sharedDomain.DomainEvent{domain.NewSuggestionsGenerated(query.UserID, query.Request, res.SchedulingResult)}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, query.UserID))
	h.audit.Record(ctx, events...)
	res.Events = events

	h.logger.DebugContext(ctx, "meeting times suggested",
		"user_id", query.UserID,
		"valid", res.IsValid(),
		"suggestions", res.Summary.TotalSuggestions,
		"conflicts", res.Summary.ConflictCount,
		"meetings", res.MeetingsConsidered,
		"from_cache", res.FromCache,
	)
	return res
}

// resultCacheKey identifies a search by everything the engine reads. now is
// truncated to the minute so repeated calls within it share an entry.
func resultCacheKey(
	userID uuid.UUID,
	req domain.SchedulingRequest,
	meetings []domain.Meeting,
	now time.Time,
) string {
	h := sha256.New()
	writeField(h, "user", userID.String())
	writeField(h, "title", req.Title)
	writeField(h, "duration", req.DurationMinutes)
	for _, a := range req.Attendees {
		writeField(h, "attendee", a)
	}
	for _, p := range req.PreferredTimes {
		writeField(h, "preferred", p.Start().UnixNano(), p.End().UnixNano())
	}
	if req.EarliestDate != nil {
		writeField(h, "earliest", req.EarliestDate.UnixNano())
	}
	if req.LatestDate != nil {
		writeField(h, "latest", req.LatestDate.UnixNano())
	}
	writeField(h, "hours", req.Hours().String())
	writeField(h, "weekends", req.ExcludeWeekends)
	writeField(h, "buffer", req.BufferMinutes)
	writeField(h, "location", req.Loc().String())
	writeField(h, "now", now.Truncate(time.Minute).UnixNano())
	for _, m := range meetings {
		r := m.DateRange()
		writeField(h, "meeting", m.ID().String(), m.Title(), r.Start().UnixNano(), r.End().UnixNano(), string(m.Status()))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, name string, values ...any) {
	fmt.Fprintf(h, "%s=%v;", name, values)
}
