package app

import (
	"context"
	"fmt"
	"log/slog"

	calendarApp "github.com/felixgeelhaar/execassist/internal/calendar/application"
	calendarSetup "github.com/felixgeelhaar/execassist/internal/calendar/setup"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/commands"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/queries"
	priorityServices "github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	meetingCommands "github.com/felixgeelhaar/execassist/internal/scheduling/application/commands"
	meetingQueries "github.com/felixgeelhaar/execassist/internal/scheduling/application/queries"
	schedulerServices "github.com/felixgeelhaar/execassist/internal/scheduling/application/services"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	schedulingCache "github.com/felixgeelhaar/execassist/internal/scheduling/infrastructure/cache"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/execassist/pkg/config"
	"github.com/felixgeelhaar/execassist/pkg/observability"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry
	Clock   sharedApplication.Clock

	// UserID is the acting user for the CLI and MCP surfaces.
	UserID uuid.UUID
	// RequestDefaults seeds scheduling requests built by the surfaces.
	RequestDefaults RequestDefaults

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories
	TaskRepo          task.Repository
	PriorityScoreRepo task.PriorityScoreRepository
	MeetingRepo       schedulingDomain.MeetingRepository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Audit
	EventPublisher eventbus.Publisher
	AuditTrail     *eventbus.AuditTrail

	// Calendar providers, nil when none is configured.
	MeetingSource *calendarApp.CompositeSource
	ResultCache   meetingQueries.ResultCache

	// Engines
	PriorityEngine  *priorityServices.PriorityEngine
	SchedulerEngine *schedulerServices.SchedulerEngine

	// Task handlers
	CreateTaskHandler            *commands.CreateTaskHandler
	UpdateTaskStatusHandler      *commands.UpdateTaskStatusHandler
	RecalculatePrioritiesHandler *commands.RecalculatePrioritiesHandler
	ListTasksHandler             *queries.ListTasksHandler
	GetTaskHandler               *queries.GetTaskHandler
	PrioritizeTasksHandler       *queries.PrioritizeTasksHandler
	AdvisePrioritiesHandler      *queries.AdvisePrioritiesHandler

	// Meeting handlers
	RecordMeetingHandler       *meetingCommands.RecordMeetingHandler
	CancelMeetingHandler       *meetingCommands.CancelMeetingHandler
	ListMeetingsHandler        *meetingQueries.ListMeetingsHandler
	SuggestMeetingTimesHandler *meetingQueries.SuggestMeetingTimesHandler
}

// auditMetrics maps routing keys to the domain counters they feed.
var auditMetrics = map[string]string{
	task.RoutingKeyCreated:                          observability.MetricTasksCreated,
	task.RoutingKeyCompleted:                        observability.MetricTasksCompleted,
	task.RoutingKeyTasksPrioritized:                 observability.MetricTasksPrioritized,
	schedulingDomain.RoutingKeyMeetingRecorded:      observability.MetricMeetingsRecorded,
	schedulingDomain.RoutingKeyMeetingCancelled:     observability.MetricMeetingsCancelled,
	schedulingDomain.RoutingKeySuggestionsGenerated: observability.MetricSuggestionsGenerated,
}

// NewContainer creates and wires all dependencies. An empty DATABASE_URL
// selects the local SQLite store.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = observability.DiscardLogger()
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid EXECASSIST_USER_ID %q: %w", cfg.UserID, err)
	}
	hours, err := schedulingDomain.ParseWorkingHours(cfg.SchedulingWorkStart, cfg.SchedulingWorkEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduling working hours: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
		Clock:   sharedApplication.SystemClock,
		UserID:  userID,
		RequestDefaults: RequestDefaults{
			Location:     cfg.Location(),
			WorkingHours: hours,
		},
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initRepositories(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initCache(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initAudit(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initCalendar(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	logger.Debug("container ready",
		"driver", c.DBDriver.String(),
		"health_checks", c.Health.Names(),
		"calendar_provider", cfg.CalendarProvider,
	)
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	conn, err := database.NewConnection(ctx, database.Config{
		URL:        c.Config.DatabaseURL,
		SQLitePath: c.Config.SQLitePath,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.UnitOfWork = database.NewUnitOfWork(conn)
	c.Health.Register("store", observability.StoreHealthChecker(conn.Ping))
	c.Logger.Debug("connected to database", "driver", c.DBDriver.String())
	return nil
}

func (c *Container) initRepositories() error {
	factory := NewRepositoryFactory(c.DBConn)

	var err error
	if c.TaskRepo, err = factory.TaskRepository(); err != nil {
		return err
	}
	if c.PriorityScoreRepo, err = factory.PriorityScoreRepository(); err != nil {
		return err
	}
	if c.MeetingRepo, err = factory.MeetingRepository(); err != nil {
		return err
	}
	return nil
}

// initCache connects to Redis when configured. Outside production an
// unreachable Redis falls back to the in-memory cache.
func (c *Container) initCache(ctx context.Context) error {
	ttl := c.Config.SchedulingCacheTTL
	if c.Config.RedisURL == "" {
		c.ResultCache = schedulingCache.NewInstrumentedCache(schedulingCache.NewMemoryResultCache(ttl), c.Metrics)
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, using in-memory result cache", "error", err)
		c.ResultCache = schedulingCache.NewInstrumentedCache(schedulingCache.NewMemoryResultCache(ttl), c.Metrics)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, using in-memory result cache", "error", err)
		c.ResultCache = schedulingCache.NewInstrumentedCache(schedulingCache.NewMemoryResultCache(ttl), c.Metrics)
		return nil
	}

	c.RedisClient = client
	c.ResultCache = schedulingCache.NewInstrumentedCache(schedulingCache.NewRedisResultCache(client, ttl), c.Metrics)
	c.Health.Register("cache", observability.CacheHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Debug("connected to Redis")
	return nil
}

// initAudit selects the audit publisher: RabbitMQ when configured, else the
// in-process bus writing entries to the log.
func (c *Container) initAudit() error {
	var publisher eventbus.Publisher
	switch {
	case !c.Config.EventsEnabled:
		publisher = eventbus.NewNoopPublisher(c.Logger)
	case c.Config.RabbitMQURL != "":
		rabbit, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		if err != nil {
			if c.Config.IsProduction() {
				return err
			}
			c.Logger.Warn("RabbitMQ not available, audit entries go to the log", "error", err)
			publisher = c.newLogBus()
			break
		}
		c.Health.Register("broker", observability.BrokerHealthChecker(rabbit.Ping))
		publisher = rabbit
	default:
		publisher = c.newLogBus()
	}

	c.EventPublisher = eventbus.NewInstrumentedPublisher(publisher, c.Metrics, auditMetrics)
	c.AuditTrail = eventbus.NewAuditTrail(c.EventPublisher, c.Logger)
	return nil
}

func (c *Container) newLogBus() *eventbus.InProcessBus {
	bus := eventbus.NewInProcessBus(c.Logger)
	bus.Subscribe(eventbus.NewAuditLogSubscriber(c.Logger))
	return bus
}

func (c *Container) initCalendar(ctx context.Context) error {
	cfg := c.Config
	source, err := calendarSetup.NewMeetingSource(ctx, calendarSetup.ProviderConfig{
		Provider: cfg.CalendarProvider,
		CalDAV: calendarSetup.CalDAVConfig{
			URL:          cfg.CalDAVURL,
			Username:     cfg.CalDAVUsername,
			Password:     cfg.CalDAVPassword,
			CalendarPath: cfg.CalDAVCalendarPath,
		},
		Google: calendarSetup.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			TokenFile:    cfg.GoogleTokenFile,
			CalendarID:   cfg.CalendarID,
		},
		Breaker: calendarApp.BreakerConfig{
			FailureThreshold: uint32(max(cfg.BreakerFailureThreshold, 0)),
			Timeout:          cfg.BreakerTimeout,
		},
		Logger: c.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to configure calendar provider: %w", err)
	}
	if source == nil {
		return nil
	}

	c.MeetingSource = source.WithMetrics(c.Metrics)
	for name := range source.CircuitStates() {
		c.Health.Register("calendar."+name, observability.CircuitHealthChecker(func() string {
			return source.CircuitStates()[name]
		}))
	}
	return nil
}

func (c *Container) initHandlers() {
	parallelism := c.Config.EngineParallelism
	c.PriorityEngine = priorityServices.NewPriorityEngine(priorityServices.EngineOptions{
		Parallelism: parallelism,
	})
	c.SchedulerEngine = schedulerServices.NewSchedulerEngine(schedulerServices.EngineOptions{
		Parallelism:  parallelism,
		SearchWindow: c.Config.SearchWindow(),
	})

	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.UnitOfWork, c.AuditTrail)
	c.UpdateTaskStatusHandler = commands.NewUpdateTaskStatusHandler(c.TaskRepo, c.UnitOfWork, c.AuditTrail, c.Clock)
	c.RecalculatePrioritiesHandler = commands.NewRecalculatePrioritiesHandler(
		c.TaskRepo, c.PriorityScoreRepo, c.PriorityEngine, c.UnitOfWork, c.Clock,
	)
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo, c.Clock)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo, c.Clock)
	c.PrioritizeTasksHandler = queries.NewPrioritizeTasksHandler(c.TaskRepo, c.PriorityEngine, c.AuditTrail, c.Clock, c.Logger)
	c.AdvisePrioritiesHandler = queries.NewAdvisePrioritiesHandler(c.TaskRepo, c.AuditTrail, c.Clock)

	c.RecordMeetingHandler = meetingCommands.NewRecordMeetingHandler(c.MeetingRepo, c.UnitOfWork, c.AuditTrail, c.Clock)
	c.CancelMeetingHandler = meetingCommands.NewCancelMeetingHandler(c.MeetingRepo, c.UnitOfWork, c.AuditTrail, c.Clock)
	c.ListMeetingsHandler = meetingQueries.NewListMeetingsHandler(c.MeetingRepo)
	c.SuggestMeetingTimesHandler = meetingQueries.NewSuggestMeetingTimesHandler(
		c.MeetingRepo, c.SchedulerEngine, c.AuditTrail, c.Clock, c.Logger,
	).WithCache(c.ResultCache)
	if c.MeetingSource != nil {
		c.SuggestMeetingTimesHandler.WithMeetingSource(c.MeetingSource)
	}
}

// HealthReport is the combined health and counter snapshot.
type HealthReport struct {
	Status   observability.HealthStatus                 `json:"status"`
	Checks   map[string]observability.HealthCheckResult `json:"checks"`
	Counters map[string]int64                           `json:"counters"`
	Driver   string                                     `json:"driver"`
}

// HealthReport runs every registered check.
func (c *Container) HealthReport(ctx context.Context) HealthReport {
	overall := c.Health.GetOverallHealth(ctx)
	return HealthReport{
		Status:   overall.Status,
		Checks:   overall.Checks,
		Counters: c.Metrics.Counters(),
		Driver:   c.DBDriver.String(),
	}
}

// Close releases every connection the container opened.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close audit publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}
