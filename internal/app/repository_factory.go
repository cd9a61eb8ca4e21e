package app

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	productivityPersistence "github.com/felixgeelhaar/execassist/internal/productivity/infrastructure/persistence"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	schedulingPersistence "github.com/felixgeelhaar/execassist/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TaskRepository creates a task repository for the configured driver.
func (f *RepositoryFactory) TaskRepository() (task.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return productivityPersistence.NewPostgresTaskRepository(f.conn), nil
	case database.DriverSQLite:
		return productivityPersistence.NewSQLiteTaskRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// PriorityScoreRepository creates a priority score repository for the
// configured driver.
func (f *RepositoryFactory) PriorityScoreRepository() (task.PriorityScoreRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return productivityPersistence.NewPostgresPriorityScoreRepository(f.conn), nil
	case database.DriverSQLite:
		return productivityPersistence.NewSQLitePriorityScoreRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// MeetingRepository creates a meeting repository for the configured driver.
func (f *RepositoryFactory) MeetingRepository() (schedulingDomain.MeetingRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return schedulingPersistence.NewPostgresMeetingRepository(f.conn), nil
	case database.DriverSQLite:
		return schedulingPersistence.NewSQLiteMeetingRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// Driver returns the database driver type.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}
