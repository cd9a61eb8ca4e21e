package database

import "strings"

// Driver names a storage backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string {
	return string(d)
}

var (
	postgresSchemes = []string{"postgres://", "postgresql://"}
	sqliteSchemes   = []string{"sqlite://", "file:"}
	sqliteSuffixes  = []string{".db", ".sqlite", ".sqlite3"}
)

// DetectDriver picks a backend from DATABASE_URL. An empty URL selects the
// local SQLite file. Anything unrecognised is handed to PostgreSQL, whose
// parser reports the problem.
func DetectDriver(url string) Driver {
	switch {
	case url == "", url == ":memory:":
		return DriverSQLite
	case hasAny(url, strings.HasPrefix, postgresSchemes):
		return DriverPostgres
	case hasAny(url, strings.HasPrefix, sqliteSchemes), hasAny(url, strings.HasSuffix, sqliteSuffixes):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

func hasAny(s string, match func(s, affix string) bool, affixes []string) bool {
	for _, a := range affixes {
		if match(s, a) {
			return true
		}
	}
	return false
}
