package config

const (
	// EngineSQLite stores everything in a single local database file.
	EngineSQLite = "sqlite"
	// EngineMySQL uses a MySQL or MariaDB server.
	EngineMySQL = "mysql"
	// EnginePostgres uses a PostgreSQL server.
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // sqlite, mysql or postgres
	Path     string // database file, sqlite only
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Seed     bool // fill empty collections with placeholder content on startup
}
