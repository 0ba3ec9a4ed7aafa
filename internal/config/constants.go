package config

const (
	// DefaultDatabaseName is the production MySQL schema.
	DefaultDatabaseName = "Update_naatacademy"

	// DefaultDatabasePath is used when DB_DRIVER=sqlite
	DefaultDatabasePath = "./naatacademy.db"

	// DefaultTasksDatabasePath holds the background task queue, which always
	// runs on SQLite.
	DefaultTasksDatabasePath = "./data/naat-tasks.db"
)

// DefaultAllowedOrigins are the browser origins of the website and of the
// local admin panel.
var DefaultAllowedOrigins = []string{
	"https://naatacademy.com",
	"http://127.0.0.1:5501",
	"http://localhost:5500",
}
