package database

// Config holds configuration for the run journal database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql). Empty disables the journal.
	Driver string `mapstructure:"driver" default:""`
	// Path is the database file path (sqlite only).
	Path string `mapstructure:"path" default:"export_journal.db"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name (mysql only).
	Name string `mapstructure:"name" default:"catalog_export"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether a journal database is configured.
func (c Config) Enabled() bool {
	return c.Driver != ""
}
