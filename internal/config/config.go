package config

import "os"

// Config carries the runtime settings, all sourced from the environment.
type Config struct {
	// DBPath is the SQLite database file holding all record collections.
	DBPath string

	// BillsDir is the directory bill statement artifacts are written to.
	BillsDir string
}

// Load reads the configuration from the environment, falling back to
// defaults suitable for local use.
func Load() Config {
	return Config{
		DBPath:   getenv("DB_PATH", "./data/restro.db"),
		BillsDir: getenv("BILLS_DIR", "./data/bills"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
