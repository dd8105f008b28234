package config

import "os"

// Config holds runtime configuration, read from environment variables
// (a .env file is loaded by main before this runs).
type Config struct {
	Addr    string
	DBPath  string
	LogPath string

	// DoublingMarker is the case-insensitive title substring identifying
	// the equipment whose deducted quantity is doubled for pair-crew
	// orders (washer fluid, by default).
	DoublingMarker string
}

// Load reads configuration from the environment with defaults.
func Load() Config {
	return Config{
		Addr:           getenv("WAREHOUSE_ADDR", ":8080"),
		DBPath:         getenv("WAREHOUSE_DB", "warehouse.sqlite3"),
		LogPath:        getenv("WAREHOUSE_LOG", ""),
		DoublingMarker: getenv("WAREHOUSE_DOUBLING_MARKER", "незамерзайк"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
