package config

import "os"

type Config struct {
	// NormsFile points at a YAML norms document; when set it takes
	// precedence over the norms database.
	NormsFile string

	DBDriver string // sqlite|postgres
	DBDSN    string

	// Rounding overrides the norms document's half-disclosure rounding
	// mode (half_up|half_down|half_even) when set.
	Rounding string
}

func FromEnv() Config {
	return Config{
		NormsFile: os.Getenv("NORMS_FILE"),
		DBDriver:  envOr("NORMS_DB_DRIVER", "sqlite"),
		DBDSN:     envOr("NORMS_DB_DSN", ""),
		Rounding:  os.Getenv("SCORING_ROUNDING"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
