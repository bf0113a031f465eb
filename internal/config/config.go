package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	Addr         string
	FeedURL      string
	GeminiAPIKey string
	GeminiModel  string
	CacheDir     string
	StepDelay    time.Duration
	FetchWait    time.Duration
}

type CLIConfig struct {
	APIBaseURL string
}

type SimConfig struct {
	Seats    int
	MaxSteps int
	Seed     int64
}

// LoadDotenv reads a .env file when present. A missing file is fine;
// deployments set real environment variables.
func LoadDotenv() {
	_ = godotenv.Load()
}

func LoadAPIFromEnv() APIConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("NPY_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:         addr,
		FeedURL:      envDefault("NPY_FEED_URL", ""),
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  envDefault("NPY_GEMINI_MODEL", ""),
		CacheDir:     envDefault("NPY_CACHE_DIR", ""),
		StepDelay:    envDurationDefault("NPY_STEP_DELAY", time.Second),
		FetchWait:    envDurationDefault("NPY_FETCH_WAIT", 20*time.Second),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("NPY_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func LoadSimFromEnv() SimConfig {
	return SimConfig{
		Seats:    envIntDefault("NPY_SIM_SEATS", 4),
		MaxSteps: envIntDefault("NPY_SIM_MAX_STEPS", 10000),
		Seed:     int64(envIntDefault("NPY_SIM_SEED", 0)),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
