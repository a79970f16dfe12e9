package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"magang-intel/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatasetKey            string
	DatasetURL            string
	DatasetReloadInterval time.Duration
	DatasetUpstreamURL    string
	DatasetSyncInterval   time.Duration

	DatabaseURL    string
	FavoritesStore string
	SQLitePath     string

	StatusAPIBase      string
	StatusAPIPrefix    string
	StatusAPISignature string
	StatusTimeout      time.Duration
	StatusRatePerMin   int
}

const (
	defaultStatusAPIBase      = "https://cekstatus.pantauloker.co/api/mh/p"
	defaultStatusAPIPrefix    = "L2JlL3YxL2FwaS9saXN0L2NydWQtcHJvZ3JhbS1wYXJ0aWNpcGFudHM%2Fb3JkZXJfZGlyZWN0aW9uPUFTQyZwYWdlPTEmbGltaXQ9NTAmZW1haWw9"
	defaultStatusAPISignature = "AyL9Vu9WWgETMMDlig7GwbE8GnU9dOBWShgf6MI6j0A"
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	favorites := normalizeFavoritesStore(getEnv("FAVORITES_STORE", ""), dbURL)

	if env == "production" && favorites == "postgres" && dbURL == "" {
		telemetry.Warn("config.database_url.missing", map[string]any{"env": env, "favorites_store": favorites})
	}

	return Config{
		Port:                  getEnv("PORT", "8080"),
		CORSAllowOrigin:       splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:                   env,
		ObjectStoreType:       normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:         getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:             getEnv("AWS_REGION", ""),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Prefix:              getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:           getEnv("SSE_KMS_KEY_ID", ""),
		DatasetKey:            getEnv("DATASET_KEY", "data.json"),
		DatasetURL:            getEnv("DATASET_URL", ""),
		DatasetReloadInterval: getDuration("DATASET_RELOAD_INTERVAL", 6*time.Hour),
		DatasetUpstreamURL:    getEnv("DATASET_UPSTREAM_URL", ""),
		DatasetSyncInterval:   getDuration("DATASET_SYNC_INTERVAL", 6*time.Hour),
		DatabaseURL:           dbURL,
		FavoritesStore:        favorites,
		SQLitePath:            getEnv("SQLITE_PATH", "./data/favorites.db"),
		StatusAPIBase:         getEnv("STATUS_API_BASE", defaultStatusAPIBase),
		StatusAPIPrefix:       getEnv("STATUS_API_PREFIX", defaultStatusAPIPrefix),
		StatusAPISignature:    getEnv("STATUS_API_SIGNATURE", defaultStatusAPISignature),
		StatusTimeout:         getDuration("STATUS_TIMEOUT", 15*time.Second),
		StatusRatePerMin:      getInt("STATUS_RATE_PER_MIN", 12),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

// normalizeFavoritesStore picks the favorites backend. Without an explicit
// choice, a configured DATABASE_URL selects postgres.
func normalizeFavoritesStore(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory":
		return "memory"
	case "object":
		return "object"
	case "postgres", "pg":
		return "postgres"
	case "sqlite":
		return "sqlite"
	}
	if strings.TrimSpace(dbURL) != "" {
		return "postgres"
	}
	return "object"
}
