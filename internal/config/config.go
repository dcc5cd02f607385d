package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Application
	Version     string
	Environment string
	WorkerID    string
	Port        int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// Inference service
	AIEnabled bool
	AIGRPCURL string
	AITimeout time.Duration

	// NATS (alert fan-out)
	// Default: nats://localhost:4222 (works with Docker Compose setup)
	// Docker: Use nats://nats:4222 if running worker in Docker
	NatsEnabled        bool
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	NatsDrainTimeout   time.Duration // For graceful shutdown

	// Frame Processing
	ProcessingFPS int

	// Alerting
	AlertsSubject      string
	AlertsCooldown     time.Duration
	RiskAlertThreshold float64
	MaxStoredAlerts    int
	SnapshotDir        string
	SnapshotQuality    int // JPEG quality (1-100)

	// Alert store
	DatabasePath string

	// Risk profile (hazard table, cameras, scoring overrides)
	RiskProfilePath string

	// Swagger Configuration
	SwaggerHost string
	SwaggerPort int

	// Graceful Shutdown
	ShutdownTimeout time.Duration

	// Delay before restarting a crashed camera loop
	PanicRestartDelay time.Duration

	Scoring         ScoringConfig
	Cameras         []CameraConfig
	DefaultLocation Location
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found or error loading .env file, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	cfg := &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		WorkerID:    getEnv("WORKER_ID", "safety-worker-1"),
		Port:        getEnvInt("PORT", 8000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy (lightweight web log viewer)
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// Inference service
		AIEnabled: getEnvBool("AI_ENABLED", true),
		AIGRPCURL: getEnv("AI_GRPC_URL", "localhost:50052"),
		AITimeout: getEnvDuration("AI_TIMEOUT", 5*time.Second),

		// NATS (configured for Docker Compose setup)
		NatsEnabled:        getEnvBool("NATS_ENABLED", true),
		NatsURL:            getNatsURL(),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		NatsDrainTimeout:   getEnvDuration("NATS_DRAIN_TIMEOUT", 5*time.Second),

		ProcessingFPS: getEnvInt("PROCESSING_FPS", 2),

		// Alerting
		AlertsSubject:      getEnv("ALERTS_SUBJECT", "alerts.safety"),
		AlertsCooldown:     getEnvDuration("ALERTS_COOLDOWN", 300*time.Second),
		RiskAlertThreshold: getEnvFloat("RISK_ALERT_THRESHOLD", 70),
		MaxStoredAlerts:    getEnvInt("MAX_STORED_ALERTS", 1000),
		SnapshotDir:        getEnv("SNAPSHOT_DIR", "alerts"),
		SnapshotQuality:    getEnvInt("SNAPSHOT_QUALITY", 90),

		DatabasePath: getEnv("DATABASE_PATH", "safety_alerts.db"),

		RiskProfilePath: getEnv("RISK_PROFILE_PATH", ""),

		// Swagger Configuration
		SwaggerHost: getEnv("SWAGGER_HOST", "localhost"),
		SwaggerPort: getEnvInt("SWAGGER_PORT", 8000),

		// Graceful Shutdown
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		PanicRestartDelay: getEnvDuration("PANIC_RESTART_DELAY", 2*time.Second),

		Scoring:         scoringFromEnv(),
		DefaultLocation: FallbackLocation,
	}

	if cfg.RiskProfilePath != "" {
		if err := cfg.ApplyProfile(cfg.RiskProfilePath); err != nil {
			log.Error().Err(err).Str("path", cfg.RiskProfilePath).Msg("Failed to load risk profile, keeping defaults")
		} else {
			log.Info().
				Str("path", cfg.RiskProfilePath).
				Int("cameras", len(cfg.Cameras)).
				Int("hazard_types", len(cfg.Scoring.HazardMultipliers)).
				Msg("Loaded risk profile")
		}
	}

	if err := cfg.Scoring.Validate(); err != nil {
		log.Warn().Err(err).Msg("Invalid scoring configuration, falling back to defaults")
		cfg.Scoring = DefaultScoringConfig()
	}

	return cfg
}

func scoringFromEnv() ScoringConfig {
	s := DefaultScoringConfig()
	s.AssociationDistance = getEnvFloat("ASSOCIATION_DISTANCE", s.AssociationDistance)
	s.NearbyRadius = getEnvFloat("NEARBY_RADIUS", s.NearbyRadius)
	s.SurroundingRadius = getEnvFloat("SURROUNDING_RADIUS", s.SurroundingRadius)
	s.SurroundingThreshold = getEnvInt("SURROUNDING_THRESHOLD", s.SurroundingThreshold)
	s.PersonMinConfidence = getEnvFloat("PERSON_MIN_CONFIDENCE", s.PersonMinConfidence)
	s.HazardMinConfidence = getEnvFloat("HAZARD_MIN_CONFIDENCE", s.HazardMinConfidence)
	s.NightStartHour = getEnvInt("NIGHT_START_HOUR", s.NightStartHour)
	s.NightEndHour = getEnvInt("NIGHT_END_HOUR", s.NightEndHour)
	s.NightMultiplier = getEnvFloat("NIGHT_MULTIPLIER", s.NightMultiplier)
	s.HandsUpMargin = getEnvFloat("HANDS_UP_MARGIN", s.HandsUpMargin)
	return s
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Helper functions for Docker environment detection
func isRunningInDocker() bool {
	if os.Getenv("DOCKER_CONTAINER") == "true" {
		return true
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}

// getNatsURL returns the appropriate NATS URL based on environment
func getNatsURL() string {
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		return envURL
	}

	if isRunningInDocker() {
		return "nats://nats:4222"
	}

	return "nats://localhost:4222"
}
