package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Data      DataConfig
	Model     ModelConfig
	Recommend RecommendConfig
	Admin     AdminConfig
	Redis     RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DataConfig struct {
	RatingsPath string
	MoviesPath  string
}

type ModelConfig struct {
	Path           string
	Rank           int
	Iterations     int
	Regularization float64
	Holdout        float64
	Seed           int64
	Workers        int
}

type RecommendConfig struct {
	DefaultN     int
	MaxN         int
	SearchLimit  int
	CacheTTLSecs int
}

type AdminConfig struct {
	Token string
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Movie Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			RatingsPath: getEnv("RATINGS_PATH", "data/ratings.csv"),
			MoviesPath:  getEnv("MOVIES_PATH", "data/movies.csv"),
		},
		Model: ModelConfig{
			Path:           getEnv("MODEL_PATH", "models/als_movie_model.json"),
			Rank:           getEnvInt("MODEL_RANK", 10),
			Iterations:     getEnvInt("MODEL_ITERATIONS", 10),
			Regularization: getEnvFloat("MODEL_REG_PARAM", 0.1),
			Holdout:        getEnvFloat("MODEL_HOLDOUT", 0.2),
			Seed:           int64(getEnvInt("MODEL_SEED", 42)),
			Workers:        getEnvInt("MODEL_WORKERS", 4),
		},
		Recommend: RecommendConfig{
			DefaultN:     getEnvInt("RECOMMEND_DEFAULT_N", 10),
			MaxN:         getEnvInt("RECOMMEND_MAX_N", 100),
			SearchLimit:  getEnvInt("SEARCH_DEFAULT_LIMIT", 50),
			CacheTTLSecs: getEnvInt("RECOMMEND_CACHE_TTL_SECONDS", 300),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		Redis: RedisConfig{
			Enabled:      getEnv("REDIS_ENABLED", "false") == "true",
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
		},
	}

	if cfg.Admin.Token == "" {
		return nil, errors.New("missing admin token")
	}

	if cfg.Model.Rank <= 0 {
		return nil, errors.New("model rank must be positive")
	}

	if cfg.Model.Holdout < 0 || cfg.Model.Holdout >= 1 {
		return nil, errors.New("model holdout must be in [0, 1)")
	}

	if cfg.Recommend.MaxN < cfg.Recommend.DefaultN {
		return nil, errors.New("recommend max N must be >= default N")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}
