package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Groq    GroqConfig
	Router  RouterConfig
	News    NewsConfig
	Market  MarketConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// GroqConfig holds settings for the Groq chat-completion API. The API key
// comes from the hosting environment at startup; its absence is fatal.
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// RouterConfig holds symbol-resolution parameters.
type RouterConfig struct {
	// MatchThreshold is the minimum fuzzy score (0-100) for a symbol
	// table hit.
	MatchThreshold int
	// AutoSuffixRepair applies the exchange-suffix heuristic to tickers
	// coming out of the extractor. Off by default: the system prompt
	// already states the suffix rules, and the repair misclassifies
	// bare US tickers.
	AutoSuffixRepair bool
}

// NewsConfig holds Google News search parameters.
type NewsConfig struct {
	BaseURL      string
	Language     string
	Country      string
	MaxHeadlines int
	Timeout      time.Duration
}

// MarketConfig holds chart history parameters.
type MarketConfig struct {
	BaseURL  string
	Range    string
	Interval string
	Timeout  time.Duration
}

const (
	defaultPort        = "8080"
	defaultReadTimeout = 10 * time.Second
	// The write timeout must cover the worst-case analyze turn: up to
	// three extractor attempts and three summarizer attempts at the Groq
	// timeout each plus backoff, and the chart and news fetches.
	defaultWriteTimeout    = 240 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
	defaultGroqTimeout = 30 * time.Second

	defaultMatchThreshold = 50

	defaultNewsBaseURL      = "https://news.google.com/rss/search"
	defaultNewsLanguage     = "ar"
	defaultNewsCountry      = "EG"
	defaultNewsMaxHeadlines = 200
	defaultNewsTimeout      = 15 * time.Second

	defaultMarketBaseURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultMarketRange    = "6mo"
	defaultMarketInterval = "1d"
	defaultMarketTimeout  = 15 * time.Second
)

// Load reads configuration from environment variables, applying defaults
// when values are not provided. A missing GROQ_API_KEY is an error: the
// intent extractor cannot run without it.
func Load() (Config, error) {
	// Cloud Run sets PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Groq: GroqConfig{
			BaseURL: getEnv("GROQ_BASE_URL", defaultGroqBaseURL),
			Model:   getEnv("GROQ_MODEL", defaultGroqModel),
			Timeout: defaultGroqTimeout,
		},
		Router: RouterConfig{
			MatchThreshold: defaultMatchThreshold,
		},
		News: NewsConfig{
			BaseURL:      getEnv("NEWS_BASE_URL", defaultNewsBaseURL),
			Language:     getEnv("NEWS_LANGUAGE", defaultNewsLanguage),
			Country:      getEnv("NEWS_COUNTRY", defaultNewsCountry),
			MaxHeadlines: defaultNewsMaxHeadlines,
			Timeout:      defaultNewsTimeout,
		},
		Market: MarketConfig{
			BaseURL:  getEnv("MARKET_BASE_URL", defaultMarketBaseURL),
			Range:    getEnv("MARKET_RANGE", defaultMarketRange),
			Interval: getEnv("MARKET_INTERVAL", defaultMarketInterval),
			Timeout:  defaultMarketTimeout,
		},
	}

	cfg.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	if cfg.Groq.APIKey == "" {
		return Config{}, fmt.Errorf("GROQ_API_KEY is required")
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("GROQ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GROQ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Groq.Timeout = d
	}

	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil || threshold < 0 || threshold > 100 {
			return Config{}, fmt.Errorf("invalid MATCH_THRESHOLD: must be an integer between 0 and 100")
		}
		cfg.Router.MatchThreshold = threshold
	}

	if v := os.Getenv("AUTO_SUFFIX_REPAIR"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AUTO_SUFFIX_REPAIR: must be a boolean")
		}
		cfg.Router.AutoSuffixRepair = enabled
	}

	if v := os.Getenv("NEWS_MAX_HEADLINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid NEWS_MAX_HEADLINES: must be a positive integer")
		}
		cfg.News.MaxHeadlines = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
