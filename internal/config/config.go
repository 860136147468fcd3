package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	timex "github.com/ferdiebergado/devlink/internal/pkg/time"
)

const maskChar = "*"

type App struct {
	Env      string `json:"env,omitempty" env:"ENV"`
	Key      string `json:"-" env:"APP_KEY"`
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

type Server struct {
	URL             string         `json:"url,omitempty" env:"URL"`
	Port            int            `json:"port,omitempty" env:"PORT"`
	AllowedOrigin   string         `json:"allowed_origin,omitempty" env:"ALLOWED_ORIGIN"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty"`
	Host            string         `json:"-" env:"DB_HOST"`
	Port            string         `json:"-" env:"DB_PORT"`
	User            string         `json:"-" env:"DB_USER"`
	Password        string         `json:"-" env:"DB_PASS"`
	Name            string         `json:"-" env:"DB_NAME"`
	SSLMode         string         `json:"-" env:"DB_SSLMODE"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
	Migrate         bool           `json:"migrate,omitempty" env:"DB_MIGRATE"`
}

func (d *DB) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", d.Driver),
		slog.String("host", d.Host),
		slog.String("name", d.Name),
		slog.String("user", maskChar),
		slog.String("password", maskChar),
		slog.Int("max_open_conns", d.MaxOpenConns),
		slog.Int("max_idle_conns", d.MaxIdleConns),
		slog.Bool("migrate", d.Migrate),
	)
}

type JWT struct {
	JTILength  uint32         `json:"jti_length,omitempty"`
	Issuer     string         `json:"issuer,omitempty"`
	TTL        timex.Duration `json:"ttl,omitempty"`
	RefreshTTL timex.Duration `json:"refresh_ttl,omitempty"`
}

type Cookie struct {
	Name   string         `json:"name,omitempty"`
	MaxAge timex.Duration `json:"max_age,omitempty"`
}

type CSRF struct {
	CookieName string         `json:"cookie_name,omitempty"`
	HeaderName string         `json:"header_name,omitempty"`
	TokenLen   uint32         `json:"token_len,omitempty"`
	MaxAge     timex.Duration `json:"max_age,omitempty"`
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type Email struct {
	Templates string `json:"templates,omitempty"`
	Layout    string `json:"layout,omitempty"`
	Sender    string `json:"sender,omitempty"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
}

func (s *SMTP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.String("user", maskChar),
		slog.String("password", maskChar),
	)
}

type Chat struct {
	DefaultPageSize    int `json:"default_page_size,omitempty"`
	MaxPageSize        int `json:"max_page_size,omitempty"`
	MaxFramesPerSecond int `json:"max_frames_per_second,omitempty"`
	MaxFrameBytes      int `json:"max_frame_bytes,omitempty"`
}

type Match struct {
	DefaultTake int `json:"default_take,omitempty"`
	MaxTake     int `json:"max_take,omitempty"`
	Workers     int `json:"workers,omitempty"`
}

type Upload struct {
	MaxPhotoBytes int64 `json:"max_photo_bytes,omitempty"`
}

type RateLimit struct {
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`
	Burst             int     `json:"burst,omitempty"`
}

type Config struct {
	App       *App       `json:"app,omitempty"`
	Server    *Server    `json:"server,omitempty"`
	DB        *DB        `json:"db,omitempty"`
	JWT       *JWT       `json:"jwt,omitempty"`
	Cookie    *Cookie    `json:"cookie,omitempty"`
	CSRF      *CSRF      `json:"csrf,omitempty"`
	Argon2    *Argon2    `json:"argon2,omitempty"`
	Email     *Email     `json:"email,omitempty"`
	SMTP      *SMTP      `json:"-"`
	Chat      *Chat      `json:"chat,omitempty"`
	Match     *Match     `json:"match,omitempty"`
	Upload    *Upload    `json:"upload,omitempty"`
	RateLimit *RateLimit `json:"rate_limit,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("cookie", c.Cookie),
		slog.Any("csrf", c.CSRF),
		slog.Any("email", c.Email),
		slog.Any("smtp", c.SMTP),
		slog.Any("chat", c.Chat),
		slog.Any("match", c.Match),
		slog.Any("upload", c.Upload),
		slog.Any("rate_limit", c.RateLimit),
	)
}

var ErrMissingKey = errors.New("config: APP_KEY is not set")

// Load reads the json config file and overrides its values with the environment.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseFile(cfgFile)
	if err != nil {
		return nil, err
	}

	ensureSections(cfg)

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.App.Key == "" {
		return nil, ErrMissingKey
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return &cfg, nil
}

// ensureSections allocates the sections missing from the config file so that
// the env parser can populate them.
func ensureSections(cfg *Config) {
	if cfg.App == nil {
		cfg.App = &App{}
	}
	if cfg.Server == nil {
		cfg.Server = &Server{}
	}
	if cfg.DB == nil {
		cfg.DB = &DB{Driver: "pgx"}
	}
	if cfg.JWT == nil {
		cfg.JWT = &JWT{}
	}
	if cfg.Cookie == nil {
		cfg.Cookie = &Cookie{}
	}
	if cfg.CSRF == nil {
		cfg.CSRF = &CSRF{}
	}
	if cfg.Argon2 == nil {
		cfg.Argon2 = &Argon2{}
	}
	if cfg.Email == nil {
		cfg.Email = &Email{}
	}
	if cfg.SMTP == nil {
		cfg.SMTP = &SMTP{}
	}
	if cfg.Chat == nil {
		cfg.Chat = &Chat{DefaultPageSize: 20, MaxPageSize: 100, MaxFramesPerSecond: 20, MaxFrameBytes: 64 << 10}
	}
	if cfg.Match == nil {
		cfg.Match = &Match{DefaultTake: 10, MaxTake: 50, Workers: 4}
	}
	if cfg.Upload == nil {
		cfg.Upload = &Upload{MaxPhotoBytes: 5 << 20}
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimit{RequestsPerSecond: 5, Burst: 10}
	}
}
