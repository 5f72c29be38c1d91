package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath は CONFIG_PATH が未指定の場合に利用する設定ファイルです。
const DefaultPath = "assets/local.yaml"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Database   DatabaseConfig   `yaml:"database"`
	Commission CommissionConfig `yaml:"commission"`
	Log        LogConfig        `yaml:"log"`
	ID         IDConfig         `yaml:"id"`
}

// ServerConfig は gRPC / HTTP サーバーに関する設定です。
type ServerConfig struct {
	GRPCListenAddr string   `yaml:"grpc_listen_addr"`
	HTTPListenAddr string   `yaml:"http_listen_addr"`
	CORSOrigins    []string `yaml:"cors_origins"`
}

// StorageConfig はレコードストアの選択です。
type StorageConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	LogQueries         bool          `yaml:"log_queries"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// CommissionConfig は手数料計算の設定です。
type CommissionConfig struct {
	RatePercent float64 `yaml:"rate_percent"`
}

// LogConfig はログ出力の設定です。File が空の場合は標準エラーのみに出力します。
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// IDConfig は休暇申請 ID 採番の設定です。
type IDConfig struct {
	Node int64 `yaml:"node"`
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:3002",
	"http://localhost:3003",
}

// Path は CONFIG_PATH 環境変数を考慮した設定ファイルのパスを返します。
func Path(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return DefaultPath
}

// Load は .env を読み込んだ上で、指定されたパスから設定ファイルを読み込みます。
// YAML 内の ${VAR} は環境変数で展開されます。
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.GRPCListenAddr == "" {
		return fmt.Errorf("config: server.grpc_listen_addr must be set")
	}
	if c.Server.HTTPListenAddr == "" {
		return fmt.Errorf("config: server.http_listen_addr must be set")
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageMemory
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("config: storage.driver %q is not supported", c.Storage.Driver)
	}

	if err := c.Database.normalize(); err != nil {
		return err
	}
	if c.Storage.Driver == StoragePostgres {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}

	if c.Commission.RatePercent < 0 {
		return fmt.Errorf("config: commission.rate_percent must not be negative")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("config: log.format must be console or json")
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 100
	}

	if c.ID.Node < 0 || c.ID.Node > 1023 {
		return fmt.Errorf("config: id.node must be between 0 and 1023")
	}

	return nil
}

// Validate は PostgreSQL 接続に必要な項目が揃っているかを検証します。
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	return nil
}

func (d *DatabaseConfig) normalize() error {
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードはエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
