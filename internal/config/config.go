package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "GREENINDEX"

type Config struct {
	Port       string
	Log        LogConfig
	DB         DBConfig
	Simulation SimulationConfig
	Wastage    WastageConfig
	MQTT       MQTTConfig
	Redis      RedisConfig
	WebSocket  WebSocketConfig
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Driver string // sqlite | postgres
	DSN    string
}

type SimulationConfig struct {
	Enabled      bool
	Interval     time.Duration
	SeedDefaults bool `mapstructure:"seed_defaults"`
}

type WastageConfig struct {
	Mode         string  // fixed | tracked
	FixedMinutes float64 `mapstructure:"fixed_minutes"`
}

type MQTTConfig struct {
	Enabled  bool
	Broker   string
	Topic    string
	ClientID string `mapstructure:"client_id"`
	Username string
	Password string
}

type RedisConfig struct {
	Enabled       bool
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string `mapstructure:"channel_prefix"`
}

// WebSocketConfig tunes the /ws stream. An empty AllowedOrigins accepts
// every origin.
type WebSocketConfig struct {
	Buffer         int
	TotalsEvery    time.Duration `mapstructure:"totals_every"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "green_index.db")
	v.SetDefault("simulation.enabled", true)
	v.SetDefault("simulation.interval", "5s")
	v.SetDefault("simulation.seed_defaults", true)
	v.SetDefault("wastage.mode", "fixed")
	v.SetDefault("wastage.fixed_minutes", 15)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.topic", "greenindex/sensors/#")
	v.SetDefault("mqtt.client_id", "green-index")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel_prefix", "greenindex")
	v.SetDefault("websocket.buffer", 64)
	v.SetDefault("websocket.totals_every", "2s")
	v.SetDefault("websocket.allowed_origins", []string{})
}

// Load reads configs/config.yml (or the file at path, when given) and applies
// GREENINDEX_* environment overrides, e.g. GREENINDEX_DB_DRIVER. A .env file
// in the working directory is loaded first when present. A missing config
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case "sqlite", "postgres", "pgx":
	default:
		return fmt.Errorf("db.driver: unsupported %q", c.DB.Driver)
	}
	switch c.Wastage.Mode {
	case "fixed", "tracked":
	default:
		return fmt.Errorf("wastage.mode: want fixed or tracked, got %q", c.Wastage.Mode)
	}
	if c.Wastage.FixedMinutes < 0 {
		return errors.New("wastage.fixed_minutes: must be >= 0")
	}
	if c.Simulation.Interval <= 0 {
		return errors.New("simulation.interval: must be positive")
	}
	if c.WebSocket.Buffer <= 0 || c.WebSocket.TotalsEvery <= 0 {
		return errors.New("websocket.buffer and websocket.totals_every: must be positive")
	}
	return nil
}
