// Package config loads the server configuration from TOML.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"rbkv/infra/kafka"
	"rbkv/infra/logutil"
)

// ErrInvalid marks configuration that fails validation.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Server    Server         `toml:"server"`
	Store     Store          `toml:"store"`
	Broadcast Broadcast      `toml:"broadcast"`
	Log       logutil.Config `toml:"log"`
}

type Server struct {
	Listen        string `toml:"listen"`
	MetricsListen string `toml:"metrics_listen"`
}

type Store struct {
	// MaxEntries bounds the number of keys; 0 means unbounded.
	MaxEntries     int `toml:"max_entries"`
	OutboxCapacity int `toml:"outbox_capacity"`
}

type Broadcast struct {
	Enabled  bool     `toml:"enabled"`
	Driver   string   `toml:"driver"`
	Brokers  []string `toml:"brokers"`
	Topic    string   `toml:"topic"`
	Interval Duration `toml:"interval"`
	Batch    int      `toml:"batch"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrapf(err, "config: duration %q", b)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a configuration that runs a standalone server with
// broadcasting disabled.
func Default() *Config {
	return &Config{
		Server: Server{
			Listen:        ":50051",
			MetricsListen: ":9090",
		},
		Store: Store{
			OutboxCapacity: 1 << 16,
		},
		Broadcast: Broadcast{
			Driver:   kafka.DriverSarama,
			Topic:    "rbkv.changes",
			Interval: Duration{250 * time.Millisecond},
			Batch:    256,
		},
		Log: logutil.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.Mark(errors.Newf("config: unknown key %q", undec[0].String()), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return invalid("server.listen is empty")
	}
	if c.Store.MaxEntries < 0 {
		return invalid("store.max_entries is negative")
	}
	if c.Store.OutboxCapacity <= 0 {
		return invalid("store.outbox_capacity must be positive")
	}
	b := c.Broadcast
	if !b.Enabled {
		return nil
	}
	if b.Driver != kafka.DriverSarama && b.Driver != kafka.DriverKafkaGo {
		return invalid("broadcast.driver %q is not one of %q, %q", b.Driver, kafka.DriverSarama, kafka.DriverKafkaGo)
	}
	if len(b.Brokers) == 0 {
		return invalid("broadcast.brokers is empty")
	}
	if b.Topic == "" {
		return invalid("broadcast.topic is empty")
	}
	if b.Interval.Duration <= 0 {
		return invalid("broadcast.interval must be positive")
	}
	if b.Batch <= 0 {
		return invalid("broadcast.batch must be positive")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("config: "+format, args...), ErrInvalid)
}
