package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type Config struct {
	Mode            string   `json:"mode"`
	Addr            string   `json:"addr"`
	LogFile         string   `json:"log_file"`
	LogLevel        string   `json:"log_level"`
	ShutdownTimeout Duration `json:"shutdown_timeout"`
	Board           Board    `json:"board"`
}

func Default() Config {
	return Config{
		Mode:            "production",
		Addr:            ":8080",
		LogLevel:        "info",
		ShutdownTimeout: Duration{30 * time.Second},
		Board:           DefaultBoard,
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"log_file":         c.LogFile,
		"log_level":        c.LogLevel,
		"shutdown_timeout": c.ShutdownTimeout.String(),
		"board_size":       c.Board.Size,
		"board_mine_count": c.Board.MineCount,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Level resolves LogLevel, falling back to debug in development mode when
// no level is set.
func (c Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		if c.Development() {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

// Read overlays the JSON file at path onto config. A missing file leaves
// config untouched.
func Read(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, config)
}

// Load builds a config from defaults, the file at path and the environment,
// in that order.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		if err := Read(path, &config); err != nil {
			return config, err
		}
	}
	if err := config.ApplyEnv(); err != nil {
		return config, err
	}
	return config, nil
}
