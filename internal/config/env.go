package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func lookupInt(key string, dst *int) error {
	s, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	*dst = v
	return nil
}

func lookupString(key string, dst *string) {
	if s, ok := os.LookupEnv(key); ok {
		*dst = s
	}
}

// ApplyEnv overrides fields from SWEEPER_* environment variables.
func (c *Config) ApplyEnv() error {
	lookupString("SWEEPER_MODE", &c.Mode)
	lookupString("SWEEPER_ADDR", &c.Addr)
	lookupString("SWEEPER_LOG_FILE", &c.LogFile)
	lookupString("SWEEPER_LOG_LEVEL", &c.LogLevel)

	if s, ok := os.LookupEnv("SWEEPER_SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("unable to parse SWEEPER_SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout.Duration = d
	}

	if err := lookupInt("SWEEPER_BOARD_SIZE", &c.Board.Size); err != nil {
		return err
	}
	if err := lookupInt("SWEEPER_MINE_COUNT", &c.Board.MineCount); err != nil {
		return err
	}
	return nil
}
