package config

// This file implements environment-based overrides. A .env file in the
// working directory is loaded first (if present), then VERSEREEL_* variables
// are applied on top of the defaults. CLI flags are applied last and win.

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when one exists and applies VERSEREEL_*
// environment overrides to cfg. A missing .env file is not an error;
// a malformed numeric variable is.
func LoadEnv(cfg *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}

	applyString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	applyString("VERSEREEL_LINES", &cfg.LinesPath)
	applyString("VERSEREEL_IMAGE_DIR", &cfg.ImageDir)
	applyString("VERSEREEL_AUDIO_DIR", &cfg.AudioDir)
	applyString("VERSEREEL_MUSIC", &cfg.MusicPath)
	applyString("VERSEREEL_LOG", &cfg.LogFile)

	if err := applyFloat("VERSEREEL_INTRO", &cfg.IntroDuration); err != nil {
		return err
	}
	if err := applyFloat("VERSEREEL_OUTRO", &cfg.OutroDuration); err != nil {
		return err
	}
	if err := applyFloat("VERSEREEL_PAUSE", &cfg.PauseDuration); err != nil {
		return err
	}
	if err := applyInt("VERSEREEL_WIDTH", &cfg.Width); err != nil {
		return err
	}
	if err := applyInt("VERSEREEL_HEIGHT", &cfg.Height); err != nil {
		return err
	}
	if err := applyInt("VERSEREEL_PROBE_WORKERS", &cfg.ProbeWorkers); err != nil {
		return err
	}
	return nil
}

func applyFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number (got %q)", key, v)
	}
	*dst = f
	return nil
}

func applyInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be a whole number (got %q)", key, v)
	}
	*dst = n
	return nil
}
