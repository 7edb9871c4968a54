package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type LoadOptions struct {
	ExplicitPath string
	Env          map[string]string
}

type fileConfig struct {
	BarWidth         *int      `yaml:"bar_width"`
	Indent           *int      `yaml:"indent"`
	FilledChar       *string   `yaml:"filled_char"`
	EmptyChar        *string   `yaml:"empty_char"`
	SpinnerFrames    *[]string `yaml:"spinner_frames"`
	RenderIntervalMS *int      `yaml:"render_interval_ms"`
	EstimateBuffer   *float64  `yaml:"estimate_buffer"`
}

// Load resolves the effective appearance: defaults, then the config file
// (explicit path required to exist, the user path optional), then
// CLI_PROGRESS_* environment overrides.
func Load(opts LoadOptions) (Appearance, error) {
	cfg := DefaultAppearance()

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		if err := mergeFile(&cfg, explicit, true); err != nil {
			return Appearance{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Appearance{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Appearance{}, err
		}
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Appearance{}, err
	}

	return Normalized(cfg), nil
}

func mergeFile(cfg *Appearance, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.BarWidth != nil {
		cfg.BarWidth = *fc.BarWidth
	}
	if fc.Indent != nil {
		cfg.Indent = *fc.Indent
	}
	if fc.FilledChar != nil {
		cfg.FilledChar = strings.TrimSpace(*fc.FilledChar)
	}
	if fc.EmptyChar != nil {
		cfg.EmptyChar = strings.TrimSpace(*fc.EmptyChar)
	}
	if fc.SpinnerFrames != nil {
		cfg.SpinnerFrames = append([]string{}, *fc.SpinnerFrames...)
	}
	if fc.RenderIntervalMS != nil {
		cfg.RenderInterval = time.Duration(*fc.RenderIntervalMS) * time.Millisecond
	}
	if fc.EstimateBuffer != nil {
		cfg.EstimateBuffer = *fc.EstimateBuffer
	}

	return nil
}

func applyEnvOverrides(cfg *Appearance, env map[string]string) error {
	if value := strings.TrimSpace(env["CLI_PROGRESS_BAR_WIDTH"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CLI_PROGRESS_BAR_WIDTH value %q: %w", value, err)
		}
		cfg.BarWidth = parsed
	}
	if value := strings.TrimSpace(env["CLI_PROGRESS_INDENT"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CLI_PROGRESS_INDENT value %q: %w", value, err)
		}
		cfg.Indent = parsed
	}
	if value := strings.TrimSpace(env["CLI_PROGRESS_RENDER_INTERVAL_MS"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CLI_PROGRESS_RENDER_INTERVAL_MS value %q: %w", value, err)
		}
		cfg.RenderInterval = time.Duration(parsed) * time.Millisecond
	}
	if value := strings.TrimSpace(env["CLI_PROGRESS_ESTIMATE_BUFFER"]); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid CLI_PROGRESS_ESTIMATE_BUFFER value %q: %w", value, err)
		}
		cfg.EstimateBuffer = parsed
	}
	return nil
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}
