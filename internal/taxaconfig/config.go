// Package taxaconfig loads the layered runtime configuration for the
// classification pipeline: compiled-in defaults, overridden by an optional
// YAML file, overridden by CLI flags.
package taxaconfig

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds every runtime tunable the pipeline and detector recognize.
type Config struct {
	WindowThreshold int `koanf:"window_threshold"`
	SubjectWindow   int `koanf:"subject_window"`
	ActionWindow    int `koanf:"action_window"`
	MaxClauseLen    int `koanf:"max_clause_len"`

	MakingBaseRate      float64 `koanf:"making_base_rate"`
	MakingLowThreshold  float64 `koanf:"making_low_threshold"`
	MakingHighThreshold float64 `koanf:"making_high_threshold"`

	PopimarEligibleDutyTypes []string `koanf:"popimar_eligible_duty_types"`
}

// Default returns the compiled-in defaults.
func Default() Config {
	return Config{
		WindowThreshold: 50000,
		SubjectWindow:   120,
		ActionWindow:    200,
		MaxClauseLen:    300,

		MakingBaseRate:      0.173,
		MakingLowThreshold:  0.30,
		MakingHighThreshold: 0.70,

		PopimarEligibleDutyTypes: []string{
			"Duty", "Right", "Responsibility", "Power",
			"Process, Rule, Constraint, Condition",
		},
	}
}

func (c Config) asMap() map[string]interface{} {
	return map[string]interface{}{
		"window_threshold":           c.WindowThreshold,
		"subject_window":             c.SubjectWindow,
		"action_window":              c.ActionWindow,
		"max_clause_len":             c.MaxClauseLen,
		"making_base_rate":           c.MakingBaseRate,
		"making_low_threshold":       c.MakingLowThreshold,
		"making_high_threshold":      c.MakingHighThreshold,
		"popimar_eligible_duty_types": c.PopimarEligibleDutyTypes,
	}
}

// Load builds a Config from the compiled-in defaults, an optional YAML file
// at path (skipped entirely if path is ""), and flags (skipped if nil), in
// that precedence order — each layer only overrides the keys it actually
// sets.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Default().asMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading default config layer: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("loading flag overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
