package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.reefrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseRunner(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if cfg, err := parseRunner(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRunner decodes YAML on top of the built-in defaults, so partial files
// only override the keys they mention.
func parseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("config: field size must be positive")
	case c.Field.GroundY <= 0 || c.Field.GroundY > c.Field.Height:
		return fmt.Errorf("config: ground_y %.0f outside field", c.Field.GroundY)
	case c.Player.StartLives <= 0 || c.Player.StartLives > c.Player.MaxLives:
		return fmt.Errorf("config: start_lives %d must be in 1..max_lives", c.Player.StartLives)
	case c.Player.JumpBudget <= 0:
		return fmt.Errorf("config: jump_budget must be positive")
	case c.Difficulty.RampTicks <= 0:
		return fmt.Errorf("config: ramp_ticks must be positive")
	case c.Difficulty.MinMultiplier > c.Difficulty.MaxMultiplier:
		return fmt.Errorf("config: min_multiplier exceeds max_multiplier")
	case c.Difficulty.SceneTicks <= 0:
		return fmt.Errorf("config: scene_ticks must be positive")
	case c.PowerUps.ShotInterval <= 0:
		return fmt.Errorf("config: shot_interval must be positive")
	}
	for _, lvl := range Levels {
		if every := c.Levels.For(lvl).BonusLifeEvery; every <= 0 {
			return fmt.Errorf("config: %s bonus_life_every must be positive", lvl)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reefrun", "configs", filename)
}
