package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/llm"
	"github.com/alexanderramin/triage/internal/logging"
	"github.com/alexanderramin/triage/internal/scoring"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "TRIAGE"

type Config struct {
	DBPath      string        `mapstructure:"db_path"`
	LogLevel    string        `mapstructure:"log_level"`
	LogUseCases bool          `mapstructure:"log_use_cases"`
	LLM         LLMConfig     `mapstructure:"llm"`
	Scoring     ScoringConfig `mapstructure:"scoring"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LLMConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	LogCalls         bool   `mapstructure:"log_calls"`
	Endpoint         string `mapstructure:"endpoint"`
	Model            string `mapstructure:"model"`
	TimeoutMs        int    `mapstructure:"timeout_ms"`
	MaxRetries       int    `mapstructure:"max_retries"`
	BreakerFailures  uint32 `mapstructure:"breaker_failures"`
	BreakerTimeoutMs int    `mapstructure:"breaker_timeout_ms"`
}

// ScoringConfig overrides the criticality weight tables. Status weights are
// keyed by phase (e.g. "desenvolvimento"), priority weights by priority name
// in English or Portuguese.
type ScoringConfig struct {
	StatusWeights         map[string]int `mapstructure:"status_weights"`
	PriorityWeights       map[string]int `mapstructure:"priority_weights"`
	DefaultStatusWeight   int            `mapstructure:"default_status_weight"`
	DefaultPriorityWeight int            `mapstructure:"default_priority_weight"`
}

func defaults(v *viper.Viper) {
	stock := scoring.DefaultWeights()
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_use_cases", false)
	v.SetDefault("llm.enabled", llmDefaults.Enabled)
	v.SetDefault("llm.log_calls", llmDefaults.LogCalls)
	v.SetDefault("llm.endpoint", llmDefaults.Endpoint)
	v.SetDefault("llm.model", llmDefaults.Model)
	v.SetDefault("llm.timeout_ms", llmDefaults.TimeoutMs)
	v.SetDefault("llm.max_retries", llmDefaults.MaxRetries)
	v.SetDefault("llm.breaker_failures", llmDefaults.BreakerFailures)
	v.SetDefault("llm.breaker_timeout_ms", llmDefaults.BreakerTimeoutMs)
	v.SetDefault("scoring.status_weights", map[string]int{})
	v.SetDefault("scoring.priority_weights", map[string]int{})
	v.SetDefault("scoring.default_status_weight", stock.DefaultStatus)
	v.SetDefault("scoring.default_priority_weight", stock.DefaultPriority)
}

// Load resolves configuration from defaults, an optional YAML file,
// TRIAGE_* environment variables and, when given, command line flags, in
// increasing order of precedence. An explicit path that cannot be read is an
// error; the default ~/.triage/config.yaml is optional.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_path", "TRIAGE_DB_PATH", "TRIAGE_DB")

	cfgPath := path
	if cfgPath == "" {
		cfgPath = os.Getenv(envPrefix + "_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else if err := readDefaultConfig(v); err != nil {
		return Config{}, err
	}

	if flags != nil {
		bindFlag(v, flags, "db_path", "db")
		bindFlag(v, flags, "log_level", "log-level")
		bindFlag(v, flags, "log_use_cases", "log-use-cases")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.DBPath = expandHome(cfg.DBPath)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// bindFlag binds a flag only when it exists so callers may register a
// subset of the known flags.
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if f := flags.Lookup(name); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

func validate(cfg Config) error {
	if cfg.DBPath == "" {
		return errors.New("config: db_path is required")
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("config: log_level %q is not a valid level", cfg.LogLevel)
	}
	if cfg.LLM.Enabled && cfg.LLM.Endpoint == "" {
		return errors.New("config: llm.endpoint is required when llm.enabled=true")
	}
	if cfg.LLM.TimeoutMs <= 0 {
		return errors.New("config: llm.timeout_ms must be > 0")
	}
	if cfg.LLM.MaxRetries < 0 {
		return errors.New("config: llm.max_retries must be >= 0")
	}
	if cfg.LLM.BreakerFailures == 0 {
		return errors.New("config: llm.breaker_failures must be > 0")
	}
	if cfg.LLM.BreakerTimeoutMs <= 0 {
		return errors.New("config: llm.breaker_timeout_ms must be > 0")
	}
	if _, err := cfg.ScoringWeights(); err != nil {
		return err
	}
	return nil
}

// ScoringWeights returns the stock weight tables with the configured
// overrides applied.
func (c Config) ScoringWeights() (scoring.Weights, error) {
	status := make(map[domain.StatusPhase]int, len(c.Scoring.StatusWeights))
	for key, w := range c.Scoring.StatusWeights {
		phase, err := domain.ParsePhase(key)
		if err != nil {
			return scoring.Weights{}, fmt.Errorf("config: scoring.status_weights: %w", err)
		}
		if phase == domain.PhaseCustom {
			return scoring.Weights{}, errors.New("config: scoring.status_weights: empty phase key (use default_status_weight)")
		}
		if err := checkWeight("scoring.status_weights."+key, w); err != nil {
			return scoring.Weights{}, err
		}
		status[phase] = w
	}

	priority := make(map[domain.Priority]int, len(c.Scoring.PriorityWeights))
	for key, w := range c.Scoring.PriorityWeights {
		p, err := domain.ParsePriority(key)
		if err != nil || p == "" {
			return scoring.Weights{}, fmt.Errorf("config: scoring.priority_weights: unknown priority %q", key)
		}
		if err := checkWeight("scoring.priority_weights."+key, w); err != nil {
			return scoring.Weights{}, err
		}
		priority[p] = w
	}

	if err := checkWeight("scoring.default_status_weight", c.Scoring.DefaultStatusWeight); err != nil {
		return scoring.Weights{}, err
	}
	if err := checkWeight("scoring.default_priority_weight", c.Scoring.DefaultPriorityWeight); err != nil {
		return scoring.Weights{}, err
	}

	w := scoring.DefaultWeights().WithOverrides(status, priority)
	w.DefaultStatus = c.Scoring.DefaultStatusWeight
	w.DefaultPriority = c.Scoring.DefaultPriorityWeight
	return w, nil
}

// LLMClientConfig translates the llm section into the client configuration,
// keeping the per-task defaults.
func (c Config) LLMClientConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Enabled = c.LLM.Enabled
	out.LogCalls = c.LLM.LogCalls
	out.Endpoint = strings.TrimRight(c.LLM.Endpoint, "/")
	out.Model = c.LLM.Model
	out.TimeoutMs = c.LLM.TimeoutMs
	out.MaxRetries = c.LLM.MaxRetries
	out.BreakerFailures = c.LLM.BreakerFailures
	out.BreakerTimeoutMs = c.LLM.BreakerTimeoutMs
	return out
}

func checkWeight(key string, w int) error {
	if w < 0 || w > 100 {
		return fmt.Errorf("config: %s must be between 0 and 100, got %d", key, w)
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	dir := homeDir()
	if dir == "" {
		return nil
	}
	for _, ext := range []string{"yaml", "yml"} {
		candidate := filepath.Join(dir, "config."+ext)
		if _, err := os.Stat(candidate); err == nil {
			return readConfigFile(v, candidate)
		}
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".triage")
}

func defaultDBPath() string {
	if dir := homeDir(); dir != "" {
		return filepath.Join(dir, "triage.db")
	}
	return "triage.db"
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
