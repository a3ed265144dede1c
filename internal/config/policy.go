package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PolicyConfig holds tunable business policy. The amil cut is the fraction of
// every zakat/infaq/DSKL income diverted to the amil funding wallet.
type PolicyConfig struct {
	AmilCutNumerator   int64 `mapstructure:"amilCutNumerator"`
	AmilCutDenominator int64 `mapstructure:"amilCutDenominator"`
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		AmilCutNumerator:   1,
		AmilCutDenominator: 10,
	}
}

// AmilCut returns floor(gross * rate) for a non-negative gross amount.
func (p PolicyConfig) AmilCut(gross int64) int64 {
	if gross <= 0 || p.AmilCutDenominator == 0 {
		return 0
	}
	return gross * p.AmilCutNumerator / p.AmilCutDenominator
}

// PolicyHolder exposes the current policy config with hot reload.
type PolicyHolder struct {
	current atomic.Value // holds PolicyConfig
}

func NewPolicyHolder() (*PolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/maal/config")
	v.AddConfigPath("/etc/maal")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MAAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPolicyConfig()
		v.SetDefault("policy.amilCutNumerator", defaults.AmilCutNumerator)
		v.SetDefault("policy.amilCutDenominator", defaults.AmilCutDenominator)
	}

	var cfg PolicyConfig
	if err := v.UnmarshalKey("policy", &cfg); err != nil {
		return nil, err
	}
	if err := validatePolicyConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PolicyHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PolicyConfig
		if err := v.UnmarshalKey("policy", &updated); err != nil {
			log.Printf("[policy-config] reload failed: %v", err)
			return
		}
		if err := validatePolicyConfig(updated); err != nil {
			log.Printf("[policy-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// NewStaticPolicyHolder returns a holder pinned to the given config. Tests use it.
func NewStaticPolicyHolder(cfg PolicyConfig) *PolicyHolder {
	holder := &PolicyHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PolicyHolder) Current() PolicyConfig {
	return h.current.Load().(PolicyConfig)
}

func validatePolicyConfig(cfg PolicyConfig) error {
	if cfg.AmilCutDenominator <= 0 {
		return errors.New("policy: amilCutDenominator must be positive")
	}
	if cfg.AmilCutNumerator < 0 || cfg.AmilCutNumerator > cfg.AmilCutDenominator {
		return errors.New("policy: amilCutNumerator out of range")
	}
	return nil
}
