package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicyAmilCut(t *testing.T) {
	cfg := DefaultPolicyConfig()

	assert.Equal(t, int64(100), cfg.AmilCut(1000))
	assert.Equal(t, int64(0), cfg.AmilCut(0))
	assert.Equal(t, int64(0), cfg.AmilCut(9))
	assert.Equal(t, int64(1), cfg.AmilCut(15))
	assert.Equal(t, int64(0), cfg.AmilCut(-500))
}

func TestValidatePolicyConfig(t *testing.T) {
	assert.NoError(t, validatePolicyConfig(DefaultPolicyConfig()))
	assert.Error(t, validatePolicyConfig(PolicyConfig{AmilCutNumerator: 1, AmilCutDenominator: 0}))
	assert.Error(t, validatePolicyConfig(PolicyConfig{AmilCutNumerator: 11, AmilCutDenominator: 10}))
}
