package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *MasterModelConfig {
	return &MasterModelConfig{
		PwtName:              "pwt",
		NwtName:              "nwt",
		TopicName:            []string{"t0", "t1"},
		InnerIterationsCount: 10,
		Threads:              4,
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateAccumulatesMultipleErrors(t *testing.T) {
	cfg := &MasterModelConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"pwt_name", "nwt_name", "topic_name", "inner_iterations_count", "threads"} {
		assert.True(t, strings.Contains(msg, want), "expected error message to mention %q, got %q", want, msg)
	}
}

func TestValidateRejectsSamePwtAndNwtName(t *testing.T) {
	cfg := validConfig()
	cfg.NwtName = cfg.PwtName
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMismatchedClassWeights(t *testing.T) {
	cfg := validConfig()
	cfg.ClassID = []string{"default", "title"}
	cfg.ClassWeight = []float64{1.0}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownRegularizerKind(t *testing.T) {
	cfg := validConfig()
	cfg.RegularizerConfig = []RegularizerConfig{{Name: "r1", Kind: "bogus"}}
	assert.Error(t, cfg.Validate())
}
