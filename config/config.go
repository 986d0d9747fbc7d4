// Package config loads MasterModelConfig, the typed configuration a
// master.Instance is constructed and reconfigured from, following the
// distilled spec's §6 field list and the teacher's srv.Config
// Validate/Load idiom (accumulate every error before returning one,
// instead of failing on the first bad field).
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	file "github.com/wangkuiyi/file"

	"github.com/nkruglikov/bigartm/xerrors"
)

// RegularizerConfig names one configured regularizer and its tunables.
// Kind selects which regularize.Regularizer to build; Beta/Tau feed a
// DirichletPrior, the only regularizer kind this module constructs from
// config (custom regularize.Regularizer values can still be wired
// programmatically via orchestrator.Config without going through TOML).
type RegularizerConfig struct {
	Name string  `toml:"name"`
	Kind string  `toml:"kind"` // "dirichlet_prior" or "noop"
	Tau  float64 `toml:"tau"`
	Beta []float64 `toml:"beta"`
}

// ScoreConfig names one configured score.Calculator. This module only
// builds PerplexityCalculator from config today; Kind is carried for
// forward compatibility with additional calculators.
type ScoreConfig struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"` // "perplexity"
}

// MasterModelConfig is the typed, validated configuration a
// master.Instance is built and Reconfigured from, mirroring the
// distilled spec's field list for MasterModelConfig.
type MasterModelConfig struct {
	PwtName string `toml:"pwt_name"`
	NwtName string `toml:"nwt_name"`

	TopicName []string `toml:"topic_name"`

	ClassID     []string  `toml:"class_id"`
	ClassWeight []float64 `toml:"class_weight"`

	RegularizerConfig []RegularizerConfig `toml:"regularizer"`
	ScoreConfig       []ScoreConfig       `toml:"score"`

	InnerIterationsCount int `toml:"inner_iterations_count"`
	Threads              int `toml:"threads"`

	CacheTheta bool `toml:"cache_theta"`
	OptForAVX  bool `toml:"opt_for_avx"`
	ReuseTheta bool `toml:"reuse_theta"`
}

// Validate accumulates every invalid field into one error instead of
// failing on the first, matching srv.Config.Validate's style.
func (c *MasterModelConfig) Validate() error {
	var msgs []string

	if strings.TrimSpace(c.PwtName) == "" {
		msgs = append(msgs, "pwt_name must be specified")
	}
	if strings.TrimSpace(c.NwtName) == "" {
		msgs = append(msgs, "nwt_name must be specified")
	}
	if c.PwtName == c.NwtName && c.PwtName != "" {
		msgs = append(msgs, "pwt_name and nwt_name must differ")
	}
	if len(c.TopicName) == 0 {
		msgs = append(msgs, "topic_name must not be empty")
	}
	if len(c.ClassID) != len(c.ClassWeight) && len(c.ClassWeight) != 0 {
		msgs = append(msgs, fmt.Sprintf("class_id has %d entries but class_weight has %d", len(c.ClassID), len(c.ClassWeight)))
	}
	if c.InnerIterationsCount <= 0 {
		msgs = append(msgs, "inner_iterations_count must be positive")
	}
	if c.Threads <= 0 {
		msgs = append(msgs, "threads must be positive")
	}
	for i, rc := range c.RegularizerConfig {
		switch rc.Kind {
		case "dirichlet_prior", "noop":
		default:
			msgs = append(msgs, fmt.Sprintf("regularizer[%d]: unknown kind %q", i, rc.Kind))
		}
	}
	for i, sc := range c.ScoreConfig {
		switch sc.Kind {
		case "perplexity":
		default:
			msgs = append(msgs, fmt.Sprintf("score[%d]: unknown kind %q", i, sc.Kind))
		}
	}

	if len(msgs) > 0 {
		return xerrors.New(xerrors.InvalidOperation, "%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Load reads and validates a MasterModelConfig from a TOML file,
// grounded on papercomputeco-tapes/pkg/config/config.go's direct use of
// BurntSushi/toml for typed config loading, with file open errors
// wrapped as xerrors.DiskRead the way the teacher's LoadConfig wraps
// file.Open failures.
func Load(filename string) (*MasterModelConfig, error) {
	f, err := file.Open(filename)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.DiskRead, err, "open config file %s", filename)
	}
	defer f.Close()

	cfg := new(MasterModelConfig)
	if _, err := toml.DecodeReader(f, cfg); err != nil {
		return nil, xerrors.Wrap(xerrors.DiskRead, err, "decode TOML config %s", filename)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
