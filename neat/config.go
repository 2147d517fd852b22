package neat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters for an evolutionary run.
type Config struct {
	Neat       NeatConfig       `yaml:"neat"`
	Genome     GenomeConfig     `yaml:"genome"`
	SpeciesSet SpeciesSetConfig `yaml:"species_set"`
}

// NeatConfig holds the network shape shared by every genome of a registry.
type NeatConfig struct {
	NumInputs  int `ini:"num_inputs" yaml:"num_inputs"`
	NumOutputs int `ini:"num_outputs" yaml:"num_outputs"`
}

// GenomeConfig holds compatibility weights and mutation constants.
type GenomeConfig struct {
	CompatibilityDisjointCoefficient float64 `ini:"compatibility_disjoint_coefficient" yaml:"compatibility_disjoint_coefficient"` // c1
	CompatibilityWeightCoefficient   float64 `ini:"compatibility_weight_coefficient" yaml:"compatibility_weight_coefficient"`     // c2
	DisableChance                    float64 `ini:"disable_chance" yaml:"disable_chance"`                                         // Chance a gene disabled in a parent stays disabled

	// Carried for drivers; the core never reads them.
	WeightMutationChance float64 `ini:"weight_mutation_chance" yaml:"weight_mutation_chance"`
	NewWeightChance      float64 `ini:"new_weight_chance" yaml:"new_weight_chance"`
	NewNodeChance        float64 `ini:"new_node_chance" yaml:"new_node_chance"`
	NewConnectionChance  float64 `ini:"new_connection_chance" yaml:"new_connection_chance"`
}

// SpeciesSetConfig holds parameters related to speciation.
type SpeciesSetConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold" yaml:"compatibility_threshold"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	p := DefaultParameters()
	return &Config{
		Neat: NeatConfig{NumInputs: 2, NumOutputs: 1},
		Genome: GenomeConfig{
			CompatibilityDisjointCoefficient: p.DisjointCoefficient,
			CompatibilityWeightCoefficient:   p.WeightCoefficient,
			DisableChance:                    p.DisableChance,
			WeightMutationChance:             p.WeightMutationChance,
			NewWeightChance:                  p.NewWeightChance,
			NewNodeChance:                    p.NewNodeChance,
			NewConnectionChance:              p.NewConnectionChance,
		},
		SpeciesSet: SpeciesSetConfig{CompatibilityThreshold: p.CompatibilityThreshold},
	}
}

// LoadConfig loads configuration parameters from an INI file, or from YAML
// when the file extension is .yaml or .yml. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := loadYAML(filePath, config); err != nil {
			return nil, err
		}
	default:
		if err := loadINI(filePath, config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadINI(filePath string, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
		return fmt.Errorf("failed to map [NEAT] section: %w", err)
	}
	if err := cfg.Section("DefaultGenome").MapTo(&config.Genome); err != nil {
		return fmt.Errorf("failed to map [DefaultGenome] section: %w", err)
	}
	if err := cfg.Section("DefaultSpeciesSet").MapTo(&config.SpeciesSet); err != nil {
		return fmt.Errorf("failed to map [DefaultSpeciesSet] section: %w", err)
	}
	return nil
}

func loadYAML(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return nil
}

// Validate checks that every value is usable by a registry.
func (c *Config) Validate() error {
	if c.Neat.NumInputs <= 0 {
		return fmt.Errorf("%w: num_inputs must be positive", ErrInvalidConfig)
	}
	if c.Neat.NumOutputs <= 0 {
		return fmt.Errorf("%w: num_outputs must be positive", ErrInvalidConfig)
	}
	if c.Genome.CompatibilityDisjointCoefficient < 0 {
		return fmt.Errorf("%w: compatibility_disjoint_coefficient cannot be negative", ErrInvalidConfig)
	}
	if c.Genome.CompatibilityWeightCoefficient < 0 {
		return fmt.Errorf("%w: compatibility_weight_coefficient cannot be negative", ErrInvalidConfig)
	}
	if c.SpeciesSet.CompatibilityThreshold < 0 {
		return fmt.Errorf("%w: compatibility_threshold cannot be negative", ErrInvalidConfig)
	}

	chances := []struct {
		name  string
		value float64
	}{
		{"disable_chance", c.Genome.DisableChance},
		{"weight_mutation_chance", c.Genome.WeightMutationChance},
		{"new_weight_chance", c.Genome.NewWeightChance},
		{"new_node_chance", c.Genome.NewNodeChance},
		{"new_connection_chance", c.Genome.NewConnectionChance},
	}
	for _, ch := range chances {
		if ch.value < 0 || ch.value > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1", ErrInvalidConfig, ch.name)
		}
	}
	return nil
}

// Parameters extracts the registry's evolutionary constants.
func (c *Config) Parameters() Parameters {
	return Parameters{
		DisjointCoefficient:    c.Genome.CompatibilityDisjointCoefficient,
		WeightCoefficient:      c.Genome.CompatibilityWeightCoefficient,
		DisableChance:          c.Genome.DisableChance,
		CompatibilityThreshold: c.SpeciesSet.CompatibilityThreshold,
		WeightMutationChance:   c.Genome.WeightMutationChance,
		NewWeightChance:        c.Genome.NewWeightChance,
		NewNodeChance:          c.Genome.NewNodeChance,
		NewConnectionChance:    c.Genome.NewConnectionChance,
	}
}
