package experiment

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_suite.yaml
var defaultSuite []byte

// Suite is a base configuration plus ordered experiment overrides.
type Suite struct {
	base        *yaml.Node
	experiments []*yaml.Node
}

type suiteFile struct {
	Base        yaml.Node   `yaml:"base"`
	Experiments []yaml.Node `yaml:"experiments"`
}

// DefaultSuite returns the four built-in experiments.
func DefaultSuite() *Suite {
	s, err := ParseSuite(defaultSuite)
	if err != nil {
		panic(fmt.Sprintf("experiment: embedded default suite: %v", err))
	}

	return s
}

// LoadSuite reads a suite from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}
	s, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("parsing suite file %s: %w", path, err)
	}

	return s, nil
}

// ParseSuite decodes a suite document with top-level keys "base" and
// "experiments".
func ParseSuite(data []byte) (*Suite, error) {
	var f suiteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Base.Kind != 0 && f.Base.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: base must be a mapping", ErrInvalidConfig)
	}
	if len(f.Experiments) == 0 {
		return nil, fmt.Errorf("%w: no experiments", ErrInvalidConfig)
	}

	s := &Suite{base: &f.Base}
	for k := range f.Experiments {
		if f.Experiments[k].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: experiment %d must be a mapping", ErrInvalidConfig, k+1)
		}
		s.experiments = append(s.experiments, &f.Experiments[k])
	}

	return s, nil
}

// Configs merges every experiment over the base, in declaration order. Keys
// set by an experiment replace the base value as a whole. Unknown keys are
// rejected.
func (s *Suite) Configs() ([]Config, error) {
	out := make([]Config, 0, len(s.experiments))
	for k, exp := range s.experiments {
		merged := mergeMappings(s.base, exp)
		var c Config
		if err := decodeStrict(merged, &c); err != nil {
			return nil, fmt.Errorf("experiment %d: %w", k+1, err)
		}
		if c.Name == "" {
			c.Name = c.ExperimentName
		}
		out = append(out, c)
	}

	return out, nil
}

func mergeMappings(base, override *yaml.Node) *yaml.Node {
	merged := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	index := make(map[string]int)
	if base != nil && base.Kind == yaml.MappingNode {
		for k := 0; k+1 < len(base.Content); k += 2 {
			index[base.Content[k].Value] = len(merged.Content)
			merged.Content = append(merged.Content, base.Content[k], base.Content[k+1])
		}
	}
	for k := 0; k+1 < len(override.Content); k += 2 {
		key := override.Content[k].Value
		if at, ok := index[key]; ok {
			merged.Content[at+1] = override.Content[k+1]
			continue
		}
		index[key] = len(merged.Content)
		merged.Content = append(merged.Content, override.Content[k], override.Content[k+1])
	}

	return merged
}

// decodeStrict decodes n into out, rejecting keys out does not declare.
func decodeStrict(n *yaml.Node, out *Config) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec.Decode(out)
}
