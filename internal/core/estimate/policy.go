package estimate

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var embedded []byte

// Policy holds the tunables of the heuristic tier
type Policy struct {
	LaborRate     float64            `yaml:"labor_rate"`
	MaxHours      float64            `yaml:"max_hours"`
	BaseHours     float64            `yaml:"base_hours"`
	ImagesPerHour float64            `yaml:"images_per_hour"`
	KindBonus     map[string]float64 `yaml:"kind_bonus"`
	ZeroKinds     []string           `yaml:"zero_kinds"`
	VoidStatuses  []string           `yaml:"void_statuses"`
}

// DefaultPolicy returns the embedded policy
func DefaultPolicy() Policy {
	var p Policy
	if err := yaml.Unmarshal(embedded, &p); err != nil {
		panic(fmt.Errorf("estimate: embedded policy: %w", err))
	}
	return p
}

// LoadPolicy decodes a YAML policy over the defaults
// omitted scalars keep their default, kind_bonus entries merge and lists replace
func LoadPolicy(r io.Reader) (Policy, error) {
	p := DefaultPolicy()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Policy{}, fmt.Errorf("estimate: decode policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicyFile reads a YAML policy from path
func LoadPolicyFile(path string) (Policy, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Policy{}, fmt.Errorf("estimate: open policy: %w", err)
	}
	defer func() { _ = fh.Close() }()
	return LoadPolicy(fh)
}

// Validate rejects policies that would produce negative or unbounded estimates
func (p Policy) Validate() error {
	switch {
	case p.LaborRate < 0:
		return fmt.Errorf("estimate: labor_rate must be >= 0, got %v", p.LaborRate)
	case p.MaxHours <= 0:
		return fmt.Errorf("estimate: max_hours must be > 0, got %v", p.MaxHours)
	case p.BaseHours < 0:
		return fmt.Errorf("estimate: base_hours must be >= 0, got %v", p.BaseHours)
	case p.ImagesPerHour <= 0:
		return fmt.Errorf("estimate: images_per_hour must be > 0, got %v", p.ImagesPerHour)
	}
	for k, v := range p.KindBonus {
		if v < 0 {
			return fmt.Errorf("estimate: kind_bonus[%s] must be >= 0, got %v", k, v)
		}
	}
	return nil
}

func toSet(vs []string) map[string]struct{} {
	out := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		out[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return out
}
