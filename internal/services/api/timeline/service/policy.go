package service

import (
	"activitycal/internal/core/estimate"
	"activitycal/internal/platform/config"
)

// PolicyFromConfig reads the estimation policy. ACTIVITY_POLICY_FILE names an optional
// YAML file; LABOR_RATE and MAX_HOURS override whichever policy was loaded
func PolicyFromConfig(cfg config.Conf) (estimate.Policy, error) {
	p := estimate.DefaultPolicy()
	if path := cfg.MayString("POLICY_FILE", ""); path != "" {
		var err error
		if p, err = estimate.LoadPolicyFile(path); err != nil {
			return estimate.Policy{}, err
		}
	}
	p.LaborRate = cfg.MayFloat64("LABOR_RATE", p.LaborRate)
	p.MaxHours = cfg.MayFloat64("MAX_HOURS", p.MaxHours)
	if err := p.Validate(); err != nil {
		return estimate.Policy{}, err
	}
	return p, nil
}
