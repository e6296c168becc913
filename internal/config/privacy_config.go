package config

import (
	"fmt"
	"strings"
)

type PrivacyConfig struct {
	// RestrictCandidateDetails limits candidate details to applicants of the company's own jobs.
	RestrictCandidateDetails bool `mapstructure:"restrict_candidate_details"`
}

func (config PrivacyConfig) validate() error {
	return nil
}

func (config PrivacyConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"privacy.restrict_candidate_details": "RESTRICT_CANDIDATE_DETAILS",
	})
}

type StatsConfig struct {
	Cron string `mapstructure:"cron"`
}

func (config StatsConfig) validate() error {
	if strings.TrimSpace(config.Cron) == "" {
		return fmt.Errorf("missing variable: cron")
	}
	return nil
}

func (config StatsConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"stats.cron": "STATS_CRON",
	})
}
