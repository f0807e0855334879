package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunReport is the serialisable record of a finished expedition, suitable for
// diffing two runs of the same seed.
type RunReport struct {
	Seed        int64    `yaml:"seed"`
	Steps       int      `yaml:"steps"`
	Instability int      `yaml:"instability"`
	Outcome     string   `yaml:"outcome"`
	Level       int      `yaml:"level"`
	Experience  int      `yaml:"experience"`
	Player      string   `yaml:"player"`
	FinalStats  Stats    `yaml:"final_stats"`
	Route       []string `yaml:"route"`
	Journal     []string `yaml:"journal"`
}

// Report summarises the run after Play has returned.
func (r *Run) Report(outcome RunOutcome) RunReport {
	return RunReport{
		Seed:        r.cfg.Seed,
		Steps:       r.cfg.Steps,
		Instability: r.cfg.Instability,
		Outcome:     outcome.String(),
		Level:       r.level,
		Experience:  r.experience,
		Player:      r.player.Name,
		FinalStats:  r.player.Stats,
		Route:       r.route,
		Journal:     r.journal,
	}
}

func WriteReport(path string, report RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
