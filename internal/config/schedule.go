package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
)

// ScheduleFile is the YAML form of the base schedule. Either Slots is set,
// or the generator fields describe the working day.
type ScheduleFile struct {
	Slots []string `yaml:"slots"`

	Open        string `yaml:"open"`
	Close       string `yaml:"close"`
	LunchStart  string `yaml:"lunch_start"`
	LunchEnd    string `yaml:"lunch_end"`
	StepMinutes int    `yaml:"step_minutes"`
}

// LoadSchedule returns the default schedule when path is empty.
func LoadSchedule(path string) (*domain.Schedule, error) {
	if path == "" {
		return domain.DefaultSchedule(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return ParseSchedule(raw)
}

func ParseSchedule(raw []byte) (*domain.Schedule, error) {
	var f ScheduleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}

	if len(f.Slots) > 0 {
		return domain.NewSchedule(f.Slots)
	}
	return domain.GenerateSchedule(f.Open, f.Close, f.LunchStart, f.LunchEnd, f.StepMinutes)
}
