package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DateLayout is the format of every date in the config file
const DateLayout = "2006-01-02"

// rotationStartOffsets maps the first-day cycle position to a rotation offset
var rotationStartOffsets = map[string]int{
	"day":   0,
	"night": 1,
	"post":  2,
	"off":   3,
}

// StaffConfig describes one member of the staff pool. Order in the file is
// the row order of the roster.
type StaffConfig struct {
	Name       string   `yaml:"name" validate:"required"`
	Team       string   `yaml:"team,omitempty"`
	Categories []string `yaml:"categories" validate:"required,min=1,dive,oneof=system security team support"`

	// RotationStart is where the member is in the [day, night, post, off]
	// cycle on the first day of the period. Empty means no fixed rotation.
	RotationStart string `yaml:"rotationStart,omitempty" validate:"omitempty,oneof=day night post off"`
}

// VacationConfig fixes days off for a staff member, either as an inclusive
// 1-based day range or as a recurrence rule evaluated over the period
type VacationConfig struct {
	Staff string `yaml:"staff" validate:"required"`
	From  int    `yaml:"from,omitempty" validate:"omitempty,min=1"`
	To    int    `yaml:"to,omitempty" validate:"omitempty,gtefield=From"`
	RRule string `yaml:"rrule,omitempty" validate:"required_without=From"`
}

// SearchConfig overrides the search defaults. Zero values keep the default.
type SearchConfig struct {
	PopulationSize   int      `yaml:"populationSize,omitempty" validate:"omitempty,min=1"`
	GenerationLimit  int      `yaml:"generationLimit,omitempty" validate:"omitempty,min=1"`
	EliteFraction    float64  `yaml:"eliteFraction,omitempty" validate:"omitempty,gt=0,lte=1"`
	MutationRate     *float64 `yaml:"mutationRate,omitempty" validate:"omitempty,gte=0,lte=1"`
	SuccessThreshold *float64 `yaml:"successThreshold,omitempty"`
	Workers          int      `yaml:"workers,omitempty" validate:"omitempty,min=1"`
}

// WeightsConfig overrides individual criterion weights
type WeightsConfig struct {
	RoleBalance     *float64 `yaml:"roleBalance,omitempty" validate:"omitempty,gte=0"`
	RestAfterNight  *float64 `yaml:"restAfterNight,omitempty" validate:"omitempty,gte=0"`
	RotationCycle   *float64 `yaml:"rotationCycle,omitempty" validate:"omitempty,gte=0"`
	LeaderPriority  *float64 `yaml:"leaderPriority,omitempty" validate:"omitempty,gte=0"`
	ConsecutiveWork *float64 `yaml:"consecutiveWork,omitempty" validate:"omitempty,gte=0"`
	ConsecutiveOff  *float64 `yaml:"consecutiveOff,omitempty" validate:"omitempty,gte=0"`
	WorkingHours    *float64 `yaml:"workingHours,omitempty" validate:"omitempty,gte=0"`
}

// Config represents the application configuration
type Config struct {
	PeriodStart   string           `yaml:"periodStart" validate:"required,datetime=2006-01-02"`
	Days          int              `yaml:"days" validate:"required,min=1"`
	Staff         []StaffConfig    `yaml:"staff" validate:"required,min=1,dive"`
	Vacations     []VacationConfig `yaml:"vacations,omitempty" validate:"dive"`
	Search        SearchConfig     `yaml:"search,omitempty"`
	Weights       WeightsConfig    `yaml:"weights,omitempty"`
	RosterSheetID string           `yaml:"rosterSheetID,omitempty"`

	// Runs are stored in Postgres when DatabaseURL is set, otherwise in the
	// DatabaseSheetID spreadsheet
	DatabaseURL     string `yaml:"databaseURL,omitempty" validate:"omitempty,url"`
	DatabaseSheetID string `yaml:"databaseSheetID,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates shift_roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the config with an environment suffix
// For example, env="test" will look for "shift_roster_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, then checks references
// between sections and rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	names := make(map[string]bool, len(cfg.Staff))
	for i, s := range cfg.Staff {
		if names[s.Name] {
			return fmt.Errorf("duplicate staff name in staff[%d]: %q", i, s.Name)
		}
		names[s.Name] = true
	}

	for i, v := range cfg.Vacations {
		if !names[v.Staff] {
			return fmt.Errorf("vacations[%d] references unknown staff %q", i, v.Staff)
		}
		if v.RRule != "" {
			if _, err := rrule.StrToRRule(v.RRule); err != nil {
				return fmt.Errorf("invalid rrule in vacations[%d]: %w", i, err)
			}
			continue
		}
		if v.lastDay() > cfg.Days {
			return fmt.Errorf("vacations[%d] ends on day %d after the %d day period", i, v.lastDay(), cfg.Days)
		}
	}

	return nil
}

// lastDay is the inclusive 1-based end of a ranged vacation. A missing To
// means a single day.
func (v VacationConfig) lastDay() int {
	if v.To == 0 {
		return v.From
	}
	return v.To
}

// Start parses PeriodStart. Validate has already checked the layout.
func (c *Config) Start() time.Time {
	start, _ := time.Parse(DateLayout, c.PeriodStart)
	return start
}

// Date returns the calendar date of a 0-based day index
func (c *Config) Date(day int) time.Time {
	return c.Start().AddDate(0, 0, day)
}

// StaffIndex returns the roster row of the named staff member
func (c *Config) StaffIndex(name string) (int, bool) {
	for i, s := range c.Staff {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

// RotationOffsets maps staff index to rotation offset for every member with
// a rotation start
func (c *Config) RotationOffsets() map[int]int {
	offsets := make(map[int]int)
	for i, s := range c.Staff {
		if offset, ok := rotationStartOffsets[s.RotationStart]; ok {
			offsets[i] = offset
		}
	}
	return offsets
}

// VacationDays expands every vacation entry into 0-based day indices keyed
// by staff index. Recurrence rules start at PeriodStart and are clipped to
// the period.
func (c *Config) VacationDays() (map[int][]int, error) {
	start := c.Start()
	end := c.Date(c.Days - 1)
	days := make(map[int][]int)

	for i, v := range c.Vacations {
		staffIdx, ok := c.StaffIndex(v.Staff)
		if !ok {
			return nil, fmt.Errorf("vacations[%d] references unknown staff %q", i, v.Staff)
		}

		if v.RRule == "" {
			for day := v.From; day <= v.lastDay(); day++ {
				days[staffIdx] = append(days[staffIdx], day-1)
			}
			continue
		}

		rule, err := rrule.StrToRRule(v.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for vacations[%d]: %w", i, err)
		}
		rule.DTStart(start)
		for _, occurrence := range rule.Between(start, end, true) {
			day := int(occurrence.Sub(start).Hours() / 24)
			if day >= 0 && day < c.Days {
				days[staffIdx] = append(days[staffIdx], day)
			}
		}
	}

	return days, nil
}

// findConfigFile searches for shift_roster_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "shift_roster_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "shift_roster_config.yaml"
	if env != "" {
		configFileName = "shift_roster_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
