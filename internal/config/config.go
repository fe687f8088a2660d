// Package config loads the search configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"build-optimizer/internal/skillpoint"
)

// ErrUnsupportedKey is returned for unknown top-level keys.
var ErrUnsupportedKey = errors.New("config: unsupported key")

// Config is the full search configuration.
type Config struct {
	Items  Items  `yaml:"items"`
	Player Player `yaml:"player"`
	Search Search `yaml:"search"`
	Output Output `yaml:"output"`

	// Staged filters, all optional. Stages run in order and the cheap ones
	// come first.
	ThresholdFirst  *ThresholdFirst  `yaml:"threshold_first"`
	ThresholdSecond *ThresholdSecond `yaml:"threshold_second"`
	ThresholdThird  *ThresholdThird  `yaml:"threshold_third"`
	ThresholdFourth *ThresholdFourth `yaml:"threshold_fourth"`
	ThresholdFifth  *ThresholdFifth  `yaml:"threshold_fifth"`
}

// Items lists the candidate names per slot. Both ring slots draw from Rings.
type Items struct {
	Helmets             []string   `yaml:"helmets"`
	ChestPlates         []string   `yaml:"chest_plates"`
	Leggings            []string   `yaml:"leggings"`
	Boots               []string   `yaml:"boots"`
	Rings               []string   `yaml:"rings"`
	Bracelets           []string   `yaml:"bracelets"`
	Necklaces           []string   `yaml:"necklaces"`
	Weapon              string     `yaml:"weapon"`
	IllegalCombinations [][]string `yaml:"illegal_combinations"`
}

type Player struct {
	Level          int `yaml:"lvl"`
	AvailablePoint int `yaml:"available_point"`
	BaseHP         int `yaml:"base_hp"`
}

type Search struct {
	SegmentSize int     `yaml:"segment_size"`
	Workers     int     `yaml:"workers"`
	Solver      string  `yaml:"solver"`
	Seed        *uint64 `yaml:"seed"`
	// MaxResults stops the search after this many feasible builds; 0 means no limit.
	MaxResults int `yaml:"max_results"`
}

type Output struct {
	DBPath    string `yaml:"db_path"`
	XLSXPath  string `yaml:"xlsx_path"`
	LogBuilds bool   `yaml:"log_builds"`
	URLPrefix string `yaml:"url_prefix"`
	URLSuffix string `yaml:"url_suffix"`
}

type ThresholdFirst struct {
	MinHP *int `yaml:"min_hp"`
}

type ThresholdSecond struct {
	MinHPRRaw *int `yaml:"min_hpr_raw"`
	MinHPRPct *int `yaml:"min_hpr_pct"`
	MinMR     *int `yaml:"min_mr"`
	MinLS     *int `yaml:"min_ls"`
	MinMS     *int `yaml:"min_ms"`
	MinSpd    *int `yaml:"min_spd"`
	MinSDRaw  *int `yaml:"min_sd_raw"`
	MinSDPct  *int `yaml:"min_sd_pct"`

	MinHPR *int `yaml:"min_hpr"`
}

type ThresholdThird struct {
	MinEarthDefense   *int `yaml:"min_earth_defense"`
	MinThunderDefense *int `yaml:"min_thunder_defense"`
	MinWaterDefense   *int `yaml:"min_water_defense"`
	MinFireDefense    *int `yaml:"min_fire_defense"`
	MinAirDefense     *int `yaml:"min_air_defense"`
}

type ThresholdFourth struct {
	MinNeutralDamPct *int `yaml:"min_neutral_dam_pct"`
	MinEarthDamPct   *int `yaml:"min_earth_dam_pct"`
	MinThunderDamPct *int `yaml:"min_thunder_dam_pct"`
	MinWaterDamPct   *int `yaml:"min_water_dam_pct"`
	MinFireDamPct    *int `yaml:"min_fire_dam_pct"`
	MinAirDamPct     *int `yaml:"min_air_dam_pct"`
}

type ThresholdFifth struct {
	MinEarthPoint   *int `yaml:"min_earth_point"`
	MinThunderPoint *int `yaml:"min_thunder_point"`
	MinWaterPoint   *int `yaml:"min_water_point"`
	MinFirePoint    *int `yaml:"min_fire_point"`
	MinAirPoint     *int `yaml:"min_air_point"`

	MinEHP *int `yaml:"min_ehp"`
}

var topLevelKeys = map[string]struct{}{
	"items":            {},
	"player":           {},
	"search":           {},
	"output":           {},
	"threshold_first":  {},
	"threshold_second": {},
	"threshold_third":  {},
	"threshold_fourth": {},
	"threshold_fifth":  {},
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value != nil && value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if _, ok := topLevelKeys[k.Value]; !ok {
				return fmt.Errorf("%w %q", ErrUnsupportedKey, k.Value)
			}
		}
	}

	type raw Config
	tmp := raw(*c)
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

// Default returns the built-in defaults. Parse starts from these.
func Default() Config {
	return Config{
		Player: Player{Level: 106, AvailablePoint: 200, BaseHP: 500},
		Search: Search{
			SegmentSize: 1000,
			Workers:     runtime.GOMAXPROCS(0),
			Solver:      skillpoint.SolverSCC.String(),
		},
		Output: Output{URLPrefix: "https://hppeng-wynn.github.io/builder/#"},
	}
}

// envOverrides are read from the process environment and win over the file.
type envOverrides struct {
	Workers     int    `env:"BUILD_OPTIMIZER_WORKERS"`
	SegmentSize int    `env:"BUILD_OPTIMIZER_SEGMENT_SIZE"`
	DBPath      string `env:"BUILD_OPTIMIZER_DB_PATH"`
	XLSXPath    string `env:"BUILD_OPTIMIZER_XLSX_PATH"`
	Solver      string `env:"BUILD_OPTIMIZER_SOLVER"`
}

// ApplyEnv overlays environment overrides onto c.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Workers > 0 {
		c.Search.Workers = o.Workers
	}
	if o.SegmentSize > 0 {
		c.Search.SegmentSize = o.SegmentSize
	}
	if o.DBPath != "" {
		c.Output.DBPath = o.DBPath
	}
	if o.XLSXPath != "" {
		c.Output.XLSXPath = o.XLSXPath
	}
	if o.Solver != "" {
		c.Search.Solver = o.Solver
	}
	return nil
}

// Parse decodes YAML over Default and validates the result. It does not read
// the environment.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads path, applies environment overrides and validates.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	if err := c.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the fields the search cannot run without.
func (c Config) Validate() error {
	slots := []struct {
		key   string
		names []string
	}{
		{"helmets", c.Items.Helmets},
		{"chest_plates", c.Items.ChestPlates},
		{"leggings", c.Items.Leggings},
		{"boots", c.Items.Boots},
		{"rings", c.Items.Rings},
		{"bracelets", c.Items.Bracelets},
		{"necklaces", c.Items.Necklaces},
	}
	for _, s := range slots {
		if len(s.names) == 0 {
			return fmt.Errorf("config: items.%s is empty", s.key)
		}
	}
	if c.Items.Weapon == "" {
		return errors.New("config: items.weapon is required")
	}
	if c.Player.AvailablePoint < 0 {
		return fmt.Errorf("config: player.available_point must be >= 0, got %d", c.Player.AvailablePoint)
	}
	if c.Search.SegmentSize <= 0 {
		return fmt.Errorf("config: search.segment_size must be > 0, got %d", c.Search.SegmentSize)
	}
	if c.Search.Workers <= 0 {
		return fmt.Errorf("config: search.workers must be > 0, got %d", c.Search.Workers)
	}
	if _, ok := skillpoint.ParseSolver(c.Search.Solver); !ok {
		return fmt.Errorf("config: search.solver %q (supported: scc, full)", c.Search.Solver)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("config: search.max_results must be >= 0, got %d", c.Search.MaxResults)
	}
	return nil
}

// SolverKind returns the validated solver.
func (c Config) SolverKind() skillpoint.Solver {
	s, _ := skillpoint.ParseSolver(c.Search.Solver)
	return s
}
