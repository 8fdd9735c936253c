package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	NumFloors        = 6
	Capacity         = 4
	StartFloor       = 1
	PerFloorDuration = 1 * time.Second
	DwellDuration    = 1 * time.Second
	PollDelay        = 500 * time.Millisecond
	SpawnIntervalMin = 4 * time.Second
	SpawnIntervalMax = 10 * time.Second
	QueueCap         = 5
	StatusInterval   = 1 * time.Second
)

// Config carries the simulation constants so tests and config files can override them.
type Config struct {
	NumFloors        int           `yaml:"num_floors"`
	Capacity         int           `yaml:"capacity"`
	StartFloor       int           `yaml:"start_floor"`
	PerFloorDuration time.Duration `yaml:"per_floor_duration"`
	DwellDuration    time.Duration `yaml:"dwell_duration"`
	PollDelay        time.Duration `yaml:"poll_delay"`
	SpawnIntervalMin time.Duration `yaml:"spawn_interval_min"`
	SpawnIntervalMax time.Duration `yaml:"spawn_interval_max"`
	QueueCap         int           `yaml:"queue_cap"`
	StatusInterval   time.Duration `yaml:"status_interval"`
}

func Default() Config {
	return Config{
		NumFloors:        NumFloors,
		Capacity:         Capacity,
		StartFloor:       StartFloor,
		PerFloorDuration: PerFloorDuration,
		DwellDuration:    DwellDuration,
		PollDelay:        PollDelay,
		SpawnIntervalMin: SpawnIntervalMin,
		SpawnIntervalMax: SpawnIntervalMax,
		QueueCap:         QueueCap,
		StatusInterval:   StatusInterval,
	}
}

// Load decodes a YAML file on top of the defaults. Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.NumFloors < 2 {
		errs = append(errs, fmt.Errorf("num_floors must be at least 2, got %d", c.NumFloors))
	}
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.StartFloor < 0 || c.StartFloor >= c.NumFloors {
		errs = append(errs, fmt.Errorf("start_floor %d outside [0, %d)", c.StartFloor, c.NumFloors))
	}
	if c.QueueCap < 1 {
		errs = append(errs, fmt.Errorf("queue_cap must be at least 1, got %d", c.QueueCap))
	}
	if c.SpawnIntervalMin < 0 || c.SpawnIntervalMax < c.SpawnIntervalMin {
		errs = append(errs, fmt.Errorf("spawn interval [%s, %s] is not a valid range", c.SpawnIntervalMin, c.SpawnIntervalMax))
	}
	for name, d := range map[string]time.Duration{
		"per_floor_duration": c.PerFloorDuration,
		"dwell_duration":     c.DwellDuration,
		"poll_delay":         c.PollDelay,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if c.StatusInterval <= 0 {
		errs = append(errs, fmt.Errorf("status_interval must be positive, got %s", c.StatusInterval))
	}
	return errors.Join(errs...)
}

// TravelDuration is the time the cabin needs to cover distance floors.
func (c Config) TravelDuration(distance int) time.Duration {
	if distance < 0 {
		distance = -distance
	}
	return time.Duration(distance) * c.PerFloorDuration
}
