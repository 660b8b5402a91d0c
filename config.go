package sandphys

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WorldConfig lets a host describe a world's static shape (dimensions,
// starting active area, RNG seed) as data instead of code. It is
// consumed once by NewWorldFromConfig; nothing re-reads it during
// simulation.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	ActiveArea struct {
		X int `yaml:"x"`
		Y int `yaml:"y"`
		W int `yaml:"w"`
		H int `yaml:"h"`
	} `yaml:"active_area"`

	Seed     int64 `yaml:"seed"`
	LogDebug bool  `yaml:"log_debug"`
}

// LoadWorldConfig parses a YAML document into a WorldConfig.
func LoadWorldConfig(r io.Reader) (WorldConfig, error) {
	var cfg WorldConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return WorldConfig{}, err
	}
	return cfg, nil
}
