package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("invalid config")

type RoomSpec struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	Parity int `yaml:"parity"`
}

// TimingSpec — длительности анимаций в миллисекундах.
type TimingSpec struct {
	MoveMS        int     `yaml:"move_ms"`
	PathStepMS    int     `yaml:"path_step_ms"`
	BumpMS        int     `yaml:"bump_ms"`
	CastMS        int     `yaml:"cast_ms"`
	FadeInMS      int     `yaml:"fade_in_ms"`
	FadeOutMS     int     `yaml:"fade_out_ms"`
	ShakeMS       int     `yaml:"shake_ms"`
	IdlePeriodMS  int     `yaml:"idle_period_ms"`
	IdleMagnitude float64 `yaml:"idle_magnitude"`
}

type PlayerSpec struct {
	// Вероятность пойти по пути в случайную клетку вместо шага в случайную сторону.
	PathChance float64 `yaml:"path_chance"`
}

type SummonerSpec struct {
	Count            int `yaml:"count"`
	StartMana        int `yaml:"start_mana"`
	MaxMana          int `yaml:"max_mana"`
	Limit            int `yaml:"limit"`
	SummonCost       int `yaml:"summon_cost"`
	BoxInCost        int `yaml:"box_in_cost"`
	ExposedThreshold int `yaml:"exposed_threshold"`
}

type SoundSpec struct {
	Muted  bool    `yaml:"muted"`
	Volume float64 `yaml:"volume"` // в единицах beep/effects.Volume (основание 2)
}

type Config struct {
	Room     RoomSpec     `yaml:"room"`
	Timing   TimingSpec   `yaml:"timing"`
	Player   PlayerSpec   `yaml:"player"`
	Summoner SummonerSpec `yaml:"summoner"`
	Sound    SoundSpec    `yaml:"sound"`
}

// Default возвращает встроенные настройки.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load читает встроенные значения и перекрывает их файлом path, если он задан.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate отвергает значения, с которыми анимации или комната не строятся.
func (c Config) Validate() error {
	switch {
	case c.Room.Rows < 3 || c.Room.Cols < 3:
		return fmt.Errorf("%w: room must be at least 3x3, got %dx%d", ErrInvalid, c.Room.Rows, c.Room.Cols)
	case c.Room.Parity != 0 && c.Room.Parity != 1:
		return fmt.Errorf("%w: parity must be 0 or 1, got %d", ErrInvalid, c.Room.Parity)
	case c.Timing.IdlePeriodMS <= 0:
		return fmt.Errorf("%w: idle period must be positive", ErrInvalid)
	case c.Timing.MoveMS < 0 || c.Timing.PathStepMS < 0 || c.Timing.BumpMS < 0 || c.Timing.CastMS < 0 ||
		c.Timing.FadeInMS < 0 || c.Timing.FadeOutMS < 0 || c.Timing.ShakeMS < 0:
		return fmt.Errorf("%w: durations must be non-negative", ErrInvalid)
	case c.Player.PathChance < 0 || c.Player.PathChance > 1:
		return fmt.Errorf("%w: path_chance must be in [0, 1]", ErrInvalid)
	case c.Summoner.MaxMana < 0 || c.Summoner.Limit < 0 || c.Summoner.Count < 0:
		return fmt.Errorf("%w: summoner values must be non-negative", ErrInvalid)
	case c.Summoner.ExposedThreshold < 0 || c.Summoner.ExposedThreshold > 6:
		return fmt.Errorf("%w: exposed_threshold must be in [0, 6]", ErrInvalid)
	}
	return nil
}
