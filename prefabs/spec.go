package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameFile is the tuning file every run is built from.
const GameFile = "game.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the whole tuning set.
type GameSpec struct {
	Seed     uint64       `yaml:"seed"`
	Arena    ArenaSpec    `yaml:"arena"`
	Rings    []RingSpec   `yaml:"rings"`
	Player   PlayerSpec   `yaml:"player"`
	Weapon   WeaponSpec   `yaml:"weapon"`
	Bullet   BulletSpec   `yaml:"bullet"`
	Enemy    EnemySpec    `yaml:"enemy"`
	Spawner  SpawnerSpec  `yaml:"spawner"`
	Field    FieldSpec    `yaml:"field"`
	Director DirectorSpec `yaml:"director"`
	Pools    PoolsSpec    `yaml:"pools"`
	Music    MusicSpec    `yaml:"music"`
	Camera   CameraSpec   `yaml:"camera"`
}

type ArenaSpec struct {
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
}

type RingSpec struct {
	Radius float64 `yaml:"radius"`
	Slots  int     `yaml:"slots"`
}

type PlayerSpec struct {
	MaxSpeed      float64   `yaml:"max_speed"`
	Accel         float64   `yaml:"accel"`
	Radius        float64   `yaml:"radius"`
	PitchVariance float64   `yaml:"pitch_variance"`
	Color         YAMLColor `yaml:"color"`
}

type WeaponStageSpec struct {
	RPM             float64   `yaml:"rpm"`
	InitialSpeed    float64   `yaml:"initial_speed"`
	Damage          int       `yaml:"damage"`
	KillRequirement int       `yaml:"kill_requirement"`
	Color           YAMLColor `yaml:"color"`
}

type WeaponSpec struct {
	Spread       float64           `yaml:"spread"`
	ShotVolume   float64           `yaml:"shot_volume"`
	MuzzleOffset float64           `yaml:"muzzle_offset"`
	Stages       []WeaponStageSpec `yaml:"stages"`
}

type BulletSpec struct {
	Radius      float64 `yaml:"radius"`
	Lifetime    float64 `yaml:"lifetime"`
	MaxDistance float64 `yaml:"max_distance"`
}

type EnemySpec struct {
	MoveSpeed float64   `yaml:"move_speed"`
	Radius    float64   `yaml:"radius"`
	Health    int       `yaml:"health"`
	Color     YAMLColor `yaml:"color"`
}

type SpawnerSpec struct {
	Radius                 float64   `yaml:"radius"`
	MoveSpeed              float64   `yaml:"move_speed"`
	IdleSpin               float64   `yaml:"idle_spin"`
	FastSpin               float64   `yaml:"fast_spin"`
	RiseDepth              float64   `yaml:"rise_depth"`
	RiseTime               float64   `yaml:"rise_time"`
	TimeBeforeInitialGroup float64   `yaml:"time_before_initial_group"`
	NumberToSpawn          int       `yaml:"number_to_spawn"`
	TimeBetweenEnemies     float64   `yaml:"time_between_enemies"`
	TimeBetweenGroups      float64   `yaml:"time_between_groups"`
	EjectForce             float64   `yaml:"eject_force"`
	DissolveTime           float64   `yaml:"dissolve_time"`
	Color                  YAMLColor `yaml:"color"`
}

type FieldSpec struct {
	Radius  float64  `yaml:"radius"`
	Effects []string `yaml:"effects"`
}

type DirectorSpec struct {
	Script        string  `yaml:"script"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	SpawnerHealth int     `yaml:"spawner_health"`
	FreezeWeight  float64 `yaml:"freeze_weight"`
}

type PoolsSpec struct {
	Bullets   int `yaml:"bullets"`
	AudioCues int `yaml:"audio_cues"`
	VFX       int `yaml:"vfx"`
}

type MusicLayerSpec struct {
	Name       string  `yaml:"name"`
	EnemyCount int     `yaml:"enemy_count"`
	Frequency  float64 `yaml:"frequency"`
}

type MusicSpec struct {
	OnVolume float64          `yaml:"on_volume"`
	Base     MusicLayerSpec   `yaml:"base"`
	Layers   []MusicLayerSpec `yaml:"layers"`
}

type CameraSpec struct {
	Zoom     float64 `yaml:"zoom"`
	Margin   float64 `yaml:"margin"`
	Recovery float64 `yaml:"recovery"`
}

// LoadGameSpec reads, validates and decodes the tuning file.
func LoadGameSpec() (*GameSpec, error) {
	data, err := Load(GameFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", GameFile, err)
	}
	return ParseGameSpec(data)
}

// ParseGameSpec validates raw yaml against the embedded schema before
// decoding it.
func ParseGameSpec(data []byte) (*GameSpec, error) {
	if err := Validate(GameFile, data); err != nil {
		return nil, err
	}
	var spec GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", GameFile, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}
