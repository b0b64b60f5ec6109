package prefabs

import (
	"gopkg.in/yaml.v3"

	"github.com/milk9111/gridhunt/ai"
)

// EntityBuildSpec is a prefab: a name plus a map of component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	err := DecodeComponentSpecInto(raw, &out)
	return out, err
}

// DecodeComponentSpecInto decodes on top of out, so keys missing from raw
// keep whatever defaults out already holds.
func DecodeComponentSpecInto[T any](raw any, out *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type HealthComponentSpec struct {
	Max int `yaml:"max"`
}

type MoverComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type WeaponComponentSpec struct {
	Damage         int `yaml:"damage"`
	CooldownFrames int `yaml:"cooldown_frames"`
}

type HazardComponentSpec struct {
	Damage         int `yaml:"damage"`
	IntervalFrames int `yaml:"interval_frames"`
}

// AIComponentSpec carries the archetype inline. It is decoded on top of an
// archetype built from the level tuning.
type AIComponentSpec struct {
	Archetype ai.Archetype `yaml:"archetype"`
}
