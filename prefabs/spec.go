package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/gridhunt/ai"
)

// TuningFile holds the AI tuning every archetype starts from.
const TuningFile = "ai.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := loadInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

func loadInto[T any](filename string, out *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// LoadTuning reads ai.yaml over the built-in defaults.
func LoadTuning() (ai.Tuning, error) {
	t := ai.DefaultTuning()
	if err := loadInto(TuningFile, &t); err != nil {
		return ai.DefaultTuning(), err
	}
	return t, nil
}

// LoadArchetype reads the archetype of an enemy prefab. The archetype name
// defaults to the prefab's file name.
func LoadArchetype(prefab string) (ai.Archetype, error) {
	tuning, err := LoadTuning()
	if err != nil {
		return ai.Archetype{}, err
	}
	spec, err := LoadEntityBuildSpec(prefab)
	if err != nil {
		return ai.Archetype{}, err
	}
	return ArchetypeFromSpec(prefab, spec, tuning)
}

func ArchetypeFromSpec(prefab string, spec EntityBuildSpec, tuning ai.Tuning) (ai.Archetype, error) {
	raw, ok := spec.Components["ai"]
	if !ok {
		return ai.Archetype{}, fmt.Errorf("prefabs: %s: no ai component", prefab)
	}
	aiSpec := AIComponentSpec{Archetype: ai.NewArchetype(PrefabName(prefab), tuning)}
	if err := DecodeComponentSpecInto(raw, &aiSpec); err != nil {
		return ai.Archetype{}, fmt.Errorf("prefabs: %s: decode ai: %w", prefab, err)
	}
	if aiSpec.Archetype.Name == "" {
		aiSpec.Archetype.Name = PrefabName(prefab)
	}
	if err := aiSpec.Archetype.Validate(); err != nil {
		return ai.Archetype{}, fmt.Errorf("prefabs: %s: %w", prefab, err)
	}
	return aiSpec.Archetype, nil
}

// EnemyPrefabs lists prefabs that carry an ai component.
func EnemyPrefabs() []string {
	var out []string
	for _, name := range Names() {
		if name == TuningFile {
			continue
		}
		spec, err := LoadEntityBuildSpec(name)
		if err != nil {
			continue
		}
		if _, ok := spec.Components["ai"]; ok {
			out = append(out, name)
		}
	}
	return out
}

// PrefabName strips directory and extension: "prefabs/melee.yaml" is "melee".
func PrefabName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
