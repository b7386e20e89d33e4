package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/obamify/pixelmorph/imagekit"
	"github.com/obamify/pixelmorph/orchestrator"
)

// defaultPresetNames is consulted when a preset store has no index.json:
// the loader probes each of these, skipping any that don't exist on disk.
var defaultPresetNames = []string{"default", "sample"}

// LoadPresetStore reads every preset named in dir/index.json (or, absent
// that file, every name in defaultPresetNames that exists on disk) from
// dir/<name>/.
func LoadPresetStore(dir string) ([]orchestrator.Preset, error) {
	names, err := readIndex(dir)
	if err != nil {
		return nil, err
	}

	var presets []orchestrator.Preset
	for _, name := range names {
		p, err := LoadPreset(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func readIndex(dir string) ([]string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if os.IsNotExist(err) {
		return defaultPresetNames, nil
	}
	if err != nil {
		return nil, fmt.Errorf("server: read preset index: %w", err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("server: parse preset index: %w", err)
	}
	return names, nil
}

// LoadPreset reads a single preset from presetDir: source.png and
// assignments.json, per spec's on-disk contract. The preset's Name is the
// directory's base name.
func LoadPreset(presetDir string) (orchestrator.Preset, error) {
	f, err := os.Open(filepath.Join(presetDir, "source.png"))
	if err != nil {
		return orchestrator.Preset{}, err
	}
	defer f.Close()

	pixels, w, h, err := imagekit.DecodePNG(f)
	if err != nil {
		return orchestrator.Preset{}, fmt.Errorf("server: decode %s/source.png: %w", presetDir, err)
	}
	if w != h {
		return orchestrator.Preset{}, fmt.Errorf("server: %s/source.png is %dx%d, want square", presetDir, w, h)
	}

	raw, err := os.ReadFile(filepath.Join(presetDir, "assignments.json"))
	if err != nil {
		return orchestrator.Preset{}, err
	}
	var assignments []int
	if err := json.Unmarshal(raw, &assignments); err != nil {
		return orchestrator.Preset{}, fmt.Errorf("server: parse %s/assignments.json: %w", presetDir, err)
	}
	if len(assignments) != w*h {
		return orchestrator.Preset{}, fmt.Errorf(
			"server: %s/assignments.json has %d entries, want %d", presetDir, len(assignments), w*h)
	}

	return orchestrator.Preset{
		Name:        filepath.Base(presetDir),
		S:           w,
		Source:      pixels,
		Assignments: assignments,
	}, nil
}

// SavePreset writes p to presetDir/source.png and presetDir/assignments.json,
// creating presetDir if necessary.
func SavePreset(presetDir string, p orchestrator.Preset) error {
	if err := os.MkdirAll(presetDir, 0o755); err != nil {
		return fmt.Errorf("server: create %s: %w", presetDir, err)
	}

	f, err := os.Create(filepath.Join(presetDir, "source.png"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := imagekit.EncodePNG(f, p.Source, p.S, p.S); err != nil {
		return fmt.Errorf("server: encode %s/source.png: %w", presetDir, err)
	}

	raw, err := json.Marshal(p.Assignments)
	if err != nil {
		return fmt.Errorf("server: marshal assignments: %w", err)
	}
	if err := os.WriteFile(filepath.Join(presetDir, "assignments.json"), raw, 0o644); err != nil {
		return fmt.Errorf("server: write %s/assignments.json: %w", presetDir, err)
	}
	return nil
}
