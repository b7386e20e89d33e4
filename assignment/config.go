package assignment

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// SettingsFromYAML loads a GenerationSettings from a YAML file via viper.
// There was no strong reason to reach for viper over a bare yaml.Unmarshal
// here beyond consistency with the rest of the codebase's config loading;
// kept for that consistency, and because it composes with env/flag
// overrides later without changing call sites.
func SettingsFromYAML(path string) (GenerationSettings, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return GenerationSettings{}, err
	}

	var settings GenerationSettings
	if err := vp.Unmarshal(&settings); err != nil {
		return GenerationSettings{}, err
	}

	return settings.WithDefaults(), nil
}
