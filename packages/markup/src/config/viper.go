package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Keys read by FromViper.
const (
	KeyVoidElements    = "void_elements"
	KeyRawTextElements = "raw_text_elements"
)

// EnvPrefix is the prefix of environment variables that override file settings.
const EnvPrefix = "MARKUP"

// NewViper returns a viper instance prepared by Configure.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	if err := Configure(v, path); err != nil {
		return nil, err
	}
	return v, nil
}

// Configure registers the parser defaults on v and enables MARKUP_*
// environment overrides. When path is not empty the file is read; its format
// follows the extension (yaml, toml, json).
func Configure(v *viper.Viper, path string) error {
	v.SetDefault(KeyVoidElements, DefaultVoidElements)
	v.SetDefault(KeyRawTextElements, DefaultRawTextElements)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return nil
}

// FromViper builds a ParserConfig from v. Extra options are applied last.
func FromViper(v *viper.Viper, opts ...ParserConfigOption) *ParserConfig {
	base := []ParserConfigOption{
		WithVoidElements(normalizeNames(v.GetStringSlice(KeyVoidElements))...),
		WithRawTextElements(normalizeNames(v.GetStringSlice(KeyRawTextElements))...),
	}
	return NewParserConfig(append(base, opts...)...)
}

// normalizeNames accepts both list values and a single comma separated string,
// which is what an environment variable provides.
func normalizeNames(values []string) []string {
	var names []string
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
