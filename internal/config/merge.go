package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyVersion       = "version"
	keyOutput        = "output"
	keyLogging       = "logging"
	keyModel         = "model"
	keyCache         = "cache"
	keyPortfolio     = "portfolio"
	keyCertification = "certification"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config sections.
// Other keys are ignored during merge.
//
//nolint:gochecknoglobals // Constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyVersion:       true,
	keyOutput:        true,
	keyLogging:       true,
	keyModel:         true,
	keyCache:         true,
	keyPortfolio:     true,
	keyCertification: true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]any
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes data into a fresh value of the section's type and
// assigns it, so the overlay fully replaces the section.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyVersion:
		var v string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Version = v
	case keyOutput:
		return decodeInto(data, &target.Output)
	case keyLogging:
		return decodeInto(data, &target.Logging)
	case keyModel:
		return decodeInto(data, &target.Model)
	case keyCache:
		return decodeInto(data, &target.Cache)
	case keyPortfolio:
		return decodeInto(data, &target.Portfolio)
	case keyCertification:
		return decodeInto(data, &target.Certification)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func decodeInto[T any](data []byte, dst *T) error {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
