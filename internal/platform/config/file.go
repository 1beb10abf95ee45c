package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes the YAML file at path into target. An empty path is a
// no-op. Unknown keys are rejected so typos surface instead of silently
// falling back to defaults.
func LoadYAML(path string, target any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return DecodeYAML(data, target)
}

// DecodeYAML decodes YAML bytes into target with unknown keys rejected.
func DecodeYAML(data []byte, target any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

// LoadYAMLSection decodes one top-level key of the YAML file at path into
// target, so several commands can share a file. An empty path or a missing
// section is a no-op. Unknown keys inside the section are rejected.
func LoadYAMLSection(path, section string, target any) error {
	if section == "" {
		return LoadYAML(path, target)
	}
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	node, ok := doc[section]
	if !ok {
		return nil
	}
	raw, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	if err := DecodeYAML(raw, target); err != nil {
		return fmt.Errorf("section %s: %w", section, err)
	}
	return nil
}
