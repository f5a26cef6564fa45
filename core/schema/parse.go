package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a component definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath returns the definition format for a file name.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// ParseFile parses a component definition from a YAML or TOML file.
func ParseFile(path string) (Component, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return Component{}, fmt.Errorf("unsupported component file %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Component{}, fmt.Errorf("read file %s: %w", path, err)
	}

	comp, err := Parse(data, format)
	if err != nil {
		return Component{}, fmt.Errorf("%s: %w", path, err)
	}
	return comp, nil
}

// Parse parses a component definition.
func Parse(data []byte, format Format) (Component, error) {
	var comp Component

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&comp); err != nil {
			return Component{}, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &comp)
		if err != nil {
			return Component{}, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Component{}, fmt.Errorf("parse toml: unknown keys %v", undecoded)
		}
	default:
		return Component{}, fmt.Errorf("unknown format %q", format)
	}

	comp = comp.Normalize()

	if err := Validate(comp); err != nil {
		return Component{}, fmt.Errorf("validate component %q: %w", comp.Name, err)
	}

	return comp, nil
}

// ParseDir parses all component definitions from a directory, including subdirectories.
// Files with other extensions are ignored.
func ParseDir(dir string) ([]Component, error) {
	var components []Component

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			sub, err := ParseDir(path)
			if err != nil {
				return nil, err
			}
			components = append(components, sub...)
			continue
		}

		if _, ok := FormatFromPath(entry.Name()); !ok {
			continue
		}

		comp, err := ParseFile(path)
		if err != nil {
			return nil, err
		}

		components = append(components, comp)
	}

	return components, nil
}

// Validate validates a component definition.
func Validate(comp Component) error {
	var errs []string

	if comp.Name == "" {
		errs = append(errs, "component name is required")
	} else if !isValidIdentifier(comp.Name) {
		errs = append(errs, fmt.Sprintf("component name %q is not a valid identifier", comp.Name))
	}

	for _, kind := range Kinds() {
		seen := make(map[string]bool)
		for i, op := range comp.Operations(kind) {
			if op.Name == "" {
				errs = append(errs, fmt.Sprintf("%s[%d]: name is required", kind, i))
				continue
			}
			if !isValidIdentifier(op.Name) {
				errs = append(errs, fmt.Sprintf("%s %q: name is not a valid identifier", kind, op.Name))
			}
			if seen[op.Name] {
				errs = append(errs, fmt.Sprintf("%s %q: duplicate name", kind, op.Name))
			}
			seen[op.Name] = true

			for _, p := range op.Params {
				if !isValidIdentifier(p) {
					errs = append(errs, fmt.Sprintf("%s %q: param %q is not a valid identifier", kind, op.Name, p))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// isValidIdentifier checks if a string is a valid identifier.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		if i == 0 {
			if !isLetter(c) && c != '_' {
				return false
			}
		} else {
			if !isLetter(c) && !isDigit(c) && c != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
