package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RGB is a 24-bit color.
type RGB [3]uint8

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// UnmarshalYAML accepts either a [r, g, b] sequence or a "#rrggbb" string.
func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var parts []int
		if err := value.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 3 {
			return fmt.Errorf("line %d: color needs 3 components, got %d", value.Line, len(parts))
		}
		for i, p := range parts {
			if p < 0 || p > 255 {
				return fmt.Errorf("line %d: color component %d out of range", value.Line, p)
			}
			c[i] = uint8(p)
		}
		return nil
	case yaml.ScalarNode:
		parsed, err := parseHex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("line %d: unsupported color value", value.Line)
	}
}

func parseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	return RGB{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

// ColorScheme holds the color of every semantic role used when painting a listing.
type ColorScheme struct {
	Dir              RGB `yaml:"dir"`
	RecognizedFile   RGB `yaml:"recognized_file"`
	UnrecognizedFile RGB `yaml:"unrecognized_file"`
	ExecutableFile   RGB `yaml:"executable_file"`
	Read             RGB `yaml:"read"`
	Write            RGB `yaml:"write"`
	Exec             RGB `yaml:"exec"`
	NoAccess         RGB `yaml:"no_access"`
}

// ErrMissingColor is returned when a color scheme leaves out a role.
var ErrMissingColor = errors.New("color scheme is missing roles")

// colorRoles lists the keys every scheme must define, in field order.
var colorRoles = []string{
	"dir", "recognized_file", "unrecognized_file", "executable_file",
	"read", "write", "exec", "no_access",
}

// UnmarshalYAML decodes a scheme and requires every role to be present.
func (s *ColorScheme) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: color scheme must be a mapping", value.Line)
	}

	present := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		present[value.Content[i].Value] = true
	}
	var missing []string
	for _, role := range colorRoles {
		if !present[role] {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("line %d: %w: %s", value.Line, ErrMissingColor, strings.Join(missing, ", "))
	}

	type plain ColorScheme
	return value.Decode((*plain)(s))
}

// Theme names understood by the CLI.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeName picks the theme for the dark-background switch.
func ThemeName(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
