// Package document parses and re-encodes configuration records while preserving key order.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Parse decodes data in the given format. Errors wrapping ErrNotMapping mean the
// content was well formed but its root is not a mapping.
func Parse(format Format, data []byte, opts Options) (Document, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data, opts)
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		return parseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json, yaml or toml)", name)
	}
}

// DetectFormat picks a format from override when set, otherwise from the
// extension of location. Unknown extensions are treated as JSON.
func DetectFormat(location, override string) (Format, error) {
	if strings.TrimSpace(override) != "" {
		return ParseFormat(override)
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatJSON, nil
	}
}

// SplitPath turns a dotted field name such as "package.version" into a path.
func SplitPath(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultField
	}
	return strings.Split(field, ".")
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}
