package document

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlDocument is read-only: go-toml decodes into plain maps, which would
// lose key order and comments on re-encode.
type tomlDocument struct {
	root map[string]any
}

func parseTOML(data []byte) (*tomlDocument, error) {
	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &tomlDocument{root: root}, nil
}

func (d *tomlDocument) Lookup(path []string) (any, bool) {
	var cur any = d.root
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func (d *tomlDocument) SetString(path []string, _ string) error {
	return fmt.Errorf("set %q: %w", joinPath(path), ErrReadOnlyFormat)
}

func (d *tomlDocument) Encode() ([]byte, error) {
	return nil, fmt.Errorf("encode toml: %w", ErrReadOnlyFormat)
}
