package scene

import "encoding/json"

// LoadJSON decodes a Scene from its authoring JSON encoding. The exact
// schema produced by the authoring tool is an external, out-of-scope
// producer (§1); this reads the scene graph's exported field names
// directly rather than reverse-engineering that tool's wire format.
func LoadJSON(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveJSON encodes a Scene back to JSON, mainly useful for test
// fixtures and round-trip checks.
func SaveJSON(s *Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
