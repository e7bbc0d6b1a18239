package loader

import (
	"bytes"
	"encoding/json"

	"github.com/zeusync/behave/internal/core/bt"
)

// JSON reads `{"type": ..., "children": [...]}` documents.
type JSON struct{}

func (JSON) Name() string         { return "json" }
func (JSON) Extensions() []string { return []string{".json"} }

func (JSON) Parse(src []byte) (*bt.Descriptor, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, malformed("empty tree")
	}
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()

	var desc *bt.Descriptor
	if err := dec.Decode(&desc); err != nil {
		return nil, malformed("json: %v", err)
	}
	if dec.More() {
		return nil, malformed("json: trailing data after tree")
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

func (JSON) Marshal(desc *bt.Descriptor) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(desc, "", "  ")
}
