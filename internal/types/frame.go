package types

import (
	"encoding/json"
	"fmt"
)

// Frame wraps a module with the design frame it was extracted from.
type Frame struct {
	NodeID string `json:"node_id"`
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Module Module `json:"module"`
}

// UnmarshalJSON picks the concrete module shape from the frame's kind.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeID string          `json:"node_id"`
		Name   string          `json:"name"`
		Kind   Kind            `json:"kind"`
		Module json.RawMessage `json:"module"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Module) == 0 {
		return fmt.Errorf("frame %q has no module", raw.Name)
	}

	m, err := DecodeModule(raw.Kind, raw.Module)
	if err != nil {
		return fmt.Errorf("frame %q: %w", raw.Name, err)
	}

	f.NodeID = raw.NodeID
	f.Name = raw.Name
	f.Kind = raw.Kind
	f.Module = m
	return nil
}
