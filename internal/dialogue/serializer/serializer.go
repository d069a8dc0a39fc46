// Package serializer converts dialogue state to and from the bytes that
// persistent backends store.
package serializer

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Serializer encodes and decodes one dialogue state type.
type Serializer[D any] interface {
	Serialize(dialogue D) ([]byte, error)
	Deserialize(data []byte) (D, error)
}

// JSON encodes dialogues with encoding/json.
type JSON[D any] struct{}

func (JSON[D]) Serialize(dialogue D) ([]byte, error) {
	data, err := json.Marshal(dialogue)
	if err != nil {
		return nil, fmt.Errorf("json serialize dialogue: %w", err)
	}
	return data, nil
}

func (JSON[D]) Deserialize(data []byte) (D, error) {
	var dialogue D
	if err := json.Unmarshal(data, &dialogue); err != nil {
		return dialogue, fmt.Errorf("json deserialize dialogue: %w", err)
	}
	return dialogue, nil
}

// YAML encodes dialogues with gopkg.in/yaml.v3. Handy when operators inspect
// stored state by hand.
type YAML[D any] struct{}

func (YAML[D]) Serialize(dialogue D) ([]byte, error) {
	data, err := yaml.Marshal(dialogue)
	if err != nil {
		return nil, fmt.Errorf("yaml serialize dialogue: %w", err)
	}
	return data, nil
}

func (YAML[D]) Deserialize(data []byte) (D, error) {
	var dialogue D
	if err := yaml.Unmarshal(data, &dialogue); err != nil {
		return dialogue, fmt.Errorf("yaml deserialize dialogue: %w", err)
	}
	return dialogue, nil
}

// ByName resolves a configured serializer name.
func ByName[D any](name string) (Serializer[D], error) {
	switch name {
	case "json", "":
		return JSON[D]{}, nil
	case "yaml":
		return YAML[D]{}, nil
	default:
		return nil, fmt.Errorf("unknown serializer %q", name)
	}
}
