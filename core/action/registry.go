package action

import (
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Decoder builds a typed Action from a decoded YAML (or JSON) mapping node.
type Decoder func(node *yaml.Node) (Action, error)

type registry struct {
	decoders map[Type]Decoder
	mu       sync.RWMutex
}

var decoders = &registry{
	decoders: map[Type]Decoder{
		TypeOpenThread:    decodeAs[OpenThread],
		TypeAddMessage:    decodeAs[AddMessage],
		TypeDeleteMessage: decodeAs[DeleteMessage],
	},
}

func decodeAs[T Action](node *yaml.Node) (Action, error) {
	var a T
	if err := node.Decode(&a); err != nil {
		return nil, err
	}
	return a, nil
}

// Register adds a decoder for a new action type.
// Returns ErrAlreadyRegistered if the type already has a decoder.
func Register(t Type, decode Decoder) error {
	if t == "" {
		return ErrEmptyType
	}

	decoders.mu.Lock()
	defer decoders.mu.Unlock()

	if _, exists := decoders.decoders[t]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t)
	}

	decoders.decoders[t] = decode
	return nil
}

// Types returns the registered action types in lexical order.
func Types() []Type {
	decoders.mu.RLock()
	defer decoders.mu.RUnlock()

	types := make([]Type, 0, len(decoders.decoders))
	for t := range decoders.decoders {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

type envelope struct {
	Type Type `yaml:"type"`
}

// DecodeNode decodes one action mapping. The "type" key selects the decoder;
// types without a registered decoder yield Unknown. Decoded actions are
// validated before they are returned.
func DecodeNode(node *yaml.Node) (Action, error) {
	var env envelope
	if err := node.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type (line %d)", ErrMalformedAction, node.Line)
	}

	decoders.mu.RLock()
	decode, exists := decoders.decoders[env.Type]
	decoders.mu.RUnlock()

	if !exists {
		return Unknown{Kind: env.Type}, nil
	}

	a, err := decode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (line %d): %v", ErrMalformedAction, env.Type, node.Line, err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	return a, nil
}

// Decode parses a single action document.
func Decode(data []byte) (Action, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedAction)
	}
	return DecodeNode(node.Content[0])
}

// DecodeScript parses a sequence of actions, in order. An empty document
// yields an empty script.
func DecodeScript(data []byte) ([]Action, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse action script: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("action script must be a sequence (line %d)", root.Line)
	}

	actions := make([]Action, 0, len(root.Content))
	for i, item := range root.Content {
		a, err := DecodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
