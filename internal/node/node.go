// Package node defines the host contract for graph nodes: declarative
// input/output schemas, the execution interface, and a registry mapping
// stable identifiers to node implementations.
package node

import (
	"context"
	"errors"
)

// ErrUnknownNode indicates the requested node id is not registered.
var ErrUnknownNode = errors.New("unknown node")

// ErrDuplicateNode indicates an attempt to register the same node id twice.
var ErrDuplicateNode = errors.New("node already registered")

// ErrInvalidInput indicates a caller-supplied input failed validation.
var ErrInvalidInput = errors.New("invalid input")

// FieldType enumerates the wire types a node field can carry.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldFloat  FieldType = "float"
	FieldInt    FieldType = "int"
)

// InputField declares one configurable input of a node.
type InputField struct {
	Name      string    `json:"name"`
	Type      FieldType `json:"type"`
	Default   any       `json:"default,omitempty"`
	Choices   []string  `json:"choices,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	Multiline bool      `json:"multiline,omitempty"`
	Optional  bool      `json:"optional,omitempty"`
	Secret    bool      `json:"secret,omitempty"`
}

// OutputField declares one output of a node.
type OutputField struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Spec describes a node to the host: identity, display metadata and schema.
type Spec struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"display_name"`
	Category    string        `json:"category"`
	Inputs      []InputField  `json:"inputs"`
	Outputs     []OutputField `json:"outputs"`
}

// Inputs is the untyped field map a host passes to Execute.
type Inputs map[string]any

// Outputs is the field map a node returns from Execute.
type Outputs map[string]any

// Node is a unit of functionality the host can instantiate and invoke.
type Node interface {
	Spec() Spec
	Execute(ctx context.Context, in Inputs) (Outputs, error)
}
