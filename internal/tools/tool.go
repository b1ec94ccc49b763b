// ABOUTME: Tool interface and registry for model-invocable tools
// ABOUTME: Tools return their answer text and citations as values

package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/classpilot/classpilot/internal/models"
)

// ErrUnknownTool is returned when a tool name has no registration.
var ErrUnknownTool = errors.New("unknown tool")

// Schema describes a tool to the model. Parameters is a JSON Schema
// object in map form.
type Schema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Tool is a capability the model can invoke during generation.
type Tool interface {
	// Schema returns the tool's definition for the model.
	Schema() Schema

	// Execute runs the tool. The returned string is fed back to the
	// model verbatim; citations describe which indexed material the
	// output drew on.
	Execute(ctx context.Context, args map[string]any) (string, []models.Citation, error)
}

// Registry holds registered tools by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a duplicate name is an error.
func (r *Registry) Register(t Tool) error {
	name := t.Schema().Name
	if name == "" {
		return errors.New("tool has empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Schemas returns the definitions of all registered tools in
// registration order.
func (r *Registry) Schemas() []Schema {
	schemas := make([]Schema, 0, len(r.order))
	for _, name := range r.order {
		schemas = append(schemas, r.tools[name].Schema())
	}
	return schemas
}

// Execute dispatches to the named tool. An unregistered name yields
// ErrUnknownTool.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, []models.Citation, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Execute(ctx, args)
}
