package action

import (
	"fmt"
	"sync"
)

// ToolkitName is the capability name the document actions are published
// under for discovery by a host runtime.
const ToolkitName = "GoogleDocs3"

// Trigger is a named event source a toolkit may expose. The document toolkit
// exposes none, but the discovery contract requires the (empty) list.
type Trigger interface {
	Name() string
	DisplayName() string
}

// Toolkit aggregates a named set of actions and triggers for discovery.
type Toolkit struct {
	name     string
	mu       sync.RWMutex
	ordered  []Action
	byName   map[string]Action
	triggers []Trigger
}

// NewToolkit creates an empty toolkit with the given capability name.
func NewToolkit(name string) *Toolkit {
	return &Toolkit{
		name:   name,
		byName: make(map[string]Action),
	}
}

// Name returns the toolkit's capability name.
func (t *Toolkit) Name() string {
	return t.name
}

// Register adds an action to the toolkit. Registering two actions with the
// same name is an error.
func (t *Toolkit) Register(a Action) error {
	if a == nil {
		return fmt.Errorf("action is nil")
	}
	if a.Name() == "" {
		return fmt.Errorf("action name is empty")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.byName[a.Name()]; exists {
		return fmt.Errorf("action %q already registered", a.Name())
	}
	t.byName[a.Name()] = a
	t.ordered = append(t.ordered, a)
	return nil
}

// Lookup returns the action registered under name.
func (t *Toolkit) Lookup(name string) (Action, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.byName[name]
	return a, ok
}

// Actions returns the registered actions in registration order.
func (t *Toolkit) Actions() []Action {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Action, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Triggers returns the toolkit's trigger list. Always empty for the document
// toolkit.
func (t *Toolkit) Triggers() []Trigger {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Trigger, len(t.triggers))
	copy(out, t.triggers)
	return out
}

// DefaultToolkit builds the document toolkit with all six actions registered
// in their canonical listing order.
func DefaultToolkit() *Toolkit {
	t := NewToolkit(ToolkitName)
	for _, a := range []Action{
		&AppendTextToDocument{},
		&CreateDocumentFromTemplate{},
		&UploadDocument{},
		&CreateDocumentFromText{},
		&FindOrCreateDocument{},
		&CreateDocument{},
	} {
		// Names are distinct constants; registration cannot collide.
		if err := t.Register(a); err != nil {
			panic(err)
		}
	}
	return t
}
