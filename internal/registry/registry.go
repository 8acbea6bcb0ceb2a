// Package registry maps component names to window definitions and opens
// windows from them.
package registry

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/floatwm/internal/geom"
	"github.com/Gaurav-Gosain/floatwm/internal/wm"
)

// ErrDuplicateDefinition is returned when a component name is registered twice.
var ErrDuplicateDefinition = errors.New("definition already registered")

// Param is a definition value that is either a literal or computed from the
// viewport at open time.
type Param[T any] struct {
	value   T
	resolve func(viewport geom.Size) T
	set     bool
}

// Literal returns a fixed parameter.
func Literal[T any](v T) Param[T] {
	return Param[T]{value: v, set: true}
}

// Resolver returns a parameter computed from the viewport when the window
// opens.
func Resolver[T any](fn func(viewport geom.Size) T) Param[T] {
	return Param[T]{resolve: fn, set: fn != nil}
}

// IsSet reports whether the parameter holds a literal or a resolver.
func (p Param[T]) IsSet() bool { return p.set }

// Resolve returns the parameter's value for the given viewport, or the
// zero value when unset.
func (p Param[T]) Resolve(viewport geom.Size) T {
	if p.resolve != nil {
		return p.resolve(viewport)
	}
	return p.value
}

// ContentFunc builds window content. It receives the id the window will be
// opened under.
type ContentFunc func(windowID string, props map[string]any) any

// WindowOptions are the permissions a definition opens with. Nil fields
// take the store defaults.
type WindowOptions struct {
	Unique      bool
	Closeable   *bool
	Maximizable *bool
	Minimizable *bool
	Resizable   *bool
	Movable     *bool
	TitleBar    *bool
	Overlay     *bool
}

// Definition describes how to open one kind of window.
type Definition struct {
	Title         Param[string]
	Options       WindowOptions
	InitialStatus Param[wm.InitialStatus]
	Content       ContentFunc
}

// Registry holds definitions by component name.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition under name.
func (r *Registry) Register(name string, def Definition) error {
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateDefinition, name)
	}
	r.defs[name] = def
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names lists component names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Store is the part of the window store an Opener drives.
type Store interface {
	OpenWindow(p wm.CreateParams) string
	ContainerSize() geom.Size
}

// Opener opens registered components into a store.
type Opener struct {
	registry *Registry
	store    Store
	log      *log.Logger

	// NewID generates ids for non-unique windows.
	NewID func() string
}

// NewOpener returns an opener backed by reg and store. A nil logger discards.
func NewOpener(reg *Registry, store Store, logger *log.Logger) *Opener {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Opener{
		registry: reg,
		store:    store,
		log:      logger.WithPrefix("registry"),
		NewID:    uuid.NewString,
	}
}

// Open opens the named component and returns the window id. Unique
// definitions open under their component name so a second open focuses the
// existing window. Unknown components return false and open nothing.
func (o *Opener) Open(component string, props map[string]any) (string, bool) {
	def, ok := o.registry.Lookup(component)
	if !ok {
		o.log.Debug("open", "component", component, "ignored", "unknown component")
		return "", false
	}

	id := component
	if !def.Options.Unique {
		id = o.NewID()
	}

	viewport := o.store.ContainerSize()
	var content any
	if def.Content != nil {
		content = def.Content(id, props)
	}

	opened := o.store.OpenWindow(wm.CreateParams{
		ID:            id,
		Title:         def.Title.Resolve(viewport),
		Content:       content,
		Unique:        def.Options.Unique,
		Closeable:     def.Options.Closeable,
		Maximizable:   def.Options.Maximizable,
		Minimizable:   def.Options.Minimizable,
		Resizable:     def.Options.Resizable,
		Movable:       def.Options.Movable,
		TitleBar:      def.Options.TitleBar,
		Overlay:       def.Options.Overlay,
		InitialStatus: def.InitialStatus.Resolve(viewport),
	})
	o.log.Debug("open", "component", component, "id", opened)
	return opened, true
}
