package card

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/goliatone/go-cardkit/pkg/schedule"
)

// ParseContext travels through a whole parse (and validation) pass. It holds
// the registries used to construct elements and actions and accumulates
// diagnostics instead of aborting on malformed input.
type ParseContext struct {
	Elements *Registry
	Actions  *ActionRegistry
	Logger   *log.Logger

	path        []string
	diagnostics []Diagnostic
}

// ParseOption customises a ParseContext.
type ParseOption func(*ParseContext)

// WithParseLogger overrides the logger used for parse warnings.
func WithParseLogger(logger *log.Logger) ParseOption {
	return func(ctx *ParseContext) {
		if logger != nil {
			ctx.Logger = logger
		}
	}
}

// WithActions overrides the action registry.
func WithActions(actions *ActionRegistry) ParseOption {
	return func(ctx *ParseContext) {
		if actions != nil {
			ctx.Actions = actions
		}
	}
}

// NewParseContext builds a context over the element registry. Nil registries
// fall back to the host defaults.
func NewParseContext(elements *Registry, options ...ParseOption) *ParseContext {
	ctx := &ParseContext{
		Elements: elements,
		Actions:  NewDefaultActionRegistry(),
		Logger:   log.Default(),
	}
	if ctx.Elements == nil {
		ctx.Elements = NewDefaultRegistry()
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(ctx)
	}
	return ctx
}

// Enter pushes a path segment and returns the function that pops it.
func (c *ParseContext) Enter(segment string) func() {
	c.path = append(c.path, segment)
	depth := len(c.path)
	return func() {
		if len(c.path) >= depth {
			c.path = c.path[:depth-1]
		}
	}
}

// EnterIndex pushes a key/index pair, e.g. items/2.
func (c *ParseContext) EnterIndex(key string, index int) func() {
	c.path = append(c.path, key, strconv.Itoa(index))
	depth := len(c.path)
	return func() {
		if len(c.path) >= depth {
			c.path = c.path[:depth-2]
		}
	}
}

// Path returns the current JSON pointer.
func (c *ParseContext) Path() string {
	return joinPath(c.path)
}

// Warn records a warning at the current path and logs it.
func (c *ParseContext) Warn(format string, args ...any) {
	c.add(SeverityWarning, fmt.Sprintf(format, args...))
}

// Error records an error-severity diagnostic at the current path. Errors do
// not stop parsing.
func (c *ParseContext) Error(format string, args ...any) {
	c.add(SeverityError, fmt.Sprintf(format, args...))
}

func (c *ParseContext) add(severity Severity, message string) {
	d := Diagnostic{Severity: severity, Path: c.Path(), Message: message}
	c.diagnostics = append(c.diagnostics, d)
	if c.Logger == nil {
		return
	}
	if severity == SeverityError {
		c.Logger.Error(message, "path", d.Path)
		return
	}
	c.Logger.Warn(message, "path", d.Path)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *ParseContext) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.diagnostics...)
}

// ParseElement constructs and parses one element from raw input. Missing or
// unknown types yield nil plus a warning.
func (c *ParseContext) ParseElement(raw any) Element {
	src, ok := MapValue(raw)
	if !ok {
		c.Warn("element is not an object")
		return nil
	}
	typeName, _ := StringValue(src["type"])
	if typeName == "" {
		c.Warn("element is missing a type")
		return nil
	}
	element, ok := c.Elements.Create(typeName)
	if !ok {
		c.Warn("unknown element type %q", typeName)
		return nil
	}
	element.Parse(src, c)
	return element
}

// CreateAction constructs and parses an action. Missing or unknown types
// yield nil plus a warning.
func (c *ParseContext) CreateAction(raw any) Action {
	src, ok := MapValue(raw)
	if !ok {
		c.Warn("action is not an object")
		return nil
	}
	typeName, _ := StringValue(src["type"])
	if typeName == "" {
		c.Warn("action is missing a type")
		return nil
	}
	action, ok := c.Actions.Create(typeName)
	if !ok {
		c.Warn("unknown action type %q", typeName)
		return nil
	}
	action.Parse(src, c)
	return action
}

// RenderContext carries host services into element rendering.
type RenderContext struct {
	Logger    *log.Logger
	Scheduler schedule.Scheduler
	NewID     func() string
	// OnAction receives actions activated from rendered boxes. Nil drops them.
	OnAction func(action Action)
}

// RenderOption customises a RenderContext.
type RenderOption func(*RenderContext)

// WithRenderLogger overrides the render logger.
func WithRenderLogger(logger *log.Logger) RenderOption {
	return func(ctx *RenderContext) {
		if logger != nil {
			ctx.Logger = logger
		}
	}
}

// WithScheduler overrides the repeating task facility used by timed elements.
func WithScheduler(scheduler schedule.Scheduler) RenderOption {
	return func(ctx *RenderContext) {
		if scheduler != nil {
			ctx.Scheduler = scheduler
		}
	}
}

// WithIDGenerator overrides the id generator used for aria wiring.
func WithIDGenerator(fn func() string) RenderOption {
	return func(ctx *RenderContext) {
		if fn != nil {
			ctx.NewID = fn
		}
	}
}

// WithActionHandler receives actions activated by clicks on rendered boxes.
func WithActionHandler(fn func(action Action)) RenderOption {
	return func(ctx *RenderContext) {
		ctx.OnAction = fn
	}
}

// ID returns a fresh element id. A context without a generator falls back to
// uuids.
func (c *RenderContext) ID() string {
	if c == nil || c.NewID == nil {
		return uuid.NewString()
	}
	return c.NewID()
}

// Invoke hands action to the registered action handler.
func (c *RenderContext) Invoke(action Action) {
	if c == nil || action == nil {
		return
	}
	if c.OnAction == nil {
		if c.Logger != nil {
			c.Logger.Debug("action activated without handler", "type", action.TypeName())
		}
		return
	}
	c.OnAction(action)
}

// NewRenderContext returns a context with the shared cron scheduler and uuid
// ids unless overridden.
func NewRenderContext(options ...RenderOption) *RenderContext {
	ctx := &RenderContext{
		Logger:    log.Default(),
		Scheduler: schedule.Shared(),
		NewID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(ctx)
	}
	return ctx
}
