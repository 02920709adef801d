package state

import (
	"errors"
	"log/slog"

	"github.com/gogpu/renderkit"
	"github.com/gogpu/renderkit/gpucore"
)

// Errors returned by Begin, End and the helpers built on them.
var (
	// ErrNotImplemented is returned when a state needs a backend capability
	// the backend does not provide, such as lightmap or diffuse lighting
	// control.
	ErrNotImplemented = errors.New("state: not implemented by backend")

	// ErrBracketViolation is returned by a tracking Context when a state is
	// begun while another state of its kind is open, or ended without being
	// the open state of its kind.
	ErrBracketViolation = errors.New("state: begin/end bracket violation")

	// ErrNoTextureResolver is returned when a texture-bearing state begins on
	// a Context without a TextureResolver.
	ErrNoTextureResolver = errors.New("state: no texture resolver")

	// ErrInvalidState is returned for the zero State.
	ErrInvalidState = errors.New("state: invalid state")

	// ErrDuplicateKind is returned by NewSet when two states share a kind.
	ErrDuplicateKind = errors.New("state: duplicate kind in set")
)

// ContextOption configures a Context during creation.
type ContextOption func(*Context)

// WithTextureResolver sets the resolver Texture states use to turn resource
// IDs into backend textures.
func WithTextureResolver(r gpucore.TextureResolver) ContextOption {
	return func(c *Context) {
		c.resolver = r
	}
}

// WithTracking enables bracket checking: every Begin and End is checked
// against a Tracker before the backend is touched.
func WithTracking() ContextOption {
	return func(c *Context) {
		c.tracker = NewTracker()
	}
}

// WithTracker enables bracket checking with a caller-owned tracker.
func WithTracker(t *Tracker) ContextOption {
	return func(c *Context) {
		c.tracker = t
	}
}

// WithLogger sets the logger for this context. By default the package uses
// renderkit.Logger().
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		c.logger = l
	}
}

// Context is the GPU context states are applied to. It bundles the backend
// with the collaborators some states need.
//
// A Context belongs to the render thread and is not safe for concurrent use.
type Context struct {
	backend  gpucore.Backend
	resolver gpucore.TextureResolver
	tracker  *Tracker
	logger   *slog.Logger
}

// NewContext creates a context that applies states to b.
func NewContext(b gpucore.Backend, opts ...ContextOption) *Context {
	c := &Context{backend: b}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the backend states are applied to.
func (c *Context) Backend() gpucore.Backend {
	return c.backend
}

// Tracker returns the bracket tracker, or nil when tracking is off.
func (c *Context) Tracker() *Tracker {
	return c.tracker
}

// slogger returns the context logger, falling back to the package logger.
func (c *Context) slogger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return renderkit.Logger()
}
