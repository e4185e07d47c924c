package validate

import (
	"errors"
	"strconv"

	jptr "github.com/qri-io/jsonpointer"
	verr "github.com/vhavlena/verischema/pkg/err"
	"github.com/vhavlena/verischema/pkg/logging"
)

// DefaultMaxDepth bounds the recursion of one validation call.
const DefaultMaxDepth = 512

// Option configures a validation call.
type Option func(*Context)

// WithInteractive enables or disables writing declared defaults into the
// validated value. Enabled by default.
func WithInteractive(enabled bool) Option {
	return func(c *Context) {
		c.allowDefaults = enabled
	}
}

// WithAdditionalProperties forces the additional-properties policy for the
// whole call. Passing false rejects every undeclared object member and every
// element past a tuple, at any depth, whatever the schema says. Passing true
// leaves the schema's own policy in charge.
func WithAdditionalProperties(allowed bool) Option {
	return func(c *Context) {
		c.forcedAdditional = &allowed
	}
}

// WithMaxDepth sets the recursion limit. Values below one select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *Context) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		c.maxDepth = depth
	}
}

// WithLogger routes the validation trace to logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Context is the call-scoped configuration of a validation. It is built
// once from options and passed by value through the whole walk; it is never
// modified after construction.
type Context struct {
	allowDefaults    bool
	forcedAdditional *bool
	maxDepth         int
	logger           logging.Logger
}

// NewContext builds a Context from opts.
func NewContext(opts ...Option) Context {
	c := Context{
		allowDefaults: true,
		maxDepth:      DefaultMaxDepth,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// AllowDefaults reports whether defaults may be written into the value.
func (c Context) AllowDefaults() bool { return c.allowDefaults }

// Strict reports whether additional members are rejected globally.
func (c Context) Strict() bool {
	return c.forcedAdditional != nil && !*c.forcedAdditional
}

// MaxDepth returns the recursion limit.
func (c Context) MaxDepth() int { return c.maxDepth }

// probing returns a copy of c that never injects defaults, used while
// trying union alternatives and disallowed schemas.
func (c Context) probing() Context {
	c.allowDefaults = false
	return c
}

// state is the position of one evaluation: where in the value we are, how
// deep the walk is and which nodes are being resolved through "extends" at
// this position.
type state struct {
	path  jptr.Pointer
	depth int
	chain []uintptr
	// skip names the member holding an embedded schema; it is not a property
	// of the object that carries it.
	skip string
}

// child moves to member or element tok of the current value.
func (s state) child(tok string) state {
	path := make(jptr.Pointer, 0, len(s.path)+1)
	path = append(path, s.path...)
	return state{path: append(path, tok), depth: s.depth + 1}
}

func (s state) index(i int) state { return s.child(strconv.Itoa(i)) }

// same re-enters the current position with another schema.
func (s state) same() state {
	return state{path: s.path, depth: s.depth + 1, skip: s.skip}
}

// extending re-enters the current position with an ancestor of node id.
func (s state) extending(id uintptr) state {
	chain := make([]uintptr, 0, len(s.chain)+1)
	chain = append(chain, s.chain...)
	return state{path: s.path, depth: s.depth + 1, chain: append(chain, id), skip: s.skip}
}

func (s state) resolving(id uintptr) bool {
	if id == 0 {
		return false
	}
	for _, seen := range s.chain {
		if seen == id {
			return true
		}
	}
	return false
}

func (s state) location() string { return "#" + s.path.String() }

func (s state) fail(keyword string, format string, args ...any) *verr.ValidationError {
	return verr.NewValidationError(s.path, keyword, format, args...)
}

// locate places a schema accessor error, which carries no instance path, at
// the current position.
func (s state) locate(err error) error {
	var ve *verr.ValidationError
	if errors.As(err, &ve) && len(ve.Path) == 0 {
		ve.Path = append(jptr.Pointer(nil), s.path...)
	}
	return err
}

func locationOf(err error) string {
	var ve *verr.ValidationError
	if errors.As(err, &ve) {
		return ve.Location()
	}
	return "#"
}

// isStructural reports errors that must not be swallowed while probing
// alternatives.
func isStructural(err error) bool {
	return errors.Is(err, verr.ErrExtendsCycle) || errors.Is(err, verr.ErrDepthExceeded)
}
