package texmath

// ScopeKind distinguishes how a scope was opened (§4.3 "Scope operations").
type ScopeKind int

const (
	ScopeImplicitBrace ScopeKind = iota
	ScopeExplicitBrace
	ScopeEnvironment
	ScopeLeftRight
)

// ScopeFrame holds everything LaTeX would discard when a group closes:
// locally-defined macros, style modifiers, and environment/array context
// (§3 "Scope frame"). Frames form a stack; a control-sequence lookup walks
// from the innermost frame outward, and each frame's own macro table
// vanishes when it's popped — unlike the teacher's ExecutionContext, which
// copies its parent's Private map into a new child map (context.go,
// NewChildExecutionContext), texmath's scopes chain by reference because
// LaTeX grouping is strictly nested lookup, not a independent copy a tag
// can mutate without affecting siblings.
type ScopeFrame struct {
	Kind ScopeKind

	// EnvironmentName is set when Kind == ScopeEnvironment.
	EnvironmentName string

	// macros holds only locally (re)defined control sequences; lookup
	// falls through to outer frames and finally the built-in table.
	macros map[string]*MacroDef

	// StyleVariant/ColorSpec mirror the most recently applied \mathXX /
	// \color command still in effect in this scope.
	StyleVariant string
	ColorSpec    string

	// AllowSuffixModifiers mirrors the config option, inherited verbatim
	// by most scopes but overridden per entry in knownEnvironments when
	// an environment is entered (dispatchKnownEnvironment).
	AllowSuffixModifiers bool

	// ArrayColumns is the column count of an array's preamble, 1 as an
	// "array-like" marker for environments without a preamble, 0 if none.
	// Child frames inherit it from their parent.
	ArrayColumns int

	// OpenToken records the token that opened this scope.
	OpenToken *Token
}

func newScopeFrame(kind ScopeKind, parent *ScopeFrame, open *Token) *ScopeFrame {
	f := &ScopeFrame{
		Kind:      kind,
		macros:    make(map[string]*MacroDef),
		OpenToken: open,
	}
	if parent != nil {
		f.StyleVariant = parent.StyleVariant
		f.ColorSpec = parent.ColorSpec
		f.AllowSuffixModifiers = parent.AllowSuffixModifiers
		f.ArrayColumns = parent.ArrayColumns
	}
	return f
}

// ScopeStack is the nesting stack described in §3/§4.3. Index 0 is the
// top-level (always-open) frame.
type ScopeStack struct {
	frames []*ScopeFrame
}

func newScopeStack(cfg Config) *ScopeStack {
	top := &ScopeFrame{
		Kind:                 ScopeImplicitBrace,
		macros:               make(map[string]*MacroDef),
		AllowSuffixModifiers: cfg.AllowSuffixModifiers,
	}
	return &ScopeStack{frames: []*ScopeFrame{top}}
}

// Depth returns the current nesting depth (1 at top-level).
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Top returns the innermost frame.
func (s *ScopeStack) Top() *ScopeFrame {
	return s.frames[len(s.frames)-1]
}

// Open pushes a new frame of the given kind, inheriting style modifiers
// from the current top (§4.3, open_scope).
func (s *ScopeStack) Open(kind ScopeKind, open *Token) *ScopeFrame {
	f := newScopeFrame(kind, s.Top(), open)
	s.frames = append(s.frames, f)
	tracef("scope: push kind=%v depth=%d", kind, len(s.frames))
	return f
}

// Close pops the innermost frame. Returns the popped frame, or nil if
// already at top-level (the caller is responsible for turning that into
// an UnmatchedClose error).
func (s *ScopeStack) Close() *ScopeFrame {
	if len(s.frames) <= 1 {
		return nil
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	tracef("scope: pop kind=%v depth=%d", f.Kind, len(s.frames))
	return f
}

// LookupMacro walks the stack innermost-out looking for a user-defined
// macro, per §4.3's lazy, scope-respecting resolution.
func (s *ScopeStack) LookupMacro(name string) *MacroDef {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if m, ok := s.frames[i].macros[name]; ok {
			return m
		}
	}
	return nil
}

// DefineMacro installs a macro into the current (innermost) frame.
func (s *ScopeStack) DefineMacro(name string, def *MacroDef) {
	s.Top().macros[name] = def
}

// InArray reports whether the innermost array-capable frame is active,
// used to validate Alignment/EndOfLine tokens (§4.4.1).
func (s *ScopeStack) InArray() bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Kind == ScopeEnvironment && s.frames[i].ArrayColumns > 0 {
			return true
		}
	}
	return false
}
