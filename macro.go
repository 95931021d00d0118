package texmath

// MacroDef is a user-definable control sequence body, installed by
// \def/\newcommand/\renewcommand (§3 "MacroDef", §4.3 "User macro
// definition").
type MacroDef struct {
	ParameterCount   int
	DelimiterPattern []*Token // literal tokens that must match before args
	Body             []*Token
}

// expansionFrame tracks one in-flight macro expansion for depth bounding
// and for the error Frame trace (§4.3 "Expansion depth is bounded").
type expansionFrame struct {
	name string
	span Span
}

// Expander drives §4.3's lazy single-step expansion: next_expanded_token
// either returns a non-expandable token outright, or fully expands the
// next control sequence and returns its first substituted token, pushing
// the remainder onto an internal buffer.
type Expander struct {
	lexer *Lexer
	scope *ScopeStack
	cfg   Config

	// pending holds tokens produced by a macro substitution that have not
	// yet been handed to the caller; it is drained before pulling a new
	// token from the lexer.
	pending []*Token

	// depth counts currently-active expansions, for ExpansionTooDeep.
	depth  int
	frames []expansionFrame
}

func newExpander(lexer *Lexer, scope *ScopeStack, cfg Config) *Expander {
	return &Expander{lexer: lexer, scope: scope, cfg: cfg}
}

// ActiveFrames exposes the expansion frames currently open, innermost
// last, so the parser can fold them into an Error's Trace.
func (e *Expander) ActiveFrames() []Frame {
	out := make([]Frame, len(e.frames))
	for i, f := range e.frames {
		out[i] = Frame{Name: f.name, Span: f.span}
	}
	return out
}

// NextExpandedToken returns the next token after at most one level of
// user-macro substitution is unwound per call — built-in control
// sequences are returned as-is for the parser's dispatch table (4.4.2) to
// handle; only user-defined macros are expanded here.
func (e *Expander) NextExpandedToken() (*Token, *Error) {
	if len(e.pending) > 0 {
		tok := e.pending[0]
		e.pending = e.pending[1:]
		return tok, nil
	}

	tok, err := e.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	tracef("lexer: read %s", tok)

	if tok.Typ != TokenControlSequence {
		return tok, nil
	}
	if _, isBuiltin := builtinTable[tok.Name]; isBuiltin {
		return tok, nil
	}
	def := e.scope.LookupMacro(tok.Name)
	if def == nil {
		return tok, nil
	}

	if e.depth+1 > e.cfg.MaxExpansionDepth {
		return nil, newError(ExpansionTooDeep, tok.Span, e.ActiveFrames(),
			"macro expansion exceeded max depth")
	}

	substituted, err := e.expandMacro(tok, def)
	if err != nil {
		return nil, err
	}
	if len(substituted) == 0 {
		return e.NextExpandedToken()
	}
	e.pending = append(substituted, e.pending...)
	tok2 := e.pending[0]
	e.pending = e.pending[1:]
	return tok2, nil
}

// expandMacro binds actual arguments and returns the fully substituted
// body token sequence (§4.3 "Parameter binding").
func (e *Expander) expandMacro(call *Token, def *MacroDef) ([]*Token, *Error) {
	e.depth++
	e.frames = append(e.frames, expansionFrame{name: call.Name, span: call.Span})
	tracef("macro: expand \\%s depth=%d", call.Name, e.depth)
	defer func() {
		e.depth--
		e.frames = e.frames[:len(e.frames)-1]
	}()

	if err := e.matchDelimiters(def, call); err != nil {
		return nil, err
	}

	args := make([][]*Token, def.ParameterCount)
	for i := 0; i < def.ParameterCount; i++ {
		arg, err := e.readArgument(call)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	return substituteParameters(def.Body, args), nil
}

// matchDelimiters consumes literal tokens preceding parameter slots that
// must match exactly (§4.3); MacroSuffixNotFound on mismatch.
func (e *Expander) matchDelimiters(def *MacroDef, call *Token) *Error {
	for _, want := range def.DelimiterPattern {
		got, err := e.rawNextToken()
		if err != nil {
			return err
		}
		if !tokensEqual(got, want) {
			return newError(MacroSuffixNotFound, got.Span, e.ActiveFrames(),
				"delimiter pattern for \\"+call.Name+" did not match")
		}
	}
	return nil
}

// rawNextToken pulls straight from the lexer/pending buffer without
// recursively expanding macros — delimiter matching and argument
// scanning operate on raw tokens, per TeX semantics of matching literal
// text, not expanded text.
func (e *Expander) rawNextToken() (*Token, *Error) {
	if len(e.pending) > 0 {
		tok := e.pending[0]
		e.pending = e.pending[1:]
		return tok, nil
	}
	return e.lexer.NextToken()
}

// readArgument reads one macro argument (§4.3): a brace-group argument is
// taken as-is with braces stripped; otherwise the next single token after
// whitespace.
func (e *Expander) readArgument(call *Token) ([]*Token, *Error) {
	tok, err := e.rawNextToken()
	if err != nil {
		return nil, err
	}

	if tok.Typ != TokenGroupBegin {
		return []*Token{tok}, nil
	}

	var body []*Token
	depth := 1
	for {
		t, err := e.rawNextToken()
		if err != nil {
			return nil, err
		}
		if t.Typ == TokenEOF {
			return nil, newError(UnmatchedOpen, tok.Span, e.ActiveFrames(),
				"unterminated argument group for \\"+call.Name)
		}
		if t.Typ == TokenGroupBegin {
			depth++
		}
		if t.Typ == TokenGroupEnd {
			depth--
			if depth == 0 {
				break
			}
		}
		body = append(body, t)
	}
	return body, nil
}

func tokensEqual(a, b *Token) bool {
	if a.Typ != b.Typ {
		return false
	}
	switch a.Typ {
	case TokenControlSequence:
		return a.Name == b.Name
	case TokenCharacter:
		return a.Char == b.Char
	default:
		return true
	}
}

// substituteParameters walks a macro body, replacing each TokenParameter
// with the corresponding bound argument's token sequence.
func substituteParameters(body []*Token, args [][]*Token) []*Token {
	out := make([]*Token, 0, len(body))
	for _, t := range body {
		if t.Typ == TokenParameter {
			idx := int(t.Name[0] - '1')
			if idx >= 0 && idx < len(args) {
				out = append(out, args[idx]...)
			}
			continue
		}
		out = append(out, t)
	}
	return out
}
