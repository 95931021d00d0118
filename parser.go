package texmath

// Parser is the event generator (§4.4): the heart of the system. It
// drives a Lexer through an Expander and a ScopeStack, producing a flat
// Event sequence.
//
// Parser implements the pull contract of §6 by parsing the whole input
// into an internal Event slice the first time Next is called, then
// serving one Event per call from that slice. This keeps the observable
// contract of spec.md §5/§6/§8 (one event per pull, deterministic order,
// idempotent EOF, errors attached at the point of failure) while avoiding
// a hand-built coroutine: nothing about the external API reveals whether
// the work happened eagerly or was truly suspended between calls, and the
// recursive-descent shape below mirrors the teacher's own node-building
// recursion (parser.go's parseDocElement) generalized from "build an AST"
// to "build an event list".
type Parser struct {
	lexer    *Lexer
	expander *Expander
	scope    *ScopeStack
	cfg      Config

	userEnvs map[string]*userEnvironment

	// lastRightDelim carries a \right delimiter's text from the point in
	// parseBody where it is lexed back up to dispatchDelimitedLeft, which
	// is the only place that knows both fences at once.
	lastRightDelim string

	events  []Event
	err     *Error
	cursor  int
	ran     bool
	eofSpan Span
}

// NewParser constructs a Parser over src with the given configuration and
// no predefined macros.
func NewParser(src string, cfg Config) *Parser {
	return NewParserWithMacros(src, nil, cfg)
}

// NewParserWithMacros constructs a Parser with an initial set of
// predefined user macros installed into the top-level scope (§6, "an
// optional initial set of pre-defined user macros").
func NewParserWithMacros(src string, predefined map[string]*MacroDef, cfg Config) *Parser {
	lexer := NewLexer(src)
	scope := newScopeStack(cfg)
	for name, def := range predefined {
		scope.DefineMacro(name, def)
	}
	p := &Parser{
		lexer:    lexer,
		scope:    scope,
		cfg:      cfg,
		userEnvs: make(map[string]*userEnvironment),
	}
	p.expander = newExpander(lexer, scope, cfg)
	return p
}

// Next returns the next Event, or an Error. Once the stream is exhausted
// (or an error has been reported), every subsequent call returns
// EventEOF with no side effects (§8, "Idempotent EOF").
func (p *Parser) Next() (Event, *Error) {
	if !p.ran {
		p.events, p.err = p.parseDocument()
		p.ran = true
	}
	if p.cursor < len(p.events) {
		ev := p.events[p.cursor]
		p.cursor++
		return ev, nil
	}
	if p.err != nil {
		err := p.err
		p.err = nil
		return Event{Kind: EventEOF, Span: err.Span}, err
	}
	return Event{Kind: EventEOF, Span: p.eofSpan}, nil
}

func (p *Parser) parseDocument() ([]Event, *Error) {
	events, err := p.parseBody(bodyCtx{kind: bodyTopLevel}, nil)
	if err != nil {
		return events, err
	}
	events = append(events, Event{Kind: EventEOF, Span: p.eofSpan})
	return events, nil
}

// frameTrace exposes the macro expansion frames currently active, for
// attaching to a freshly-raised Error (§7, "full trace of macro and
// environment frames active at the point of failure").
func (p *Parser) frameTrace() []Frame {
	return p.expander.ActiveFrames()
}

// bodyKind distinguishes what ends a parseBody call and what closer
// token it is waiting for.
type bodyKind int

const (
	bodyTopLevel    bodyKind = iota
	bodyBrace                // waits for '}'
	bodyLeftRight             // waits for \right
	bodyEnvironment           // waits for \end{envName}
	bodyBracket               // waits for a literal ']' character
	bodySplice                // waits for the spliced pending buffer to drain
)

type bodyCtx struct {
	kind    bodyKind
	envName string
}

// atomState is the nucleus+suffix bookkeeping described in §4.4.3. A
// pending leaf Content event is held here (rather than appended straight
// to the output) so that adjacent digits can merge into one Number
// event before anything is emitted.
type atomState struct {
	hasContent   bool
	contentEvent Event
	isNumber     bool

	isGroupNucleus   bool
	closedGroupEmpty bool

	movableCapable bool

	hasSub, hasSuper       bool
	subEvents, superEvents []Event
	subSpan                Span
	limits                 int // 0 unset, 1 \limits, 2 \nolimits
}

func (a *atomState) present() bool {
	return a.hasContent || a.isGroupNucleus
}

// flush drains a's pending content and suffix into out, at one of
// §4.4.3's flush points: next nucleus begins, enclosing group closes, or
// EOF.
func (p *Parser) flush(a *atomState, out *[]Event) *Error {
	if a.hasContent {
		*out = append(*out, a.contentEvent)
	}
	if a.hasSub || a.hasSuper {
		if a.isGroupNucleus && a.closedGroupEmpty && p.cfg.StrictScripts {
			return newError(InvalidScriptTarget, a.subSpan, p.frameTrace(),
				"script cannot attach to an empty group")
		}
		pos := p.scriptPositionFor(a)
		*out = append(*out, Event{Kind: EventScript, Span: a.subSpan, ScriptPos: pos})
		*out = append(*out, a.subEvents...)
		*out = append(*out, a.superEvents...)
	}
	*a = atomState{}
	return nil
}

// scriptPositionFor resolves the canonical Script variant from the
// accumulated suffix, applying display-mode defaults and explicit
// \limits/\nolimits overrides (§4.4.3).
func (p *Parser) scriptPositionFor(a *atomState) ScriptPosition {
	movable := a.movableCapable && p.cfg.DisplayMode == Display
	switch a.limits {
	case 1:
		movable = true
	case 2:
		movable = false
	}
	switch {
	case a.hasSub && a.hasSuper:
		if movable {
			return ScriptMovableSubSuper
		}
		return ScriptSubSuper
	case a.hasSub:
		if movable {
			return ScriptMovableSub
		}
		return ScriptSub
	default:
		if movable {
			return ScriptMovableSuper
		}
		return ScriptSuper
	}
}

// parseBody is the shared per-token dispatch loop (§4.4.1's table),
// parameterized by what ends it. It owns exactly one ScopeStack frame for
// non-top-level, non-splice contexts, pushed by the caller before
// parseBody is invoked. A brace body pops that frame itself when it reads
// the closing '}'; for every other kind the caller pops it after
// parseBody returns.
//
// \choose needs the material already emitted earlier in this same body
// as its first operand (§4.4.2's "infix binary" note) — stashed here as
// chooseNumerator rather than threaded through return values, since only
// this loop sees the full in-progress `out` slice at the point \choose
// appears.
func (p *Parser) parseBody(ctx bodyCtx, openTok *Token) ([]Event, *Error) {
	var out []Event
	atom := &atomState{}

	chooseSeen := false
	var chooseNumerator []Event
	var chooseSpan Span

	finish := func(result []Event, ferr *Error) ([]Event, *Error) {
		if chooseSeen {
			result = wrapChoose(chooseNumerator, result, chooseSpan)
		}
		return result, ferr
	}

	for {
		if ctx.kind == bodySplice && len(p.expander.pending) == 0 {
			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			return finish(out, nil)
		}

		tok, err := p.expander.NextExpandedToken()
		if err != nil {
			return finish(out, err)
		}

		if tok.Typ == TokenControlSequence {
			switch tok.Name {
			case "end":
				if ferr := p.flush(atom, &out); ferr != nil {
					return finish(out, ferr)
				}
				result, eerr := p.finishEnvironmentOrError(ctx, tok, out)
				return finish(result, eerr)
			case "right":
				if ferr := p.flush(atom, &out); ferr != nil {
					return finish(out, ferr)
				}
				delimText, derr := p.readDelimiterToken()
				if derr != nil {
					return finish(out, derr)
				}
				if ctx.kind != bodyLeftRight {
					return finish(out, newError(UnmatchedRight, tok.Span, p.frameTrace(),
						"\\right with no matching \\left"))
				}
				p.lastRightDelim = delimText
				return finish(out, nil)
			case "choose":
				if ferr := p.flush(atom, &out); ferr != nil {
					return finish(out, ferr)
				}
				if chooseSeen {
					return finish(out, newError(UnexpectedCharacter, tok.Span, p.frameTrace(),
						"a group may contain at most one \\choose"))
				}
				chooseSeen = true
				chooseNumerator = out
				chooseSpan = tok.Span
				out = nil
				continue
			case "limits", "nolimits":
				if !atom.present() || !p.scope.Top().AllowSuffixModifiers {
					return finish(out, newError(LimitsInInvalidContext, tok.Span, p.frameTrace(),
						"\\limits/\\nolimits with no preceding operator"))
				}
				if tok.Name == "limits" {
					atom.limits = 1
				} else {
					atom.limits = 2
				}
				continue
			}
		}

		switch tok.Typ {
		case TokenEOF:
			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			if ctx.kind != bodyTopLevel {
				return finish(out, newError(UnmatchedOpen, openTok.Span, p.frameTrace(),
					"unexpected end of input inside an unclosed group"))
			}
			if p.scope.Depth() != 1 {
				return finish(out, newError(UnmatchedOpen, openTok.Span, p.frameTrace(),
					"unbalanced groups at end of input"))
			}
			p.eofSpan = tok.Span
			return finish(out, nil)

		case TokenGroupBegin:
			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			out = append(out, Event{Kind: EventBeginGroup, Span: tok.Span, GroupKind: GroupNormal})
			p.scope.Open(ScopeImplicitBrace, tok)
			sub, serr := p.parseBody(bodyCtx{kind: bodyBrace}, tok)
			out = append(out, sub...)
			if serr != nil {
				return finish(out, serr)
			}
			*atom = atomState{isGroupNucleus: true, closedGroupEmpty: len(sub) <= 1}
			continue

		case TokenGroupEnd:
			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			if ctx.kind != bodyBrace {
				return finish(out, newError(UnmatchedClose, tok.Span, p.frameTrace(), "unmatched '}'"))
			}
			p.scope.Close()
			out = append(out, Event{Kind: EventEndGroup, Span: tok.Span})
			return finish(out, nil)

		case TokenAlignment:
			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			if !p.scope.InArray() {
				return finish(out, newError(StrayAlignment, tok.Span, p.frameTrace(),
					"'&' outside an array-like environment"))
			}
			out = append(out, Event{Kind: EventFlow, Span: tok.Span, Flow: FlowAlignment})
			*atom = atomState{}
			continue

		case TokenCharacter:
			if ctx.kind == bodyBracket && tok.Cat != CatActive && tok.Char == ']' {
				if ferr := p.flush(atom, &out); ferr != nil {
					return finish(out, ferr)
				}
				return finish(out, nil)
			}
			if tok.Cat == CatActive {
				if nerr := p.handleActiveChar(tok, atom); nerr != nil {
					return finish(out, nerr)
				}
				continue
			}
			if tok.Cat == CatDigit && atom.hasContent && atom.isNumber && !atom.hasSub && !atom.hasSuper {
				atom.contentEvent.Text += string(tok.Char)
				atom.contentEvent.Span.End = tok.Span.End
				continue
			}
			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			*atom = p.leafAtomFor(tok)
			continue

		case TokenControlSequence:
			if tok.IsEndOfLine() {
				if ferr := p.flush(atom, &out); ferr != nil {
					return finish(out, ferr)
				}
				if !p.scope.InArray() {
					return finish(out, newError(StrayNewLine, tok.Span, p.frameTrace(),
						"'\\\\' outside an array-like environment"))
				}
				flowEv, nerr := p.readNewLineFlow(tok)
				if nerr != nil {
					return finish(out, nerr)
				}
				out = append(out, flowEv)
				*atom = atomState{}
				continue
			}

			if ferr := p.flush(atom, &out); ferr != nil {
				return finish(out, ferr)
			}
			newAtom, events, derr := p.dispatchControlSequence(tok)
			if derr != nil {
				return finish(out, derr)
			}
			out = append(out, events...)
			*atom = newAtom
			continue
		}
	}
}

// wrapChoose builds the Fraction subtree \choose produces from material
// already emitted before it (numerator) and everything emitted after it
// up to the enclosing group's close (denominator). Unlike \frac/\binom,
// there is no explicit line and no delimiters.
func wrapChoose(numerator, denominator []Event, span Span) []Event {
	out := []Event{{Kind: EventFraction, Span: span, LineThickness: "0"}}
	out = append(out, numerator...)
	out = append(out, denominator...)
	return out
}

// leafAtomFor builds the deferred atomState for a plain character
// (§4.4.1's Character rows).
func (p *Parser) leafAtomFor(tok *Token) atomState {
	switch tok.Cat {
	case CatLetter:
		return atomState{hasContent: true, contentEvent: Event{
			Kind: EventContent, Span: tok.Span, Class: ClassIdentifier, Text: string(tok.Char),
		}}
	case CatDigit:
		return atomState{hasContent: true, isNumber: true, contentEvent: Event{
			Kind: EventContent, Span: tok.Span, Class: ClassNumber, Text: string(tok.Char),
		}}
	default:
		return atomState{hasContent: true, contentEvent: Event{
			Kind: EventContent, Span: tok.Span, Class: ClassOperator, Atom: operatorClassOf(tok.Char), Text: string(tok.Char),
		}}
	}
}

// handleActiveChar processes '_', '^', and '~' — the only active
// characters texmath supports — mutating the in-progress atom's suffix
// buffer rather than starting a new nucleus.
func (p *Parser) handleActiveChar(tok *Token, atom *atomState) *Error {
	switch tok.Char {
	case '_':
		if atom.hasSub {
			return p.doubleScriptError(tok)
		}
		child, err := p.parseChildSubtree()
		if err != nil {
			return err
		}
		atom.hasSub = true
		atom.subEvents = child
		atom.subSpan = tok.Span
		return nil
	case '^':
		if atom.hasSuper {
			return p.doubleScriptError(tok)
		}
		child, err := p.parseChildSubtree()
		if err != nil {
			return err
		}
		atom.hasSuper = true
		atom.superEvents = child
		if !atom.hasSub {
			atom.subSpan = tok.Span
		}
		return nil
	default: // '~', a non-breaking interword space; not itself a nucleus.
		return nil
	}
}

// doubleScriptError reports '_' or '^' appearing twice against the same
// nucleus, whether as two active characters read in sequence by the
// top-level loop or as one read where a single child token was expected
// (parseChildSubtree) — both are the same "a script cannot itself be
// scripted again without an intervening nucleus" condition.
func (p *Parser) doubleScriptError(tok *Token) *Error {
	if tok.Char == '_' {
		return newError(DoubleScript, tok.Span, p.frameTrace(), "two subscripts on the same nucleus")
	}
	return newError(DoubleScript, tok.Span, p.frameTrace(), "two superscripts on the same nucleus")
}

// readNewLineFlow reads the optional "[dim]" row-spacing suffix on a
// NewLine flow event (§4.4.4). It reads straight from the lexer, not the
// expander: the bracketed dimension is not macro-expandable text.
func (p *Parser) readNewLineFlow(tok *Token) (Event, *Error) {
	peeked, err := p.lexer.PeekToken()
	if err != nil {
		return Event{}, err
	}
	if peeked.Typ != TokenCharacter || peeked.Char != '[' {
		return Event{Kind: EventFlow, Span: tok.Span, Flow: FlowNewLine}, nil
	}
	p.lexer.NextToken()
	dim, derr := p.lexer.ReadDimension()
	if derr != nil {
		return Event{}, derr
	}
	closing, cerr := p.lexer.NextToken()
	if cerr != nil {
		return Event{}, cerr
	}
	if closing.Typ != TokenCharacter || closing.Char != ']' {
		return Event{}, newError(UnexpectedCharacter, closing.Span, p.frameTrace(), "expected ']' closing row spacing")
	}
	return Event{Kind: EventFlow, Span: tok.Span, Flow: FlowNewLine, RowSpacing: dim}, nil
}

// parseChildSubtree reads "one child" per §4.4.2/§4.4.3: a brace-group
// argument is returned whole (including its framing BeginGroup/EndGroup);
// any other single token is dispatched exactly once, recursively
// producing whatever compound subtree that token's own command demands
// (e.g. a bare \sqrt argument still fully parses \sqrt's own children).
// It never touches the caller's atom/suffix state.
//
// A bare '_' or '^' read here (e.g. the second underscore in "a__b") is
// itself a script operator, not a nucleus, so it can't serve as the
// target of the script currently being read — that's the same
// DoubleScript condition handleActiveChar raises when it sees a second
// explicit script against one pending atom. '~' contributes nothing and
// just defers to whatever single token follows it.
func (p *Parser) parseChildSubtree() ([]Event, *Error) {
	tok, err := p.expander.NextExpandedToken()
	if err != nil {
		return nil, err
	}

	if tok.Typ == TokenGroupBegin {
		out := []Event{{Kind: EventBeginGroup, Span: tok.Span, GroupKind: GroupNormal}}
		p.scope.Open(ScopeImplicitBrace, tok)
		sub, serr := p.parseBody(bodyCtx{kind: bodyBrace}, tok)
		out = append(out, sub...)
		return out, serr
	}

	if tok.Typ == TokenCharacter && tok.Cat == CatActive {
		switch tok.Char {
		case '_', '^':
			return nil, p.doubleScriptError(tok)
		default: // '~', not itself a nucleus; the real child follows it.
			return p.parseChildSubtree()
		}
	}

	if tok.Typ == TokenCharacter {
		atom := p.leafAtomFor(tok)
		return []Event{atom.contentEvent}, nil
	}

	if tok.Typ == TokenControlSequence && !tok.IsEndOfLine() {
		resultAtom, events, derr := p.dispatchControlSequence(tok)
		if derr != nil {
			return events, derr
		}
		if resultAtom.hasContent {
			events = append(events, resultAtom.contentEvent)
		}
		return events, nil
	}

	return nil, newError(UnexpectedCharacter, tok.Span, p.frameTrace(), "expected a single token or brace group here")
}

// runSplicedTokens pushes toks onto the expander's pending buffer and
// parses exactly until that splice (plus anything it expands into) has
// fully drained, then returns — used to replay a \newenvironment
// begin/end body inline without treating it as array or brace structure
// of its own (SPEC_FULL's \newenvironment/\renewenvironment support).
func (p *Parser) runSplicedTokens(toks []*Token) ([]Event, *Error) {
	if len(toks) == 0 {
		return nil, nil
	}
	p.expander.pending = append(toks, p.expander.pending...)
	return p.parseBody(bodyCtx{kind: bodySplice}, nil)
}

// operatorClassOf looks up the static atom-class table for a bare
// character (§4.4.1, "class comes from a static table").
func operatorClassOf(r rune) AtomClass {
	switch r {
	case '+', '-', '*':
		return AtomBin
	case '/':
		return AtomOrd
	case '=', '<', '>':
		return AtomRel
	case '(', '[':
		return AtomOpen
	case ')', ']':
		return AtomClose
	case ',', ';', '.':
		return AtomPunct
	default:
		return AtomOrd
	}
}
