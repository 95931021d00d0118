package texmath

import "strings"

// dispatchControlSequence resolves one already-expanded control-sequence
// token to its event(s), per §4.4.2's dispatch table. parseBody calls it
// for control sequences that its pre-flush interception (\end, \right,
// \choose, \limits/\nolimits) did not already consume; parseChildSubtree
// calls it for any control sequence read as a single child.
func (p *Parser) dispatchControlSequence(tok *Token) (atomState, []Event, *Error) {
	entry := lookupBuiltin(tok.Name)
	if entry == nil {
		return atomState{}, nil, newError(UndefinedControlSequence, tok.Span, p.frameTrace(),
			"undefined control sequence \\"+tok.Name)
	}

	switch entry.Kind {
	case builtinSymbol:
		class := ClassOperator
		if entry.Class == AtomOrd {
			class = ClassIdentifier
		}
		return atomState{
			hasContent:     true,
			movableCapable: entry.MovableLimits,
			contentEvent: Event{
				Kind: EventContent, Span: tok.Span, Class: class, Atom: entry.Class, Text: entry.Text,
			},
		}, nil, nil

	case builtinStructuralBinary:
		return p.dispatchStructuralBinary(tok)

	case builtinRadical:
		return p.dispatchRadical(tok)

	case builtinDelimitedLeft:
		return p.dispatchDelimitedLeft(tok)

	case builtinEnvironmentBegin:
		return p.dispatchEnvironmentBegin(tok)

	case builtinStyle:
		return p.dispatchStyle(tok, entry)

	case builtinColor:
		return p.dispatchColor(tok, entry)

	case builtinAccent:
		return p.dispatchAccent(tok, entry)

	case builtinUnderover:
		return p.dispatchUnderover(tok, entry)

	case builtinTextEscape:
		return p.dispatchTextEscape(tok)

	case builtinMacroDefiner:
		return p.dispatchMacroDefiner(tok)

	case builtinEnvironmentDefiner:
		return p.dispatchEnvironmentDefiner(tok)

	case builtinFlowMarker:
		if entry.FlowKind == FlowNewLine && !p.scope.InArray() {
			return atomState{}, nil, newError(StrayNewLine, tok.Span, p.frameTrace(),
				"'\\"+tok.Name+"' outside an array-like environment")
		}
		return atomState{}, []Event{{Kind: EventFlow, Span: tok.Span, Flow: entry.FlowKind}}, nil

	case builtinSizingDelimiter:
		return p.dispatchSizingDelimiter(tok)

	case builtinNotModifier:
		return p.dispatchNot(tok)

	case builtinVisual:
		return p.dispatchVisual(tok, entry)

	case builtinSpaceCommand:
		return atomState{}, []Event{{Kind: EventSpace, Span: tok.Span, SpaceWidth: Dimension{Value: spaceWidths[tok.Name], Unit: "em"}}}, nil

	default:
		// builtinInfixBinary, builtinLimitDirective, builtinEnvironmentEnd,
		// and builtinDelimitedRight are intercepted by name in parseBody;
		// they reach this switch only when read as a single child through
		// parseChildSubtree (e.g. "x^\limits"), and are reported here.
		return atomState{}, nil, newError(InternalTokenError, tok.Span, p.frameTrace(),
			"\\"+tok.Name+" reached generic dispatch unexpectedly")
	}
}

// dispatchStructuralBinary handles \frac and its amsmath relatives: a
// two-child construct whose default line thickness and implied
// delimiters (for \binom) come from the command name (§4.4.2).
func (p *Parser) dispatchStructuralBinary(tok *Token) (atomState, []Event, *Error) {
	numerator, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}
	denominator, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}

	ev := Event{Kind: EventFraction, Span: tok.Span}
	switch tok.Name {
	case "tfrac":
		ev.LineThickness = "text"
	case "dfrac":
		ev.LineThickness = "display"
	case "cfrac":
		ev.LineThickness = "display"
	case "binom":
		ev.LineThickness = "0"
		ev.FracDelimLeft, ev.FracDelimRight = "(", ")"
	}

	out := []Event{ev}
	out = append(out, numerator...)
	out = append(out, denominator...)
	return atomState{isGroupNucleus: true}, out, nil
}

// dispatchRadical handles \sqrt, with its optional [index] (§4.4.2,
// §7.4 EmptyRadicand).
func (p *Parser) dispatchRadical(tok *Token) (atomState, []Event, *Error) {
	var indexEvents []Event
	hasIndex := false

	peeked, err := p.lexer.PeekToken()
	if err != nil {
		return atomState{}, nil, err
	}
	if peeked.Typ == TokenCharacter && peeked.Char == '[' {
		p.lexer.NextToken()
		p.scope.Open(ScopeImplicitBrace, tok)
		idx, ierr := p.parseBody(bodyCtx{kind: bodyBracket}, tok)
		p.scope.Close()
		if ierr != nil {
			return atomState{}, nil, ierr
		}
		indexEvents = idx
		hasIndex = true
	}

	radicand, rerr := p.parseChildSubtree()
	if rerr != nil {
		return atomState{}, nil, rerr
	}
	if len(radicand) == 0 {
		return atomState{}, nil, newError(EmptyRadicand, tok.Span, p.frameTrace(), "\\sqrt with an empty radicand")
	}

	out := []Event{{Kind: EventRadical, Span: tok.Span, IndexPresent: hasIndex}}
	out = append(out, indexEvents...)
	out = append(out, radicand...)
	return atomState{isGroupNucleus: true}, out, nil
}

// readDelimiterToken reads a single \left/\right/\big-family delimiter:
// either a bare math-symbol character or a built-in symbol control
// sequence (e.g. \langle). "." is TeX's "no delimiter" sentinel and
// resolves to an empty fence.
func (p *Parser) readDelimiterToken() (string, *Error) {
	t, err := p.lexer.NextToken()
	if err != nil {
		return "", err
	}
	var text string
	switch t.Typ {
	case TokenCharacter:
		text = string(t.Char)
	case TokenControlSequence:
		if be := lookupBuiltin(t.Name); be != nil && be.Kind == builtinSymbol {
			text = be.Text
		}
	}
	if text == "" {
		return "", newError(UnexpectedCharacter, t.Span, p.frameTrace(), "expected a delimiter after \\left/\\right")
	}
	if text == "." {
		return "", nil
	}
	return text, nil
}

// dispatchDelimitedLeft handles \left, reading its own delimiter then
// parsing the fenced body up to the matching \right, which stashes its
// delimiter in p.lastRightDelim (§3, "fenced group").
func (p *Parser) dispatchDelimitedLeft(tok *Token) (atomState, []Event, *Error) {
	leftDelim, err := p.readDelimiterToken()
	if err != nil {
		return atomState{}, nil, err
	}

	p.scope.Open(ScopeLeftRight, tok)
	bodyEvents, berr := p.parseBody(bodyCtx{kind: bodyLeftRight}, tok)
	p.scope.Close()

	rightDelim := p.lastRightDelim
	p.lastRightDelim = ""

	out := []Event{{Kind: EventBeginGroup, Span: tok.Span, GroupKind: GroupFenced, FenceLeft: leftDelim, FenceRight: rightDelim}}
	out = append(out, bodyEvents...)
	out = append(out, Event{Kind: EventEndGroup, Span: tok.Span})
	return atomState{isGroupNucleus: true, closedGroupEmpty: len(bodyEvents) == 0}, out, berr
}

// readEnvironmentNameArg reads the "{name}" following \begin or \end.
func (p *Parser) readEnvironmentNameArg(tok *Token) (string, Span, *Error) {
	open, err := p.lexer.NextToken()
	if err != nil {
		return "", Span{}, err
	}
	if open.Typ != TokenGroupBegin {
		return "", Span{}, newError(UnexpectedCharacter, open.Span, p.frameTrace(), "expected '{' after \\"+tok.Name)
	}
	var sb []rune
	span := Span{Start: open.Span.End}
	for {
		t, terr := p.lexer.NextToken()
		if terr != nil {
			return "", Span{}, terr
		}
		if t.Typ == TokenGroupEnd {
			span.End = t.Span.Start
			return string(sb), span, nil
		}
		if t.Typ == TokenEOF {
			return "", Span{}, newError(UnmatchedOpen, open.Span, p.frameTrace(), "unterminated environment name")
		}
		if t.Typ == TokenCharacter {
			sb = append(sb, t.Char)
		}
	}
}

// finishEnvironmentOrError validates an \end{name} against the context
// that is currently waiting for it (§4.4.4's EnvironmentMismatch and
// §7.3's MismatchedGroup).
func (p *Parser) finishEnvironmentOrError(ctx bodyCtx, tok *Token, out []Event) ([]Event, *Error) {
	name, nspan, err := p.readEnvironmentNameArg(tok)
	if err != nil {
		return out, err
	}
	if ctx.kind != bodyEnvironment {
		return out, newError(MismatchedGroup, tok.Span, p.frameTrace(),
			"\\end{"+name+"} while inside a different kind of group")
	}
	if name != ctx.envName {
		return out, newError(EnvironmentMismatch, nspan, p.frameTrace(),
			"\\end{"+name+"} does not match \\begin{"+ctx.envName+"}")
	}
	return out, nil
}

// dispatchEnvironmentBegin resolves \begin{name}, either to one of the
// closed built-in environments (§4.4.4) or to a \newenvironment-defined
// one (SPEC_FULL's supplemented feature).
func (p *Parser) dispatchEnvironmentBegin(tok *Token) (atomState, []Event, *Error) {
	name, nspan, err := p.readEnvironmentNameArg(tok)
	if err != nil {
		return atomState{}, nil, err
	}
	if spec, ok := knownEnvironments[name]; ok {
		return p.dispatchKnownEnvironment(tok, spec)
	}
	if ue, ok := p.userEnvs[name]; ok {
		return p.dispatchUserEnvironmentBegin(tok, name, ue)
	}
	return atomState{}, nil, newError(UnknownEnvironment, nspan, p.frameTrace(), "unknown environment \\"+name)
}

func (p *Parser) dispatchKnownEnvironment(tok *Token, spec environmentSpec) (atomState, []Event, *Error) {
	var columns []ColumnSpec
	if spec.hasPreamble {
		open, err := p.lexer.NextToken()
		if err != nil {
			return atomState{}, nil, err
		}
		if open.Typ != TokenGroupBegin {
			return atomState{}, nil, newError(UnexpectedCharacter, open.Span, p.frameTrace(),
				"expected '{' column specification after \\begin{"+spec.name+"}")
		}
		cols, cerr := p.parseColumnSpec()
		if cerr != nil {
			return atomState{}, nil, cerr
		}
		columns = cols
	}

	p.scope.Open(ScopeEnvironment, tok)
	top := p.scope.Top()
	top.EnvironmentName = spec.name
	top.AllowSuffixModifiers = spec.allowSuffixMod
	if spec.hasPreamble {
		top.ArrayColumns = len(columns)
	} else {
		top.ArrayColumns = 1 // sentinel: "is array-like", not a true column count
	}

	bodyEvents, berr := p.parseBody(bodyCtx{kind: bodyEnvironment, envName: spec.name}, tok)
	p.scope.Close()
	if berr != nil {
		berr = wrapError(berr, Frame{Name: spec.name, Span: tok.Span})
	}

	fenced := spec.fenceLeft != "" || spec.fenceRight != ""
	var out []Event
	if fenced {
		out = append(out, Event{Kind: EventBeginGroup, Span: tok.Span, GroupKind: GroupFenced, FenceLeft: spec.fenceLeft, FenceRight: spec.fenceRight})
	}
	out = append(out, Event{Kind: EventBeginArray, Span: tok.Span, Columns: columns})
	out = append(out, bodyEvents...)
	out = append(out, Event{Kind: EventEndArray, Span: tok.Span})
	if fenced {
		out = append(out, Event{Kind: EventEndGroup, Span: tok.Span})
	}
	return atomState{isGroupNucleus: true, closedGroupEmpty: len(bodyEvents) == 0}, out, berr
}

// dispatchUserEnvironmentBegin replays a \newenvironment's begin-body,
// the user's real environment content, then its end-body, all spliced
// through the same token/event machinery as ordinary macro expansion
// (§SPEC_FULL). The construct is framed as a plain group, not an array:
// \newenvironment itself carries no alignment semantics in real LaTeX:
// an \array/\matrix inside the begin-body supplies that if the user
// wants it.
func (p *Parser) dispatchUserEnvironmentBegin(tok *Token, name string, ue *userEnvironment) (atomState, []Event, *Error) {
	args := make([][]*Token, ue.beginMacro.ParameterCount)
	for i := range args {
		arg, err := p.expander.readArgument(tok)
		if err != nil {
			return atomState{}, nil, err
		}
		args[i] = arg
	}
	beginTokens := substituteParameters(ue.beginMacro.Body, args)

	beginEvents, berr := p.runSplicedTokens(beginTokens)
	if berr != nil {
		return atomState{}, beginEvents, berr
	}

	p.scope.Open(ScopeImplicitBrace, tok)
	bodyEvents, cerr := p.parseBody(bodyCtx{kind: bodyEnvironment, envName: name}, tok)

	var endEvents []Event
	var eerr *Error
	if cerr == nil {
		endTokens := substituteParameters(ue.endMacro.Body, nil)
		endEvents, eerr = p.runSplicedTokens(endTokens)
	}
	p.scope.Close()

	out := []Event{{Kind: EventBeginGroup, Span: tok.Span, GroupKind: GroupNormal}}
	out = append(out, beginEvents...)
	out = append(out, bodyEvents...)
	out = append(out, endEvents...)
	out = append(out, Event{Kind: EventEndGroup, Span: tok.Span})

	combinedErr := cerr
	if combinedErr == nil {
		combinedErr = eerr
	}
	if combinedErr != nil {
		combinedErr = wrapError(combinedErr, Frame{Name: name, Span: tok.Span})
	}
	return atomState{isGroupNucleus: true, closedGroupEmpty: len(out) <= 2}, out, combinedErr
}

// dispatchStyle handles both the argument-taking \mathXX family and the
// no-argument \displaystyle/\textstyle/\scriptstyle/\scriptscriptstyle
// switches (SPEC_FULL's supplemented features).
func (p *Parser) dispatchStyle(tok *Token, entry *builtinEntry) (atomState, []Event, *Error) {
	if !entry.TakesArgument {
		p.scope.Top().StyleVariant = entry.StyleVariant
		return atomState{}, []Event{{Kind: EventStyle, Span: tok.Span, StyleVariant: entry.StyleVariant}}, nil
	}

	child, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}
	out := []Event{
		{Kind: EventBeginGroup, Span: tok.Span, GroupKind: GroupInternal},
		{Kind: EventStyle, Span: tok.Span, StyleVariant: entry.StyleVariant},
	}
	out = append(out, child...)
	out = append(out, Event{Kind: EventEndGroup, Span: tok.Span})
	return atomState{isGroupNucleus: true}, out, nil
}

// readBraceGroupAsText reads "{...}" and returns its literal source text
// uninterpreted, used for \color's argument and \text/\mbox's content.
func (p *Parser) readBraceGroupAsText(tok *Token) (string, Span, *Error) {
	open, err := p.lexer.NextToken()
	if err != nil {
		return "", Span{}, err
	}
	if open.Typ != TokenGroupBegin {
		return "", Span{}, newError(UnexpectedCharacter, open.Span, p.frameTrace(), "expected '{' after \\"+tok.Name)
	}
	start := open.Span.End
	depth := 1
	for {
		t, terr := p.lexer.NextToken()
		if terr != nil {
			return "", Span{}, terr
		}
		if t.Typ == TokenEOF {
			return "", Span{}, newError(UnmatchedOpen, open.Span, p.frameTrace(), "unterminated \\"+tok.Name+" argument")
		}
		if t.Typ == TokenGroupBegin {
			depth++
		}
		if t.Typ == TokenGroupEnd {
			depth--
			if depth == 0 {
				return p.lexer.Source()[start:t.Span.Start], Span{Start: start, End: t.Span.Start}, nil
			}
		}
	}
}

func (p *Parser) dispatchColor(tok *Token, entry *builtinEntry) (atomState, []Event, *Error) {
	colorSpec, _, err := p.readBraceGroupAsText(tok)
	if err != nil {
		return atomState{}, nil, err
	}
	p.scope.Top().ColorSpec = colorSpec
	return atomState{}, []Event{{Kind: EventColor, Span: tok.Span, ColorSpec: colorSpec}}, nil
}

func (p *Parser) dispatchAccent(tok *Token, entry *builtinEntry) (atomState, []Event, *Error) {
	child, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}
	out := []Event{{Kind: EventAccent, Span: tok.Span, AccentChar: entry.AccentChar, Stretchy: entry.Stretchy}}
	out = append(out, child...)
	return atomState{isGroupNucleus: true}, out, nil
}

func (p *Parser) dispatchUnderover(tok *Token, entry *builtinEntry) (atomState, []Event, *Error) {
	child, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}
	out := []Event{{Kind: EventUnderover, Span: tok.Span, AccentChar: entry.AccentChar, Over: entry.Over}}
	out = append(out, child...)
	return atomState{isGroupNucleus: true}, out, nil
}

// dispatchTextEscape handles \text/\mbox by slicing the raw source text
// of its brace group rather than re-lexing it in a separate text-mode
// grammar: texmath does not interpret the interior of \text at all, it
// is carried through verbatim as a String leaf.
func (p *Parser) dispatchTextEscape(tok *Token) (atomState, []Event, *Error) {
	text, span, err := p.readBraceGroupAsText(tok)
	if err != nil {
		return atomState{}, nil, err
	}
	return atomState{hasContent: true, contentEvent: Event{
		Kind: EventContent, Span: span, Class: ClassString, Text: text,
	}}, nil, nil
}

// dispatchSizingDelimiter handles \big/\Big/\bigg/\Bigg and their l/r/m
// variants (SPEC_FULL's supplemented sizing family): the following token
// is the actual delimiter, annotated with a Size tag and an atom class
// derived from the l/r/m suffix.
func (p *Parser) dispatchSizingDelimiter(tok *Token) (atomState, []Event, *Error) {
	delimTok, err := p.lexer.NextToken()
	if err != nil {
		return atomState{}, nil, err
	}
	var text string
	atomCls := AtomOrd
	switch delimTok.Typ {
	case TokenCharacter:
		text = string(delimTok.Char)
		atomCls = operatorClassOf(delimTok.Char)
	case TokenControlSequence:
		if be := lookupBuiltin(delimTok.Name); be != nil && be.Kind == builtinSymbol {
			text, atomCls = be.Text, be.Class
		}
	}
	switch {
	case strings.HasSuffix(tok.Name, "l"):
		atomCls = AtomOpen
	case strings.HasSuffix(tok.Name, "r"):
		atomCls = AtomClose
	case strings.HasSuffix(tok.Name, "m"):
		atomCls = AtomRel
	}
	return atomState{hasContent: true, contentEvent: Event{
		Kind: EventContent, Span: tok.Span, Class: ClassOperator, Atom: atomCls, Text: text, Size: tok.Name,
	}}, nil, nil
}

// dispatchNot handles \not by marking the Negated field on the single
// Content leaf its argument produces (SPEC_FULL's supplemented feature).
func (p *Parser) dispatchNot(tok *Token) (atomState, []Event, *Error) {
	child, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}
	if len(child) == 0 {
		return atomState{}, nil, newError(UnexpectedCharacter, tok.Span, p.frameTrace(), "\\not with nothing to negate")
	}
	negated := append([]Event(nil), child...)
	for i := range negated {
		if negated[i].Kind == EventContent {
			negated[i].Negated = true
			break
		}
	}
	if len(negated) == 1 && negated[0].Kind == EventContent {
		return atomState{hasContent: true, contentEvent: negated[0]}, nil, nil
	}
	return atomState{isGroupNucleus: true}, negated, nil
}

func (p *Parser) dispatchVisual(tok *Token, entry *builtinEntry) (atomState, []Event, *Error) {
	if entry.Visual == VisualRule {
		w, err := p.expectGroupDimension()
		if err != nil {
			return atomState{}, nil, err
		}
		h, err := p.expectGroupDimension()
		if err != nil {
			return atomState{}, nil, err
		}
		return atomState{}, []Event{{Kind: EventVisual, Span: tok.Span, Visual: VisualRule, RuleWidth: w, RuleHeight: h}}, nil
	}

	child, err := p.parseChildSubtree()
	if err != nil {
		return atomState{}, nil, err
	}
	out := []Event{{Kind: EventVisual, Span: tok.Span, Visual: entry.Visual, Phantom: entry.Phantom}}
	out = append(out, child...)
	return atomState{isGroupNucleus: true}, out, nil
}
