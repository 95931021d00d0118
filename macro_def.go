package texmath

import "strconv"

// dispatchMacroDefiner handles \def, \newcommand, and \renewcommand,
// each installing a MacroDef into the current scope frame (§4.3's "user
// macro definition", SPEC_FULL's supplemented feature).
func (p *Parser) dispatchMacroDefiner(tok *Token) (atomState, []Event, *Error) {
	if tok.Name == "def" {
		return p.parseDefStyleMacro(tok)
	}
	return p.parseNewCommandStyleMacro(tok)
}

// validateParameterReferences checks that every #n in body refers to a
// declared parameter, raising BadParameterIndex at definition time
// rather than leaving an out-of-range reference to silently vanish
// during later substitution.
func (p *Parser) validateParameterReferences(body []*Token, count int) *Error {
	for _, t := range body {
		if t.Typ != TokenParameter {
			continue
		}
		idx := int(t.Name[0] - '0')
		if idx < 1 || idx > count {
			return newError(BadParameterIndex, t.Span, p.frameTrace(),
				"macro body references #"+t.Name+" but only "+strconv.Itoa(count)+" parameter(s) were declared")
		}
	}
	return nil
}

// readRawControlSequenceName reads a literal control-sequence token
// straight from the lexer, bypassing the expander: the name being
// defined or referenced is never itself macro-expanded.
func (p *Parser) readRawControlSequenceName(introducer *Token) (string, Span, *Error) {
	t, err := p.lexer.NextToken()
	if err != nil {
		return "", Span{}, err
	}
	if t.Typ != TokenControlSequence {
		return "", Span{}, newError(UnexpectedCharacter, t.Span, p.frameTrace(),
			"expected a control sequence name after \\"+introducer.Name)
	}
	return t.Name, t.Span, nil
}

// readBraceTokenGroup reads a balanced "{...}" group and returns its
// interior tokens verbatim, with the outer braces stripped.
func (p *Parser) readBraceTokenGroup() ([]*Token, *Error) {
	open, err := p.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	if open.Typ != TokenGroupBegin {
		return nil, newError(UnexpectedCharacter, open.Span, p.frameTrace(), "expected '{' opening a macro body")
	}
	var body []*Token
	depth := 1
	for {
		t, terr := p.lexer.NextToken()
		if terr != nil {
			return nil, terr
		}
		if t.Typ == TokenEOF {
			return nil, newError(UnmatchedOpen, open.Span, p.frameTrace(), "unterminated macro body")
		}
		if t.Typ == TokenGroupBegin {
			depth++
		}
		if t.Typ == TokenGroupEnd {
			depth--
			if depth == 0 {
				return body, nil
			}
		}
		body = append(body, t)
	}
}

// readMacroBodyGroup reads a macro's replacement-text group with '#'
// followed by a digit lexing as TokenParameter (§4.2's macro-body mode).
func (p *Parser) readMacroBodyGroup() ([]*Token, *Error) {
	p.lexer.SetMacroBodyMode(true)
	defer p.lexer.SetMacroBodyMode(false)
	return p.readBraceTokenGroup()
}

// readOptionalBracketedCount reads an optional "[n]" parameter count, as
// used by \newcommand/\renewcommand/\newenvironment. Absent brackets
// mean zero parameters.
func (p *Parser) readOptionalBracketedCount() (int, *Error) {
	peeked, err := p.lexer.PeekToken()
	if err != nil {
		return 0, err
	}
	if peeked.Typ != TokenCharacter || peeked.Char != '[' {
		return 0, nil
	}
	p.lexer.NextToken()
	count := 0
	for {
		t, terr := p.lexer.NextToken()
		if terr != nil {
			return 0, terr
		}
		if t.Typ == TokenCharacter && t.Char == ']' {
			return count, nil
		}
		if t.Typ != TokenCharacter || t.Cat != CatDigit {
			return 0, newError(BadNumber, t.Span, p.frameTrace(), "expected a digit inside a '[...]' parameter count")
		}
		count = count*10 + int(t.Char-'0')
	}
}

// parseDefStyleMacro reads \def\name<pattern>{body}. The pattern may
// interleave literal delimiter tokens with #n parameter markers, but
// texmath only matches the whole pattern as a single prefix run before
// reading all arguments, rather than TeX's per-argument interspersed
// delimiters.
func (p *Parser) parseDefStyleMacro(tok *Token) (atomState, []Event, *Error) {
	name, nspan, err := p.readRawControlSequenceName(tok)
	if err != nil {
		return atomState{}, nil, err
	}
	if IsBuiltin(name) {
		return atomState{}, nil, newError(BuiltinRedefinition, nspan, p.frameTrace(), "\\def cannot redefine built-in \\"+name)
	}

	p.lexer.SetMacroBodyMode(true)

	var pattern []*Token
	paramCount := 0
	for {
		peeked, perr := p.lexer.PeekToken()
		if perr != nil {
			p.lexer.SetMacroBodyMode(false)
			return atomState{}, nil, perr
		}
		if peeked.Typ == TokenGroupBegin {
			break
		}
		if peeked.Typ == TokenEOF {
			p.lexer.SetMacroBodyMode(false)
			return atomState{}, nil, newError(UnmatchedOpen, tok.Span, p.frameTrace(), "\\def with no body")
		}
		t, terr := p.lexer.NextToken()
		if terr != nil {
			p.lexer.SetMacroBodyMode(false)
			return atomState{}, nil, terr
		}
		if t.Typ == TokenParameter {
			paramCount++
			continue
		}
		pattern = append(pattern, t)
	}

	body, berr := p.readBraceTokenGroup()
	p.lexer.SetMacroBodyMode(false)
	if berr != nil {
		return atomState{}, nil, berr
	}
	if verr := p.validateParameterReferences(body, paramCount); verr != nil {
		return atomState{}, nil, verr
	}

	p.scope.DefineMacro(name, &MacroDef{ParameterCount: paramCount, DelimiterPattern: pattern, Body: body})
	return atomState{}, nil, nil
}

// parseNewCommandStyleMacro reads \newcommand/\renewcommand's two
// accepted forms for the name, "{\name}" or a bare "\name", followed by
// an optional "[n]" parameter count and a single body group.
func (p *Parser) parseNewCommandStyleMacro(tok *Token) (atomState, []Event, *Error) {
	peeked, err := p.lexer.PeekToken()
	if err != nil {
		return atomState{}, nil, err
	}

	var name string
	var nspan Span
	if peeked.Typ == TokenGroupBegin {
		p.lexer.NextToken()
		nt, nerr := p.lexer.NextToken()
		if nerr != nil {
			return atomState{}, nil, nerr
		}
		if nt.Typ != TokenControlSequence {
			return atomState{}, nil, newError(UnexpectedCharacter, nt.Span, p.frameTrace(),
				"expected a control sequence name inside \\"+tok.Name+"{...}")
		}
		name, nspan = nt.Name, nt.Span
		closing, cerr := p.lexer.NextToken()
		if cerr != nil {
			return atomState{}, nil, cerr
		}
		if closing.Typ != TokenGroupEnd {
			return atomState{}, nil, newError(UnexpectedCharacter, closing.Span, p.frameTrace(),
				"expected '}' after \\"+tok.Name+"'s name")
		}
	} else {
		n, span, nerr := p.readRawControlSequenceName(tok)
		if nerr != nil {
			return atomState{}, nil, nerr
		}
		name, nspan = n, span
	}

	if IsBuiltin(name) {
		return atomState{}, nil, newError(BuiltinRedefinition, nspan, p.frameTrace(),
			"\\"+tok.Name+" cannot redefine built-in \\"+name)
	}

	nargs, cerr := p.readOptionalBracketedCount()
	if cerr != nil {
		return atomState{}, nil, cerr
	}

	body, berr := p.readMacroBodyGroup()
	if berr != nil {
		return atomState{}, nil, berr
	}
	if verr := p.validateParameterReferences(body, nargs); verr != nil {
		return atomState{}, nil, verr
	}

	p.scope.DefineMacro(name, &MacroDef{ParameterCount: nargs, Body: body})
	return atomState{}, nil, nil
}

// dispatchEnvironmentDefiner handles \newenvironment/\renewenvironment,
// installing a userEnvironment whose begin/end macro bodies are replayed
// inline by dispatchUserEnvironmentBegin (SPEC_FULL's supplemented
// feature, modeled as plain group framing with no array semantics of
// its own).
func (p *Parser) dispatchEnvironmentDefiner(tok *Token) (atomState, []Event, *Error) {
	name, _, err := p.readEnvironmentNameArg(tok)
	if err != nil {
		return atomState{}, nil, err
	}
	if _, builtin := knownEnvironments[name]; builtin {
		return atomState{}, nil, newError(BuiltinRedefinition, tok.Span, p.frameTrace(),
			"\\"+tok.Name+" cannot redefine built-in environment "+name)
	}

	nargs, nerr := p.readOptionalBracketedCount()
	if nerr != nil {
		return atomState{}, nil, nerr
	}

	p.lexer.SetMacroBodyMode(true)
	beginBody, berr := p.readBraceTokenGroup()
	if berr != nil {
		p.lexer.SetMacroBodyMode(false)
		return atomState{}, nil, berr
	}
	endBody, eerr := p.readBraceTokenGroup()
	p.lexer.SetMacroBodyMode(false)
	if eerr != nil {
		return atomState{}, nil, eerr
	}
	if verr := p.validateParameterReferences(beginBody, nargs); verr != nil {
		return atomState{}, nil, verr
	}

	p.userEnvs[name] = &userEnvironment{
		beginMacro: &MacroDef{ParameterCount: nargs, Body: beginBody},
		endMacro:   &MacroDef{Body: endBody},
	}
	return atomState{}, nil, nil
}
