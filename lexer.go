package texmath

// Lexer converts charCursor state into primitive Tokens (§4.2). Unlike
// the teacher's whole-document lexer (which tokenizes eagerly into a
// slice), this Lexer is pulled one token at a time: macro expansion needs
// to interleave with lexing, so the full token stream can never be
// materialized up front.
type Lexer struct {
	cur *charCursor

	// inMacroBody is true while lexing the body of a \def/\newcommand
	// being captured; only then does '#' followed by a digit lex as
	// TokenParameter instead of an ordinary character pair.
	inMacroBody bool

	// eofReturned tracks whether EOF has already been yielded once, so
	// repeated calls stay idempotent without re-deriving the span.
	eofReturned bool
	eofSpan     Span
}

// NewLexer constructs a Lexer over the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{cur: newCharCursor(src)}
}

// SetMacroBodyMode toggles whether '#'+digit lexes as TokenParameter.
// Only the macro definition reader (macro_def.go) calls this.
func (l *Lexer) SetMacroBodyMode(on bool) {
	l.inMacroBody = on
}

// NextToken pulls one token from the cursor (§4.2). Comments are consumed
// silently and never reach the caller. Calling NextToken again after EOF
// keeps returning EOF with no side effects (§8, "Idempotent EOF").
func (l *Lexer) NextToken() (*Token, *Error) {
	if l.eofReturned {
		return &Token{Typ: TokenEOF, Span: l.eofSpan}, nil
	}

	l.cur.skipMathWhitespace()
	l.cur.markStart()

	r, ok := l.cur.consumeChar()
	if !ok {
		l.eofReturned = true
		l.eofSpan = l.cur.pointSpan()
		return &Token{Typ: TokenEOF, Span: l.eofSpan}, nil
	}

	switch r {
	case '\\':
		return l.lexControlSequence()
	case '{':
		return &Token{Typ: TokenGroupBegin, Span: l.cur.currentSpan()}, nil
	case '}':
		return &Token{Typ: TokenGroupEnd, Span: l.cur.currentSpan()}, nil
	case '&':
		return &Token{Typ: TokenAlignment, Span: l.cur.currentSpan()}, nil
	case '#':
		if l.inMacroBody && isDigitRune(l.cur.peek()) {
			d, _ := l.cur.consumeChar()
			return &Token{Typ: TokenParameter, Name: string(d), Span: l.cur.currentSpan()}, nil
		}
		return l.charToken(r), nil
	default:
		return l.charToken(r), nil
	}
}

func (l *Lexer) charToken(r rune) *Token {
	return &Token{Typ: TokenCharacter, Char: r, Cat: categoryOf(r), Span: l.cur.currentSpan()}
}

// lexControlSequence implements §4.2's rule: a backslash followed by a
// letter reads the maximal letter run as the name, then skips trailing
// math whitespace; a backslash followed by any non-letter takes exactly
// that one character as the name with no whitespace skip.
func (l *Lexer) lexControlSequence() (*Token, *Error) {
	r := l.cur.peek()
	if r == cursorEOF {
		return nil, newError(InvalidControlSequence, l.cur.currentSpan(), nil,
			"control sequence cannot end at end of input")
	}

	if isLetterRune(r) {
		name := l.cur.consumeWhile(isLetterRune)
		l.cur.skipMathWhitespace()
		return &Token{Typ: TokenControlSequence, Name: name, Span: l.cur.currentSpan()}, nil
	}

	ch, _ := l.cur.consumeChar()
	return &Token{Typ: TokenControlSequence, Name: string(ch), Span: l.cur.currentSpan()}, nil
}

// PeekToken reads one token without consuming it by snapshotting and
// restoring cursor state. Used by the row-spacing reader, \sqrt's
// optional index, and the macro definers, which all need one token of
// lookahead before deciding how to proceed.
func (l *Lexer) PeekToken() (*Token, *Error) {
	saved := *l.cur
	savedEOF := l.eofReturned
	savedEOFSpan := l.eofSpan
	tok, err := l.NextToken()
	*l.cur = saved
	l.eofReturned = savedEOF
	l.eofSpan = savedEOFSpan
	return tok, err
}

// Pos returns the current byte offset into the source.
func (l *Lexer) Pos() int {
	return l.cur.pos
}

// Source returns the original input string.
func (l *Lexer) Source() string {
	return l.cur.input
}
