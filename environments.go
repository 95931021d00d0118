package texmath

// environmentSpec describes one member of the closed environment set
// (§4.4.4). Fence pairs are emitted as a BeginGroup(fenced) wrapping the
// BeginArray, per §3's note on delimiter-decorated matrices.
type environmentSpec struct {
	name           string
	fenceLeft      string
	fenceRight     string
	hasPreamble    bool // true for "array" and "subarray", which read {column_spec}
	allowSuffixMod bool
}

var knownEnvironments = map[string]environmentSpec{
	"matrix":      {name: "matrix", allowSuffixMod: true},
	"pmatrix":     {name: "pmatrix", fenceLeft: "(", fenceRight: ")", allowSuffixMod: true},
	"bmatrix":     {name: "bmatrix", fenceLeft: "[", fenceRight: "]", allowSuffixMod: true},
	"Bmatrix":     {name: "Bmatrix", fenceLeft: "{", fenceRight: "}", allowSuffixMod: true},
	"vmatrix":     {name: "vmatrix", fenceLeft: "|", fenceRight: "|", allowSuffixMod: true},
	"Vmatrix":     {name: "Vmatrix", fenceLeft: "‖", fenceRight: "‖", allowSuffixMod: true},
	"smallmatrix": {name: "smallmatrix", allowSuffixMod: true},
	"array":       {name: "array", hasPreamble: true, allowSuffixMod: true},
	"subarray":    {name: "subarray", hasPreamble: true, allowSuffixMod: true},
	"align":       {name: "align", allowSuffixMod: true},
	"align*":      {name: "align*", allowSuffixMod: true},
	"aligned":     {name: "aligned", allowSuffixMod: true},
	"cases":       {name: "cases", fenceLeft: "{", allowSuffixMod: true},
	"gather":      {name: "gather", allowSuffixMod: true},
	"gather*":     {name: "gather*", allowSuffixMod: true},
	"equation":    {name: "equation", allowSuffixMod: true},
	"equation*":   {name: "equation*", allowSuffixMod: true},
	"split":       {name: "split", allowSuffixMod: true},
}

// userEnvironment is one \newenvironment-defined environment, the
// supplemented feature from SPEC_FULL, kept in Parser.userEnvs by name.
// Checked before falling back to UnknownEnvironment,
// never allowed to shadow a built-in name (mirrors BuiltinRedefinition's
// intent for macros).
type userEnvironment struct {
	beginMacro *MacroDef
	endMacro   *MacroDef
}

// parseColumnSpec reads an array's {column_spec} per §4.4.4: a sequence
// over {l, c, r, |, :, p{dim}, @{...}, !{...}}, with consecutive '|'/':'
// denoting multiple vertical bars.
func (p *Parser) parseColumnSpec() ([]ColumnSpec, *Error) {
	var cols []ColumnSpec
	pendingBars := 0
	pendingDashed := false

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Typ == TokenGroupEnd:
			if pendingBars > 0 || pendingDashed {
				cols = append(cols, ColumnSpec{VerticalBar: pendingBars, DashedBar: pendingDashed})
			}
			return cols, nil
		case tok.Typ == TokenCharacter && tok.Char == '|':
			pendingBars++
		case tok.Typ == TokenCharacter && tok.Char == ':':
			pendingDashed = true
		case tok.Typ == TokenCharacter && (tok.Char == 'l' || tok.Char == 'c' || tok.Char == 'r'):
			cols = append(cols, ColumnSpec{
				Align:       byte(tok.Char),
				VerticalBar: pendingBars,
				DashedBar:   pendingDashed,
			})
			pendingBars, pendingDashed = 0, false
		case tok.Typ == TokenCharacter && tok.Char == 'p':
			dim, derr := p.expectGroupDimension()
			if derr != nil {
				return nil, derr
			}
			cols = append(cols, ColumnSpec{
				VerticalBar: pendingBars,
				DashedBar:   pendingDashed,
				ParWidth:    &dim,
			})
			pendingBars, pendingDashed = 0, false
		case tok.Typ == TokenCharacter && (tok.Char == '@' || tok.Char == '!'):
			material, merr := p.collectBraceGroupTokens()
			if merr != nil {
				return nil, merr
			}
			cols = append(cols, ColumnSpec{InsertBefore: material})
		case tok.Typ == TokenEOF:
			return nil, newError(UnmatchedOpen, tok.Span, p.frameTrace(), "unterminated array column specification")
		default:
			// Whitespace-category characters are simply skipped; any other
			// character is not part of the closed column-spec vocabulary.
		}
	}
}

// expectGroupDimension reads a "{dim}" group, using the dimension
// sub-lexer on its contents. Used both for the 'p' column letter's width
// and for \rule's two dimension arguments.
func (p *Parser) expectGroupDimension() (Dimension, *Error) {
	open, err := p.lexer.NextToken()
	if err != nil {
		return Dimension{}, err
	}
	if open.Typ != TokenGroupBegin {
		return Dimension{}, newError(UnexpectedCharacter, open.Span, p.frameTrace(), "expected '{' opening a dimension group")
	}
	dim, derr := p.lexer.ReadDimension()
	if derr != nil {
		return Dimension{}, derr
	}
	close, cerr := p.lexer.NextToken()
	if cerr != nil {
		return Dimension{}, cerr
	}
	if close.Typ != TokenGroupEnd {
		return Dimension{}, newError(UnmatchedOpen, close.Span, p.frameTrace(), "expected '}' closing a dimension group")
	}
	return dim, nil
}

// collectBraceGroupTokens reads a brace-delimited token run verbatim,
// used for @{...}/!{...} inter-column material which is carried through
// to the writer rather than interpreted by the core.
func (p *Parser) collectBraceGroupTokens() ([]Token, *Error) {
	open, err := p.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	if open.Typ != TokenGroupBegin {
		return nil, newError(UnexpectedCharacter, open.Span, p.frameTrace(), "expected '{' after '@'/'!' column specifier")
	}
	var toks []Token
	depth := 1
	for {
		t, terr := p.lexer.NextToken()
		if terr != nil {
			return nil, terr
		}
		if t.Typ == TokenEOF {
			return nil, newError(UnmatchedOpen, t.Span, p.frameTrace(), "unterminated @{...}/!{...} column material")
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
		toks = append(toks, *t)
	}
	return toks, nil
}
