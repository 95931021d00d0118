package texmath

// EventKind enumerates the variants of Event, mirroring the Token/TokenType
// split: a tagged-variant struct with a static dispatch key instead of an
// open interface hierarchy (§9, "Dynamic dispatch over command kinds").
type EventKind int

const (
	// EventContent is a leaf symbol: identifier, operator, number, or
	// string, per §3.
	EventContent EventKind = iota

	// EventBeginGroup opens a logical grouping; EventEndGroup closes the
	// innermost open one.
	EventBeginGroup
	EventEndGroup

	// EventScript announces that the next one or two child
	// subtrees attach as scripts to the preceding nucleus.
	EventScript

	// EventFraction announces a numerator/denominator pair.
	EventFraction

	// EventRadical announces an optional index then a radicand.
	EventRadical

	// EventAccent announces a single accented child.
	EventAccent

	// EventUnderover announces a single child under or over a character.
	EventUnderover

	// EventStyle switches the current font-variant/size style.
	EventStyle

	// EventColor switches the current color.
	EventColor

	// EventSpace emits explicit spacing of a given width.
	EventSpace

	// EventFlow carries an EnvironmentFlow value: Alignment, NewLine, or
	// StartLines, valid only inside an array-like environment.
	EventFlow

	// EventBeginArray opens an array/alignment environment.
	EventBeginArray
	// EventEndArray closes it.
	EventEndArray

	// EventVisual carries a Rule/Boxed/Overline/Underline/Phantom marker.
	EventVisual

	// EventEOF terminates the stream. Every pull after this one returns
	// the same EventEOF with no side effects (§8, "Idempotent EOF").
	EventEOF
)

// ContentClass is the semantic class of a Content leaf (§3), used by the
// writer for spacing decisions.
type ContentClass int

const (
	ClassIdentifier ContentClass = iota
	ClassOperator
	ClassNumber
	ClassString
)

// AtomClass is the TeX math-atom classification (GLOSSARY: "Atom class")
// used for spacing hints on Operator content.
type AtomClass int

const (
	AtomOrd AtomClass = iota
	AtomOp
	AtomBin
	AtomRel
	AtomOpen
	AtomClose
	AtomPunct
	AtomInner
	AtomLargeOp
)

// ScriptPosition enumerates where a Script event attaches, including the
// movable-limits variants large operators can take in display mode.
type ScriptPosition int

const (
	ScriptSub ScriptPosition = iota
	ScriptSuper
	ScriptSubSuper
	ScriptMovableSub
	ScriptMovableSuper
	ScriptMovableSubSuper
)

// GroupKind distinguishes plain grouping from a fenced (\left...\right)
// group, per §3.
type GroupKind int

const (
	GroupNormal GroupKind = iota
	GroupInternal
	GroupFenced
)

// FlowKind enumerates EnvironmentFlow variants (§3).
type FlowKind int

const (
	FlowAlignment FlowKind = iota
	FlowNewLine
	FlowStartLines
)

// VisualKind enumerates Visual event variants (§3).
type VisualKind int

const (
	VisualRule VisualKind = iota
	VisualBoxed
	VisualOverline
	VisualUnderline
	VisualPhantom
)

// PhantomKind distinguishes the \phantom family when VisualKind is
// VisualPhantom.
type PhantomKind int

const (
	PhantomFull PhantomKind = iota
	PhantomHorizontal
	PhantomVertical
)

// Event is the single output type of the Parser (§3). Only the fields
// relevant to Kind are populated; the zero value of the rest is never
// interpreted.
type Event struct {
	Kind EventKind
	Span Span

	// EventContent
	Class   ContentClass
	Atom    AtomClass
	Text    string
	Stretchy       bool
	MovableLimits  bool
	Accent         bool
	FenceRole      GroupKind
	Negated        bool
	Size           string // \big/\Big/\bigg/\Bigg stretch class, supplemental

	// EventBeginGroup
	GroupKind GroupKind
	FenceLeft  string
	FenceRight string

	// EventScript
	ScriptPos ScriptPosition

	// EventFraction
	LineThickness   string // "" means default thickness
	FracDelimLeft   string
	FracDelimRight  string

	// EventRadical
	IndexPresent bool

	// EventAccent / EventUnderover
	AccentChar rune
	Over       bool

	// EventStyle
	StyleVariant string

	// EventColor
	ColorSpec string

	// EventSpace
	SpaceWidth Dimension

	// EventFlow
	Flow FlowKind
	RowSpacing Dimension // only meaningful on a NewLine flow

	// EventBeginArray
	Columns []ColumnSpec

	// EventVisual
	Visual      VisualKind
	Phantom     PhantomKind
	RuleWidth   Dimension // VisualRule only
	RuleHeight  Dimension // VisualRule only
}

// ColumnSpec is one column descriptor inside an array's column
// specification (§4.4.4): l/c/r alignment, vertical bars, a p{dim}
// paragraph column, or @{...}/!{...} inter-column material.
type ColumnSpec struct {
	Align       byte // 'l', 'c', 'r', or 0 for a non-aligning spec
	VerticalBar int  // count of consecutive '|' before this column, 0..n
	DashedBar   bool // ':' instead of '|' (from the amsmath-style extension)
	ParWidth    *Dimension
	InsertBefore []Token // @{...} or !{...} literal material, tokens as written
}
