package texmath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kr/pretty"
	. "gopkg.in/check.v1"
)

func TestParser(t *testing.T) { TestingT(t) }

type ParserSuite struct{}

var _ = Suite(&ParserSuite{})

// drain pulls every Event up to and including the first EventEOF, returning
// the events before it (the terminal EOF itself is never included) along
// with whatever Error accompanied it, if any.
func drain(p *Parser) ([]Event, *Error) {
	var out []Event
	for {
		ev, err := p.Next()
		if ev.Kind == EventEOF {
			return out, err
		}
		out = append(out, ev)
	}
}

// ignoreSpan drops the byte-offset bookkeeping from the comparison: these
// tests assert on event shape, not on exact source positions.
var ignoreSpan = cmpopts.IgnoreFields(Event{}, "Span")

func checkEvents(c *C, got, want []Event) {
	if diff := cmp.Diff(want, got, ignoreSpan); diff != "" {
		c.Fatalf("event mismatch:\n%s\ngot: %# v", diff, pretty.Formatter(got))
	}
}

func (s *ParserSuite) TestSubSuperScript(c *C) {
	p := NewParser("a_i^2", DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassIdentifier, Text: "a"},
		{Kind: EventScript, ScriptPos: ScriptSubSuper},
		{Kind: EventContent, Class: ClassIdentifier, Text: "i"},
		{Kind: EventContent, Class: ClassNumber, Text: "2"},
	})
}

func (s *ParserSuite) TestMovableLimitsInDisplayMode(c *C) {
	cfg := DefaultConfig()
	cfg.DisplayMode = Display
	p := NewParser(`\sum_{i=0}^n i`, cfg)
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassOperator, Atom: AtomLargeOp, Text: "∑"},
		{Kind: EventScript, ScriptPos: ScriptMovableSubSuper},
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventContent, Class: ClassIdentifier, Text: "i"},
		{Kind: EventContent, Class: ClassOperator, Atom: AtomRel, Text: "="},
		{Kind: EventContent, Class: ClassNumber, Text: "0"},
		{Kind: EventEndGroup},
		{Kind: EventContent, Class: ClassIdentifier, Text: "n"},
		{Kind: EventContent, Class: ClassIdentifier, Text: "i"},
	})
}

func (s *ParserSuite) TestFraction(c *C) {
	p := NewParser(`\frac{1}{2}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventFraction},
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventContent, Class: ClassNumber, Text: "1"},
		{Kind: EventEndGroup},
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventContent, Class: ClassNumber, Text: "2"},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestPmatrix(c *C) {
	p := NewParser(`\begin{pmatrix}a&b\\c&d\end{pmatrix}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventBeginGroup, GroupKind: GroupFenced, FenceLeft: "(", FenceRight: ")"},
		{Kind: EventBeginArray},
		{Kind: EventContent, Class: ClassIdentifier, Text: "a"},
		{Kind: EventFlow, Flow: FlowAlignment},
		{Kind: EventContent, Class: ClassIdentifier, Text: "b"},
		{Kind: EventFlow, Flow: FlowNewLine},
		{Kind: EventContent, Class: ClassIdentifier, Text: "c"},
		{Kind: EventFlow, Flow: FlowAlignment},
		{Kind: EventContent, Class: ClassIdentifier, Text: "d"},
		{Kind: EventEndArray},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestSqrtWithIndex(c *C) {
	p := NewParser(`\sqrt[3]{x}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventRadical, IndexPresent: true},
		{Kind: EventContent, Class: ClassNumber, Text: "3"},
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventContent, Class: ClassIdentifier, Text: "x"},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestDoubleScriptIsAnError(c *C) {
	p := NewParser(`a_x_y`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, DoubleScript)
	checkEvents(c, got, nil)
}

// TestDoubleScriptOnNestedActiveChar covers spec.md's own canonical
// example: the second '_' is read as the single-token child of the
// first '_', not as a second active character seen by the top-level
// loop, so it exercises parseChildSubtree's own active-char check rather
// than handleActiveChar's hasSub guard.
func (s *ParserSuite) TestDoubleScriptOnNestedActiveChar(c *C) {
	p := NewParser(`a__b`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, DoubleScript)
	checkEvents(c, got, nil)
}

func (s *ParserSuite) TestEOFIsIdempotentAfterError(c *C) {
	p := NewParser(`a_x_y`, DefaultConfig())
	first, err := p.Next()
	c.Assert(err, NotNil)
	c.Check(first.Kind, Equals, EventEOF)

	for i := 0; i < 3; i++ {
		ev, err := p.Next()
		c.Assert(err, IsNil)
		c.Check(ev.Kind, Equals, EventEOF)
	}
}

func (s *ParserSuite) TestEOFIsIdempotentAfterSuccess(c *C) {
	p := NewParser(`a`, DefaultConfig())
	ev, err := p.Next()
	c.Assert(err, IsNil)
	c.Check(ev.Kind, Equals, EventContent)

	for i := 0; i < 3; i++ {
		ev, err := p.Next()
		c.Assert(err, IsNil)
		c.Check(ev.Kind, Equals, EventEOF)
	}
}

func (s *ParserSuite) TestChoose(c *C) {
	p := NewParser(`{n \choose k}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventFraction, LineThickness: "0"},
		{Kind: EventContent, Class: ClassIdentifier, Text: "n"},
		{Kind: EventContent, Class: ClassIdentifier, Text: "k"},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestLeftRightFence(c *C) {
	p := NewParser(`\left(x\right)`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventBeginGroup, GroupKind: GroupFenced, FenceLeft: "(", FenceRight: ")"},
		{Kind: EventContent, Class: ClassIdentifier, Text: "x"},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestUnmatchedRightIsAnError(c *C) {
	p := NewParser(`x\right)`, DefaultConfig())
	_, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, UnmatchedRight)
}

func (s *ParserSuite) TestNewCommandAndExpansion(c *C) {
	p := NewParser(`\newcommand\half[1]{\frac{#1}{2}}\half{x}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventFraction},
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventContent, Class: ClassIdentifier, Text: "x"},
		{Kind: EventEndGroup},
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventContent, Class: ClassNumber, Text: "2"},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestDefWithTwoParameters(c *C) {
	p := NewParser(`\def\pair#1#2{#1-#2}\pair{a}{b}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassIdentifier, Text: "a"},
		{Kind: EventContent, Class: ClassOperator, Atom: AtomBin, Text: "-"},
		{Kind: EventContent, Class: ClassIdentifier, Text: "b"},
	})
}

func (s *ParserSuite) TestDefWithPrefixDelimiter(c *C) {
	p := NewParser(`\def\abs*#1{#1}\abs*{x}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassIdentifier, Text: "x"},
	})
}

func (s *ParserSuite) TestBadParameterIndexAtDefinitionTime(c *C) {
	p := NewParser(`\newcommand\bad[1]{#2}`, DefaultConfig())
	_, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, BadParameterIndex)
}

func (s *ParserSuite) TestBuiltinRedefinitionIsRejected(c *C) {
	p := NewParser(`\def\frac#1#2{#1}`, DefaultConfig())
	_, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, BuiltinRedefinition)
}

func (s *ParserSuite) TestNewEnvironment(c *C) {
	p := NewParser(`\newenvironment{centered}{\displaystyle}{}\begin{centered}x\end{centered}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventBeginGroup, GroupKind: GroupNormal},
		{Kind: EventStyle, StyleVariant: "displaystyle"},
		{Kind: EventContent, Class: ClassIdentifier, Text: "x"},
		{Kind: EventEndGroup},
	})
}

func (s *ParserSuite) TestNotModifier(c *C) {
	p := NewParser(`\not=`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassOperator, Atom: AtomRel, Text: "=", Negated: true},
	})
}

func (s *ParserSuite) TestSizingDelimiter(c *C) {
	p := NewParser(`\bigl(`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassOperator, Atom: AtomOpen, Text: "(", Size: "bigl"},
	})
}

func (s *ParserSuite) TestRule(c *C) {
	p := NewParser(`\rule{2pt}{3pt}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventVisual, Visual: VisualRule,
			RuleWidth: Dimension{Value: 2, Unit: "pt"}, RuleHeight: Dimension{Value: 3, Unit: "pt"}},
	})
}

func (s *ParserSuite) TestTextVerbatim(c *C) {
	p := NewParser(`\text{a+b}`, DefaultConfig())
	got, err := drain(p)
	c.Assert(err, IsNil)
	checkEvents(c, got, []Event{
		{Kind: EventContent, Class: ClassString, Text: "a+b"},
	})
}

func (s *ParserSuite) TestUnknownEnvironmentIsAnError(c *C) {
	p := NewParser(`\begin{nosuch}x\end{nosuch}`, DefaultConfig())
	_, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, UnknownEnvironment)
}

func (s *ParserSuite) TestErrorInsideEnvironmentCarriesEnvironmentFrame(c *C) {
	p := NewParser(`\begin{pmatrix}a_x_y\end{pmatrix}`, DefaultConfig())
	_, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, DoubleScript)
	c.Assert(err.Trace, HasLen, 1)
	c.Check(err.Trace[0].Name, Equals, "pmatrix")
}

func (s *ParserSuite) TestStrayAlignmentIsAnError(c *C) {
	p := NewParser(`a&b`, DefaultConfig())
	_, err := drain(p)
	c.Assert(err, NotNil)
	c.Check(err.Kind, Equals, StrayAlignment)
}
