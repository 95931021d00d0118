// A macro-aware streaming parser for LaTeX math notation.
//
// texmath tokenizes LaTeX math source, expands user and built-in macros
// lazily, and emits a flat sequence of semantic rendering events suitable
// for driving a MathML (or equivalent) writer. It is a pull parser: the
// caller drives iteration by calling Next on a *Parser, receiving one
// Event or Error per call.
//
// A tiny example:
//
//	p := texmath.NewParser(`a_i^2`, texmath.DefaultConfig())
//	for {
//	    ev, err := p.Next()
//	    if err != nil {
//	        panic(err)
//	    }
//	    if ev.Kind == texmath.EventEOF {
//	        break
//	    }
//	    fmt.Println(ev)
//	}
//
// The package does not typeset prose, compute line breaks, or serialize to
// MathML itself; it produces the event stream a downstream writer consumes.
package texmath
