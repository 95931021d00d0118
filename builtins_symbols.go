package texmath

// symbolSpec is a compact literal used by registerSymbols below, kept in
// one table rather than one init() per entry since there are dozens of
// these and they share identical registration logic — the same shape the
// teacher uses for TokenSymbols/TokenKeywords (lexer.go) and for
// builtinFilters (filters_builtin.go).
type symbolSpec struct {
	name  string
	text  string
	class AtomClass
	mov   bool
}

func registerSymbols(specs []symbolSpec) {
	for _, s := range specs {
		mustRegisterBuiltin(&builtinEntry{
			Name:          s.name,
			Kind:          builtinSymbol,
			Class:         s.class,
			Text:          s.text,
			MovableLimits: s.mov,
		})
	}
}

func init() {
	registerSymbols(greekLetters)
	registerSymbols(relationSymbols)
	registerSymbols(binarySymbols)
	registerSymbols(largeOperatorSymbols)
	registerSymbols(openDelimiters)
	registerSymbols(closeDelimiters)
	registerSymbols(punctuationSymbols)
	registerSymbols(ordinarySymbols)
}

var greekLetters = []symbolSpec{
	{"alpha", "α", AtomOrd, false}, {"beta", "β", AtomOrd, false},
	{"gamma", "γ", AtomOrd, false}, {"delta", "δ", AtomOrd, false},
	{"epsilon", "ε", AtomOrd, false}, {"varepsilon", "ε", AtomOrd, false},
	{"zeta", "ζ", AtomOrd, false}, {"eta", "η", AtomOrd, false},
	{"theta", "θ", AtomOrd, false}, {"vartheta", "ϑ", AtomOrd, false},
	{"iota", "ι", AtomOrd, false}, {"kappa", "κ", AtomOrd, false},
	{"lambda", "λ", AtomOrd, false}, {"mu", "μ", AtomOrd, false},
	{"nu", "ν", AtomOrd, false}, {"xi", "ξ", AtomOrd, false},
	{"pi", "π", AtomOrd, false}, {"varpi", "ϖ", AtomOrd, false},
	{"rho", "ρ", AtomOrd, false}, {"varrho", "ϱ", AtomOrd, false},
	{"sigma", "σ", AtomOrd, false}, {"varsigma", "ς", AtomOrd, false},
	{"tau", "τ", AtomOrd, false}, {"upsilon", "υ", AtomOrd, false},
	{"phi", "φ", AtomOrd, false}, {"varphi", "ϕ", AtomOrd, false},
	{"chi", "χ", AtomOrd, false}, {"psi", "ψ", AtomOrd, false},
	{"omega", "ω", AtomOrd, false},
	{"Gamma", "Γ", AtomOrd, false}, {"Delta", "Δ", AtomOrd, false},
	{"Theta", "Θ", AtomOrd, false}, {"Lambda", "Λ", AtomOrd, false},
	{"Xi", "Ξ", AtomOrd, false}, {"Pi", "Π", AtomOrd, false},
	{"Sigma", "Σ", AtomOrd, false}, {"Upsilon", "Υ", AtomOrd, false},
	{"Phi", "Φ", AtomOrd, false}, {"Psi", "Ψ", AtomOrd, false},
	{"Omega", "Ω", AtomOrd, false},
}

var relationSymbols = []symbolSpec{
	{"leq", "≤", AtomRel, false}, {"geq", "≥", AtomRel, false},
	{"neq", "≠", AtomRel, false}, {"equiv", "≡", AtomRel, false},
	{"sim", "∼", AtomRel, false}, {"simeq", "≃", AtomRel, false},
	{"approx", "≈", AtomRel, false}, {"cong", "≅", AtomRel, false},
	{"propto", "∝", AtomRel, false}, {"subset", "⊂", AtomRel, false},
	{"supset", "⊃", AtomRel, false}, {"subseteq", "⊆", AtomRel, false},
	{"supseteq", "⊇", AtomRel, false}, {"in", "∈", AtomRel, false},
	{"ni", "∋", AtomRel, false}, {"notin", "∉", AtomRel, false},
	{"parallel", "∥", AtomRel, false}, {"perp", "⊥", AtomRel, false},
	{"mid", "∣", AtomRel, false}, {"to", "→", AtomRel, false},
	{"gets", "←", AtomRel, false}, {"mapsto", "↦", AtomRel, false},
	{"iff", "⟺", AtomRel, false}, {"implies", "⟹", AtomRel, false},
}

var binarySymbols = []symbolSpec{
	{"pm", "±", AtomBin, false}, {"mp", "∓", AtomBin, false},
	{"times", "×", AtomBin, false}, {"div", "÷", AtomBin, false},
	{"cdot", "⋅", AtomBin, false}, {"ast", "∗", AtomBin, false},
	{"star", "⋆", AtomBin, false}, {"circ", "∘", AtomBin, false},
	{"bullet", "∙", AtomBin, false}, {"oplus", "⊕", AtomBin, false},
	{"ominus", "⊖", AtomBin, false}, {"otimes", "⊗", AtomBin, false},
	{"oslash", "⊘", AtomBin, false}, {"odot", "⊙", AtomBin, false},
	{"wedge", "∧", AtomBin, false}, {"vee", "∨", AtomBin, false},
	{"cap", "∩", AtomBin, false}, {"cup", "∪", AtomBin, false},
	{"setminus", "∖", AtomBin, false},
}

// largeOperatorSymbols carries movable_limits derived from the command
// name (§4.4.2), true for the classic "takes limits above/below in
// display mode" operators.
var largeOperatorSymbols = []symbolSpec{
	{"sum", "∑", AtomLargeOp, true}, {"prod", "∏", AtomLargeOp, true},
	{"coprod", "∐", AtomLargeOp, true}, {"bigcup", "⋃", AtomLargeOp, true},
	{"bigcap", "⋂", AtomLargeOp, true}, {"bigvee", "⋁", AtomLargeOp, true},
	{"bigwedge", "⋀", AtomLargeOp, true}, {"bigoplus", "⨁", AtomLargeOp, true},
	{"bigotimes", "⨂", AtomLargeOp, true}, {"biguplus", "⨄", AtomLargeOp, true},
	{"int", "∫", AtomLargeOp, false}, {"iint", "∬", AtomLargeOp, false},
	{"iiint", "∭", AtomLargeOp, false}, {"oint", "∮", AtomLargeOp, false},
	{"lim", "lim", AtomOp, true}, {"limsup", "lim sup", AtomOp, true},
	{"liminf", "lim inf", AtomOp, true}, {"max", "max", AtomOp, true},
	{"min", "min", AtomOp, true}, {"sup", "sup", AtomOp, true},
	{"inf", "inf", AtomOp, true}, {"det", "det", AtomOp, false},
	{"gcd", "gcd", AtomOp, true},
}

var openDelimiters = []symbolSpec{
	{"langle", "⟨", AtomOpen, false}, {"lceil", "⌈", AtomOpen, false},
	{"lfloor", "⌊", AtomOpen, false}, {"lbrace", "{", AtomOpen, false},
	{"lbrack", "[", AtomOpen, false},
}

var closeDelimiters = []symbolSpec{
	{"rangle", "⟩", AtomClose, false}, {"rceil", "⌉", AtomClose, false},
	{"rfloor", "⌋", AtomClose, false}, {"rbrace", "}", AtomClose, false},
	{"rbrack", "]", AtomClose, false},
}

var punctuationSymbols = []symbolSpec{
	{"colon", ":", AtomPunct, false}, {"ldots", "…", AtomPunct, false},
	{"cdots", "⋯", AtomPunct, false}, {"vdots", "⋮", AtomPunct, false},
	{"ddots", "⋱", AtomPunct, false},
}

var ordinarySymbols = []symbolSpec{
	{"infty", "∞", AtomOrd, false}, {"partial", "∂", AtomOrd, false},
	{"nabla", "∇", AtomOrd, false}, {"emptyset", "∅", AtomOrd, false},
	{"forall", "∀", AtomOrd, false}, {"exists", "∃", AtomOrd, false},
	{"neg", "¬", AtomOrd, false}, {"ell", "ℓ", AtomOrd, false},
	{"hbar", "ℏ", AtomOrd, false}, {"Re", "ℜ", AtomOrd, false},
	{"Im", "ℑ", AtomOrd, false}, {"aleph", "ℵ", AtomOrd, false},
	{"prime", "′", AtomOrd, false},
}
