package texmath

// structuralBinaryNames lists \frac and its amsmath-style relatives
// (§4.4.2 "Structural binary"). All share the same two-children handling
// in the event generator; only the default line thickness (and, for
// \binom, the implied delimiters) differ, which the parser reads off the
// name at dispatch time rather than storing here.
var structuralBinaryNames = []string{"frac", "binom", "tfrac", "dfrac", "cfrac"}

func init() {
	for _, name := range structuralBinaryNames {
		mustRegisterBuiltin(&builtinEntry{Name: name, Kind: builtinStructuralBinary})
	}

	mustRegisterBuiltin(&builtinEntry{Name: "sqrt", Kind: builtinRadical})

	mustRegisterBuiltin(&builtinEntry{Name: "left", Kind: builtinDelimitedLeft})
	mustRegisterBuiltin(&builtinEntry{Name: "right", Kind: builtinDelimitedRight})

	mustRegisterBuiltin(&builtinEntry{Name: "begin", Kind: builtinEnvironmentBegin})
	mustRegisterBuiltin(&builtinEntry{Name: "end", Kind: builtinEnvironmentEnd})

	mustRegisterBuiltin(&builtinEntry{Name: "limits", Kind: builtinLimitDirective})
	mustRegisterBuiltin(&builtinEntry{Name: "nolimits", Kind: builtinLimitDirective})

	mustRegisterBuiltin(&builtinEntry{Name: "text", Kind: builtinTextEscape})
	mustRegisterBuiltin(&builtinEntry{Name: "mbox", Kind: builtinTextEscape})

	for _, name := range []string{"def", "newcommand", "renewcommand"} {
		mustRegisterBuiltin(&builtinEntry{Name: name, Kind: builtinMacroDefiner})
	}
	for _, name := range []string{"newenvironment", "renewenvironment"} {
		mustRegisterBuiltin(&builtinEntry{Name: name, Kind: builtinEnvironmentDefiner})
	}

	mustRegisterBuiltin(&builtinEntry{Name: "hline", Kind: builtinFlowMarker, FlowKind: FlowStartLines})
	mustRegisterBuiltin(&builtinEntry{Name: "hdashline", Kind: builtinFlowMarker, FlowKind: FlowStartLines})
	mustRegisterBuiltin(&builtinEntry{Name: "cr", Kind: builtinFlowMarker, FlowKind: FlowNewLine})

	mustRegisterBuiltin(&builtinEntry{Name: "choose", Kind: builtinInfixBinary})
}
