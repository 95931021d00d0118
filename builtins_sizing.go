package texmath

// sizingDelimiters are the matched-delimiter sizing commands from
// SPEC_FULL's supplemented features: \big, \Big, \bigg, \Bigg and their
// l/r variants, the standard companion to \left/\right sized delimiters.
var sizingDelimiters = []string{
	"big", "Big", "bigg", "Bigg",
	"bigl", "Bigl", "biggl", "Biggl",
	"bigr", "Bigr", "biggr", "Biggr",
	"bigm", "Bigm", "biggm", "Biggm",
}

func init() {
	for _, name := range sizingDelimiters {
		mustRegisterBuiltin(&builtinEntry{Name: name, Kind: builtinSizingDelimiter})
	}
	mustRegisterBuiltin(&builtinEntry{Name: "not", Kind: builtinNotModifier})
}
