package texmath

// literalEscapes are single-character control sequences that stand for a
// literal symbol rather than invoking the active-character behavior of
// the bare character (e.g. "\_" is a literal underscore; a bare '_' is
// the subscript active character instead).
var literalEscapes = []symbolSpec{
	{"{", "{", AtomOpen, false}, {"}", "}", AtomClose, false},
	{"$", "$", AtomOrd, false}, {"%", "%", AtomOrd, false},
	{"#", "#", AtomOrd, false}, {"&", "&", AtomOrd, false},
	{"_", "_", AtomOrd, false}, {"^", "^", AtomOrd, false},
	{"~", "~", AtomOrd, false},
}

// spaceCommandSpec maps a spacing control sequence to a fixed em-width,
// per the classic TeX math-spacing ladder.
type spaceCommandSpec struct {
	name string
	em   float64
}

var spaceCommands = []spaceCommandSpec{
	{",", 3.0 / 18.0},
	{":", 4.0 / 18.0},
	{">", 4.0 / 18.0},
	{";", 5.0 / 18.0},
	{"!", -3.0 / 18.0},
	{"quad", 1.0},
	{"qquad", 2.0},
}

func init() {
	registerSymbols(literalEscapes)
	for _, s := range spaceCommands {
		mustRegisterBuiltin(&builtinEntry{
			Name:         s.name,
			Kind:         builtinSpaceCommand,
			StyleVariant: "", // unused
		})
		spaceWidths[s.name] = s.em
	}
}

// spaceWidths maps a space-command name to its width in em, read by the
// parser when it emits the corresponding Space event.
var spaceWidths = make(map[string]float64)
