package texmath

type accentSpec struct {
	name     string
	char     rune
	stretchy bool
}

var accentCommands = []accentSpec{
	{"hat", '̂', false}, {"widehat", '̂', true},
	{"bar", '̄', false}, {"overline", '̅', true},
	{"vec", '⃗', false}, {"dot", '̇', false},
	{"ddot", '̈', false}, {"tilde", '̃', false},
	{"widetilde", '̃', true}, {"breve", '̆', false},
	{"check", '̌', false}, {"acute", '́', false},
	{"grave", '̀', false},
}

type underoverSpec struct {
	name string
	char rune
	over bool
}

var underoverCommands = []underoverSpec{
	{"overbrace", '⏞', true}, {"underbrace", '⏟', false},
	{"overbracket", '⎴', true}, {"underbracket", '⎵', false},
}

func init() {
	for _, a := range accentCommands {
		mustRegisterBuiltin(&builtinEntry{Name: a.name, Kind: builtinAccent, Accent: true, Stretchy: a.stretchy, AccentChar: a.char})
	}
	for _, u := range underoverCommands {
		mustRegisterBuiltin(&builtinEntry{Name: u.name, Kind: builtinUnderover, AccentChar: u.char, Over: u.over})
	}

	mustRegisterBuiltin(&builtinEntry{Name: "rule", Kind: builtinVisual, Visual: VisualRule})
	mustRegisterBuiltin(&builtinEntry{Name: "boxed", Kind: builtinVisual, Visual: VisualBoxed, TakesArgument: true})
	mustRegisterBuiltin(&builtinEntry{Name: "phantom", Kind: builtinVisual, Visual: VisualPhantom, Phantom: PhantomFull, TakesArgument: true})
	mustRegisterBuiltin(&builtinEntry{Name: "hphantom", Kind: builtinVisual, Visual: VisualPhantom, Phantom: PhantomHorizontal, TakesArgument: true})
	mustRegisterBuiltin(&builtinEntry{Name: "vphantom", Kind: builtinVisual, Visual: VisualPhantom, Phantom: PhantomVertical, TakesArgument: true})
}
