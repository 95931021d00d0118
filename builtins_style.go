package texmath

// fontVariants registers the \mathXX family named in SPEC_FULL's
// "Supplemented features": spec.md names only \mathbf, the rest are the
// same Style{variant} emitter completing that family.
var fontVariants = []string{"mathbf", "mathrm", "mathit", "mathbb", "mathfrak", "mathcal"}

// displayStyles switch the current display/size style mid-formula,
// complementing the display_mode construction option (§6).
var displayStyles = []string{"displaystyle", "textstyle", "scriptstyle", "scriptscriptstyle"}

func init() {
	for _, name := range fontVariants {
		mustRegisterBuiltin(&builtinEntry{Name: name, Kind: builtinStyle, StyleVariant: name, TakesArgument: true})
	}
	for _, name := range displayStyles {
		mustRegisterBuiltin(&builtinEntry{Name: name, Kind: builtinStyle, StyleVariant: name, TakesArgument: false})
	}
	mustRegisterBuiltin(&builtinEntry{Name: "color", Kind: builtinColor, TakesArgument: true})
}
