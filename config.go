package texmath

import (
	jujuerrors "github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// DisplayMode selects the movable-limits default for large operators
// (§6, "display_mode").
type DisplayMode int

const (
	// Inline is the default: large operators without an explicit
	// \limits/\nolimits take their limits as ordinary sub/superscripts.
	Inline DisplayMode = iota
	// Display switches the default so movable-limits operators place
	// their scripts above/below instead.
	Display
)

func (m DisplayMode) String() string {
	if m == Display {
		return "display"
	}
	return "inline"
}

// Config bundles the enumerated construction options from §6. Zero value
// is not valid configuration; use DefaultConfig and override fields.
//
// The yaml tags let a caller round-trip a saved configuration through
// gopkg.in/yaml.v2, mirroring how the rest of the example pack externalizes
// run configuration rather than hard-coding it.
type Config struct {
	AllowSuffixModifiers bool        `yaml:"allow_suffix_modifiers"`
	MaxExpansionDepth    int         `yaml:"max_expansion_depth"`
	DisplayMode          DisplayMode `yaml:"display_mode"`
	StrictScripts        bool        `yaml:"strict_scripts"`
}

// defaultMaxExpansionDepth is the recommended bound from §4.3.
const defaultMaxExpansionDepth = 256

// DefaultConfig returns the configuration spec.md §6 names as defaults.
func DefaultConfig() Config {
	return Config{
		AllowSuffixModifiers: true,
		MaxExpansionDepth:    defaultMaxExpansionDepth,
		DisplayMode:          Inline,
		StrictScripts:        true,
	}
}

// MarshalConfig serializes cfg through its yaml tags, so a caller can
// persist a configuration between runs instead of rebuilding it from
// flags each time.
func MarshalConfig(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, jujuerrors.Annotate(err, "marshal config")
	}
	return data, nil
}

// UnmarshalConfig restores a Config previously written by MarshalConfig.
// Fields absent from data keep Config's zero value, not DefaultConfig's;
// callers that want defaults-plus-overrides should start from
// DefaultConfig and unmarshal over it with yaml.Unmarshal directly.
func UnmarshalConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, jujuerrors.Annotate(err, "unmarshal config")
	}
	return cfg, nil
}
