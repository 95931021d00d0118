package texmath

import (
	"github.com/google/go-cmp/cmp"
	. "gopkg.in/check.v1"
)

type ConfigSuite struct{}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) TestConfigRoundTripsThroughYAML(c *C) {
	cfg := DefaultConfig()
	cfg.DisplayMode = Display
	cfg.MaxExpansionDepth = 42

	data, err := MarshalConfig(cfg)
	c.Assert(err, IsNil)

	got, err := UnmarshalConfig(data)
	c.Assert(err, IsNil)
	if diff := cmp.Diff(cfg, got); diff != "" {
		c.Fatalf("config round-trip mismatch:\n%s", diff)
	}
}

func (s *ConfigSuite) TestUnmarshalConfigRejectsMalformedYAML(c *C) {
	_, err := UnmarshalConfig([]byte("display_mode: [not, a, scalar]"))
	c.Assert(err, NotNil)
}
