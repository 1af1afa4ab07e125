package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceString(t *testing.T) {
	cfg := Default()

	assert.Nil(t, Coerce(cfg, "zig_exe_path", "  /usr/bin/zig  "))
	assert.Equal(t, "/usr/bin/zig", cfg.ZigExePath)

	w := Coerce(cfg, "zig_exe_path", "nil")
	assert.NotNil(t, w)
	assert.Equal(t, "/usr/bin/zig", cfg.ZigExePath, "rejection keeps the previous value")

	w = Coerce(cfg, "zig_exe_path", "")
	assert.NotNil(t, w)
	assert.Equal(t, "/usr/bin/zig", cfg.ZigExePath)
}

func TestCoerceBool(t *testing.T) {
	cfg := Default()

	assert.Nil(t, Coerce(cfg, "warn_style", true))
	assert.True(t, cfg.WarnStyle)

	w := Coerce(cfg, "warn_style", "true")
	assert.NotNil(t, w)
	assert.True(t, cfg.WarnStyle, "type mismatch keeps the existing value")
}

func TestCoerceIntRange(t *testing.T) {
	cfg := Default()

	assert.Nil(t, Coerce(cfg, "max_detail_length", float64(2048)))
	assert.Equal(t, 2048, cfg.MaxDetailLength)

	before := cfg.MaxDetailLength
	w := Coerce(cfg, "max_detail_length", float64(-1))
	assert.NotNil(t, w)
	assert.Equal(t, before, cfg.MaxDetailLength)

	w = Coerce(cfg, "max_detail_length", "2048")
	assert.NotNil(t, w)
}

func TestCoerceEnum(t *testing.T) {
	cfg := Default()

	assert.Nil(t, Coerce(cfg, "semantic_tokens", "partial"))
	assert.Equal(t, "partial", cfg.SemanticTokens)

	w := Coerce(cfg, "semantic_tokens", "bogus")
	assert.NotNil(t, w)
	assert.Equal(t, "partial", cfg.SemanticTokens)
}

func TestCoerceUnknownOption(t *testing.T) {
	cfg := Default()
	w := Coerce(cfg, "does_not_exist", "x")
	assert.NotNil(t, w)
}
