package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPullParamsEnumeratesEveryOption(t *testing.T) {
	sub := NewSubsystem(Default(), nil)
	params := sub.BuildPullParams()

	require.Len(t, params.Items, len(Names()))
	for i, name := range Names() {
		require.NotNil(t, params.Items[i].Section)
		assert.Equal(t, OptionPrefix+name, *params.Items[i].Section)
	}
}

func TestApplyPullResultCoercesInOrderAndInvalidatesBuildCache(t *testing.T) {
	sub := NewSubsystem(Default(), nil)
	invalidated := false
	sub.OnBuildToolchainChanged = func() { invalidated = true }

	values := make([]any, len(Names()))
	for i, name := range Names() {
		if name == "zig_exe_path" {
			values[i] = "/opt/zig/zig"
		} else {
			v, _ := sub.Config().Get(name)
			values[i] = v
		}
	}

	warnings := sub.ApplyPullResult(values)
	// The two build-runner paths default to "" and string options reject
	// empty values, so feeding the defaults back warns for exactly those two.
	require.Len(t, warnings, 2)
	assert.Equal(t, "build_runner_path", warnings[0].Option)
	assert.Equal(t, "build_runner_global_cache_path", warnings[1].Option)
	assert.Equal(t, "/opt/zig/zig", sub.Config().ZigExePath)
	assert.True(t, invalidated)
}

func TestApplyPullResultSkippedWhileRecording(t *testing.T) {
	sub := NewSubsystem(Default(), nil)
	sub.Recording = true

	values := make([]any, len(Names()))
	for i := range values {
		values[i] = "/opt/zig/zig"
	}
	warnings := sub.ApplyPullResult(values)
	assert.Nil(t, warnings)
	assert.Empty(t, sub.Config().ZigExePath)
}

func TestApplyPushUnwrapsZlsSubObject(t *testing.T) {
	sub := NewSubsystem(Default(), nil)

	warnings := sub.ApplyPush(map[string]any{
		"zls": map[string]any{
			"warn_style": true,
		},
		"unrelated": map[string]any{"ignored": true},
	})

	assert.Empty(t, warnings)
	assert.True(t, sub.Config().WarnStyle)
}

func TestApplyPushFallsBackToWholeSettingsValue(t *testing.T) {
	sub := NewSubsystem(Default(), nil)

	warnings := sub.ApplyPush(map[string]any{
		"warn_style": true,
	})

	assert.Empty(t, warnings)
	assert.True(t, sub.Config().WarnStyle)
}

func TestApplyPushSkippedDuringReplay(t *testing.T) {
	sub := NewSubsystem(Default(), nil)
	sub.Replay = true

	warnings := sub.ApplyPush(map[string]any{"warn_style": true})
	assert.Nil(t, warnings)
	assert.False(t, sub.Config().WarnStyle)
}
