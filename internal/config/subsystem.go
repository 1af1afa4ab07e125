package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/lang-tools/zls-core/internal/protocol"
)

// buildFileGlobs are the patterns whose presence in the document store's
// cache key off the toolchain path (§4.5: "if the toolchain executable
// path changed the document store's build-file cache is invalidated").
var buildFileGlobs = []string{"**/build.zig", "**/build.zig.zon"}

// IsBuildFile reports whether path matches one of the build-file glob
// patterns the configuration subsystem watches for cache invalidation.
func IsBuildFile(path string) bool {
	for _, pattern := range buildFileGlobs {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Discover finds the closest directory config file starting from dir and
// walking up the filesystem, grounded on the teacher's cascading
// discovery (internal/config/config.go's Discover), adapted to this
// package's config file names.
func Discover(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(abs, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

func envKeyTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(s)
}

// LoadAmbient builds the base configuration layer: built-in defaults,
// overlaid by an optional directory config file, overlaid by ZLS_*
// environment variables (spec.md §4.5's ambient layer beneath the LSP
// pull/push overlay, grounded on the teacher's koanf pipeline in
// internal/config/config.go and overrides.go).
func LoadAmbient(workspaceDir string) (*Config, error) {
	return LoadAmbientWithOverrides(workspaceDir, nil)
}

// LoadAmbientWithOverrides is LoadAmbient plus a final, highest-precedence
// layer of construction-time overrides (spec.md §6's "construction
// parameters" — here, CLI `--set <option>=<value>` flags), merged with
// confmap.Provider the same way the teacher's configutil.Resolve merges
// per-rule option maps over defaults.
func LoadAmbientWithOverrides(workspaceDir string, overrides map[string]any) (*Config, error) {
	configPath := Discover(workspaceDir)

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = configPath
	return cfg, nil
}

// Subsystem owns the live Config and applies the pull/push coercion rules
// from spec.md §4.5. It is held by the Server aggregate; mutation happens
// only through Apply* methods, which are not safe for concurrent use
// (the core is single-threaded cooperative per spec.md §5).
type Subsystem struct {
	cfg *Config
	log *logrus.Logger

	// Recording disables the pull path; Replay disables the push path,
	// keeping a recorded session deterministic on replay (§4.5).
	Recording bool
	Replay    bool

	// OnBuildToolchainChanged is invoked whenever ZigExePath changes,
	// letting the document store invalidate its build-file cache.
	OnBuildToolchainChanged func()
}

// NewSubsystem wraps an already-loaded Config.
func NewSubsystem(cfg *Config, log *logrus.Logger) *Subsystem {
	return &Subsystem{cfg: cfg, log: log}
}

// Config returns the live configuration. Callers must not retain the
// pointer past the next Apply* call.
func (s *Subsystem) Config() *Config { return s.cfg }

// BuildPullParams enumerates every known option under the zls.<name>
// prefix, for a workspace/configuration request (§4.5 pull model).
func (s *Subsystem) BuildPullParams() *protocol.ConfigurationParams {
	names := Names()
	items := make([]protocol.ConfigurationItem, len(names))
	for i, name := range names {
		section := OptionPrefix + name
		items[i] = protocol.ConfigurationItem{Section: &section}
	}
	return &protocol.ConfigurationParams{Items: items}
}

// ApplyPullResult coerces the client's ordered response array (matching
// the pull request's item order) into the live config, one value per
// known option, and returns every coercion warning encountered.
func (s *Subsystem) ApplyPullResult(values []any) []Warning {
	if s.Recording {
		return nil
	}
	names := Names()
	var warnings []Warning
	zigExeBefore := s.cfg.ZigExePath

	for i, name := range names {
		if i >= len(values) {
			break
		}
		if w := Coerce(s.cfg, name, values[i]); w != nil {
			logWarning(s.log, *w)
			warnings = append(warnings, *w)
		}
	}

	s.afterApply(zigExeBefore)
	return warnings
}

// ApplyPush parses a workspace/didChangeConfiguration settings payload:
// its "zls" sub-object if present, else the whole payload, as a full
// override (§4.5 push model).
func (s *Subsystem) ApplyPush(settings any) []Warning {
	if s.Replay {
		return nil
	}
	if settings == nil {
		return nil
	}
	obj, ok := settings.(map[string]any)
	if !ok {
		return nil
	}
	if nested, ok := obj["zls"].(map[string]any); ok {
		obj = nested
	}

	zigExeBefore := s.cfg.ZigExePath
	var warnings []Warning
	for name, raw := range obj {
		if w := Coerce(s.cfg, name, raw); w != nil {
			logWarning(s.log, *w)
			warnings = append(warnings, *w)
		}
	}

	s.afterApply(zigExeBefore)
	return warnings
}

// afterApply runs the configChanged hook (§4.5): invalidate the
// build-file cache when the toolchain path moved.
func (s *Subsystem) afterApply(zigExeBefore string) {
	if s.cfg.ZigExePath != zigExeBefore && s.OnBuildToolchainChanged != nil {
		s.OnBuildToolchainChanged()
	}
}
