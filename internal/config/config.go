// Package config implements the configuration subsystem from spec.md §4.5:
// a flat record of typed options, a descriptor table derived once from the
// struct's own tags, and the ambient layered loading (defaults, file, env)
// beneath the LSP-level pull/push overlay.
//
// The descriptor table replaces the teacher's hand-written per-field
// accessor glue (internal/config/rules.go's Get/Set/namespaceMap switch
// statements) with a single reflect pass over Config's struct tags (design
// note §9, "Compile-time configuration reflection": Go has field-level
// reflection, so the option vector is derived directly from the struct
// instead of hand-maintained in parallel).
package config

import (
	"reflect"
	"strconv"
	"strings"
)

// OptionKind is the static type of a single configuration option.
type OptionKind int

const (
	KindString OptionKind = iota
	KindBool
	KindInt
	KindEnum
)

// OptionPrefix is the key prefix every option is namespaced under on the
// wire, in both workspace/configuration pull items and the
// workspace/didChangeConfiguration push payload (spec.md §6).
const OptionPrefix = "zls."

// EnvPrefix is the prefix environment variables use for the ambient base
// layer (ZLS_ZIG_EXE_PATH -> zig_exe_path, etc).
const EnvPrefix = "ZLS_"

// ConfigFileNames are the directory config file names searched for, in
// priority order, grounded on the teacher's cascading-discovery config
// file list (internal/config/config.go's ConfigFileNames).
var ConfigFileNames = []string{".zls.toml", "zls.toml"}

// Config is the effective configuration: a flat set of named typed options
// (spec.md §3). Field order here is the order workspace/configuration pull
// items are enumerated in, and the order options appear in a directory
// config file.
type Config struct {
	ZigExePath                 string `zls:"zig_exe_path" koanf:"zig_exe_path"`
	BuildRunnerPath            string `zls:"build_runner_path" koanf:"build_runner_path"`
	BuildRunnerGlobalCachePath string `zls:"build_runner_global_cache_path" koanf:"build_runner_global_cache_path"`

	EnableSnippets                 bool `zls:"enable_snippets" koanf:"enable_snippets"`
	EnableArgumentPlaceholders     bool `zls:"enable_argument_placeholders" koanf:"enable_argument_placeholders"`
	EnableBuildOnSave              bool `zls:"enable_build_on_save" koanf:"enable_build_on_save"`
	EnableAutofix                  bool `zls:"enable_autofix" koanf:"enable_autofix"`
	WarnStyle                      bool `zls:"warn_style" koanf:"warn_style"`
	HighlightGlobalVarDeclarations bool `zls:"highlight_global_var_declarations" koanf:"highlight_global_var_declarations"`
	SkipStdReferences              bool `zls:"skip_std_references" koanf:"skip_std_references"`

	PreferredMemoryLayout string `zls:"preferred_memory_layout" zlsenum:"autodetect,c,zig" koanf:"preferred_memory_layout"`
	SemanticTokens        string `zls:"semantic_tokens" zlsenum:"full,partial,none" koanf:"semantic_tokens"`
	MessageTraceLevel     string `zls:"message_trace_level" zlsenum:"off,messages,verbose" koanf:"message_trace_level"`

	MaxDetailLength int `zls:"max_detail_length" zlsrange:"0,1048576" koanf:"max_detail_length"`

	// ConfigFile is metadata recording which directory config file (if any)
	// contributed to the ambient base layer. Not itself a wire option.
	ConfigFile string `koanf:"-"`
}

// Default returns the built-in configuration, the lowest-precedence layer
// of both the ambient load and the LSP overlay.
func Default() *Config {
	return &Config{
		EnableSnippets:        true,
		EnableAutofix:         true,
		PreferredMemoryLayout: "autodetect",
		SemanticTokens:        "full",
		MessageTraceLevel:     "off",
		MaxDetailLength:       1 << 16,
	}
}

// optionDescriptor describes one Config field: its wire name, static kind,
// and generic accessors built once via reflection over the zero value's
// type.
type optionDescriptor struct {
	Name       string
	Kind       OptionKind
	EnumValues []string
	IntMin     int64
	IntMax     int64
	HasRange   bool

	get func(cfg *Config) any
	set func(cfg *Config, v any)
}

var descriptors = buildDescriptors()

func buildDescriptors() []optionDescriptor {
	t := reflect.TypeOf(Config{})
	out := make([]optionDescriptor, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := field.Tag.Lookup("zls")
		if !ok {
			continue
		}
		idx := i
		desc := optionDescriptor{Name: name}

		if enumTag, ok := field.Tag.Lookup("zlsenum"); ok {
			desc.Kind = KindEnum
			desc.EnumValues = strings.Split(enumTag, ",")
		} else {
			switch field.Type.Kind() {
			case reflect.String:
				desc.Kind = KindString
			case reflect.Bool:
				desc.Kind = KindBool
			case reflect.Int, reflect.Int32, reflect.Int64:
				desc.Kind = KindInt
			default:
				continue
			}
		}

		if rangeTag, ok := field.Tag.Lookup("zlsrange"); ok {
			parts := strings.SplitN(rangeTag, ",", 2)
			if len(parts) == 2 {
				minV, err1 := strconv.ParseInt(parts[0], 10, 64)
				maxV, err2 := strconv.ParseInt(parts[1], 10, 64)
				if err1 == nil && err2 == nil {
					desc.IntMin, desc.IntMax, desc.HasRange = minV, maxV, true
				}
			}
		}

		desc.get = func(cfg *Config) any {
			return reflect.ValueOf(cfg).Elem().Field(idx).Interface()
		}
		desc.set = func(cfg *Config, v any) {
			reflect.ValueOf(cfg).Elem().Field(idx).Set(reflect.ValueOf(v))
		}

		out = append(out, desc)
	}
	return out
}

// Names returns every known option's bare name (without OptionPrefix), in
// declaration order.
func Names() []string {
	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.Name
	}
	return names
}

func descriptorFor(name string) (optionDescriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return optionDescriptor{}, false
}

// Get returns the current value of a named option and whether it exists.
func (c *Config) Get(name string) (any, bool) {
	d, ok := descriptorFor(name)
	if !ok {
		return nil, false
	}
	return d.get(c), true
}
