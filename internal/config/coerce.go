package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Warning records a single coercion rejection (spec.md §4.5: "keep the
// previous value on rejection with a warning" / "any type mismatch keeps
// the existing value and emits a warning").
type Warning struct {
	Option string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s%s: %s", OptionPrefix, w.Option, w.Reason)
}

// Coerce validates raw against the option named name's declared static
// type and, on success, writes it into cfg. On rejection cfg is left
// unchanged and a Warning is returned (spec.md §4.5's five coercion
// rules, shared verbatim by the pull and push paths).
func Coerce(cfg *Config, name string, raw any) *Warning {
	d, ok := descriptorFor(name)
	if !ok {
		return &Warning{Option: name, Reason: "unknown option"}
	}

	switch d.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return &Warning{Option: name, Reason: "expected a string"}
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "nil" {
			return &Warning{Option: name, Reason: "empty or \"nil\" string rejected"}
		}
		d.set(cfg, s)
		return nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return &Warning{Option: name, Reason: "expected a boolean"}
		}
		d.set(cfg, b)
		return nil

	case KindInt:
		n, ok := asInt64(raw)
		if !ok {
			return &Warning{Option: name, Reason: "expected an integer"}
		}
		if d.HasRange && (n < d.IntMin || n > d.IntMax) {
			return &Warning{Option: name, Reason: fmt.Sprintf("out of range [%d,%d]", d.IntMin, d.IntMax)}
		}
		d.set(cfg, int(n))
		return nil

	case KindEnum:
		s, ok := raw.(string)
		if !ok {
			return &Warning{Option: name, Reason: "expected a string"}
		}
		found := false
		for _, v := range d.EnumValues {
			if v == s {
				found = true
				break
			}
		}
		if !found {
			return &Warning{Option: name, Reason: fmt.Sprintf("not one of %v", d.EnumValues)}
		}
		d.set(cfg, s)
		return nil

	default:
		return &Warning{Option: name, Reason: "unsupported option kind"}
	}
}

// asInt64 accepts the numeric shapes encoding/json/v2 decodes a JSON number
// into, matching "require a JSON integer" (§4.5) without rejecting a
// whole-valued float.
func asInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// logWarning reports a coercion rejection through the ambient logger,
// matching the teacher's structured-field logging convention.
func logWarning(log *logrus.Logger, w Warning) {
	if log == nil {
		return
	}
	log.WithField("option", OptionPrefix+w.Option).Warn(w.Reason)
}
