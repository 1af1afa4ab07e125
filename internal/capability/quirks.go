package capability

import (
	"strings"

	"github.com/lang-tools/zls-core/internal/protocol"
)

// quirk is one entry of the client-quirk registry design note §9 asks for,
// factored out of the teacher's inline clientInfo.name branches
// (internal/lspserver/diagnostic_mode.go shows the same init-options-wins
// pattern this registry generalizes).
type quirk struct {
	// namePredicate matches clientInfo.name; nil matches any client.
	namePredicate func(name string) bool
	// versionPredicate matches clientInfo.version when non-nil; a quirk
	// without one applies regardless of version.
	versionPredicate func(version string) bool
	override         func(snap Snapshot) Snapshot
}

func clientNamed(name string) func(string) bool {
	return func(n string) bool { return strings.EqualFold(n, name) }
}

// defaultQuirks seeds the registry with overrides for a couple of known
// editors, matching the shape (not the exact editors) of the overrides
// real zls-family servers carry: an editor known to mishandle
// source.fixAll gets it force-disabled; an editor known to handle large
// completion details gets a larger MaxDetailLength.
var defaultQuirks = []quirk{
	{
		namePredicate: clientNamed("legacy-editor"),
		override: func(snap Snapshot) Snapshot {
			snap.SupportsCodeActionFixAll = false
			return snap
		},
	},
	{
		namePredicate: clientNamed("Visual Studio Code"),
		override: func(snap Snapshot) Snapshot {
			snap.MaxDetailLength = 1 << 18
			return snap
		},
	},
}

// applyQuirks runs every matching registry entry over snap, in
// registration order, after capability-derived defaults have been applied
// — quirks always win over them. Initialization options are not seen here;
// the initialize handler reads them after Negotiate returns.
func applyQuirks(params *protocol.InitializeParams, snap Snapshot) Snapshot {
	if params == nil || params.ClientInfo == nil {
		return snap
	}
	name := params.ClientInfo.Name
	version := ""
	if params.ClientInfo.Version != nil {
		version = *params.ClientInfo.Version
	}
	for _, q := range defaultQuirks {
		if q.namePredicate != nil && !q.namePredicate(name) {
			continue
		}
		if q.versionPredicate != nil && !q.versionPredicate(version) {
			continue
		}
		snap = q.override(snap)
	}
	return snap
}
