// Package settings loads the process-wide configuration: the ordered list of
// manifest sources and the workspace directories (manifests, installed
// tools, source cache). Settings are resolved once at invocation start into
// an immutable struct that is threaded by reference into the resolver and
// executor; there is no ambient singleton. Directory defaults follow the
// XDG_CONFIG_HOME -> HOME -> XDG_DATA_HOME fallback order with a final
// CWD-relative candidate, so the tool works even with no environment
// configured.
package settings
