// Package manifest handles loading and validation of tool manifests.
// Manifests are JSONC files (JSON with // and /* */ comments) describing a
// tool's repository, dependencies, and named action groups. Parsing strips
// comments with string-literal awareness, decodes strict JSON, and enforces
// the structural invariants the executor relies on (required repo name, at
// least one action group, unique seq-id per group). Schema validation against
// the embedded JSON Schema is available separately for diagnostics.
package manifest
