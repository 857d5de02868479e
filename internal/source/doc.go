// Package source locates tool manifests across an ordered list of configured
// sources. A source is a local directory, a git repository, or a plain URL;
// sources are consulted in configuration order and the first one that yields
// a manifest file wins, so resolution is deterministic regardless of which
// remote sources happen to be reachable. Git and URL sources materialize
// their manifests into a per-source cache directory guarded by a file lock.
package source
