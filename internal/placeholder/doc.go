// Package placeholder resolves [[dotted.path]] tokens in command templates
// against a read-only context built from the tool manifest and the resolved
// default settings. A context leaf is either a single string or an ordered
// fallback list; fallback lists resolve to the first usable candidate and
// default to the last one, so rendering always terminates with some value
// unless the path itself is unknown.
package placeholder
