// Package textutil provides text helpers for fuzzy title matching and
// filename sanitization.
//
// Fingerprints are term-frequency vectors over lowercase alphanumeric tokens
// of three or more characters; cosine similarity between them ranks how close
// two short titles are. Sanitizing keeps user-supplied report names inside the
// reports directory.
package textutil
