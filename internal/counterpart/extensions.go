// Package counterpart pairs C-family source files with their headers and back.
package counterpart

import "slices"

// CandidateSet is an ordered list of extensions, each with its leading dot.
// Order matters: it decides which workspace hit wins.
type CandidateSet []string

var (
	headerExtensions = CandidateSet{".h", ".hpp", ".hh", ".hxx"}
	sourceExtensions = CandidateSet{".cpp", ".c", ".cc", ".cxx", ".m", ".mm"}
)

// HeaderExtensions returns a copy of the header candidate set.
func HeaderExtensions() CandidateSet {
	return slices.Clone(headerExtensions)
}

// SourceExtensions returns a copy of the source candidate set.
func SourceExtensions() CandidateSet {
	return slices.Clone(sourceExtensions)
}

// IsHeader reports whether ext is a header extension. Comparison is case-sensitive.
func IsHeader(ext string) bool {
	return slices.Contains(headerExtensions, ext)
}

// Classify returns the extensions to look for given the active file's extension.
// Headers map to sources; everything else, including unknown extensions, maps to headers.
func Classify(ext string) CandidateSet {
	if IsHeader(ext) {
		return SourceExtensions()
	}
	return HeaderExtensions()
}
