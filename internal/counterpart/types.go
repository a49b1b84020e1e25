package counterpart

import (
	"path/filepath"
	"strings"
)

// Source records which stage produced a match.
type Source string

const (
	SourceNone      Source = ""
	SourceLocal     Source = "local"
	SourceWorkspace Source = "workspace"
)

// MatchResult is the outcome of a lookup. A miss is NotFound, never an error.
type MatchResult struct {
	Path   string
	Found  bool
	Source Source
}

// NotFound is the result of a lookup that found nothing.
var NotFound = MatchResult{}

// ActiveFile describes the document a lookup starts from.
type ActiveFile struct {
	Dir  string
	Base string // file name without Ext
	Ext  string // with leading dot, empty if none
}

// Describe splits an absolute file path into directory, base name and extension.
func Describe(path string) ActiveFile {
	name := filepath.Base(path)
	ext := extname(name)
	return ActiveFile{
		Dir:  filepath.Dir(path),
		Base: strings.TrimSuffix(name, ext),
		Ext:  ext,
	}
}

// extname returns the suffix of name from its last dot. A name whose only dot
// is the first character (".h", ".bashrc") has no extension.
func extname(name string) string {
	if name == ".." {
		return ""
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}
