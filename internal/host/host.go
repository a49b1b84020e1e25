// Package host declares the editor capabilities the counterpart commands run against.
// The in-process editor session and the workspace search backends implement them.
package host

import "context"

// Column identifies a view column. ColumnActive means "whichever column has focus".
type Column int

const (
	ColumnActive Column = iota
	ColumnOne
	ColumnTwo
)

func (c Column) String() string {
	switch c {
	case ColumnOne:
		return "one"
	case ColumnTwo:
		return "two"
	default:
		return "active"
	}
}

// View is a document currently shown in a column.
type View struct {
	Column Column
	Path   string
}

// Query asks the workspace for files whose final path element equals Name.
type Query struct {
	Name  string
	Limit int
}

// Pattern renders the query as the workspace-relative glob it stands for.
func (q Query) Pattern() string {
	return "**/" + q.Name
}

// ActiveDocument reports the absolute path of the focused document.
// ok is false when nothing is open.
type ActiveDocument interface {
	ActivePath() (path string, ok bool)
}

// DirectoryLister lists the entry names of one directory in the order the OS returns them.
type DirectoryLister interface {
	ListDirNames(dir string) ([]string, error)
}

// WorkspaceSearcher finds files anywhere under the workspace root.
// Returned paths may be absolute or workspace-relative.
type WorkspaceSearcher interface {
	Search(ctx context.Context, q Query) ([]string, error)
}

// Window exposes the visible views and lets callers focus or fill a column.
type Window interface {
	VisibleViews() []View
	Focus(column Column) error
	Show(ctx context.Context, path string, column Column) error
}
