package counterpart

import "context"

// logger is the subset of the application logger used here.
type logger interface {
	Debug(module, message string, details map[string]any)
	Info(module, message string, details map[string]any)
}

const logModule = "counterpart"

// Resolver runs the full lookup: classify, scan the directory, then fall back to the workspace.
type Resolver struct {
	local     *LocalMatcher
	workspace *WorkspaceSearcher
	logger    logger
}

// NewResolver wires the two lookup stages together.
func NewResolver(local *LocalMatcher, workspace *WorkspaceSearcher, logger logger) *Resolver {
	if local == nil {
		panic("local is required")
	}
	if workspace == nil {
		panic("workspace is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Resolver{local: local, workspace: workspace, logger: logger}
}

// Resolve finds the counterpart of activePath. A file without an extension and
// a file without a counterpart both yield NotFound and a nil error.
func (r *Resolver) Resolve(ctx context.Context, activePath string) (MatchResult, error) {
	file := Describe(activePath)
	if file.Ext == "" {
		r.logger.Debug(logModule, "no extension, nothing to do", map[string]any{"path": activePath})
		return NotFound, nil
	}

	candidates := Classify(file.Ext)

	result, err := r.local.FindLocal(file.Dir, file.Base, candidates)
	if err != nil {
		return NotFound, err
	}
	if result.Found {
		r.logger.Debug(logModule, "local match", map[string]any{"path": result.Path})
		return result, nil
	}

	r.logger.Debug(logModule, "no local match, searching workspace", map[string]any{
		"base":       file.Base,
		"candidates": []string(candidates),
	})
	result, err = r.workspace.FindInWorkspace(ctx, file.Base, candidates)
	if err != nil {
		return NotFound, err
	}
	if result.Found {
		r.logger.Debug(logModule, "workspace match", map[string]any{"path": result.Path})
	}
	return result, nil
}
