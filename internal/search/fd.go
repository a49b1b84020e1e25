package search

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/Cyclone1070/counterpart/internal/host"
	"github.com/Cyclone1070/counterpart/internal/service/executor"
)

// commandExecutor starts external commands with streamed stdout.
type commandExecutor interface {
	Start(ctx context.Context, command []string, dir string) (executor.Process, io.Reader, error)
}

// pathNormalizer turns backend output into clean absolute paths.
type pathNormalizer interface {
	WorkspaceRoot() string
	Normalize(path string) string
}

const fdPartialFailure = 1

// FdSearcher finds files with the fd command.
type FdSearcher struct {
	binary           string
	executor         commandExecutor
	paths            pathNormalizer
	respectGitignore bool
	exclude          []string
}

// NewFdSearcher creates a searcher that runs binary inside the workspace root of paths.
func NewFdSearcher(binary string, exec commandExecutor, paths pathNormalizer, respectGitignore bool, exclude []string) *FdSearcher {
	if binary == "" {
		panic("binary is required")
	}
	if exec == nil {
		panic("exec is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	return &FdSearcher{
		binary:           binary,
		executor:         exec,
		paths:            paths,
		respectGitignore: respectGitignore,
		exclude:          exclude,
	}
}

func (s *FdSearcher) command(q host.Query) []string {
	root := s.paths.WorkspaceRoot()

	// fd --glob matches the final path element, which is what the query asks for.
	cmd := []string{
		s.binary,
		"--glob",
		"--type", "f",
		"--hidden",
		"--absolute-path",
		"--max-results", strconv.Itoa(q.Limit),
	}
	if !s.respectGitignore {
		cmd = append(cmd, "--no-ignore")
	}
	for _, pattern := range s.exclude {
		cmd = append(cmd, "--exclude", pattern)
	}
	return append(cmd, "--", escapeGlob(q.Name), root)
}

// Search returns up to q.Limit absolute paths of files named q.Name.
func (s *FdSearcher) Search(ctx context.Context, q host.Query) ([]string, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	proc, stdout, err := s.executor.Start(ctx, s.command(q), s.paths.WorkspaceRoot())
	if err != nil {
		return nil, err
	}

	var matches []string
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		matches = append(matches, s.paths.Normalize(line))
		if len(matches) >= q.Limit {
			break
		}
	}

	scanErr := scanner.Err()

	// Drain the rest so fd is not blocked on a full pipe before Wait.
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := proc.Wait()

	if scanErr != nil {
		return nil, &executor.CommandError{Cmd: s.binary, Stage: "read output", Cause: scanErr}
	}
	if waitErr != nil {
		// fd exits 1 when some directories could not be read; what it printed is still valid.
		if executor.ExitCode(waitErr) == fdPartialFailure && len(matches) > 0 {
			return matches, nil
		}
		return nil, waitErr
	}
	return matches, nil
}
