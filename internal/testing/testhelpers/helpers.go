// Package testhelpers provides shared utilities for integration testing
package testhelpers

import (
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/counterpart/internal/editor"
	"github.com/Cyclone1070/counterpart/internal/ui"
)

// WaitTimeout bounds every Next* call.
const WaitTimeout = 5 * time.Second

// MockViewer implements ui.Viewer for testing.
// Every status and state written to it is recorded and also queued so a test
// can wait for the next one.
type MockViewer struct {
	mu       sync.Mutex
	Statuses []string
	States   []editor.State

	ReadyChan    chan struct{}
	CommandsChan chan ui.UICommand
	// StartBlocker controls when Start() returns
	StartBlocker chan struct{}

	statusQueue chan string
	stateQueue  chan editor.State
}

// NewMockViewer creates a viewer whose Start blocks until StartBlocker is closed.
func NewMockViewer() *MockViewer {
	return &MockViewer{
		ReadyChan:    make(chan struct{}),
		CommandsChan: make(chan ui.UICommand),
		StartBlocker: make(chan struct{}),
		statusQueue:  make(chan string, 64),
		stateQueue:   make(chan editor.State, 64),
	}
}

// Start signals readiness and blocks until the test releases it.
func (m *MockViewer) Start() error {
	close(m.ReadyChan)
	<-m.StartBlocker
	return nil
}

func (m *MockViewer) Ready() <-chan struct{} {
	return m.ReadyChan
}

func (m *MockViewer) Commands() <-chan ui.UICommand {
	return m.CommandsChan
}

func (m *MockViewer) WriteStatus(status, message string) {
	s := status + ": " + message
	m.mu.Lock()
	m.Statuses = append(m.Statuses, s)
	m.mu.Unlock()
	m.statusQueue <- s
}

func (m *MockViewer) WriteState(state editor.State) {
	m.mu.Lock()
	m.States = append(m.States, state)
	m.mu.Unlock()
	m.stateQueue <- state
}

// Send delivers a command as if the user had pressed its key.
func (m *MockViewer) Send(t *testing.T, cmd ui.UICommand) {
	t.Helper()
	select {
	case m.CommandsChan <- cmd:
	case <-time.After(WaitTimeout):
		t.Fatalf("command %s not picked up", cmd.Type)
	}
}

// NextStatus waits for the next status written.
func (m *MockViewer) NextStatus(t *testing.T) string {
	t.Helper()
	select {
	case s := <-m.statusQueue:
		return s
	case <-time.After(WaitTimeout):
		t.Fatal("timed out waiting for status")
		return ""
	}
}

// NextState waits for the next state written.
func (m *MockViewer) NextState(t *testing.T) editor.State {
	t.Helper()
	select {
	case st := <-m.stateQueue:
		return st
	case <-time.After(WaitTimeout):
		t.Fatal("timed out waiting for state")
		return editor.State{}
	}
}

// GetStatuses returns a copy of every status written so far.
func (m *MockViewer) GetStatuses() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Statuses))
	copy(out, m.Statuses)
	return out
}

// Paths lists the document path shown in each column, "" for an empty one.
func Paths(st editor.State) [2]string {
	var out [2]string
	for i, doc := range st.Columns {
		if doc != nil {
			out[i] = doc.Path
		}
	}
	return out
}
