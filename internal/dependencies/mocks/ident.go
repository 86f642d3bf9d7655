package mocks

import (
	"fmt"
	"sync"

	"github.com/typerace/typerace-go/internal/dependencies/ident"
)

// MockGenerator is a mock implementation of ident.Generator for testing.
// Safe for concurrent use so tests can exercise parallel service calls.
type MockGenerator struct {
	mu sync.Mutex

	// IDs is a queue of identifiers to return from NewID
	IDs   []string
	index int

	// generated counts calls, used for fallback IDs once the queue is drained
	generated int
}

// Ensure MockGenerator implements Generator
var _ ident.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// NewID returns the next queued identifier. Once the queue is exhausted it
// returns deterministic sequential IDs so multi-step tests never stall.
func (g *MockGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generated++
	if g.index < len(g.IDs) {
		id := g.IDs[g.index]
		g.index++
		return id
	}
	return fmt.Sprintf("mock-id-%d", g.generated)
}

// Queue adds identifiers to the result queue
func (g *MockGenerator) Queue(ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.IDs = append(g.IDs, ids...)
}

// Reset clears all queued identifiers
func (g *MockGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.IDs = nil
	g.index = 0
	g.generated = 0
}
