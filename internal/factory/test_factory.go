package factory

import (
	"time"

	"github.com/typerace/typerace-go/internal/dependencies/mocks"
	"github.com/typerace/typerace-go/internal/storage/memory"
	"github.com/typerace/typerace-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIdent *mocks.MockGenerator
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIdent := mocks.NewMockGenerator()

	app := newWithDependencies(store, mockClock, mockIdent, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIdent: mockIdent,
	}
}
