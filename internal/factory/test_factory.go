package factory

import (
	"time"

	"github.com/mveale/worddragon/internal/dependencies/mocks"
	"github.com/mveale/worddragon/internal/services/auth"
	"github.com/mveale/worddragon/internal/services/lobby"
	"github.com/mveale/worddragon/internal/storage/memory"
	"github.com/mveale/worddragon/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.Config{Secret: "test-secret"}
	app := newWithDependencies(store, mockClock, mockRandom, authCfg, lobby.Config{}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
