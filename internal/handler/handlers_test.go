package handler

import (
	"testing"
	"time"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
	"github.com/filevault/filevault/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a no-op logger suitable for use in tests.
func newTestLogger() *logger.Logger {
	return logger.Nop()
}

// testRateLimit returns a usable abuse-limiter configuration for tests that
// only exercise construction, not limiting behavior.
func testRateLimit() config.RateLimit {
	return config.RateLimit{TTL: time.Minute, Max: 5}
}

// newTestServices returns a nil *service.Services. http.NewHandler only
// stores the pointer without dereferencing it, so nil is safe for
// construction-time tests.
func newTestServices() *service.Services {
	return nil
}

// TestNewHandlers_HTTPAddress verifies that when HTTPAddress is configured,
// the HTTP handler is initialised and no error is returned.
func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := config.Server{
		HTTPAddress: ":8080",
	}

	h, err := NewHandlers(newTestServices(), cfg, config.App{}, testRateLimit(), newTestLogger())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_NoAddress verifies that when HTTPAddress is not configured,
// NewHandlers returns errNoHandlersAreCreated and a nil *Handlers.
func TestNewHandlers_NoAddress(t *testing.T) {
	cfg := config.Server{}

	h, err := NewHandlers(newTestServices(), cfg, config.App{}, testRateLimit(), newTestLogger())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

// TestNewHandlers_ReturnType verifies that the returned value is of type
// *Handlers.
func TestNewHandlers_ReturnType(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":8080"}

	h, err := NewHandlers(newTestServices(), cfg, config.App{}, testRateLimit(), newTestLogger())

	require.NoError(t, err)
	assert.IsType(t, &Handlers{}, h)
}

// TestNewHandlers_IndependentInstances verifies that two calls to NewHandlers
// produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":8080"}

	h1, err1 := NewHandlers(newTestServices(), cfg, config.App{}, testRateLimit(), newTestLogger())
	h2, err2 := NewHandlers(newTestServices(), cfg, config.App{}, testRateLimit(), newTestLogger())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
