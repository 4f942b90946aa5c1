package routes

import (
	"context"
	"net/http"

	"github.com/jmylchreest/ledstripd/internal/http/handlers"
)

// StubHandlers returns a Handlers instance with stub implementations.
// All handlers return nil responses; these are only used for OpenAPI generation
// where Huma extracts type information from function signatures.
func StubHandlers() *Handlers {
	return &Handlers{
		Strip:   &stubStripHandlers{},
		Version: &stubVersionHandlers{},
		Logging: &stubLoggingHandlers{},
	}
}

// --- Strip stubs ---

type stubStripHandlers struct{}

func (s *stubStripHandlers) GetStatus(_ context.Context, _ *handlers.GetStatusInput) (*handlers.GetStatusOutput, error) {
	return nil, nil
}

func (s *stubStripHandlers) GetStrip(_ context.Context, _ *handlers.GetStripInput) (*handlers.GetStripOutput, error) {
	return nil, nil
}

func (s *stubStripHandlers) SetColor(_ context.Context, _ *handlers.SetColorInput) (*handlers.MutationOutput, error) {
	return nil, nil
}

func (s *stubStripHandlers) SetBrightness(_ context.Context, _ *handlers.SetBrightnessInput) (*handlers.MutationOutput, error) {
	return nil, nil
}

func (s *stubStripHandlers) SetPower(_ context.Context, _ *handlers.SetPowerInput) (*handlers.MutationOutput, error) {
	return nil, nil
}

func (s *stubStripHandlers) SetColorRaw() http.HandlerFunc      { return stubRaw }
func (s *stubStripHandlers) SetBrightnessRaw() http.HandlerFunc { return stubRaw }
func (s *stubStripHandlers) SetPowerRaw() http.HandlerFunc      { return stubRaw }

// stubRaw is never called during OpenAPI generation.
func stubRaw(http.ResponseWriter, *http.Request) {}

// --- Version stubs ---

type stubVersionHandlers struct{}

func (s *stubVersionHandlers) GetVersion(_ context.Context, _ *handlers.VersionInput) (*handlers.VersionOutput, error) {
	return nil, nil
}

// --- Logging stubs ---

type stubLoggingHandlers struct{}

func (s *stubLoggingHandlers) GetLevel(_ context.Context, _ *handlers.GetLevelInput) (*handlers.LevelOutput, error) {
	return nil, nil
}

func (s *stubLoggingHandlers) SetLevel(_ context.Context, _ *handlers.SetLevelInput) (*handlers.LevelOutput, error) {
	return nil, nil
}
