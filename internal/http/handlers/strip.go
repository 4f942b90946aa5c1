package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	lserrors "github.com/jmylchreest/ledstripd/internal/errors"
	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// StripController is the part of strip.Controller the handlers use.
type StripController interface {
	State() strip.State
	Update(ctx context.Context, v strip.PropertyValue) error
}

// StripHandler implements the strip control HTTP handlers.
type StripHandler struct {
	Strip  StripController
	Logger *slog.Logger
	Driver string
	LEDs   int
}

// GetStatus returns the current strip state.
func (h *StripHandler) GetStatus(_ context.Context, _ *GetStatusInput) (*GetStatusOutput, error) {
	return &GetStatusOutput{Body: h.Strip.State().Status()}, nil
}

// GetStrip returns the driver, pixel count and state.
func (h *StripHandler) GetStrip(_ context.Context, _ *GetStripInput) (*GetStripOutput, error) {
	out := &GetStripOutput{}
	out.Body.Driver = h.Driver
	out.Body.LEDs = h.LEDs
	out.Body.State = h.Strip.State().Status()
	return out, nil
}

// SetColor sets r, g and b. Values outside 0-255 are clamped.
func (h *StripHandler) SetColor(ctx context.Context, input *SetColorInput) (*MutationOutput, error) {
	v, err := input.Body.Value()
	if err != nil {
		return nil, requestError(err, MsgMissingColor)
	}
	return h.update(ctx, v)
}

// SetBrightness sets the global brightness. Values outside 0-255 are clamped.
func (h *StripHandler) SetBrightness(ctx context.Context, input *SetBrightnessInput) (*MutationOutput, error) {
	v, err := input.Body.Property()
	if err != nil {
		return nil, requestError(err, MsgMissingValue)
	}
	return h.update(ctx, v)
}

// SetPower switches the strip on or off.
func (h *StripHandler) SetPower(ctx context.Context, input *SetPowerInput) (*MutationOutput, error) {
	v, err := input.Body.Property()
	if err != nil {
		return nil, requestError(err, MsgMissingState)
	}
	return h.update(ctx, v)
}

func (h *StripHandler) update(ctx context.Context, v strip.PropertyValue) (*MutationOutput, error) {
	if err := h.Strip.Update(ctx, v); err != nil {
		h.Logger.Error("Failed to update strip", "property", v.PropertyName(), "error", err)
		return nil, toAPIError(err)
	}
	out := &MutationOutput{}
	out.Body.Status = "ok"
	return out, nil
}

// SetColorRaw is the raw HTTP handler for SetColor.
// Huma answers malformed bodies with its own problem document, so the
// mutation routes decode the body themselves to keep the {"error": ...} shape.
func (h *StripHandler) SetColorRaw() http.HandlerFunc {
	return rawMutation(h, MsgMissingColor, func(ctx context.Context, body strip.ColorRequest) (*MutationOutput, error) {
		return h.SetColor(ctx, &SetColorInput{Body: body})
	})
}

// SetBrightnessRaw is the raw HTTP handler for SetBrightness.
func (h *StripHandler) SetBrightnessRaw() http.HandlerFunc {
	return rawMutation(h, MsgMissingValue, func(ctx context.Context, body strip.BrightnessRequest) (*MutationOutput, error) {
		return h.SetBrightness(ctx, &SetBrightnessInput{Body: body})
	})
}

// SetPowerRaw is the raw HTTP handler for SetPower.
func (h *StripHandler) SetPowerRaw() http.HandlerFunc {
	return rawMutation(h, MsgMissingState, func(ctx context.Context, body strip.PowerRequest) (*MutationOutput, error) {
		return h.SetPower(ctx, &SetPowerInput{Body: body})
	})
}

func rawMutation[B any](h *StripHandler, missing string, call func(ctx context.Context, body B) (*MutationOutput, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, NewAPIError(http.StatusRequestEntityTooLarge, MsgBodyTooLarge, err))
				return
			}
			writeError(w, lserrors.MalformedPayloadf("reading body: %v", err))
			return
		}

		body, err := strip.Decode[B](raw)
		if err != nil {
			h.Logger.Debug("Rejected request body", "path", r.URL.Path, "error", err)
			writeError(w, requestError(err, missing))
			return
		}

		out, err := call(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out.Body)
	}
}

// Preflight answers CORS preflight requests with an empty 200. The CORS
// headers themselves are set by middleware.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Ensure StripHandler implements the interface at compile time.
var _ StripHandlers = (*StripHandler)(nil)

// StripHandlers defines the interface for strip operations.
type StripHandlers interface {
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)
	GetStrip(ctx context.Context, input *GetStripInput) (*GetStripOutput, error)
	SetColor(ctx context.Context, input *SetColorInput) (*MutationOutput, error)
	SetBrightness(ctx context.Context, input *SetBrightnessInput) (*MutationOutput, error)
	SetPower(ctx context.Context, input *SetPowerInput) (*MutationOutput, error)
	SetColorRaw() http.HandlerFunc
	SetBrightnessRaw() http.HandlerFunc
	SetPowerRaw() http.HandlerFunc
}
