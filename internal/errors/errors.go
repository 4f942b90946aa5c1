package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrMalformedPayload is returned when a request body is not valid JSON or has the wrong shape
var ErrMalformedPayload = errors.New("malformed payload")

// ErrMissingField is returned when a required field is absent or null
var ErrMissingField = errors.New("missing field")

// ErrDeviceUnavailable is returned when the LED device can't be initialised or written
var ErrDeviceUnavailable = errors.New("device unavailable")

// ErrInternal is returned for unexpected internal errors
var ErrInternal = errors.New("internal error")

// LogErrorAndReturn logs an error with structured context and returns it
func LogErrorAndReturn(logger *slog.Logger, err error, message string, args ...any) error {
	if err == nil {
		return nil
	}
	logger.Error(message, append([]any{"error", err}, args...)...)
	return err
}

// WrapErrorf wraps an error with additional context using fmt.Errorf
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// IsMalformedPayload returns true if the error is or wraps ErrMalformedPayload
func IsMalformedPayload(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

// IsMissingField returns true if the error is or wraps ErrMissingField
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsDeviceUnavailable returns true if the error is or wraps ErrDeviceUnavailable
func IsDeviceUnavailable(err error) bool {
	return errors.Is(err, ErrDeviceUnavailable)
}

// MalformedPayloadf returns a formatted ErrMalformedPayload error
func MalformedPayloadf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrMalformedPayload)...)
}

// MissingFieldf returns a formatted ErrMissingField error
func MissingFieldf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrMissingField)...)
}

// DeviceUnavailablef returns a formatted ErrDeviceUnavailable error
func DeviceUnavailablef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDeviceUnavailable)...)
}

// Internalf returns a formatted ErrInternal error
func Internalf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInternal)...)
}
