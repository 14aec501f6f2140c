package wattbox

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred while talking
// to a WattBox device.
type ErrorType int

const (
	// ErrTypeConnectivity indicates a transport-level failure reaching the device
	ErrTypeConnectivity ErrorType = iota
	// ErrTypeTimeout indicates the device did not respond in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the device refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure for the device host
	ErrTypeDNS
	// ErrTypeAuth indicates an HTTP basic-auth failure (invalid credentials)
	ErrTypeAuth
	// ErrTypeHTTP indicates an unexpected HTTP status from the device
	ErrTypeHTTP
	// ErrTypeProtocol indicates a malformed or structurally inconsistent
	// device response (missing field, bad XML, outlet-count mismatch)
	ErrTypeProtocol
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConnectivity:
		return "Connectivity Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeProtocol:
		return "Protocol Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred during device communication
type DeviceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Host       string    // Device host (for context)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// classifyNetworkError analyzes a transport error and assigns the most
// specific connectivity category it can.
func classifyNetworkError(err error, host string) *DeviceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeviceError{
			Type:    ErrTypeTimeout,
			Message: "device did not respond in time",
			Host:    host,
			Err:     err,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Host:    host,
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:    ErrTypeConnectionRefused,
				Message: "device refused connection",
				Host:    host,
				Err:     err,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) || errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DeviceError{
				Type:    ErrTypeConnectivity,
				Message: "device unreachable",
				Host:    host,
				Err:     err,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		classified := classifyNetworkError(urlErr.Err, host)
		if classified != nil {
			return classified
		}
	}

	return &DeviceError{
		Type:    ErrTypeConnectivity,
		Message: "network error reaching device",
		Host:    host,
		Err:     err,
	}
}

// newConnectivityError creates a connectivity error with automatic classification
func newConnectivityError(message, host string, err error) *DeviceError {
	classified := classifyNetworkError(err, host)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &DeviceError{
		Type:    ErrTypeConnectivity,
		Message: message,
		Host:    host,
		Err:     err,
	}
}

// newAuthError creates an authentication error
func newAuthError(message, host string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeAuth,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Host:       host,
	}
}

// newHTTPError creates an HTTP-level error
func newHTTPError(statusCode int, message, host string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Host:       host,
	}
}

// newProtocolError creates a protocol error for a malformed or
// inconsistent device response
func newProtocolError(message, host string, err error) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeProtocol,
		Message: message,
		Host:    host,
		Err:     err,
	}
}

// IsConnectivityError checks if an error is a transport-level failure
// (network, timeout, connection refused, or DNS)
func IsConnectivityError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeConnectivity ||
			devErr.Type == ErrTypeTimeout ||
			devErr.Type == ErrTypeConnectionRefused ||
			devErr.Type == ErrTypeDNS
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeAuth
	}
	return false
}

// IsHTTPError checks if an error is an unexpected-status error
func IsHTTPError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeHTTP
	}
	return false
}

// IsProtocolError checks if an error is a protocol error
func IsProtocolError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeProtocol
	}
	return false
}

// ShortErrorMessage returns a concise, user-friendly message for display
// in the CLI and dashboard.
func ShortErrorMessage(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeTimeout:
		return "Device not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Device refused connection - check host and port"
	case ErrTypeDNS:
		return "Cannot resolve device hostname"
	case ErrTypeAuth:
		return "Authentication failed - check credentials"
	case ErrTypeConnectivity:
		return "Device unreachable - check network connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Device error (HTTP %d)", devErr.StatusCode)
	case ErrTypeProtocol:
		return "Device returned a malformed response"
	default:
		return devErr.Message
	}
}
