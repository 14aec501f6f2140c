package wattbox

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

// timeoutError satisfies net.Error with Timeout() == true
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }

func TestClassifyNetworkError_Timeout(t *testing.T) {
	err := &url.Error{
		Op:  "Get",
		URL: "http://192.168.1.50/wattbox_info.xml",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: &timeoutError{}},
	}

	devErr := classifyNetworkError(err, "192.168.1.50")
	if devErr == nil {
		t.Fatal("expected DeviceError, got nil")
	}
	if devErr.Type != ErrTypeTimeout {
		t.Errorf("Type = %v, want %v", devErr.Type, ErrTypeTimeout)
	}
	if devErr.Host != "192.168.1.50" {
		t.Errorf("Host = %q, want 192.168.1.50", devErr.Host)
	}
	if !IsConnectivityError(devErr) {
		t.Error("timeout should count as a connectivity error")
	}
}

func TestClassifyNetworkError_ConnectionRefused(t *testing.T) {
	err := &url.Error{
		Op:  "Get",
		URL: "http://192.168.1.50/control.cgi",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
	}

	devErr := classifyNetworkError(err, "192.168.1.50")
	if devErr == nil {
		t.Fatal("expected DeviceError, got nil")
	}
	if devErr.Type != ErrTypeConnectionRefused {
		t.Errorf("Type = %v, want %v", devErr.Type, ErrTypeConnectionRefused)
	}
	if !IsConnectivityError(devErr) {
		t.Error("connection refused should count as a connectivity error")
	}
}

func TestClassifyNetworkError_DNS(t *testing.T) {
	err := &net.DNSError{
		Err:        "no such host",
		Name:       "wattbox.invalid",
		IsNotFound: true,
	}

	devErr := classifyNetworkError(err, "wattbox.invalid")
	if devErr == nil {
		t.Fatal("expected DeviceError, got nil")
	}
	if devErr.Type != ErrTypeDNS {
		t.Errorf("Type = %v, want %v", devErr.Type, ErrTypeDNS)
	}
	if !IsConnectivityError(devErr) {
		t.Error("DNS failure should count as a connectivity error")
	}
}

func TestClassifyNetworkError_HostUnreachable(t *testing.T) {
	err := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.EHOSTUNREACH}

	devErr := classifyNetworkError(err, "192.168.1.50")
	if devErr == nil {
		t.Fatal("expected DeviceError, got nil")
	}
	if devErr.Type != ErrTypeConnectivity {
		t.Errorf("Type = %v, want %v", devErr.Type, ErrTypeConnectivity)
	}
}

func TestDeviceError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	devErr := newProtocolError("bad payload", "192.168.1.50", cause)

	msg := devErr.Error()
	if msg != "Protocol Error: bad payload (caused by: underlying failure)" {
		t.Errorf("Error() = %q", msg)
	}
	if !errors.Is(devErr, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	// Without a cause, no suffix
	bare := newProtocolError("bad payload", "192.168.1.50", nil)
	if bare.Error() != "Protocol Error: bad payload" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		err            error
		isConnectivity bool
		isAuth         bool
		isHTTP         bool
		isProtocol     bool
	}{
		{newConnectivityError("down", "h", nil), true, false, false, false},
		{newAuthError("denied", "h"), false, true, false, false},
		{newHTTPError(500, "boom", "h"), false, false, true, false},
		{newProtocolError("bad", "h", nil), false, false, false, true},
		{errors.New("plain"), false, false, false, false},
	}

	for i, tt := range tests {
		if got := IsConnectivityError(tt.err); got != tt.isConnectivity {
			t.Errorf("case %d: IsConnectivityError = %v, want %v", i, got, tt.isConnectivity)
		}
		if got := IsAuthError(tt.err); got != tt.isAuth {
			t.Errorf("case %d: IsAuthError = %v, want %v", i, got, tt.isAuth)
		}
		if got := IsHTTPError(tt.err); got != tt.isHTTP {
			t.Errorf("case %d: IsHTTPError = %v, want %v", i, got, tt.isHTTP)
		}
		if got := IsProtocolError(tt.err); got != tt.isProtocol {
			t.Errorf("case %d: IsProtocolError = %v, want %v", i, got, tt.isProtocol)
		}
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	// Predicates must see through fmt.Errorf %w wrapping
	err := fmt.Errorf("failed to load status: %w", newProtocolError("bad", "h", nil))
	if !IsProtocolError(err) {
		t.Error("IsProtocolError should unwrap %w-wrapped errors")
	}
}

func TestShortErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{newAuthError("denied", "h"), "Authentication failed - check credentials"},
		{newHTTPError(502, "boom", "h"), "Device error (HTTP 502)"},
		{newProtocolError("bad", "h", nil), "Device returned a malformed response"},
		{errors.New("plain"), "plain"},
	}

	for i, tt := range tests {
		if got := ShortErrorMessage(tt.err); got != tt.want {
			t.Errorf("case %d: ShortErrorMessage = %q, want %q", i, got, tt.want)
		}
	}
}
