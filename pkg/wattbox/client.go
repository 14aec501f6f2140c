package wattbox

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wattboxctl/wattboxctl/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout. WattBox strips
	// are embedded servers with no upper bound on slow responses, so
	// every request carries a timeout.
	DefaultTimeout = 10 * time.Second

	// refreshDebounce is the minimum interval between unsolicited
	// refreshes of the outlet-state vector. A refresh requested within
	// this window of the last successful update is a no-op.
	refreshDebounce = 3 * time.Second

	statusPath  = "/wattbox_info.xml"
	controlPath = "/control.cgi"
)

// Client represents one WattBox power strip and its cached state.
//
// The connection fields (Host, Username, Password, Area, SimulateOnly)
// are set at construction and must not be changed once requests are
// issued. Cached device state is private and reached through Snapshot,
// Info, Outlets, and the Outlet accessors.
type Client struct {
	// Host is the device's network address, without scheme
	// (e.g. "192.168.1.50" or "wattbox.local:8080")
	Host string

	// Username for HTTP Basic Auth
	Username string

	// Password for HTTP Basic Auth
	Password string

	// Area is an optional location label for the strip. Metadata only;
	// never sent to the device.
	Area string

	// SimulateOnly suppresses all outbound control traffic when true.
	// Status loads still occur; commands and refreshes become
	// informational no-ops.
	SimulateOnly bool

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// mu serializes every mutating operation on the client and its
	// outlets. Held across the full network round-trip: the debounce
	// check, outlet-count validation, and state reconciliation are not
	// safe to interleave.
	mu sync.Mutex

	info        DeviceInfo
	outlets     []*Outlet
	lastUpdated time.Time
}

// NewClient creates a client for the WattBox at host. No connection is
// made until LoadStatus is called.
//
// Certificate verification is disabled on the transport: these devices
// serve plain HTTP or self-signed HTTPS on a LAN.
func NewClient(host, username, password string) *Client {
	return &Client{
		Host:     host,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

func (c *Client) statusURL() string {
	return "http://" + c.Host + statusPath
}

func (c *Client) controlURL() string {
	return "http://" + c.Host + controlPath
}

// get issues an authenticated GET and returns the response body.
func (c *Client) get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newConnectivityError("failed to create request", c.Host, err)
	}

	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, newConnectivityError("request failed", c.Host, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, newAuthError("authentication failed (check credentials)", c.Host)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode), c.Host)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectivityError("failed to read response body", c.Host, err)
	}

	return body, nil
}

// LoadStatus fetches the full status document from the device and
// replaces all cached state: identity metadata, electrical readings, and
// the outlet collection.
//
// This is the only operation that (re)builds the outlet collection.
// Prior Outlet values, including any renames, are discarded on success.
// On any failure the prior state is left untouched.
func (c *Client) LoadStatus() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, err := c.get(c.statusURL())
	if err != nil {
		logging.Warn("could not load status document",
			zap.String("host", c.Host),
			zap.Error(err),
		)
		return err
	}

	logging.Debug("loaded status document",
		zap.String("host", c.Host),
		zap.Int("bytes", len(body)),
	)

	doc, err := parseStatusDocument(body)
	if err != nil {
		return newProtocolError("could not parse status document", c.Host, err)
	}
	if err := doc.requireFull(); err != nil {
		return newProtocolError(err.Error(), c.Host, nil)
	}

	names := splitList(*doc.OutletNames)
	states := parseOutletStates(*doc.OutletStatus)
	if len(names) != len(states) {
		return newProtocolError(
			fmt.Sprintf("outlet_name has %d entries but outlet_status has %d", len(names), len(states)),
			c.Host, nil)
	}

	outlets := make([]*Outlet, len(names))
	for i := range names {
		outlets[i] = newOutlet(c, i, names[i], states[i])
	}

	c.info = DeviceInfo{
		Hostname:        *doc.HostName,
		HardwareVersion: *doc.HardwareVersion,
		SerialNumber:    *doc.SerialNumber,
		HasUPS:          flag(doc.HasUPS),
		Voltage:         tenths(doc.VoltageValue),
		Current:         tenths(doc.CurrentValue),
		Power:           tenths(doc.PowerValue),
		CloudStatus:     flag(doc.CloudStatus),
	}
	c.outlets = outlets
	c.lastUpdated = time.Now()

	logging.Info("loaded device status",
		zap.String("host", c.Host),
		zap.String("hostname", c.info.Hostname),
		zap.Int("outlets", len(outlets)),
	)

	return nil
}

// RefreshOutletStates re-syncs the on/off vector from the device's
// control endpoint. Metadata and the outlet collection are untouched.
//
// The refresh is debounced: within refreshDebounce of the last
// successful update it is a no-op. In simulate-only mode no request is
// issued.
func (c *Client) RefreshOutletStates() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.lastUpdated) < refreshDebounce {
		logging.Debug("skipping refresh, state is fresh",
			zap.String("host", c.Host),
			zap.Time("last_updated", c.lastUpdated),
		)
		return nil
	}

	if c.SimulateOnly {
		logging.Info("simulate-only: not refreshing outlet states",
			zap.String("host", c.Host),
		)
		return nil
	}

	body, err := c.get(c.controlURL())
	if err != nil {
		return err
	}

	return c.applyOutletStatusLocked(body)
}

// applyOutletStatusLocked reconciles the cached on/off vector from a
// device response body. Caller must hold c.mu.
//
// The outlet count must match the cached collection exactly; on mismatch
// nothing is applied. Partial updates would leave the cache lying about
// outlets the device never mentioned.
func (c *Client) applyOutletStatusLocked(body []byte) error {
	doc, err := parseStatusDocument(body)
	if err != nil {
		return newProtocolError("could not parse control response", c.Host, err)
	}
	if doc.OutletStatus == nil {
		return newProtocolError("control response missing outlet_status", c.Host, nil)
	}

	states := parseOutletStates(*doc.OutletStatus)
	if len(states) != len(c.outlets) {
		return newProtocolError(
			fmt.Sprintf("outlet_status %q has %d entries but device has %d outlets",
				*doc.OutletStatus, len(states), len(c.outlets)),
			c.Host, nil)
	}

	for i, on := range states {
		c.outlets[i].on = on
	}
	c.lastUpdated = time.Now()

	return nil
}

// Info returns a copy of the cached device metadata. Zero-valued until
// the first successful LoadStatus.
func (c *Client) Info() DeviceInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Outlets returns the device's outlets in device order. The slice is a
// copy; the Outlet values are live handles. Empty until the first
// successful LoadStatus.
func (c *Client) Outlets() []*Outlet {
	c.mu.Lock()
	defer c.mu.Unlock()
	outlets := make([]*Outlet, len(c.outlets))
	copy(outlets, c.outlets)
	return outlets
}

// Outlet returns the outlet with the given 1-based index, or nil if no
// such outlet exists.
func (c *Client) Outlet(index int) *Outlet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 1 || index > len(c.outlets) {
		return nil
	}
	return c.outlets[index-1]
}

// LastUpdated returns the time of the last successful refresh, or the
// zero time if the device has never been loaded.
func (c *Client) LastUpdated() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUpdated
}

// Snapshot returns an immutable copy of the full cached state.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	outlets := make([]OutletState, len(c.outlets))
	for i, o := range c.outlets {
		outlets[i] = OutletState{Index: o.index, Name: o.name, On: o.on}
	}

	return Snapshot{
		Host:        c.Host,
		Area:        c.Area,
		Info:        c.info,
		Outlets:     outlets,
		LastUpdated: c.lastUpdated,
	}
}
