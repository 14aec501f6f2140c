// Package wattbox provides an HTTP client for SnapAV WattBox IP-controlled
// power strips.
//
// The WattBox exposes its state as an XML document over plain HTTP with
// basic authentication, and accepts outlet commands as URL-encoded GET
// requests. This package models a strip as a Client owning an ordered
// collection of Outlets, keeps a cached copy of the device state, and
// reconciles that cache against the device's responses.
//
// # Usage Example
//
//	client := wattbox.NewClient("192.168.1.50", "wattbox", "wattbox")
//
//	// Load full device status (identity, power readings, outlets)
//	if err := client.LoadStatus(); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, outlet := range client.Outlets() {
//	    fmt.Println(outlet)
//	}
//
//	// Turn the first outlet on
//	if err := client.Outlets()[0].SetState(true); err != nil {
//	    log.Fatal(err)
//	}
//
// # State Model
//
// LoadStatus is the only operation that rebuilds the outlet collection;
// it replaces all cached metadata wholesale. RefreshOutletStates updates
// only the on/off vector and is debounced: refreshes within three seconds
// of the last successful update are skipped, since the device is an
// embedded server that handles redundant polling poorly.
//
// After a successful command round-trip, an outlet's local state is
// forced to the requested value even if the device's own response
// reported otherwise. This optimistic override matches the device
// protocol's observed behavior: the strip applies commands asynchronously
// and its control response can lag the commanded state.
//
// # Simulate Mode
//
// A client constructed with SimulateOnly suppresses all outbound control
// traffic. Status loads still occur; commands and unsolicited refreshes
// become informational no-ops. This supports dry runs against production
// strips.
//
// # Thread Safety
//
// All mutating operations on a Client (and its Outlets) are serialized
// behind an internal lock. Readers receive immutable snapshots via
// Snapshot, Info, and the Outlet accessors.
//
// # Error Handling
//
// Errors are *DeviceError values categorized as connectivity (network,
// timeout, refused, DNS), authentication, HTTP status, or protocol
// (malformed or structurally inconsistent device responses). Use the
// IsConnectivityError and IsProtocolError predicates to branch. The
// package never retries; retry policy is a caller concern.
package wattbox
