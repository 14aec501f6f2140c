package wattbox

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wattboxctl/wattboxctl/internal/logging"
)

// Outlet represents a single IP-controlled power socket on a WattBox
// strip. Outlets are created only by Client.LoadStatus and hold a
// non-owning reference back to their client.
type Outlet struct {
	device *Client
	index  int    // 1-based, immutable
	name   string // "<device-reported name> [<index>]", mutable via Rename
	on     bool   // guarded by device.mu
}

// newOutlet builds an outlet from its 0-based parse position.
func newOutlet(device *Client, offset int, name string, on bool) *Outlet {
	return &Outlet{
		device: device,
		index:  offset + 1,
		name:   fmt.Sprintf("%s [%d]", name, offset+1),
		on:     on,
	}
}

// Index returns the outlet's 1-based position on the strip.
func (o *Outlet) Index() int {
	return o.index
}

// Name returns the outlet's display name.
func (o *Outlet) Name() string {
	o.device.mu.Lock()
	defer o.device.mu.Unlock()
	return o.name
}

// IsOn reports the cached on/off state. Authoritative only immediately
// after a load, refresh, or command round-trip.
func (o *Outlet) IsOn() bool {
	o.device.mu.Lock()
	defer o.device.mu.Unlock()
	return o.on
}

// Rename changes the outlet's display name. Local only; the device is
// not contacted, and the name reverts on the next LoadStatus.
func (o *Outlet) Rename(newName string) {
	o.device.mu.Lock()
	defer o.device.mu.Unlock()
	o.name = newName
}

// String returns a pretty-printed form of the outlet.
func (o *Outlet) String() string {
	o.device.mu.Lock()
	defer o.device.mu.Unlock()
	state := "off"
	if o.on {
		state = "on"
	}
	return fmt.Sprintf("WattBox outlet %s (%s)", o.name, state)
}

// SetState commands the outlet on or off.
//
// On a connectivity failure sending the command, the error is returned
// and local state is left untouched: the change was never applied. On a
// successful send, all outlet states are reconciled from the device's
// response body, and then this outlet's local state is unconditionally
// set to the requested value. The device applies commands
// asynchronously, so its control response can still report the old
// state; the caller's intent wins locally.
//
// A reconciliation (protocol) failure after a successful send still
// applies the override; the protocol error is returned so callers can
// observe it. In simulate-only mode no request is sent and the override
// applies directly.
func (o *Outlet) SetState(turnOn bool) error {
	c := o.device
	c.mu.Lock()
	defer c.mu.Unlock()

	command := "0"
	if turnOn {
		command = "1"
	}

	// The device expects a millisecond-looking token: current unix
	// seconds with a fixed "999" suffix. A firmware quirk, not a real
	// millisecond clock.
	query := url.Values{}
	query.Set("outlet", strconv.Itoa(o.index))
	query.Set("command", command)
	query.Set("time", fmt.Sprintf("%d999", time.Now().Unix()))
	commandURL := c.controlURL() + "?" + query.Encode()

	var reconcileErr error
	if c.SimulateOnly {
		logging.Info("simulate-only: not sending outlet command",
			zap.String("host", c.Host),
			zap.Int("outlet", o.index),
			zap.Bool("on", turnOn),
		)
	} else {
		logging.Debug("sending outlet command",
			zap.String("host", c.Host),
			zap.String("url", commandURL),
		)

		body, err := c.get(commandURL)
		if err != nil {
			// Command never reached the device; local state stays put.
			logging.Warn("outlet command failed",
				zap.String("host", c.Host),
				zap.Int("outlet", o.index),
				zap.Error(err),
			)
			return err
		}

		reconcileErr = c.applyOutletStatusLocked(body)
		if reconcileErr != nil {
			logging.Warn("could not reconcile outlet states from command response",
				zap.String("host", c.Host),
				zap.Error(reconcileErr),
			)
		}
	}

	// Optimistic override: the caller's intent wins locally once the
	// round-trip (or simulated round-trip) completed without a
	// connectivity failure, regardless of what reconciliation reported.
	changed := o.on != turnOn
	o.on = turnOn
	if changed {
		logging.Info("outlet state changed",
			zap.String("host", c.Host),
			zap.String("outlet", o.name),
			zap.Bool("on", turnOn),
		)
	} else {
		logging.Debug("outlet state unchanged",
			zap.String("host", c.Host),
			zap.String("outlet", o.name),
			zap.Bool("on", turnOn),
		)
	}

	return reconcileErr
}

// TurnOn commands the outlet on.
func (o *Outlet) TurnOn() error {
	return o.SetState(true)
}

// TurnOff commands the outlet off.
func (o *Outlet) TurnOff() error {
	return o.SetState(false)
}
