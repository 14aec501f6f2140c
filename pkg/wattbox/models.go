package wattbox

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// statusDocument mirrors the XML payload served by the device at
// /wattbox_info.xml. The control endpoint (/control.cgi) returns the same
// shape but may omit everything except outlet_status.
//
// Fields are pointers so that an absent element can be told apart from an
// empty one; the device firmware is inconsistent about which fields it
// includes in control responses.
type statusDocument struct {
	HostName        *string `xml:"host_name"`
	HardwareVersion *string `xml:"hardware_version"`
	SerialNumber    *string `xml:"serial_number"`
	HasUPS          *string `xml:"hasUPS"`
	VoltageValue    *int    `xml:"voltage_value"`
	CurrentValue    *int    `xml:"current_value"`
	PowerValue      *int    `xml:"power_value"`
	CloudStatus     *string `xml:"cloud_status"`
	OutletNames     *string `xml:"outlet_name"`
	OutletStatus    *string `xml:"outlet_status"`
}

// parseStatusDocument parses a raw device response body. The root element
// name is not checked; firmware revisions disagree on it.
func parseStatusDocument(data []byte) (*statusDocument, error) {
	var doc statusDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// requireFull validates that every field a full status load depends on is
// present. The electrical readings and cloud status are optional; older
// firmware omits them.
func (d *statusDocument) requireFull() error {
	missing := []string{}
	if d.HostName == nil {
		missing = append(missing, "host_name")
	}
	if d.HardwareVersion == nil {
		missing = append(missing, "hardware_version")
	}
	if d.SerialNumber == nil {
		missing = append(missing, "serial_number")
	}
	if d.HasUPS == nil {
		missing = append(missing, "hasUPS")
	}
	if d.OutletNames == nil {
		missing = append(missing, "outlet_name")
	}
	if d.OutletStatus == nil {
		missing = append(missing, "outlet_status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("status document missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// splitList splits one of the device's comma-separated list fields.
func splitList(raw string) []string {
	return strings.Split(raw, ",")
}

// parseOutletStates parses the outlet_status field into an on/off vector.
// The device reports "1" for on; anything else is treated as off.
func parseOutletStates(raw string) []bool {
	vals := splitList(raw)
	states := make([]bool, len(vals))
	for i, v := range vals {
		states[i] = v == "1"
	}
	return states
}

// tenths converts one of the device's raw integer readings, reported in
// tenths of a unit, into its real value. Absent readings yield zero.
func tenths(v *int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v) / 10
}

// flag interprets one of the device's "1"/"0" text fields.
func flag(s *string) bool {
	return s != nil && *s == "1"
}

// DeviceInfo holds the identity and electrical metadata reported by a
// full status load. Zero values mean the device did not report the field.
type DeviceInfo struct {
	Hostname        string  `json:"hostname"`
	HardwareVersion string  `json:"hardware_version"`
	SerialNumber    string  `json:"serial_number"`
	HasUPS          bool    `json:"has_ups"`
	Voltage         float64 `json:"voltage"` // volts
	Current         float64 `json:"current"` // amps
	Power           float64 `json:"power"`   // watts
	CloudStatus     bool    `json:"cloud_status"`
}

// OutletState is an immutable view of a single outlet.
type OutletState struct {
	Index int    `json:"index"` // 1-based
	Name  string `json:"name"`
	On    bool   `json:"on"`
}

// Snapshot is an immutable copy of a client's cached device state,
// safe to hand to concurrent readers and renderers.
type Snapshot struct {
	Host        string        `json:"host"`
	Area        string        `json:"area,omitempty"`
	Info        DeviceInfo    `json:"info"`
	Outlets     []OutletState `json:"outlets"`
	LastUpdated time.Time     `json:"last_updated"`
}
