package wattbox

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the device state
func (s Snapshot) Summary() string {
	return fmt.Sprintf("WattBox %s @ %s (%s, %d outlets)",
		s.Info.SerialNumber, s.Host, s.Info.HardwareVersion, len(s.Outlets))
}

// FormatDeviceInfo returns a formatted string with device identification
// and electrical readings
func (s Snapshot) FormatDeviceInfo() string {
	var b strings.Builder

	b.WriteString("=== Device Information ===\n")
	b.WriteString(fmt.Sprintf("Hostname:      %s\n", s.Info.Hostname))
	b.WriteString(fmt.Sprintf("Hardware:      %s\n", s.Info.HardwareVersion))
	b.WriteString(fmt.Sprintf("Serial Number: %s\n", s.Info.SerialNumber))
	b.WriteString(fmt.Sprintf("UPS Attached:  %v\n", s.Info.HasUPS))
	b.WriteString(fmt.Sprintf("Cloud Status:  %v\n", s.Info.CloudStatus))
	if s.Area != "" {
		b.WriteString(fmt.Sprintf("Area:          %s\n", s.Area))
	}
	b.WriteString("\n")
	b.WriteString("=== Power Readings ===\n")
	b.WriteString(fmt.Sprintf("Voltage: %.1f V\n", s.Info.Voltage))
	b.WriteString(fmt.Sprintf("Current: %.1f A\n", s.Info.Current))
	b.WriteString(fmt.Sprintf("Power:   %.1f W\n", s.Info.Power))

	return b.String()
}

// FormatOutlets returns a formatted per-outlet state listing
func (s Snapshot) FormatOutlets() string {
	var b strings.Builder

	b.WriteString("=== Outlets ===\n")
	if len(s.Outlets) == 0 {
		b.WriteString("(no outlets loaded)\n")
		return b.String()
	}
	for _, o := range s.Outlets {
		state := "OFF"
		if o.On {
			state = "ON"
		}
		b.WriteString(fmt.Sprintf("%2d. %-30s %s\n", o.Index, o.Name, state))
	}

	return b.String()
}

// FormatCompact returns a compact multi-line format suitable for
// terminal display
func (s Snapshot) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Device:  %s (%s, SN %s)\n", s.Info.Hostname, s.Info.HardwareVersion, s.Info.SerialNumber))
	b.WriteString(fmt.Sprintf("Power:   %.1fV %.1fA %.1fW\n", s.Info.Voltage, s.Info.Current, s.Info.Power))

	states := make([]string, len(s.Outlets))
	for i, o := range s.Outlets {
		if o.On {
			states[i] = fmt.Sprintf("%d:on", o.Index)
		} else {
			states[i] = fmt.Sprintf("%d:off", o.Index)
		}
	}
	b.WriteString(fmt.Sprintf("Outlets: [%s]\n", strings.Join(states, " ")))

	return b.String()
}

// FormatDetailed returns a comprehensive formatted string with all
// device details and outlet states
func (s Snapshot) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.FormatDeviceInfo())
	b.WriteString("\n")
	b.WriteString(s.FormatOutlets())
	if !s.LastUpdated.IsZero() {
		b.WriteString(fmt.Sprintf("\nLast updated: %s\n", s.LastUpdated.Format("2006-01-02 15:04:05")))
	}

	return b.String()
}
