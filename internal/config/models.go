package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for known WattBox devices and
// application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by user-chosen device name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single WattBox strip.
// This is keyed by a user-chosen name in the Registry, so commands can
// say "wattboxctl status rack" instead of repeating host and flags.
type Device struct {
	Host     string         `yaml:"host"`                // Network address (IP or hostname, optional :port)
	Username string         `yaml:"username,omitempty"`  // Basic-auth username
	Area     string         `yaml:"area,omitempty"`      // Optional location label
	Simulate bool           `yaml:"simulate,omitempty"`  // Suppress outbound control traffic
	LastSeen time.Time      `yaml:"last_seen,omitempty"` // Last successful status load
	Outlets  map[int]string `yaml:"outlets,omitempty"`   // Outlet labels (keyed by 1-based outlet index)
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`            // HTTP request timeout
	DefaultDevice  string `yaml:"default_device,omitempty"`   // Device used when no name/host is given
	DefaultUser    string `yaml:"default_username,omitempty"` // Fallback basic-auth username
	// Passwords are NEVER stored - they are always prompted or read
	// from the environment.
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			TimeoutSeconds: 10,
			DefaultUser:    "wattbox",
		},
	}
}

// GetDevice retrieves device metadata by name.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(name string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[name]; exists {
		return device
	}

	device := &Device{
		Outlets: make(map[int]string),
	}
	r.Devices[name] = device
	return device
}

// UpdateDeviceLastSeen records a successful status load for a device.
func (r *Registry) UpdateDeviceLastSeen(name, host string) {
	device := r.EnsureDevice(name)
	device.LastSeen = time.Now()
	device.Host = host
}

// SetOutletLabel sets or updates an outlet label for a device.
func (r *Registry) SetOutletLabel(name string, outletIndex int, label string) {
	device := r.EnsureDevice(name)

	if device.Outlets == nil {
		device.Outlets = make(map[int]string)
	}

	device.Outlets[outletIndex] = label
}
