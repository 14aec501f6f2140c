// Package config manages the user's wattboxctl configuration file.
//
// The configuration is a YAML registry of known WattBox devices keyed by
// a user-chosen name, plus application preferences. It lives in the
// platform's conventional config directory (e.g.
// ~/.config/wattboxctl/config.yaml on Linux) and is written atomically.
//
// The registry stores client-side metadata only: hosts, usernames, area
// labels, outlet labels, and the simulate flag. It never stores
// passwords and never stores device state; the device is always the
// authority for outlet state.
package config
