// Package tui implements the interactive outlet dashboard for
// wattboxctl watch.
//
// The dashboard is a bubbletea program showing the strip's outlets as a
// cursor-navigable list. Enter or space toggles the selected outlet; the
// list re-syncs from the device every few seconds (bounded below by the
// client's own refresh debounce) and immediately after each command.
//
// Toggles and refreshes run as asynchronous tea commands so the UI never
// blocks on the device, which can be slow to respond. Only one operation
// is in flight at a time; the client serializes them anyway, but
// queueing keypresses against a sluggish embedded server is worse than
// dropping them.
package tui
