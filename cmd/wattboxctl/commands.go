package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wattboxctl/wattboxctl/internal/config"
	"github.com/wattboxctl/wattboxctl/internal/tui"
	"github.com/wattboxctl/wattboxctl/pkg/wattbox"
)

// Device command flags
var (
	deviceHost     string
	deviceUsername string
	devicePassword string
	deviceArea     string
	simulateOnly   bool
	timeoutSeconds int
	outputFormat   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceHost, "host", "", "Device host (IP or hostname, optional :port)")
	rootCmd.PersistentFlags().StringVar(&deviceUsername, "username", "", "Basic-auth username")
	rootCmd.PersistentFlags().StringVar(&devicePassword, "password", "", "Basic-auth password (prompted if omitted)")
	rootCmd.PersistentFlags().StringVar(&deviceArea, "area", "", "Area label for the device (metadata only)")
	rootCmd.PersistentFlags().BoolVar(&simulateOnly, "simulate", false, "Suppress all outbound control traffic (dry run)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "HTTP request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(saveCmd)
}

// statusCmd shows full device status
var statusCmd = &cobra.Command{
	Use:   "status [device-name]",
	Short: "Show device status and outlet states",
	Long: `Fetch and display the full status of a WattBox device: identity,
power readings, and per-outlet on/off state.

The device is selected by saved name, by --host, or by the
WATTBOX_HOSTNAME environment variable.`,
	Example: `  # Status of a saved device
  wattboxctl status rack

  # Status by host
  wattboxctl status --host 192.168.1.50 --username wattbox

  # JSON output for scripting
  wattboxctl status rack --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, name, err := resolveClient(args)
	if err != nil {
		return err
	}

	if err := client.LoadStatus(); err != nil {
		return fmt.Errorf("failed to load status: %w", err)
	}
	applyOutletLabels(client, name)
	recordLastSeen(name, client.Host)

	snapshot := client.Snapshot()
	switch outputFormat {
	case "compact":
		fmt.Print(snapshot.FormatCompact())
	case "json":
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fallthrough
	default:
		fmt.Print(snapshot.FormatDetailed())
	}

	return nil
}

// onCmd turns an outlet on
var onCmd = &cobra.Command{
	Use:   "on <outlet> [device-name]",
	Short: "Turn an outlet on",
	Example: `  # Turn outlet 3 on, on a saved device
  wattboxctl on 3 rack

  # Turn outlet 1 on by host
  wattboxctl on 1 --host 192.168.1.50 --username wattbox

  # Dry run: no command is sent
  wattboxctl on 3 rack --simulate`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetState(args, true)
	},
}

// offCmd turns an outlet off
var offCmd = &cobra.Command{
	Use:   "off <outlet> [device-name]",
	Short: "Turn an outlet off",
	Example: `  # Turn outlet 3 off, on a saved device
  wattboxctl off 3 rack`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetState(args, false)
	},
}

// toggleCmd flips an outlet's current state
var toggleCmd = &cobra.Command{
	Use:   "toggle <outlet> [device-name]",
	Short: "Toggle an outlet",
	Example: `  # Flip outlet 2 on a saved device
  wattboxctl toggle 2 rack`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, outlet, name, err := resolveOutlet(args)
		if err != nil {
			return err
		}
		return setOutletState(client, outlet, name, !outlet.IsOn())
	},
}

func runSetState(args []string, turnOn bool) error {
	client, outlet, name, err := resolveOutlet(args)
	if err != nil {
		return err
	}
	return setOutletState(client, outlet, name, turnOn)
}

func setOutletState(client *wattbox.Client, outlet *wattbox.Outlet, name string, turnOn bool) error {
	verb := "off"
	if turnOn {
		verb = "on"
	}
	fmt.Printf("Turning %s %s...\n", outlet.Name(), verb)

	if err := outlet.SetState(turnOn); err != nil {
		if wattbox.IsProtocolError(err) {
			// Command was sent; only the state re-sync failed.
			fmt.Printf("⚠ Command sent, but device response could not be reconciled: %s\n", wattbox.ShortErrorMessage(err))
			return nil
		}
		return fmt.Errorf("failed to switch outlet: %w", err)
	}
	recordLastSeen(name, client.Host)

	fmt.Printf("✓ %s\n", outlet)
	return nil
}

// labelCmd sets a local display label for an outlet
var labelCmd = &cobra.Command{
	Use:   "label <outlet> <label> <device-name>",
	Short: "Set a local label for an outlet",
	Long: `Store a user-defined label for an outlet of a saved device.

Labels live in the wattboxctl configuration file only; the device's own
outlet names are never changed. Saved labels are applied to status
output and the watch dashboard.`,
	Example: `  # Label outlet 3 of device "rack"
  wattboxctl label 3 "AV Amplifier" rack`,
	Args: cobra.ExactArgs(3),
	RunE: runLabel,
}

func runLabel(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return fmt.Errorf("invalid outlet number %q (must be a positive integer)", args[0])
	}
	label := args[1]
	name := args[2]

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if registry.GetDevice(name) == nil {
		return fmt.Errorf("no saved device named %q (use 'wattboxctl save %s --host ...' first)", name, name)
	}

	registry.SetOutletLabel(name, index, label)
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ Outlet %d of %q labeled %q\n", index, name, label)
	return nil
}

// watchCmd runs the interactive outlet dashboard
var watchCmd = &cobra.Command{
	Use:   "watch [device-name]",
	Short: "Launch the interactive outlet dashboard",
	Long: `Launch a live dashboard showing all outlets of a device.

The dashboard re-syncs outlet states every few seconds. Use the arrow
keys to select an outlet and enter or space to toggle it.`,
	Example: `  # Watch a saved device
  wattboxctl watch rack

  # Watch by host
  wattboxctl watch --host 192.168.1.50 --username wattbox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, name, err := resolveClient(args)
	if err != nil {
		return err
	}

	if err := client.LoadStatus(); err != nil {
		return fmt.Errorf("failed to connect to device at %s: %w", client.Host, err)
	}
	applyOutletLabels(client, name)
	recordLastSeen(name, client.Host)

	p := tea.NewProgram(tui.New(client))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	return nil
}

// devicesCmd lists saved devices
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List saved devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if len(registry.Devices) == 0 {
			fmt.Println("No saved devices.")
			fmt.Println("Use 'wattboxctl save <name> --host <host>' to save one.")
			return nil
		}

		for name, device := range registry.Devices {
			fmt.Printf("%s\n", name)
			fmt.Printf("  Host:     %s\n", device.Host)
			if device.Username != "" {
				fmt.Printf("  Username: %s\n", device.Username)
			}
			if device.Area != "" {
				fmt.Printf("  Area:     %s\n", device.Area)
			}
			if device.Simulate {
				fmt.Printf("  Simulate: true\n")
			}
			if !device.LastSeen.IsZero() {
				fmt.Printf("  Last seen: %s\n", device.LastSeen.Format("2006-01-02 15:04:05"))
			}
			fmt.Println()
		}

		return nil
	},
}

// saveCmd stores a device in the configuration file
var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a device under a name",
	Long: `Save the device given by --host (plus --username, --area, --simulate)
under a name, so later commands can refer to it by that name.

The password is never stored; it is prompted or read from the
WATTBOX_PASSWORD environment variable on each use.`,
	Example: `  # Save the rack strip
  wattboxctl save rack --host 192.168.1.50 --username wattbox --area "AV Rack"`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	name := args[0]
	if deviceHost == "" {
		return fmt.Errorf("--host is required when saving a device")
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	device := registry.EnsureDevice(name)
	device.Host = deviceHost
	device.Username = deviceUsername
	device.Area = deviceArea
	device.Simulate = simulateOnly

	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✓ Saved device %q (%s)\n", name, deviceHost)
	return nil
}

// resolveOutlet resolves a client, loads its status, and returns the
// outlet addressed by the first argument.
func resolveOutlet(args []string) (*wattbox.Client, *wattbox.Outlet, string, error) {
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return nil, nil, "", fmt.Errorf("invalid outlet number %q (must be a positive integer)", args[0])
	}

	client, name, err := resolveClient(args[1:])
	if err != nil {
		return nil, nil, "", err
	}

	if err := client.LoadStatus(); err != nil {
		return nil, nil, "", fmt.Errorf("failed to load status: %w", err)
	}
	applyOutletLabels(client, name)

	outlet := client.Outlet(index)
	if outlet == nil {
		return nil, nil, "", fmt.Errorf("device has no outlet %d (%d outlets)", index, len(client.Outlets()))
	}

	return client, outlet, name, nil
}

// resolveClient builds a client from flags, environment variables, and
// the saved-device registry. args may carry an optional device name.
func resolveClient(args []string) (*wattbox.Client, string, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	host := deviceHost
	username := deviceUsername
	password := devicePassword
	area := deviceArea
	simulate := simulateOnly

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && host == "" && registry.Preferences != nil {
		name = registry.Preferences.DefaultDevice
	}

	if name != "" {
		device := registry.GetDevice(name)
		if device == nil {
			return nil, "", fmt.Errorf("no saved device named %q (see 'wattboxctl devices')", name)
		}
		if host == "" {
			host = device.Host
		}
		if username == "" {
			username = device.Username
		}
		if area == "" {
			area = device.Area
		}
		if device.Simulate {
			simulate = true
		}
	}

	if host == "" {
		host = os.Getenv("WATTBOX_HOSTNAME")
	}
	if host == "" {
		return nil, "", fmt.Errorf("no device specified (use a saved name, --host, or WATTBOX_HOSTNAME)")
	}

	if username == "" {
		username = os.Getenv("WATTBOX_USERNAME")
	}
	if username == "" && registry.Preferences != nil {
		username = registry.Preferences.DefaultUser
	}

	if password == "" {
		password = os.Getenv("WATTBOX_PASSWORD")
	}
	if password == "" {
		password, err = promptPassword(host)
		if err != nil {
			return nil, "", err
		}
	}

	client := wattbox.NewClient(host, username, password)
	client.Area = area
	client.SimulateOnly = simulate

	switch {
	case timeoutSeconds > 0:
		client.SetTimeout(time.Duration(timeoutSeconds) * time.Second)
	case registry.Preferences != nil && registry.Preferences.TimeoutSeconds > 0:
		client.SetTimeout(time.Duration(registry.Preferences.TimeoutSeconds) * time.Second)
	}

	return client, name, nil
}

// applyOutletLabels renames outlets from the registry's saved labels.
// Renames are local to this process; LoadStatus resets them.
func applyOutletLabels(client *wattbox.Client, name string) {
	if name == "" {
		return
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	device := registry.GetDevice(name)
	if device == nil {
		return
	}
	for index, label := range device.Outlets {
		if outlet := client.Outlet(index); outlet != nil {
			outlet.Rename(fmt.Sprintf("%s [%d]", label, index))
		}
	}
}

// recordLastSeen updates the registry after a successful round-trip.
// Best effort; failures to write the config file are not fatal.
func recordLastSeen(name, host string) {
	if name == "" {
		return
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	registry.UpdateDeviceLastSeen(name, host)
	_ = registry.Save()
}

// promptPassword interactively reads the device password.
func promptPassword(host string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password provided and stdin is not a terminal (use --password or WATTBOX_PASSWORD)")
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", host)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}
