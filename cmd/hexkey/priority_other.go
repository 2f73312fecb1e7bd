//go:build !windows

package main

// On non-Windows systems, process priority is typically set via:
// - nice/renice commands on Linux/macOS
// - Running as: nice -n -20 hexkey vanity ... (highest priority)
func raisePriority() error {
	return nil
}
