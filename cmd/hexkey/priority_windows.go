//go:build windows

package main

import (
	"syscall"
	"unsafe"
)

// Windows priority classes
const (
	highPriorityClass        = 0x00000080
	aboveNormalPriorityClass = 0x00008000

	// ProcessPowerThrottling information class and its execution speed flag.
	processPowerThrottling        = 4
	powerThrottlingExecutionSpeed = 0x1
	powerThrottlingCurrentVersion = 1
)

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procGetCurrentProcess     = kernel32.NewProc("GetCurrentProcess")
	procSetPriorityClass      = kernel32.NewProc("SetPriorityClass")
	procSetProcessInformation = kernel32.NewProc("SetProcessInformation")
)

// raisePriority moves the search to high priority (falling back to above
// normal) and opts out of Efficiency Mode throttling.
func raisePriority() error {
	if err := setPriorityClass(highPriorityClass); err != nil {
		if err := setPriorityClass(aboveNormalPriorityClass); err != nil {
			return err
		}
	}
	return disablePowerThrottling()
}

func setPriorityClass(class uintptr) error {
	handle, _, _ := procGetCurrentProcess.Call()

	// REALTIME_PRIORITY_CLASS is never used, it can freeze the system.
	ret, _, err := procSetPriorityClass.Call(handle, class)
	if ret == 0 {
		return err
	}
	return nil
}

// disablePowerThrottling is available on Windows 10 1709+ and Windows 11.
func disablePowerThrottling() error {
	if err := procSetProcessInformation.Find(); err != nil {
		return err
	}

	type powerThrottlingState struct {
		Version     uint32
		ControlMask uint32
		StateMask   uint32
	}
	state := powerThrottlingState{
		Version:     powerThrottlingCurrentVersion,
		ControlMask: powerThrottlingExecutionSpeed,
		StateMask:   0, // 0 = disable throttling
	}

	handle, _, _ := procGetCurrentProcess.Call()
	ret, _, err := procSetProcessInformation.Call(
		handle,
		processPowerThrottling,
		uintptr(unsafe.Pointer(&state)),
		unsafe.Sizeof(state),
	)
	if ret == 0 {
		return err
	}
	return nil
}
