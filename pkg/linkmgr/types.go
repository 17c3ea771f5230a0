// Package linkmgr implements the link-state transition engine: resolving
// device/interface display names to provider IDs, suspending and resuming
// link endpoints through the unl_wrapper command, flap sequences, and
// batch processing of transition requests.
package linkmgr

import "fmt"

// Op is a link-state operation.
type Op string

const (
	OpSuspend Op = "suspend"
	OpResume  Op = "resume"
	OpFlap    Op = "flap"
)

// Valid reports whether op is one of the supported operations.
func (op Op) Valid() bool {
	switch op {
	case OpSuspend, OpResume, OpFlap:
		return true
	}
	return false
}

// wrapperAction returns the unl_wrapper -a action for a transition op.
// OpFlap has no single action; it is a sequence of the other two.
func (op Op) wrapperAction() (string, bool) {
	switch op {
	case OpSuspend:
		return "suspendlink", true
	case OpResume:
		return "resumelink", true
	}
	return "", false
}

// Past returns the past tense used in result messages.
func (op Op) Past() string {
	switch op {
	case OpSuspend:
		return "suspended"
	case OpResume:
		return "resumed"
	case OpFlap:
		return "flapped"
	}
	return string(op)
}

// Endpoint is one side of a link: a provider device ID plus the interface's
// local ID within that device. IDs are only valid within the lab session
// that produced them.
type Endpoint struct {
	DeviceID    string
	InterfaceID string
}

func (ep Endpoint) String() string {
	return fmt.Sprintf("device %s interface %s", ep.DeviceID, ep.InterfaceID)
}

// Result is the outcome of one transition-level operation. Operations
// return exactly one Result and never panic past their boundary.
type Result struct {
	OK      bool
	Message string
}

func success(format string, args ...any) Result {
	return Result{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Result {
	return Result{OK: false, Message: fmt.Sprintf(format, args...)}
}
