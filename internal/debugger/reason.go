package debugger

import "fmt"

// HaltReason describes why the controller stopped automatic stepping.
type HaltReason uint8

const (
	NoHalt HaltReason = iota
	BreakpointHit
	TimeoutExpired
	StepComplete
	UserPause
	ResetRequested
)

var reasonNames = map[HaltReason]string{
	NoHalt:         "none",
	BreakpointHit:  "breakpoint",
	TimeoutExpired: "timeout",
	StepComplete:   "step complete",
	UserPause:      "paused",
	ResetRequested: "reset",
}

func (r HaltReason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", r)
}
