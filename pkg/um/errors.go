package um

import "fmt"

// FaultKind categorizes why the machine stopped without a clean Halt.
type FaultKind int

const (
	FaultImage FaultKind = iota
	FaultDecode
	FaultArithmetic
	FaultHeap
	FaultIO
)

func (k FaultKind) String() string {
	switch k {
	case FaultImage:
		return "image"
	case FaultDecode:
		return "decode"
	case FaultArithmetic:
		return "arithmetic"
	case FaultHeap:
		return "heap"
	case FaultIO:
		return "io"
	default:
		return "unknown"
	}
}

// Fault is the single error type the engine returns for every fault:
// malformed images, out-of-range opcodes, division by zero, heap misuse
// and I/O errors. Halt is reported as a nil error, never as a Fault; a
// cancelled Run context is reported as ctx.Err(), and Run on an engine
// that is not Running returns a plain error.
type Fault struct {
	Kind   FaultKind
	Op     platter // raw instruction word; zero for load-time faults
	Finger int     // execution finger at the time of the fault
	Msg    string
}

func (f *Fault) Error() string {
	if f.Op == 0 && f.Kind == FaultImage {
		return fmt.Sprintf("%s fault: %s", f.Kind, f.Msg)
	}
	return fmt.Sprintf("%s fault at finger %d (instruction 0x%08X): %s", f.Kind, f.Finger, f.Op, f.Msg)
}

func newFault(kind FaultKind, finger int, op platter, format string, args ...any) *Fault {
	return &Fault{
		Kind:   kind,
		Op:     op,
		Finger: finger,
		Msg:    fmt.Sprintf(format, args...),
	}
}
