package um

import (
	"context"
	"fmt"
	"log"
)

type state int

const (
	stateUninitialized state = iota
	stateRunning
	stateHalted
)

// handlerFn implements one opcode. It is free to mutate the engine's
// registers, heap and (for Load Program only) finger; it must not advance
// the finger itself for any other opcode — that is the loop's job.
type handlerFn func(*Engine, platter) error

// dispatch is built once at package initialization, shared by every Engine
// and never mutated afterward, so the table is fixed before any engine is
// constructed.
var dispatch = [opCount]handlerFn{
	opCondMove:     opCondMoveExec,
	opArrayIndex:   opArrayIndexExec,
	opArrayAmend:   opArrayAmendExec,
	opAdd:          opAddExec,
	opMul:          opMulExec,
	opDiv:          opDivExec,
	opNotAnd:       opNotAndExec,
	opHalt:         opHaltExec,
	opAlloc:        opAllocExec,
	opAbandon:      opAbandonExec,
	opOutput:       opOutputExec,
	opInput:        opInputExec,
	opLoadProgram:  opLoadProgramExec,
	opOrthography:  opOrthographyExec,
}

// Engine holds the entire machine state: registers, execution finger, the
// heap, and the console I/O endpoints. It runs single-threaded and
// synchronously; Run does not return until Halt, a fault, or cancellation
// of its context.
type Engine struct {
	regs   [8]platter
	finger int
	heap   *heap
	in     ByteSource
	out    ByteSink
	logger *log.Logger
	state  state
	halted bool
}

// New constructs an Engine reading from in and writing to out. logger may
// be nil, in which case faults are never logged (the caller still gets
// them as the Run return value).
func New(in ByteSource, out ByteSink, logger *log.Logger) *Engine {
	return &Engine{
		heap:   newHeap(),
		in:     in,
		out:    out,
		logger: logger,
		state:  stateUninitialized,
	}
}

// Boot installs program as array 0 and moves the engine to the Running
// state. It must be called exactly once, before Run; a second call panics,
// so a halted engine never returns to Running.
func (e *Engine) Boot(program []platter) {
	if e.state != stateUninitialized {
		panic("um: Boot called more than once")
	}
	e.heap.setZero(program)
	e.state = stateRunning
}

// Register returns the current value of register r, for tests and host
// diagnostics; r must be in [0,8).
func (e *Engine) Register(r int) platter {
	return e.regs[r]
}

// Finger returns the current execution finger.
func (e *Engine) Finger() int {
	return e.finger
}

// Run drives the fetch-decode-execute cycle until Halt (nil return) or a
// fault (non-nil *Fault return). ctx is checked once per fetch, giving a
// host a cooperative cancellation point without introducing any
// concurrency into the engine itself; a cancelled ctx ends the run with
// ctx.Err(), not a *Fault. Calling Run on an engine that is not Running
// returns a plain error.
func (e *Engine) Run(ctx context.Context) error {
	if e.state != stateRunning {
		return fmt.Errorf("um: Run called before Boot or after the engine halted")
	}

	for {
		select {
		case <-ctx.Done():
			e.state = stateHalted
			e.flush()
			return ctx.Err()
		default:
		}

		if e.finger < 0 || e.finger >= e.heap.length(0) {
			fault := newFault(FaultHeap, e.finger, 0, "execution finger %d out of range for array 0 (len %d)", e.finger, e.heap.length(0))
			e.state = stateHalted
			e.logFault(fault)
			e.flush()
			return fault
		}

		w := e.heap.read(0, platter(e.finger))
		op := opcode(w)
		if int(op) >= opCount {
			fault := newFault(FaultDecode, e.finger, w, "opcode %d out of range", op)
			e.state = stateHalted
			e.logFault(fault)
			e.flush()
			return fault
		}

		handler := dispatch[op]
		if err := handler(e, w); err != nil {
			e.state = stateHalted
			if fault, ok := err.(*Fault); ok {
				e.logFault(fault)
				e.flush()
				return fault
			}
			e.flush()
			return err
		}

		if e.halted {
			e.state = stateHalted
			if err := e.flush(); err != nil {
				return newFault(FaultIO, e.finger, w, "flushing output at halt: %s", err)
			}
			return nil
		}

		if op != opLoadProgram {
			e.finger++
		}
	}
}

// flush delivers whatever output bytes the program emitted before this
// exit, Halt or fault alike — spec.md §7 requires a faulting program's
// prior output to still be visible. Best-effort on fault paths: a flush
// error there is reported as a log line, not layered onto the fault
// that's already terminating the run.
func (e *Engine) flush() error {
	if e.out == nil {
		return nil
	}
	err := e.out.Flush()
	if err != nil && e.state == stateHalted && e.logger != nil {
		e.logger.Printf("um: error flushing output: %s", err)
	}
	return err
}

func (e *Engine) logFault(f *Fault) {
	if e.logger == nil {
		return
	}
	e.logger.Printf("%s", f.Error())
}
