package um

// Each handler below implements exactly one row of spec.md §4.2's opcode
// table. A handler returns a non-nil *Fault to stop the engine; a nil
// return means the instruction completed and the caller should advance
// (or, for Load Program, has already re-seated) the execution finger;
// Halt also returns nil, after setting e.halted, and the loop then stops
// without advancing.

func opCondMoveExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	if e.regs[c] != 0 {
		e.regs[a] = e.regs[b]
	}
	return nil
}

func opArrayIndexExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	arr := e.regs[b]
	if !e.heap.active(arr) {
		return e.heapFault(w, "array index: id %d is not active", arr)
	}
	offset := e.regs[c]
	if int(offset) >= e.heap.length(arr) {
		return e.heapFault(w, "array index: offset %d out of range for array %d (len %d)", offset, arr, e.heap.length(arr))
	}
	e.regs[a] = e.heap.read(arr, offset)
	return nil
}

func opArrayAmendExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	arr := e.regs[a]
	if !e.heap.active(arr) {
		return e.heapFault(w, "array amendment: id %d is not active", arr)
	}
	offset := e.regs[b]
	if int(offset) >= e.heap.length(arr) {
		return e.heapFault(w, "array amendment: offset %d out of range for array %d (len %d)", offset, arr, e.heap.length(arr))
	}
	e.heap.write(arr, offset, e.regs[c])
	return nil
}

func opAddExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	e.regs[a] = e.regs[b] + e.regs[c]
	return nil
}

func opMulExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	e.regs[a] = e.regs[b] * e.regs[c]
	return nil
}

func opDivExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	if e.regs[c] == 0 {
		return newFault(FaultArithmetic, e.finger, w, "division by register %d, which holds 0", c)
	}
	e.regs[a] = e.regs[b] / e.regs[c]
	return nil
}

func opNotAndExec(e *Engine, w platter) error {
	a, b, c := fieldA(w), fieldB(w), fieldC(w)
	e.regs[a] = ^(e.regs[b] & e.regs[c])
	return nil
}

func opHaltExec(e *Engine, w platter) error {
	e.halted = true
	return nil
}

func opAllocExec(e *Engine, w platter) error {
	b, c := fieldB(w), fieldC(w)
	e.regs[b] = e.heap.allocate(e.regs[c])
	return nil
}

func opAbandonExec(e *Engine, w platter) error {
	c := fieldC(w)
	id := e.regs[c]
	if id == 0 {
		return e.heapFault(w, "abandonment: array 0 may never be abandoned")
	}
	if !e.heap.active(id) {
		return e.heapFault(w, "abandonment: id %d is already free", id)
	}
	e.heap.abandon(id)
	return nil
}

func opOutputExec(e *Engine, w platter) error {
	c := fieldC(w)
	v := e.regs[c]
	if v > 0xFF {
		return newFault(FaultIO, e.finger, w, "output value %d out of byte range", v)
	}
	if err := e.out.WriteByte(byte(v)); err != nil {
		return newFault(FaultIO, e.finger, w, "writing output: %s", err)
	}
	return nil
}

func opInputExec(e *Engine, w platter) error {
	c := fieldC(w)
	b, err := e.in.ReadByte()
	if err != nil {
		if isEOF(err) {
			e.regs[c] = platterMax
			return nil
		}
		return newFault(FaultIO, e.finger, w, "reading input: %s", err)
	}
	e.regs[c] = platter(b)
	return nil
}

func opLoadProgramExec(e *Engine, w platter) error {
	b, c := fieldB(w), fieldC(w)
	src := e.regs[b]
	if src != 0 {
		if !e.heap.active(src) {
			return e.heapFault(w, "load program: id %d is not active", src)
		}
		e.heap.replaceZero(src)
	}
	e.finger = int(e.regs[c])
	return nil
}

func opOrthographyExec(e *Engine, w platter) error {
	reg, imm := orthography(w)
	e.regs[reg] = imm
	return nil
}

// heapFault builds a FaultHeap anchored to the instruction currently
// executing; every heap-touching handler above funnels its access errors
// through here so the reported finger/op always match the faulting step.
func (e *Engine) heapFault(w platter, format string, args ...any) *Fault {
	return newFault(FaultHeap, e.finger, w, format, args...)
}
