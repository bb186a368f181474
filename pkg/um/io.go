package um

import (
	"bufio"
	"errors"
	"io"
)

// ByteSource is the single-byte contract opcode 11 (Input) reads against.
// ReadByte returns io.EOF, and only io.EOF, once the stream is exhausted.
type ByteSource interface {
	ReadByte() (byte, error)
}

// ByteSink is the single-byte contract opcode 10 (Output) writes against.
type ByteSink interface {
	WriteByte(byte) error
	Flush() error
}

// bufferedSink adapts any io.Writer into a ByteSink, buffering writes and
// guaranteeing everything observable is flushed before Halt/fault returns
// to the caller.
type bufferedSink struct {
	w *bufio.Writer
}

// newBufferedSink wraps w. If mirror is non-nil, every byte is also
// written to mirror (the CLI's optional -o tee); mirror sits behind the
// same buffer as w, so both receive the bytes together on each flush.
func newBufferedSink(w io.Writer, mirror io.Writer) ByteSink {
	if mirror != nil {
		w = io.MultiWriter(w, mirror)
	}
	return &bufferedSink{w: bufio.NewWriter(w)}
}

func (s *bufferedSink) WriteByte(b byte) error {
	return s.w.WriteByte(b)
}

func (s *bufferedSink) Flush() error {
	return s.w.Flush()
}

// bufferedSource adapts any io.Reader into a ByteSource.
type bufferedSource struct {
	r *bufio.Reader
}

func newBufferedSource(r io.Reader) ByteSource {
	return &bufferedSource{r: bufio.NewReader(r)}
}

func (s *bufferedSource) ReadByte() (byte, error) {
	return s.r.ReadByte()
}

// isEOF reports whether err represents end of input, the only error
// Input is specified to handle by producing the all-ones platter rather
// than faulting.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
