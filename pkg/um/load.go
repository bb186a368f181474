package um

import (
	"io"
	"log"
)

// Load reads a program image from imageSrc and returns a booted Engine
// ready for Run, wired to console (input, output) and, if mirror is
// non-nil, additionally teeing output bytes to it. logger may be nil.
func Load(imageSrc io.Reader, console io.Reader, output io.Writer, mirror io.Writer, logger *log.Logger) (*Engine, error) {
	program, err := loadImage(imageSrc)
	if err != nil {
		return nil, err
	}

	engine := New(newBufferedSource(console), newBufferedSink(output, mirror), logger)
	engine.Boot(program)
	return engine, nil
}
