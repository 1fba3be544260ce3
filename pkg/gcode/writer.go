package gcode

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrWriteFailure indicates the program could not be written to the
// output file. The underlying OS error is wrapped alongside it.
var ErrWriteFailure = errors.New("cannot write output file")

// WriteFile renders the program and writes it to path, truncating any
// existing file.
func (p *Program) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Warnf("failed to close %s: %v", path, err)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := p.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	logrus.Debugf("wrote %d lines to %s", p.Len(), path)

	return nil
}
