package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sink is where results go: terminal lines always hit stdout, and CSV rows are
// additionally saved to the -o/--outfile file when one was requested.
//
// The file is created (or truncated) on the first Row, so a run that fails
// before producing data leaves an existing file untouched.
type Sink struct {
	stdout  io.Writer
	path    string
	file    *os.File
	writer  *csv.Writer
	written bool
	headers map[string]bool
}

// Open prepares a Sink without touching the filesystem.
//
// Parameters:
//   - path: output file name; "" or "none" means stdout only.
//   - stdout: destination of terminal lines.
//
// Returns:
//   - *Sink: ready for Line, Text and Row. File errors surface on the first Row.
func Open(path string, stdout io.Writer) *Sink {
	s := &Sink{stdout: stdout, headers: map[string]bool{}}
	if path != "" && path != "none" {
		s.path = path
	}
	return s
}

// Path returns the output file name once a row has been saved, "" otherwise.
func (s *Sink) Path() string {
	if !s.written {
		return ""
	}
	return s.path
}

// Line prints one line to stdout.
func (s *Sink) Line(line string) error {
	_, err := fmt.Fprintln(s.stdout, line)
	return err
}

// Text prints text to stdout as-is.
func (s *Sink) Text(text string) error {
	_, err := io.WriteString(s.stdout, text)
	return err
}

// Row saves a CSV row to the output file, preceded by header the first time that
// header is seen. Without an output file it is a no-op.
func (s *Sink) Row(header, row []string) error {
	if s.path == "" {
		return nil
	}
	if s.writer == nil {
		if s.written {
			return fmt.Errorf("write row: output file %s already closed", s.path)
		}
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		s.file = f
		s.writer = csv.NewWriter(f)
		s.written = true
	}

	key := strings.Join(header, ",")
	if !s.headers[key] {
		if err := s.writer.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		s.headers[key] = true
	}
	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Close flushes pending rows and closes the output file. It is safe to call
// more than once, and a no-op when no row was saved.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	s.writer.Flush()
	flushErr := s.writer.Error()
	closeErr := s.file.Close()
	s.file, s.writer = nil, nil
	if flushErr != nil {
		return fmt.Errorf("flush output file: %w", flushErr)
	}
	return closeErr
}
