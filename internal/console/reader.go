package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/NikitaCOEUR/devcmd/internal/logger"
)

// LineReader reads console lines. Implementations return io.EOF when input
// ends and liner.ErrPromptAborted when the user aborts a line.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// newLineReader returns a liner editor when both ends are terminals and a
// plain scanner otherwise, so piped input still works
func newLineReader(in io.Reader, out io.Writer, completer liner.WordCompleter, historyFile string, log *logger.Logger) LineReader {
	if fi, ok := in.(*os.File); ok {
		if fo, ok := out.(*os.File); ok {
			if isatty.IsTerminal(fi.Fd()) && isatty.IsTerminal(fo.Fd()) {
				return newLinerReader(completer, historyFile, log)
			}
		}
	}
	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", err
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scannerReader) AppendHistory(string) {}
func (s *scannerReader) Close() error         { return nil }

type linerReader struct {
	state       *liner.State
	historyFile string
	log         *logger.Logger
}

func newLinerReader(completer liner.WordCompleter, historyFile string, log *logger.Logger) *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetWordCompleter(completer)

	r := &linerReader{state: state, historyFile: historyFile, log: log}
	r.loadHistory()
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	return r.state.Prompt(prompt)
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	r.saveHistory()
	return r.state.Close()
}

func (r *linerReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	n, err := r.state.ReadHistory(f)
	if err != nil {
		r.log.Warn().Str("file", r.historyFile).Err(err).Msg("Failed to read history")
		return
	}
	r.log.Debug().Str("file", r.historyFile).Int("entries", n).Msg("Loaded history")
}

func (r *linerReader) saveHistory() {
	if r.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0755); err != nil {
		r.log.Warn().Str("file", r.historyFile).Err(err).Msg("Failed to create history directory")
		return
	}

	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		r.log.Warn().Str("file", r.historyFile).Err(err).Msg("Failed to open history file")
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := r.state.WriteHistory(f); err != nil {
		r.log.Warn().Str("file", r.historyFile).Err(err).Msg("Failed to write history")
	}
}
