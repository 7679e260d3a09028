package phh

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/internal/runner"
)

// Writer saves every finished hand as <dir>/<table>-<session>-<hand>.phh.
// Hand numbers restart with each run, so the session keeps runs apart.
type Writer struct {
	dir     string
	table   string
	session string
	logger  *log.Logger
}

// NewWriter creates dir if needed
func NewWriter(dir, table, session string, logger *log.Logger) (*Writer, error) {
	if session == "" {
		return nil, fmt.Errorf("phh writer for table %q needs a session", table)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create hand directory: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{dir: dir, table: table, session: session, logger: logger.WithPrefix("phh")}, nil
}

func (w *Writer) handID(handNumber int) string {
	return fmt.Sprintf("%s-%s-%05d", w.table, w.session, handNumber)
}

// Path returns the file a hand is written to
func (w *Writer) Path(handNumber int) string {
	return filepath.Join(w.dir, w.handID(handNumber)+".phh")
}

// Observe writes the hand; it satisfies runner.Observer
func (w *Writer) Observe(_ context.Context, h *runner.HandSummary) error {
	hand := FromHand(h, w.table)
	hand.HandID = w.handID(h.HandNumber)
	path := w.Path(h.HandNumber)
	err := fileutil.WriteAtomic(path, 0o644, func(out io.Writer) error {
		return Encode(out, hand)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Debug("Wrote hand history", "path", path)
	return nil
}
