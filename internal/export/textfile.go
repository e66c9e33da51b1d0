package export

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sweeney/psu-debug/internal/status"
)

// Textfile rewrites a Prometheus textfile from the tracker on request.
type Textfile struct {
	path     string
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// NewTextfile creates a writer for path over tracker's snapshots.
func NewTextfile(path string, tracker *status.Tracker, logger *zap.Logger) *Textfile {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(tracker))
	return &Textfile{path: path, gatherer: reg, logger: logger}
}

// Write renders the current snapshot to the file. The file is replaced
// atomically, so readers never see a partial write.
func (t *Textfile) Write() error {
	if err := prometheus.WriteToTextfile(t.path, t.gatherer); err != nil {
		return fmt.Errorf("write textfile %s: %w", t.path, err)
	}
	return nil
}

// Run writes the file each time notify fires, until ctx is done. Write
// errors are logged and do not stop the loop.
func (t *Textfile) Run(ctx context.Context, notify <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-notify:
			if err := t.Write(); err != nil {
				t.logger.Warn("textfile export failed", zap.Error(err))
			}
		}
	}
}
