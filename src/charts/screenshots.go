package charts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// WriteScreenshots renders the whole catalog headlessly and writes one PNG per chart into
// outDir. It returns the written paths in catalog order.
func WriteScreenshots(st *State, outDir string) ([]string, error) {
	defer logging.TimeTrack(time.Now(), "screenshots")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	var written []string
	for _, c := range catalog {
		img := c.Render(st)
		if img == nil {
			continue
		}
		var buf bytes.Buffer
		if err := EncodePNG(&buf, img); err != nil {
			return written, fmt.Errorf("png encode %s: %w", c.ID, err)
		}
		outPath := filepath.Join(outDir, c.ID+".png")
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		logging.Debugf("wrote %s", outPath)
		written = append(written, outPath)
	}
	logging.Infof("wrote %d charts to %s", len(written), outDir)
	return written, nil
}
