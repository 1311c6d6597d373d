package garbage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iterum-provenance/dbt-runner/logging"
)

// Collector is responsible for clearing the packages fetched into the download
// directory once they are no longer needed
type Collector struct {
	Folder string
	log    logging.Logger
}

// NewCollector instantiates a Collector for folder
func NewCollector(folder string, logger logging.Logger) Collector {
	return Collector{
		Folder: folder,
		log:    logger,
	}
}

// Collect deletes every entry of the folder, keeping the folder itself.
// A folder that does not exist has nothing to collect. The first failed
// deletion aborts the collection.
func (collector Collector) Collect() error {
	startTime := time.Now()
	entries, err := os.ReadDir(collector.Folder)
	if os.IsNotExist(err) {
		collector.log.Infof("Download directory '%v' does not exist, nothing to clean up", collector.Folder)
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not list '%v': %w", collector.Folder, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(collector.Folder, entry.Name())
		if err := os.RemoveAll(entryPath); err != nil {
			collector.log.Errorf("Failed to delete %v. Reason: %v", entryPath, err)
			return fmt.Errorf("failed to delete '%v': %w", entryPath, err)
		}
	}
	collector.log.Infof("Removed %v downloaded package entries in %v", len(entries), time.Since(startTime))
	return nil
}
