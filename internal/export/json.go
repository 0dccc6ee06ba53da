package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wonny/insight/internal/contracts"
)

// ExportJSON writes profiles to an indented JSON file and returns its
// path.
func (e *Exporter) ExportJSON(profiles []contracts.CustomerProfile, name string) (string, error) {
	path, err := e.ensureDir(name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profiles); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	e.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(profiles),
	}).Info("JSON export completed")

	return path, nil
}
