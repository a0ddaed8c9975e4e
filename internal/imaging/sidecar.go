package imaging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SidecarName is the per-site crop override file stored alongside assets.
const SidecarName = "logo-crop-params.json"

type sidecarEntry struct {
	Crop        string `json:"crop"`
	Description string `json:"description"`
}

// loadSidecarCrop reads the crop override sidecar in dir, if any, and
// returns the rectangle of its highest-versioned entry. Versions are keys
// of the form v1, v2, ...; non-conforming keys are ignored.
func loadSidecarCrop(dir string) (Rect, string, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, SidecarName))
	if err != nil {
		if os.IsNotExist(err) {
			return Rect{}, "", false, nil
		}
		return Rect{}, "", false, fmt.Errorf("read crop sidecar: %w", err)
	}

	var entries map[string]sidecarEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return Rect{}, "", false, fmt.Errorf("decode crop sidecar: %w", err)
	}

	bestVersion := -1
	bestKey := ""
	for key := range entries {
		if !strings.HasPrefix(key, "v") {
			continue
		}
		n, err := strconv.Atoi(key[1:])
		if err != nil {
			continue
		}
		if n > bestVersion {
			bestVersion = n
			bestKey = key
		}
	}

	if bestVersion < 0 {
		return Rect{}, "", false, nil
	}

	rect, err := ParseRect(entries[bestKey].Crop)
	if err != nil {
		return Rect{}, "", false, fmt.Errorf("crop sidecar %s: %w", bestKey, err)
	}
	return rect, bestKey, true, nil
}
