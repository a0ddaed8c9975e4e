package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	forgeerrors "github.com/forgesite/forgesite/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseWizardInput loads a wizard submission from disk. The format is
// chosen by extension: .yaml/.yml documents are decoded as YAML, anything
// else as JSON (the wizard UI posts JSON).
func ParseWizardInput(path string) (*WizardInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, forgeerrors.NewParseError(path, 0, err)
	}

	var in WizardInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &in); err != nil {
			return nil, forgeerrors.NewParseError(path, extractLine(err), err)
		}
	default:
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, forgeerrors.NewParseError(path, 0, err)
		}
	}

	return &in, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
