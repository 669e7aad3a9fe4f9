package scanning

import (
	"encoding/json"
	"fmt"
)

const exportIndent = "  "

// MarshalFindings encodes findings as an indented JSON array. A nil slice
// encodes as an empty array.
func MarshalFindings(findings []Finding) ([]byte, error) {
	if findings == nil {
		findings = []Finding{}
	}
	data, err := json.MarshalIndent(findings, "", exportIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal findings: %w", err)
	}
	return data, nil
}

// ExportFindings returns the current findings as JSON for a file download adapter.
func (e *Engine) ExportFindings() ([]byte, error) {
	return MarshalFindings(e.Snapshot().Findings)
}

// CopyFindings returns the current findings as JSON text for a clipboard adapter.
func (e *Engine) CopyFindings() (string, error) {
	data, err := e.ExportFindings()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
