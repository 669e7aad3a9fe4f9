// Package export writes scan findings to disk for download and archival.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anstrom/portsim/internal/errors"
)

const (
	filePrefix = "portscan"
	fileExt    = ".json"
	fileMode   = 0o644
	dirMode    = 0o755
)

// Filename returns the download name for an export of target taken at t,
// e.g. portscan-192.168.1.1-1700000000000.json.
func Filename(target string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%d%s", filePrefix, sanitize(target), t.UnixMilli(), fileExt)
}

// sanitize maps characters that are unsafe in file names (IPv6 colons, path
// separators) to underscores.
func sanitize(target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return "scan"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, target)
}

// Resolve returns the file path an export to dest should use. An empty dest or
// an existing directory receives the default file name.
func Resolve(dest, target string, t time.Time) string {
	name := Filename(target, t)
	if dest == "" {
		return name
	}
	if strings.HasSuffix(dest, string(os.PathSeparator)) {
		return filepath.Join(dest, name)
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, name)
	}
	return dest
}

// WriteFile writes data to the path Resolve picks for dest and returns it.
func WriteFile(dest, target string, data []byte, t time.Time) (string, error) {
	path := Resolve(dest, target, t)
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return "", errors.WrapExportError("failed to create export directory", path, err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return "", errors.WrapExportError("failed to write export file", path, err)
	}
	return path, nil
}
