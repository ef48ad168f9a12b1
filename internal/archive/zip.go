package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"regwatch/internal/models"
)

// Extract opens a ZIP archive held in memory and returns its entry names in
// archive order together with each entry's content. Directory entries are
// skipped.
func Extract(data []byte) ([]string, map[string][]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	var names []string
	contents := make(map[string][]byte)
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open zip entry '%s': %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read zip entry '%s': %w", file.Name, err)
		}
		names = append(names, file.Name)
		contents[file.Name] = content
	}
	return names, contents, nil
}

// FindMetadata locates the archive's metadata_* entry and parses it. An
// archive carries at most one metadata file, applied to every PDF in it.
// A missing or malformed metadata file yields nil; downstream report fields
// then fall back to "N/A".
func FindMetadata(names []string, contents map[string][]byte) *models.ArchiveMetadata {
	for _, name := range names {
		if !IsMetadataEntry(name) {
			continue
		}
		var meta models.ArchiveMetadata
		if err := json.Unmarshal(contents[name], &meta); err != nil {
			return nil
		}
		return &meta
	}
	return nil
}

// IsMetadataEntry reports whether a zip entry is the archive's metadata file,
// identified by its basename starting with "metadata_". Other .json entries
// are regular documents.
func IsMetadataEntry(name string) bool {
	base := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		base = name[i+1:]
	}
	return strings.HasPrefix(base, "metadata_")
}
