package fileutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var filenameReplacer = strings.NewReplacer(
	":", " -",
	"/", "-",
	"\\", "-",
	"?", "",
	"*", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "-",
)

// SanitizeFilename makes a book title safe to use as a file name.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(filenameReplacer.Replace(name))
	if name == "" {
		return "untitled"
	}
	return name
}

// GetMarkdownFilePath returns the note path for title inside directory.
func GetMarkdownFilePath(title string, directory string) string {
	return filepath.Join(directory, SanitizeFilename(title)+".md")
}

// FileExists reports whether a regular file exists at filePath.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileWithOverwrite writes data, creating parent directories. It returns
// false without writing when the file exists and overwrite is false.
func WriteFileWithOverwrite(filePath string, data []byte, perm os.FileMode, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, perm); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}

	return true, nil
}

// WriteJSONFile writes data as indented JSON, respecting overwrite.
func WriteJSONFile(data any, filePath string, overwrite bool) (bool, error) {
	if FileExists(filePath) && !overwrite {
		slog.Info("JSON file already exists, skipping", "filename", filePath)
		return false, nil
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	slog.Info("Writing JSON file", "filename", filePath)
	return WriteFileWithOverwrite(filePath, jsonData, 0644, true)
}
