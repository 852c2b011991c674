package handler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileHandler reads notes from a vault directory.
type FileHandler struct {
	vaultDir string
}

func NewFileHandler(vaultDir string) *FileHandler {
	return &FileHandler{vaultDir: vaultDir}
}

// WalkFiles lists the markdown notes of the vault. Hidden files and
// directories are skipped, as are directories named in excludeDirs
// (relative to the vault root).
func (h *FileHandler) WalkFiles(excludeDirs []string) ([]string, error) {
	var files []string

	excluded := make(map[string]struct{}, len(excludeDirs))
	for _, d := range excludeDirs {
		excluded[filepath.Clean(filepath.Join(h.vaultDir, d))] = struct{}{}
	}

	err := filepath.WalkDir(
		h.vaultDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			name := d.Name()
			if d.IsDir() {
				if path == h.vaultDir {
					return nil
				}
				if _, skip := excluded[filepath.Clean(path)]; skip || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(name, ".") || filepath.Ext(name) != ".md" {
				return nil
			}

			files = append(files, path)
			return nil
		},
	)

	return files, err
}

// ReadNote returns the full text of a note.
func (h *FileHandler) ReadNote(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note %s: %w", path, err)
	}
	return string(content), nil
}

// ReadLines returns lines from through to (1-based, inclusive) of a note.
// to is clamped to the last line.
func (h *FileHandler) ReadLines(path string, from, to int) (string, error) {
	content, err := h.ReadNote(path)
	if err != nil {
		return "", err
	}
	return SliceLines(content, from, to)
}

// SliceLines cuts a 1-based inclusive line range out of content, keeping
// the line endings of the selected lines.
func SliceLines(content string, from, to int) (string, error) {
	if from < 1 || to < from {
		return "", fmt.Errorf("invalid line range %d-%d", from, to)
	}

	lines := strings.SplitAfter(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if from > len(lines) {
		return "", fmt.Errorf("line %d is past the end of the note (%d lines)", from, len(lines))
	}
	if to > len(lines) {
		to = len(lines)
	}
	return strings.Join(lines[from-1:to], ""), nil
}
