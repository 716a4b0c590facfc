package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pianorhythm/changelog-publisher/internal/pagination"
)

// IndexItem is one entry of the listing index handed to the site renderer.
type IndexItem struct {
	Permalink    string   `json:"permalink"`
	File         string   `json:"file"`
	Version      string   `json:"version"`
	Date         string   `json:"date"`
	Tags         []string `json:"tags"`
	Authors      []string `json:"authors"`
	ListPageLink string   `json:"listPageLink"`
}

// BuildIndex converts a listing into index items, keeping its order.
func BuildIndex(listing []pagination.Annotated) []IndexItem {
	items := make([]IndexItem, 0, len(listing))
	for _, a := range listing {
		authors := a.Authors
		if authors == nil {
			authors = []string{}
		}
		items = append(items, IndexItem{
			Permalink:    a.Permalink,
			File:         a.File,
			Version:      a.Version,
			Date:         a.Date,
			Tags:         a.Tags,
			Authors:      authors,
			ListPageLink: a.ListPageLink,
		})
	}
	return items
}

// WriteIndex writes the listing index to path through a temp file and rename.
func WriteIndex(path string, listing []pagination.Annotated) error {
	data, err := json.MarshalIndent(BuildIndex(listing), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return atomicWriteToFile(path, append(data, '\n'))
}

func atomicWriteToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
