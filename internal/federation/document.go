package federation

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

const (
	MaxDocumentBytes = 10 * 1024 * 1024
	MaxMediaBytes    = 5 * 1024 * 1024

	bytesPerMB = 1024 * 1024
)

type DocumentItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title" validate:"required"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Size     string `json:"size"`
	Date     string `json:"date"`
	URL      string `json:"url,omitempty"`
}

func (d DocumentItem) Key() int { return d.ID }

func (d DocumentItem) WithNumericID(id int) DocumentItem {
	d.ID = id
	return d
}

// DocumentSizeLabel renders a byte count the way the public documents list
// shows it: whole kilobytes below one megabyte, otherwise megabytes with one
// decimal.
func DocumentSizeLabel(size int64) string {
	if size < bytesPerMB {
		return fmt.Sprintf("%d KB", int64(math.Round(float64(size)/1024)))
	}
	mb := math.Round(float64(size)/bytesPerMB*10) / 10
	return fmt.Sprintf("%.1f MB", mb)
}

// DocumentTypeLabel is the upper-cased filename extension, or FILE when the
// name has none.
func DocumentTypeLabel(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "FILE"
	}
	return strings.ToUpper(ext)
}
