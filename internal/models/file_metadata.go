package models

import (
	"time"
)

// FileMetadata describes a stored document of the "file formats" area.
// Category and display icon are never stored; they are derived from Name on read.
type FileMetadata struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ObjectName  string      `json:"object_name"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Metadata    *ObjectInfo `json:"metadata,omitempty"`
	UploadedBy  string      `json:"uploaded_by,omitempty"`
	ScanStatus  string      `json:"scan_status,omitempty"`
	ScannedAt   *time.Time  `json:"scanned_at,omitempty"`
}

// ObjectInfo is the storage-side information about a file.
type ObjectInfo struct {
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// Size returns the byte size, or 0 when no metadata was attached.
func (f FileMetadata) Size() int64 {
	if f.Metadata == nil {
		return 0
	}
	return f.Metadata.Size
}
