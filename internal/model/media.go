package model

import "time"

// UploadResult mirrors the media provider's upload response fields.
type UploadResult struct {
	AssetID          string    `json:"asset_id,omitempty"`
	PublicID         string    `json:"public_id"`
	Version          int       `json:"version,omitempty"`
	Signature        string    `json:"signature,omitempty"`
	Width            int       `json:"width,omitempty"`
	Height           int       `json:"height,omitempty"`
	Format           string    `json:"format,omitempty"`
	ResourceType     string    `json:"resource_type"`
	CreatedAt        time.Time `json:"created_at"`
	Bytes            int       `json:"bytes"`
	Type             string    `json:"type,omitempty"`
	URL              string    `json:"url"`
	SecureURL        string    `json:"secure_url"`
	Folder           string    `json:"folder,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty"`
}

// Descriptor converts an upload result into the descriptor stored on documents.
func (r *UploadResult) Descriptor(filename string) FileDescriptor {
	return FileDescriptor{
		NamaFile:     filename,
		FileURL:      r.SecureURL,
		PublicID:     r.PublicID,
		ResourceType: r.ResourceType,
	}
}

// DeleteMediaRequest is the relay delete payload. public_id is checked by the
// handler so a missing value maps to the relay's own error code.
type DeleteMediaRequest struct {
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

// OrphanAsset is a provider asset whose best-effort delete failed and is
// waiting for a retry.
type OrphanAsset struct {
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Attempts     int    `json:"attempts"`
	QueuedAt     int64  `json:"queued_at"`
}
