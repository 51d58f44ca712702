package model

import "time"

// FileDescriptor describes a file uploaded to the media provider.
type FileDescriptor struct {
	NamaFile     string `json:"nama_file" firestore:"nama_file" binding:"required,max=255"`
	FileURL      string `json:"file_url" firestore:"file_url" binding:"required,url"`
	PublicID     string `json:"public_id" firestore:"public_id" binding:"required"`
	ResourceType string `json:"resource_type" firestore:"resource_type"`
}

// DataUmum is a general informational document with attached files.
type DataUmum struct {
	ID        string           `json:"id" firestore:"-"`
	Judul     string           `json:"judul" firestore:"judul"`
	Deskripsi string           `json:"deskripsi" firestore:"deskripsi"`
	Files     []FileDescriptor `json:"files" firestore:"files"`
	CreatedBy string           `json:"created_by" firestore:"created_by"`
	CreatedAt time.Time        `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" firestore:"updated_at,omitempty"`
}

// DataUmumRequest is the payload for creating or replacing a data umum document.
type DataUmumRequest struct {
	Judul     string           `json:"judul" binding:"required,min=2,max=200"`
	Deskripsi string           `json:"deskripsi" binding:"max=5000"`
	Files     []FileDescriptor `json:"files" binding:"dive"`
}
