package model

import "time"

// Tingkatan is a rank/level lookup value.
type Tingkatan struct {
	ID            string `json:"id" firestore:"-"`
	NamaTingkatan string `json:"nama_tingkatan" firestore:"nama_tingkatan"`
}

// TingkatanRequest is the payload for creating or renaming a tingkatan.
type TingkatanRequest struct {
	NamaTingkatan string `json:"nama_tingkatan" binding:"required,min=1,max=100"`
}

// JenisPenyakit is a disease-type catalog entry.
type JenisPenyakit struct {
	ID           string    `json:"id" firestore:"-"`
	NamaPenyakit string    `json:"nama_penyakit" firestore:"nama_penyakit"`
	Deskripsi    string    `json:"deskripsi" firestore:"deskripsi"`
	Tips         string    `json:"tips" firestore:"tips"`
	Antisipasi   []string  `json:"antisipasi" firestore:"antisipasi"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updated_at,omitempty"`
	Obat         []Obat    `json:"obat,omitempty" firestore:"-"`
}

// JenisPenyakitRequest is the payload for creating or updating a jenis penyakit.
type JenisPenyakitRequest struct {
	NamaPenyakit string   `json:"nama_penyakit" binding:"required,min=2,max=100"`
	Deskripsi    string   `json:"deskripsi" binding:"max=2000"`
	Tips         string   `json:"tips" binding:"max=2000"`
	Antisipasi   []string `json:"antisipasi" binding:"dive,max=500"`
}

// Obat is a medicine entry in the obat subcollection of a jenis penyakit.
type Obat struct {
	ID         string `json:"id" firestore:"-"`
	NamaObat   string `json:"nama_obat" firestore:"nama_obat"`
	Dosis      string `json:"dosis" firestore:"dosis"`
	Keterangan string `json:"keterangan" firestore:"keterangan"`
}

// ObatRequest is the payload for creating or updating an obat.
type ObatRequest struct {
	NamaObat   string `json:"nama_obat" binding:"required,min=1,max=100"`
	Dosis      string `json:"dosis" binding:"max=100"`
	Keterangan string `json:"keterangan" binding:"max=1000"`
}
