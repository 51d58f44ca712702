package model

import "time"

// DataMateri is a fitness test measurement record.
type DataMateri struct {
	ID               string    `json:"id" firestore:"-"`
	PesertaID        string    `json:"peserta_id" firestore:"peserta_id"`
	TinggiBadan      float64   `json:"tinggi_badan" firestore:"tinggi_badan"`
	BeratBadan       float64   `json:"berat_badan" firestore:"berat_badan"`
	IndexMasaTubuh   float64   `json:"index_masa_tubuh" firestore:"index_masa_tubuh"`
	VO2Max           float64   `json:"vo2max" firestore:"vo2max"`
	Lari12Menit      float64   `json:"lari_12_menit" firestore:"lari_12_menit"`
	PushUpMnt        int       `json:"push_up_mnt" firestore:"push_up_mnt"`
	SitUpMnt         int       `json:"sit_up_mnt" firestore:"sit_up_mnt"`
	PullUpMnt        int       `json:"pull_up_mnt" firestore:"pull_up_mnt"`
	ShuttleRun       float64   `json:"shuttle_run" firestore:"shuttle_run"`
	TanggalPengujian string    `json:"tanggal_pengujian" firestore:"tanggal_pengujian"`
	AdminID          string    `json:"admin_id" firestore:"admin_id"`
	CreatedAt        time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" firestore:"updated_at,omitempty"`
}

// DataMateriRequest is the payload for creating or updating a fitness test record.
type DataMateriRequest struct {
	PesertaID        string  `json:"peserta_id" binding:"required"`
	TinggiBadan      float64 `json:"tinggi_badan" binding:"gte=0,lte=300"`
	BeratBadan       float64 `json:"berat_badan" binding:"gte=0,lte=500"`
	IndexMasaTubuh   float64 `json:"index_masa_tubuh" binding:"gte=0"`
	VO2Max           float64 `json:"vo2max" binding:"gte=0"`
	Lari12Menit      float64 `json:"lari_12_menit" binding:"gte=0"`
	PushUpMnt        int     `json:"push_up_mnt" binding:"gte=0"`
	SitUpMnt         int     `json:"sit_up_mnt" binding:"gte=0"`
	PullUpMnt        int     `json:"pull_up_mnt" binding:"gte=0"`
	ShuttleRun       float64 `json:"shuttle_run" binding:"gte=0"`
	TanggalPengujian string  `json:"tanggal_pengujian" binding:"required,datetime=2006-01-02"`
}

// DataPenyakit is a disease/lab result record for a user.
type DataPenyakit struct {
	ID                 string    `json:"id" firestore:"-"`
	UserID             string    `json:"user_id" firestore:"user_id"`
	JenisPenyakitID    string    `json:"jenis_penyakit_id" firestore:"jenis_penyakit_id"`
	NamaPenyakit       string    `json:"nama_penyakit" firestore:"nama_penyakit"`
	HasilPemeriksaan   float64   `json:"hasil_pemeriksaan" firestore:"hasil_pemeriksaan"`
	Satuan             string    `json:"satuan" firestore:"satuan"`
	Status             string    `json:"status" firestore:"status"`
	Keterangan         string    `json:"keterangan" firestore:"keterangan"`
	TanggalPemeriksaan string    `json:"tanggal_pemeriksaan" firestore:"tanggal_pemeriksaan"`
	AdminID            string    `json:"admin_id" firestore:"admin_id"`
	CreatedAt          time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" firestore:"updated_at,omitempty"`
}

// DataPenyakitRequest is the payload for creating or updating a disease record.
// Status is derived server-side and cannot be supplied.
type DataPenyakitRequest struct {
	UserID             string  `json:"user_id" binding:"required"`
	JenisPenyakitID    string  `json:"jenis_penyakit_id" binding:"required"`
	HasilPemeriksaan   float64 `json:"hasil_pemeriksaan" binding:"gte=0"`
	Satuan             string  `json:"satuan" binding:"max=20"`
	Keterangan         string  `json:"keterangan" binding:"max=2000"`
	TanggalPemeriksaan string  `json:"tanggal_pemeriksaan" binding:"required,datetime=2006-01-02"`
}

// RecordFilter narrows record listings. Empty fields are ignored.
type RecordFilter struct {
	UserID          string
	JenisPenyakitID string
}
