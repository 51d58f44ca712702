package model

import "time"

// Foto is a profile photo hosted on the media provider.
type Foto struct {
	URL      string `json:"url" firestore:"url"`
	PublicID string `json:"public_id" firestore:"public_id"`
}

// DataSpesifik extends a user's profile. One document per user, keyed by uid.
//
// Older documents store foto as a bare URL string instead of a map, so the raw
// Firestore value lands in FotoRaw and is normalized into Foto after decoding.
type DataSpesifik struct {
	UserID      string      `json:"user_id" firestore:"user_id"`
	NRP         string      `json:"nrp" firestore:"nrp"`
	KTA         string      `json:"kta" firestore:"kta"`
	LSPSN       string      `json:"lspsn" firestore:"lspsn"`
	TTL         string      `json:"ttl" firestore:"ttl"`
	IDTingkatan string      `json:"id_tingkatan" firestore:"id_tingkatan"`
	FotoRaw     interface{} `json:"-" firestore:"foto"`
	Foto        *Foto       `json:"foto" firestore:"-"`
	UpdatedAt   time.Time   `json:"updated_at" firestore:"updated_at,omitempty"`
}

// NormalizeFoto resolves FotoRaw into Foto. It accepts a URL string or a
// {url, public_id} map and leaves Foto nil for anything else.
func (d *DataSpesifik) NormalizeFoto() {
	d.Foto = ParseFoto(d.FotoRaw)
}

// ParseFoto converts a stored foto value into a Foto.
func ParseFoto(raw interface{}) *Foto {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &Foto{URL: v}
	case map[string]interface{}:
		f := &Foto{}
		f.URL, _ = v["url"].(string)
		f.PublicID, _ = v["public_id"].(string)
		if f.URL == "" && f.PublicID == "" {
			return nil
		}
		return f
	case *Foto:
		return v
	case Foto:
		return &v
	}
	return nil
}

// PrepareForWrite stores Foto back into FotoRaw in map form.
func (d *DataSpesifik) PrepareForWrite() {
	if d.Foto == nil {
		d.FotoRaw = nil
		return
	}
	d.FotoRaw = map[string]interface{}{
		"url":       d.Foto.URL,
		"public_id": d.Foto.PublicID,
	}
}

// UpsertDataSpesifikRequest is the payload for creating or replacing a profile extension.
type UpsertDataSpesifikRequest struct {
	NRP         string `json:"nrp" binding:"max=50"`
	KTA         string `json:"kta" binding:"max=50"`
	LSPSN       string `json:"lspsn" binding:"max=50"`
	TTL         string `json:"ttl" binding:"max=150"`
	IDTingkatan string `json:"id_tingkatan" binding:"omitempty,max=128"`
	Foto        *Foto  `json:"foto"`
}

// UserWithProfile bundles a user and their (optional) profile extension.
type UserWithProfile struct {
	User         *User         `json:"user"`
	DataSpesifik *DataSpesifik `json:"data_spesifik"`
}
