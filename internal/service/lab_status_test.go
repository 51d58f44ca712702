package service

import "testing"

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		nama  string
		nilai float64
		want  string
	}{
		{"Kolesterol", 99, "Optimal"},
		{"Kolesterol Total", 100, "Mendekati Optimal"},
		{"kolesterol", 130, "Garis Batas Tinggi"},
		{"KOLESTEROL", 189.9, "Tinggi"},
		{"Kolesterol", 250, "Sangat Tinggi"},
		{"Trigliserida", 149, "Normal"},
		{"Trigliserida", 150, "Garis Batas Tinggi"},
		{"Trigliserida", 499, "Tinggi"},
		{"Trigliserida", 500, "Sangat Tinggi"},
		{"Gula Darah Puasa", 65, "Rendah"},
		{"Diabetes Melitus", 99, "Normal"},
		{"Gula Darah", 125, "Prediabetes"},
		{"Gula Darah", 126, "Diabetes"},
		{"Asam Urat", 3.3, "Rendah"},
		{"Asam Urat", 3.4, "Normal"},
		{"Asam Urat", 7.0, "Normal"},
		{"Asam Urat", 7.1, "Tinggi"},
		{"Hipertensi", 119, "Normal"},
		{"Tekanan Darah", 125, "Meningkat"},
		{"Hipertensi", 135, "Hipertensi Tingkat 1"},
		{"Hipertensi", 179, "Hipertensi Tingkat 2"},
		{"Hipertensi", 180, "Krisis Hipertensi"},
		{"Asma", 10, StatusUnknown},
		{"", 0, StatusUnknown},
	}

	for _, tt := range tests {
		if got := DetermineStatus(tt.nama, tt.nilai); got != tt.want {
			t.Errorf("DetermineStatus(%q, %v) = %q, want %q", tt.nama, tt.nilai, got, tt.want)
		}
	}
}
