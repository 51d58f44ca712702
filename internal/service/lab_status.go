package service

import "strings"

// StatusUnknown is returned when no threshold table matches the disease name.
const StatusUnknown = "Tidak Diketahui"

// band matches values below limit, or up to and including it when
// inclusive is set. The last band of a rule catches everything else.
type band struct {
	limit     float64
	inclusive bool
	label     string
}

type statusRule struct {
	keywords []string
	bands    []band
}

var statusRules = []statusRule{
	{
		keywords: []string{"kolesterol"},
		bands: []band{
			{100, false, "Optimal"},
			{130, false, "Mendekati Optimal"},
			{160, false, "Garis Batas Tinggi"},
			{190, false, "Tinggi"},
			{0, false, "Sangat Tinggi"},
		},
	},
	{
		keywords: []string{"trigliserida"},
		bands: []band{
			{150, false, "Normal"},
			{200, false, "Garis Batas Tinggi"},
			{500, false, "Tinggi"},
			{0, false, "Sangat Tinggi"},
		},
	},
	{
		keywords: []string{"gula", "diabetes"},
		bands: []band{
			{70, false, "Rendah"},
			{100, false, "Normal"},
			{126, false, "Prediabetes"},
			{0, false, "Diabetes"},
		},
	},
	{
		keywords: []string{"asam urat"},
		bands: []band{
			{3.4, false, "Rendah"},
			{7.0, true, "Normal"},
			{0, false, "Tinggi"},
		},
	},
	{
		keywords: []string{"hipertensi", "tekanan darah"},
		bands: []band{
			{120, false, "Normal"},
			{130, false, "Meningkat"},
			{140, false, "Hipertensi Tingkat 1"},
			{180, false, "Hipertensi Tingkat 2"},
			{0, false, "Krisis Hipertensi"},
		},
	},
}

// DetermineStatus derives the lab status label for a result value. The disease
// name is matched case-insensitively against each rule's keywords in order.
func DetermineStatus(namaPenyakit string, nilai float64) string {
	name := strings.ToLower(namaPenyakit)
	for _, rule := range statusRules {
		if !containsAny(name, rule.keywords) {
			continue
		}
		return rule.classify(nilai)
	}
	return StatusUnknown
}

func (r statusRule) classify(v float64) string {
	last := len(r.bands) - 1
	for _, b := range r.bands[:last] {
		if v < b.limit || (b.inclusive && v == b.limit) {
			return b.label
		}
	}
	return r.bands[last].label
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
