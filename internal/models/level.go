package models

// SchoolLevel identifies one of the foundation's education tiers (jenjang).
type SchoolLevel string

// The closed set of school levels offered by the foundation.
const (
	LevelTPA SchoolLevel = "TPA"
	LevelTK  SchoolLevel = "TK/PAUD"
	LevelSD  SchoolLevel = "SD"
	LevelSMP SchoolLevel = "SMP"
	LevelSMA SchoolLevel = "SMA"
)

// IsValid reports whether the value belongs to the closed level set.
func (l SchoolLevel) IsValid() bool {
	switch l {
	case LevelTPA, LevelTK, LevelSD, LevelSMP, LevelSMA:
		return true
	default:
		return false
	}
}

// LevelInfo is the reference-data entry shown on the public landing page.
type LevelInfo struct {
	ID          SchoolLevel `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// SchoolLevels returns the immutable reference list of levels, in display order.
func SchoolLevels() []LevelInfo {
	return []LevelInfo{
		{ID: LevelTPA, Name: "TPA", Description: "Taman Penitipan Anak"},
		{ID: LevelTK, Name: "TK/PAUD", Description: "Taman Kanak-kanak / PAUD"},
		{ID: LevelSD, Name: "SD", Description: "Sekolah Dasar"},
		{ID: LevelSMP, Name: "SMP", Description: "Sekolah Menengah Pertama"},
		{ID: LevelSMA, Name: "SMA", Description: "Sekolah Menengah Atas"},
	}
}

// RequiredDocuments lists the berkas an applicant is expected to hand in.
func RequiredDocuments() []string {
	return []string{
		"Kartu Keluarga (KK)",
		"Akte Kelahiran",
		"Ijazah Terakhir (Jika Ada)",
		"Foto Ukuran 3x4",
	}
}
