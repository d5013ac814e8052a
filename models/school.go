package models

// Gender tags used by the class roster and the voice picker
const (
	GenderMale   = "Nam"
	GenderFemale = "Nữ"
)

// Student represents a student enrolled in a class
type Student struct {
	ID      string `json:"id"`
	Name    string `json:"name" binding:"required"`
	DOB     string `json:"dob"`                     // YYYY-MM-DD
	Gender  string `json:"gender" binding:"gender"` // "Nam" or "Nữ"
	ClassID string `json:"classId" binding:"required"`
}

// Teacher represents a subject teacher
type Teacher struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

// Subject represents a taught subject
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassEntity represents a class and its homeroom teacher
type ClassEntity struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	HomeroomTeacherID string `json:"homeroomTeacherId"`
}

// ValidGender reports whether g is one of the two gender tags.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}
