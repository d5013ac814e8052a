package utils

import (
	"log"

	"edumaster/db"
	"edumaster/models"
)

func score(v float64) *float64 { return &v }

// SeedSchoolData loads the reference subjects, teachers and classes plus a
// sample roster and gradebook. Skipped when the store already has students.
func SeedSchoolData(store *db.Store) {
	if len(store.Students()) > 0 {
		return
	}

	subjects := []models.Subject{
		{ID: "s1", Name: "Toán Học"},
		{ID: "s2", Name: "Ngữ Văn"},
		{ID: "s3", Name: "Tiếng Anh"},
		{ID: "s4", Name: "Vật Lý"},
	}
	teachers := []models.Teacher{
		{ID: "t1", Name: "Nguyễn Văn A", Subject: "Toán Học"},
		{ID: "t2", Name: "Trần Thị B", Subject: "Ngữ Văn"},
	}
	classes := []models.ClassEntity{
		{ID: "c1", Name: "12A1 (Chuyên Toán)", HomeroomTeacherID: "t1"},
	}
	students := []models.Student{
		{ID: "st1", Name: "Lê Hoàng Nam", DOB: "2006-05-12", Gender: models.GenderMale, ClassID: "c1"},
		{ID: "st2", Name: "Phạm Minh Thư", DOB: "2006-08-20", Gender: models.GenderFemale, ClassID: "c1"},
		{ID: "st3", Name: "Đỗ Hùng Dũng", DOB: "2006-02-14", Gender: models.GenderMale, ClassID: "c1"},
	}
	scores := []models.ScoreRecord{
		{StudentID: "st1", SubjectID: "s1", Oral: []float64{9, 10}, Test15: []float64{9}, Test45: []float64{8.5}, Semester: score(9)},
		{StudentID: "st1", SubjectID: "s2", Oral: []float64{7, 8}, Test15: []float64{7.5}, Test45: []float64{7}, Semester: score(7.5)},
		{StudentID: "st2", SubjectID: "s1", Oral: []float64{6, 7}, Test15: []float64{6.5}, Test45: []float64{6}, Semester: score(6)},
	}

	for _, s := range subjects {
		if err := store.AddSubject(s); err != nil {
			log.Printf("Failed to seed subject %s: %v", s.ID, err)
		}
	}
	for _, t := range teachers {
		if err := store.AddTeacher(t); err != nil {
			log.Printf("Failed to seed teacher %s: %v", t.ID, err)
		}
	}
	for _, c := range classes {
		if err := store.AddClass(c); err != nil {
			log.Printf("Failed to seed class %s: %v", c.ID, err)
		}
	}
	for _, st := range students {
		if _, err := store.AddStudent(st); err != nil {
			log.Printf("Failed to seed student %s: %v", st.ID, err)
		}
	}
	for _, rec := range scores {
		if _, err := store.UpsertScore(rec); err != nil {
			log.Printf("Failed to seed scores for %s/%s: %v", rec.StudentID, rec.SubjectID, err)
		}
	}
	log.Printf("Seeded %d subjects, %d classes, %d students", len(subjects), len(classes), len(students))
}
