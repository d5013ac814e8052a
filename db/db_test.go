package db

import (
	"errors"
	"testing"

	"edumaster/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if err := s.AddClass(models.ClassEntity{ID: "c1", Name: "12A1", HomeroomTeacherID: "t1"}); err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if err := s.AddSubject(models.Subject{ID: "s1", Name: "Toán Học"}); err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	if err := s.AddSubject(models.Subject{ID: "s2", Name: "Ngữ Văn"}); err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	return s
}

func TestAddStudent(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddStudent(models.Student{ID: "st1", Name: " Lê Hoàng Nam ", ClassID: "c1"})
	if err != nil {
		t.Fatalf("Failed to add student: %v", err)
	}
	if added.Name != "Lê Hoàng Nam" {
		t.Errorf("Expected trimmed name, got %q", added.Name)
	}
	if added.DOB != defaultDOB || added.Gender != models.GenderMale {
		t.Errorf("Expected form defaults, got dob=%s gender=%s", added.DOB, added.Gender)
	}

	got, ok := s.Student("st1")
	if !ok || got.Name != "Lê Hoàng Nam" {
		t.Errorf("Student not visible after add: %+v", got)
	}
	if n := len(s.StudentsByClass("c1")); n != 1 {
		t.Errorf("Expected 1 student in c1, got %d", n)
	}
}

func TestAddStudentGeneratesUniqueID(t *testing.T) {
	s := newTestStore(t)

	a, err := s.AddStudent(models.Student{Name: "A", ClassID: "c1"})
	if err != nil {
		t.Fatalf("add A: %v", err)
	}
	b, err := s.AddStudent(models.Student{Name: "B", ClassID: "c1"})
	if err != nil {
		t.Fatalf("add B: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("Expected distinct generated IDs, got %q and %q", a.ID, b.ID)
	}
}

func TestAddStudentRejectsDuplicatesAndBadInput(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "A", ClassID: "c1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "B", ClassID: "c1"}); !errors.Is(err, ErrDuplicateStudent) {
		t.Errorf("Expected ErrDuplicateStudent, got %v", err)
	}
	if _, err := s.AddStudent(models.Student{Name: "", ClassID: "c1"}); !errors.Is(err, ErrInvalidStudent) {
		t.Errorf("Expected ErrInvalidStudent, got %v", err)
	}
	if _, err := s.AddStudent(models.Student{Name: "C", ClassID: "missing"}); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("Expected ErrClassNotFound, got %v", err)
	}
	if _, err := s.AddStudent(models.Student{Name: "D", ClassID: "c1", Gender: "x"}); err == nil {
		t.Errorf("Expected error for invalid gender")
	}
	if _, err := s.AddStudent(models.Student{Name: "E", ClassID: "c1", DOB: "12/05/2006"}); err == nil {
		t.Errorf("Expected error for invalid date of birth")
	}
	if n := len(s.Students()); n != 1 {
		t.Errorf("Expected 1 student after rejected adds, got %d", n)
	}
}

func TestUpsertScoreKeepsOneRecordPerPair(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "A", ClassID: "c1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "s1", Oral: []float64{5}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "s1", Oral: []float64{9}}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "s2", Oral: []float64{7}}); err != nil {
		t.Fatalf("other subject: %v", err)
	}

	scores := s.Scores()
	if len(scores) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(scores))
	}
	rec, ok := s.GetScore("st1", "s1")
	if !ok || rec.Oral[0] != 9 {
		t.Errorf("Expected replaced record with oral 9, got %+v", rec)
	}
	if scores[0].SubjectID != "s1" || scores[1].SubjectID != "s2" {
		t.Errorf("Expected records ordered by subject, got %s, %s", scores[0].SubjectID, scores[1].SubjectID)
	}
}

func TestUpsertScoreRejectsUnknownKeysAndRange(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "A", ClassID: "c1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "nobody", SubjectID: "s1"}); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("Expected ErrStudentNotFound, got %v", err)
	}
	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "nothing"}); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("Expected ErrSubjectNotFound, got %v", err)
	}
	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "s1", Oral: []float64{11}}); err == nil {
		t.Errorf("Expected range error")
	}
}

func TestGetScoreMissingAndIsolated(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "A", ClassID: "c1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec, ok := s.GetScore("st1", "s1")
	if ok || rec != nil {
		t.Errorf("Expected no record, got %+v", rec)
	}
	if got := models.AverageDisplay(rec); got != models.NoAverage {
		t.Errorf("Expected N/A for missing record, got %s", got)
	}

	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "s1", Oral: []float64{8}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec, _ = s.GetScore("st1", "s1")
	rec.Oral[0] = 1
	again, _ := s.GetScore("st1", "s1")
	if again.Oral[0] != 8 {
		t.Errorf("Store record was mutated through a returned copy")
	}
}

func TestSubscribeReceivesMutations(t *testing.T) {
	s := newTestStore(t)
	var events []models.Event
	s.Subscribe(func(e models.Event) { events = append(events, e) })

	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "A", ClassID: "c1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.UpsertScore(models.ScoreRecord{StudentID: "st1", SubjectID: "s1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "dup", ClassID: "c1"}); err == nil {
		t.Fatalf("expected duplicate error")
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Type != models.EventStudentAdded || events[1].Type != models.EventScoreUpserted {
		t.Errorf("Unexpected event types: %s, %s", events[0].Type, events[1].Type)
	}
}
