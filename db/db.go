package db

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"edumaster/models"

	"github.com/google/uuid"
)

var (
	ErrDuplicateStudent = errors.New("student ID already exists")
	ErrStudentNotFound  = errors.New("student not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrClassNotFound    = errors.New("class not found")
	ErrInvalidStudent   = errors.New("student name and class are required")
)

const (
	defaultDOB    = "2007-01-01"
	defaultGender = models.GenderMale
)

type scoreKey struct {
	studentID string
	subjectID string
}

// Listener is notified after every successful mutation
type Listener func(models.Event)

// Store owns the in-memory school collections. All reads and writes go
// through its methods; nothing is persisted and a restart resets the state.
type Store struct {
	mu sync.RWMutex

	subjects map[string]models.Subject
	teachers map[string]models.Teacher
	classes  map[string]models.ClassEntity
	students map[string]models.Student
	scores   map[scoreKey]models.ScoreRecord

	// insertion order for stable listings
	subjectOrder []string
	teacherOrder []string
	classOrder   []string
	studentOrder []string

	listenersMu sync.RWMutex
	listeners   []Listener
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		subjects: make(map[string]models.Subject),
		teachers: make(map[string]models.Teacher),
		classes:  make(map[string]models.ClassEntity),
		students: make(map[string]models.Student),
		scores:   make(map[scoreKey]models.ScoreRecord),
	}
}

// Subscribe registers fn to receive mutation events
func (s *Store) Subscribe(fn Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) publish(eventType string, payload interface{}) {
	s.listenersMu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.listenersMu.RUnlock()

	event := models.Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
	for _, fn := range listeners {
		fn(event)
	}
}

// --- Reference data ---

// AddSubject registers a subject; an existing ID is overwritten
func (s *Store) AddSubject(subject models.Subject) error {
	if subject.ID == "" || subject.Name == "" {
		return errors.New("subject ID and Name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subjects[subject.ID]; !exists {
		s.subjectOrder = append(s.subjectOrder, subject.ID)
	}
	s.subjects[subject.ID] = subject
	return nil
}

// AddTeacher registers a teacher; an existing ID is overwritten
func (s *Store) AddTeacher(teacher models.Teacher) error {
	if teacher.ID == "" || teacher.Name == "" {
		return errors.New("teacher ID and Name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.teachers[teacher.ID]; !exists {
		s.teacherOrder = append(s.teacherOrder, teacher.ID)
	}
	s.teachers[teacher.ID] = teacher
	return nil
}

// AddClass registers a class; an existing ID is overwritten
func (s *Store) AddClass(class models.ClassEntity) error {
	if class.ID == "" || class.Name == "" {
		return errors.New("class ID and Name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.classes[class.ID]; !exists {
		s.classOrder = append(s.classOrder, class.ID)
	}
	s.classes[class.ID] = class
	return nil
}

// Subjects returns all subjects in registration order
func (s *Store) Subjects() []models.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Subject, 0, len(s.subjectOrder))
	for _, id := range s.subjectOrder {
		out = append(out, s.subjects[id])
	}
	return out
}

// Subject returns a subject by ID
func (s *Store) Subject(id string) (models.Subject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subject, ok := s.subjects[id]
	return subject, ok
}

// Teachers returns all teachers in registration order
func (s *Store) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Teacher, 0, len(s.teacherOrder))
	for _, id := range s.teacherOrder {
		out = append(out, s.teachers[id])
	}
	return out
}

// Classes returns all classes in registration order
func (s *Store) Classes() []models.ClassEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ClassEntity, 0, len(s.classOrder))
	for _, id := range s.classOrder {
		out = append(out, s.classes[id])
	}
	return out
}

// Class returns a class by ID
func (s *Store) Class(id string) (models.ClassEntity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	class, ok := s.classes[id]
	return class, ok
}

// --- Students ---

// AddStudent validates and inserts a student, returning the stored copy.
// An empty ID is generated; empty DOB and gender get the form defaults.
func (s *Store) AddStudent(student models.Student) (models.Student, error) {
	student.Name = strings.TrimSpace(student.Name)
	student.ID = strings.TrimSpace(student.ID)
	if student.Name == "" || student.ClassID == "" {
		return models.Student{}, ErrInvalidStudent
	}
	if student.DOB == "" {
		student.DOB = defaultDOB
	} else if _, err := time.Parse("2006-01-02", student.DOB); err != nil {
		return models.Student{}, fmt.Errorf("invalid date of birth %q: %w", student.DOB, err)
	}
	if student.Gender == "" {
		student.Gender = defaultGender
	} else if !models.ValidGender(student.Gender) {
		return models.Student{}, fmt.Errorf("invalid gender %q", student.Gender)
	}

	s.mu.Lock()
	if _, ok := s.classes[student.ClassID]; !ok {
		s.mu.Unlock()
		return models.Student{}, fmt.Errorf("%w: %s", ErrClassNotFound, student.ClassID)
	}
	if student.ID == "" {
		student.ID = s.newStudentIDLocked()
	}
	if _, exists := s.students[student.ID]; exists {
		s.mu.Unlock()
		return models.Student{}, fmt.Errorf("%w: %s", ErrDuplicateStudent, student.ID)
	}
	s.students[student.ID] = student
	s.studentOrder = append(s.studentOrder, student.ID)
	s.mu.Unlock()

	log.Printf("Added student: %s (%s) to class %s", student.Name, student.ID, student.ClassID)
	s.publish(models.EventStudentAdded, student)
	return student, nil
}

func (s *Store) newStudentIDLocked() string {
	for {
		id := "st" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
		if _, taken := s.students[id]; !taken {
			return id
		}
	}
}

// Student returns a student by ID
func (s *Store) Student(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	return student, ok
}

// Students returns every student in insertion order
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, 0, len(s.studentOrder))
	for _, id := range s.studentOrder {
		out = append(out, s.students[id])
	}
	return out
}

// StudentsByClass returns the students of one class in insertion order
func (s *Store) StudentsByClass(classID string) []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Student{}
	for _, id := range s.studentOrder {
		if st := s.students[id]; st.ClassID == classID {
			out = append(out, st)
		}
	}
	return out
}

// --- Scores ---

// UpsertScore stores rec as the only record for its (student, subject) pair
func (s *Store) UpsertScore(rec models.ScoreRecord) (models.ScoreRecord, error) {
	if err := rec.Validate(); err != nil {
		return models.ScoreRecord{}, err
	}
	rec = copyRecord(rec)

	s.mu.Lock()
	if _, ok := s.students[rec.StudentID]; !ok {
		s.mu.Unlock()
		return models.ScoreRecord{}, fmt.Errorf("%w: %s", ErrStudentNotFound, rec.StudentID)
	}
	if _, ok := s.subjects[rec.SubjectID]; !ok {
		s.mu.Unlock()
		return models.ScoreRecord{}, fmt.Errorf("%w: %s", ErrSubjectNotFound, rec.SubjectID)
	}
	s.scores[scoreKey{rec.StudentID, rec.SubjectID}] = rec
	s.mu.Unlock()

	s.publish(models.EventScoreUpserted, rec)
	return copyRecord(rec), nil
}

// GetScore returns the record for a (student, subject) pair
func (s *Store) GetScore(studentID, subjectID string) (*models.ScoreRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.scores[scoreKey{studentID, subjectID}]
	if !ok {
		return nil, false
	}
	cp := copyRecord(rec)
	return &cp, true
}

// Scores returns every record ordered by student then subject registration order
func (s *Store) Scores() []models.ScoreRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	studentRank := make(map[string]int, len(s.studentOrder))
	for i, id := range s.studentOrder {
		studentRank[id] = i
	}
	subjectRank := make(map[string]int, len(s.subjectOrder))
	for i, id := range s.subjectOrder {
		subjectRank[id] = i
	}

	out := make([]models.ScoreRecord, 0, len(s.scores))
	for _, rec := range s.scores {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return studentRank[out[i].StudentID] < studentRank[out[j].StudentID]
		}
		return subjectRank[out[i].SubjectID] < subjectRank[out[j].SubjectID]
	})
	return out
}

func copyRecord(rec models.ScoreRecord) models.ScoreRecord {
	cp := rec
	cp.Oral = append([]float64{}, rec.Oral...)
	cp.Test15 = append([]float64{}, rec.Test15...)
	cp.Test45 = append([]float64{}, rec.Test45...)
	if rec.Semester != nil {
		v := *rec.Semester
		cp.Semester = &v
	}
	return cp
}
