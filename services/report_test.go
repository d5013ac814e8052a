package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"edumaster/db"
	"edumaster/models"
)

type fakeGenerator struct {
	text string
	err  error
	got  TextRequest
}

func (f *fakeGenerator) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	f.got = req
	return f.text, f.err
}

func seededStore(t *testing.T) *db.Store {
	t.Helper()
	s := db.NewStore()
	mustNoErr(t, s.AddClass(models.ClassEntity{ID: "c1", Name: "12A1 (Chuyên Toán)", HomeroomTeacherID: "t1"}))
	mustNoErr(t, s.AddSubject(models.Subject{ID: "s1", Name: "Toán Học"}))
	mustNoErr(t, s.AddSubject(models.Subject{ID: "s2", Name: "Ngữ Văn"}))
	if _, err := s.AddStudent(models.Student{ID: "st1", Name: "Lê Hoàng Nam", ClassID: "c1"}); err != nil {
		t.Fatalf("add student: %v", err)
	}
	if _, err := s.AddStudent(models.Student{ID: "st2", Name: "Phạm Minh Thư", ClassID: "c1", Gender: models.GenderFemale}); err != nil {
		t.Fatalf("add student: %v", err)
	}
	sem := 9.0
	if _, err := s.UpsertScore(models.ScoreRecord{
		StudentID: "st1", SubjectID: "s1",
		Oral: []float64{9, 10}, Test15: []float64{9}, Test45: []float64{8.5}, Semester: &sem,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	return s
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildAnalysisRequest(t *testing.T) {
	store := seededStore(t)

	req, err := BuildAnalysisRequest(store, "st1", models.ToneEncouraging, []string{"Học lực"})
	if err != nil {
		t.Fatalf("BuildAnalysisRequest: %v", err)
	}
	if req.StudentName != "Lê Hoàng Nam" || req.ClassName != "12A1 (Chuyên Toán)" {
		t.Errorf("Unexpected identity: %s / %s", req.StudentName, req.ClassName)
	}
	if len(req.Scores) != 2 {
		t.Fatalf("Expected one entry per subject, got %d", len(req.Scores))
	}
	if math.Abs(req.Scores[0].Average-62.0/7) > 1e-9 {
		t.Errorf("Expected math average 62/7, got %v", req.Scores[0].Average)
	}
	if req.Scores[1].Subject != "Ngữ Văn" || req.Scores[1].Average != 0 {
		t.Errorf("Expected 0 for subject without record, got %+v", req.Scores[1])
	}
}

func TestBuildAnalysisRequestValidation(t *testing.T) {
	store := seededStore(t)

	if _, err := BuildAnalysisRequest(store, "nobody", "", nil); !errors.Is(err, db.ErrStudentNotFound) {
		t.Errorf("Expected ErrStudentNotFound, got %v", err)
	}
	if _, err := BuildAnalysisRequest(store, "st1", "Hài hước", nil); err == nil {
		t.Errorf("Expected error for unknown tone")
	}
	if _, err := BuildAnalysisRequest(store, "st1", "", []string{"Thể thao"}); err == nil {
		t.Errorf("Expected error for unknown focus tag")
	}
	req, err := BuildAnalysisRequest(store, "st1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Tone != models.DefaultTone {
		t.Errorf("Expected default tone, got %s", req.Tone)
	}
}

func TestBuildReportPrompt(t *testing.T) {
	prompt := BuildReportPrompt(models.AIAnalysisRequest{
		StudentName: "Lê Hoàng Nam",
		ClassName:   "12A1",
		Scores: []models.SubjectAverage{
			{Subject: "Toán Học", Average: 62.0 / 7},
			{Subject: "Ngữ Văn", Average: 0},
		},
		Tone:  models.ToneStrict,
		Focus: []string{"Hạnh kiểm", "Học lực"},
	})

	for _, want := range []string{
		"học sinh: Lê Hoàng Nam",
		"Lớp: 12A1",
		"- Toán Học: 8.9\n- Ngữ Văn: 0.0",
		"Phong cách (Tone): Nghiêm khắc & Kỷ luật",
		"Trọng tâm cần nhấn mạnh: Hạnh kiểm, Học lực",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerateStudentReportReturnsTextVerbatim(t *testing.T) {
	gen := &fakeGenerator{text: "Báo cáo xuất sắc"}
	svc := NewReportService(gen, "gemini-2.5-flash", 0.7)

	got := svc.GenerateStudentReport(context.Background(), models.AIAnalysisRequest{StudentName: "A"})
	if got != "Báo cáo xuất sắc" {
		t.Errorf("Expected verbatim text, got %q", got)
	}
	if gen.got.Model != "gemini-2.5-flash" || gen.got.Temperature != 0.7 {
		t.Errorf("Unexpected request: %+v", gen.got)
	}
	if !strings.Contains(gen.got.SystemInstruction, "Thien Master AI") {
		t.Errorf("Expected persona system instruction, got %q", gen.got.SystemInstruction)
	}
}

func TestGenerateStudentReportFallbacks(t *testing.T) {
	failing := NewReportService(&fakeGenerator{err: errors.New("connection refused")}, "m", 0.7)
	if got := failing.GenerateStudentReport(context.Background(), models.AIAnalysisRequest{}); got != ReportErrorFallback {
		t.Errorf("Expected error fallback, got %q", got)
	}

	empty := NewReportService(&fakeGenerator{}, "m", 0.7)
	if got := empty.GenerateStudentReport(context.Background(), models.AIAnalysisRequest{}); got != ReportEmptyFallback {
		t.Errorf("Expected empty fallback, got %q", got)
	}

	var unconfigured *ReportService
	if got := unconfigured.GenerateStudentReport(context.Background(), models.AIAnalysisRequest{}); got != ReportErrorFallback {
		t.Errorf("Expected error fallback for nil service, got %q", got)
	}
}

func seededRequest() models.AIAnalysisRequest {
	return models.AIAnalysisRequest{
		StudentName: "Lê Hoàng Nam",
		ClassName:   "12A1",
		Scores:      []models.SubjectAverage{{Subject: "Toán Học", Average: 62.0 / 7}},
		Tone:        models.DefaultTone,
	}
}
