package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"edumaster/db"
	"edumaster/models"
)

// Fixed user-facing fallbacks. The report panel never sees an error.
const (
	ReportEmptyFallback = "Không thể tạo báo cáo lúc này."
	ReportErrorFallback = "Lỗi kết nối với siêu trí tuệ AI. Vui lòng thử lại."
)

const reportSystemInstruction = `Bạn là "Thien Master AI" - Một siêu trí tuệ chuyên phân tích dữ liệu giáo dục và soạn thảo văn bản hành chính/sư phạm đẳng cấp cao.
Nhiệm vụ: Tạo ra các bản nhận xét, báo cáo học tập chi tiết, sâu sắc và mang tính cá nhân hóa cao dựa trên điểm số.
Ngôn ngữ: Tiếng Việt 100%, văn phong trôi chảy, giàu hình ảnh, chuyên nghiệp.`

// ReportService generates narrative student reports
type ReportService struct {
	generator   TextGenerator
	model       string
	temperature float32
}

// NewReportService creates a report service using model at the given temperature
func NewReportService(generator TextGenerator, model string, temperature float32) *ReportService {
	return &ReportService{generator: generator, model: model, temperature: temperature}
}

// BuildReportPrompt formats the instruction sent to the text model
func BuildReportPrompt(req models.AIAnalysisRequest) string {
	var scores strings.Builder
	for i, s := range req.Scores {
		if i > 0 {
			scores.WriteString("\n")
		}
		scores.WriteString(fmt.Sprintf("- %s: %.1f", s.Subject, s.Average))
	}

	return fmt.Sprintf(`Hãy viết một bản nhận xét học tập chi tiết cho học sinh: %s
Lớp: %s

Dữ liệu điểm tổng kết các môn:
%s

Yêu cầu cấu trúc bài viết:
1. Tiêu đề: Thật ấn tượng và trang trọng.
2. Tổng quan: Đánh giá chung về năng lực.
3. Chi tiết: Phân tích điểm mạnh, điểm yếu dựa trên điểm số.
4. Lời khuyên & Định hướng: Cụ thể cho học sinh này.

Phong cách (Tone): %s
Trọng tâm cần nhấn mạnh: %s`,
		req.StudentName, req.ClassName, scores.String(), req.Tone, strings.Join(req.Focus, ", "))
}

// GenerateStudentReport returns the model's report verbatim, or one of the
// fixed fallback strings when the call fails or comes back empty.
func (s *ReportService) GenerateStudentReport(ctx context.Context, req models.AIAnalysisRequest) string {
	if s == nil || s.generator == nil {
		log.Printf("Report generation error: %v", errors.New("text generator not configured"))
		return ReportErrorFallback
	}
	text, err := s.generator.GenerateText(ctx, TextRequest{
		Model:             s.model,
		Prompt:            BuildReportPrompt(req),
		SystemInstruction: reportSystemInstruction,
		Temperature:       s.temperature,
	})
	if err != nil {
		log.Printf("Report generation error for %s: %v", req.StudentName, err)
		return ReportErrorFallback
	}
	if text == "" {
		return ReportEmptyFallback
	}
	return text
}

// BuildAnalysisRequest assembles the report input for a student from the store:
// one entry per subject, with 0 for subjects that have no record.
func BuildAnalysisRequest(store *db.Store, studentID string, tone models.ReportTone, focus []string) (models.AIAnalysisRequest, error) {
	student, ok := store.Student(studentID)
	if !ok {
		return models.AIAnalysisRequest{}, fmt.Errorf("%w: %s", db.ErrStudentNotFound, studentID)
	}
	if tone == "" {
		tone = models.DefaultTone
	}
	if !tone.Valid() {
		return models.AIAnalysisRequest{}, fmt.Errorf("unknown tone %q", tone)
	}
	normalized, err := models.NormalizeFocus(focus)
	if err != nil {
		return models.AIAnalysisRequest{}, err
	}

	className := student.ClassID
	if class, ok := store.Class(student.ClassID); ok {
		className = class.Name
	}

	subjects := store.Subjects()
	scores := make([]models.SubjectAverage, 0, len(subjects))
	for _, sub := range subjects {
		rec, _ := store.GetScore(student.ID, sub.ID)
		scores = append(scores, models.SubjectAverage{Subject: sub.Name, Average: rec.Average()})
	}

	return models.AIAnalysisRequest{
		StudentName: student.Name,
		ClassName:   className,
		Scores:      scores,
		Tone:        tone,
		Focus:       normalized,
	}, nil
}
