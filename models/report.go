package models

import "fmt"

// ReportTone selects the register of a generated report
type ReportTone string

const (
	ToneStrict       ReportTone = "Nghiêm khắc & Kỷ luật"
	ToneEncouraging  ReportTone = "Khích lệ & Động viên"
	ToneProfessional ReportTone = "Chuyên nghiệp & Khách quan"
	ToneEmotional    ReportTone = "Tình cảm & Sâu sắc"
)

// ReportTones lists every tone in display order.
var ReportTones = []ReportTone{ToneStrict, ToneEncouraging, ToneProfessional, ToneEmotional}

// DefaultTone is preselected in the report panel.
const DefaultTone = ToneProfessional

// Valid reports whether t is one of the fixed tones.
func (t ReportTone) Valid() bool {
	for _, v := range ReportTones {
		if t == v {
			return true
		}
	}
	return false
}

// FocusOptions is the fixed vocabulary of focus tags.
var FocusOptions = []string{
	"Hạnh kiểm",
	"Học lực",
	"Kỹ năng mềm",
	"Định hướng nghề nghiệp",
	"Cần cải thiện",
}

// NormalizeFocus rejects tags outside FocusOptions and drops duplicates,
// keeping the caller's order.
func NormalizeFocus(tags []string) ([]string, error) {
	allowed := make(map[string]bool, len(FocusOptions))
	for _, f := range FocusOptions {
		allowed[f] = true
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !allowed[tag] {
			return nil, fmt.Errorf("unknown focus tag %q", tag)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out, nil
}

// SubjectAverage pairs a subject name with the student's average in it
type SubjectAverage struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
}

// AIAnalysisRequest is assembled per report generation and never stored
type AIAnalysisRequest struct {
	StudentName string           `json:"studentName"`
	ClassName   string           `json:"className"`
	Scores      []SubjectAverage `json:"scores"`
	Tone        ReportTone       `json:"tone"`
	Focus       []string         `json:"focus"`
}

// ReportRequest is the payload sent by the report panel
type ReportRequest struct {
	SessionID string     `json:"sessionId"`
	StudentID string     `json:"studentId" binding:"required"`
	Tone      ReportTone `json:"tone"`
	Focus     []string   `json:"focus"`
}

// ReportResponse carries the generated report text
type ReportResponse struct {
	StudentID string `json:"studentId"`
	Text      string `json:"text"`
}

// VoiceRequest asks for the report text to be read aloud
type VoiceRequest struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text" binding:"required"`
	Gender    string `json:"gender"`
}

// DecodeAudioRequest carries a base64 PCM payload from a client
type DecodeAudioRequest struct {
	Data       string `json:"data"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}
