package models

import "time"

// View is the presentation component currently shown to a session
type View string

const (
	ViewDashboard View = "dashboard"
	ViewClasses   View = "classes"
	ViewGrades    View = "grades"
	ViewAIReport  View = "ai-report"
)

// Views lists the selectable views in menu order.
var Views = []View{ViewDashboard, ViewClasses, ViewGrades, ViewAIReport}

// Valid reports whether v is a known view tag.
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// Event types broadcast to connected dashboards
const (
	EventStudentAdded  = "student.added"
	EventScoreUpserted = "score.upserted"
	EventViewChanged   = "view.changed"
	EventReportReady   = "report.ready"
)

// Event is a state change pushed to every view reading the shared collections
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// DashboardStats summarises the school for the dashboard view
type DashboardStats struct {
	TotalStudents  int              `json:"totalStudents"`
	TotalClasses   int              `json:"totalClasses"`
	AveragePerf    float64          `json:"averagePerformance"`
	RankBreakdown  []RankCount      `json:"rankBreakdown"`
	SubjectAverage []SubjectAverage `json:"subjectAverages"`
}

// RankCount is one slice of the academic classification chart
type RankCount struct {
	Rank  Rank `json:"name"`
	Value int  `json:"value"`
}

// GradebookRow is one line of the gradebook table for a subject
type GradebookRow struct {
	StudentID   string       `json:"studentId"`
	StudentName string       `json:"studentName"`
	Record      *ScoreRecord `json:"record,omitempty"`
	Average     string       `json:"average"`
}
