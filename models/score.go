package models

import (
	"fmt"
	"strconv"
)

// Weights of the four score categories in a subject average.
const (
	OralWeight     = 1
	Test15Weight   = 1
	Test45Weight   = 2
	SemesterWeight = 3
	WeightDivisor  = OralWeight + Test15Weight + Test45Weight + SemesterWeight
)

// Score bounds on the 10-point scale
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// NoAverage is displayed when a student has no record for a subject.
const NoAverage = "N/A"

// ScoreRecord holds one student's scores in one subject.
// There is at most one record per (StudentID, SubjectID) pair.
type ScoreRecord struct {
	StudentID string    `json:"studentId" binding:"required"`
	SubjectID string    `json:"subjectId" binding:"required"`
	Oral      []float64 `json:"oral" binding:"omitempty,dive,gte=0,lte=10"`   // Điểm miệng
	Test15    []float64 `json:"test15" binding:"omitempty,dive,gte=0,lte=10"` // 15 phút
	Test45    []float64 `json:"test45" binding:"omitempty,dive,gte=0,lte=10"` // 1 tiết
	Semester  *float64  `json:"semester" binding:"omitempty,gte=0,lte=10"`    // Thi học kỳ
}

// Average is the weighted subject average. Only the first score of each
// category counts; a missing category contributes 0.
func (r *ScoreRecord) Average() float64 {
	if r == nil {
		return 0
	}
	semester := 0.0
	if r.Semester != nil {
		semester = *r.Semester
	}
	sum := first(r.Oral)*OralWeight +
		first(r.Test15)*Test15Weight +
		first(r.Test45)*Test45Weight +
		semester*SemesterWeight
	return sum / WeightDivisor
}

// Validate checks that every score lies on the 10-point scale.
func (r *ScoreRecord) Validate() error {
	check := func(name string, values []float64) error {
		for i, v := range values {
			if v < MinScore || v > MaxScore {
				return fmt.Errorf("%s[%d] = %v is outside [%v, %v]", name, i, v, MinScore, MaxScore)
			}
		}
		return nil
	}
	if err := check("oral", r.Oral); err != nil {
		return err
	}
	if err := check("test15", r.Test15); err != nil {
		return err
	}
	if err := check("test45", r.Test45); err != nil {
		return err
	}
	if r.Semester != nil {
		if err := check("semester", []float64{*r.Semester}); err != nil {
			return err
		}
	}
	return nil
}

// AverageDisplay formats the average of rec with one decimal, or "N/A" when
// there is no record.
func AverageDisplay(rec *ScoreRecord) string {
	if rec == nil {
		return NoAverage
	}
	return strconv.FormatFloat(rec.Average(), 'f', 1, 64)
}

func first(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}

// Rank is the academic classification of an average
type Rank string

const (
	RankExcellent Rank = "Giỏi"
	RankGood      Rank = "Khá"
	RankAverage   Rank = "Trung Bình"
	RankWeak      Rank = "Yếu"
)

// Ranks lists the classifications from best to worst.
var Ranks = []Rank{RankExcellent, RankGood, RankAverage, RankWeak}

// Classify maps an average on the 10-point scale to a Rank.
func Classify(avg float64) Rank {
	switch {
	case avg >= 8.0:
		return RankExcellent
	case avg >= 6.5:
		return RankGood
	case avg >= 5.0:
		return RankAverage
	default:
		return RankWeak
	}
}
