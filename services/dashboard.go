package services

import (
	"fmt"

	"edumaster/db"
	"edumaster/models"
)

// ComputeDashboardStats summarises the store for the dashboard view.
// Students without any score record are left out of the rank breakdown.
func ComputeDashboardStats(store *db.Store) models.DashboardStats {
	students := store.Students()
	subjects := store.Subjects()
	records := store.Scores()

	stats := models.DashboardStats{
		TotalStudents: len(students),
		TotalClasses:  len(store.Classes()),
	}

	perStudent := make(map[string][]float64)
	perSubject := make(map[string][]float64)
	var all []float64
	for i := range records {
		avg := records[i].Average()
		all = append(all, avg)
		perStudent[records[i].StudentID] = append(perStudent[records[i].StudentID], avg)
		perSubject[records[i].SubjectID] = append(perSubject[records[i].SubjectID], avg)
	}
	stats.AveragePerf = mean(all)

	counts := make(map[models.Rank]int, len(models.Ranks))
	for _, st := range students {
		if avgs, ok := perStudent[st.ID]; ok {
			counts[models.Classify(mean(avgs))]++
		}
	}
	for _, rank := range models.Ranks {
		stats.RankBreakdown = append(stats.RankBreakdown, models.RankCount{Rank: rank, Value: counts[rank]})
	}

	for _, sub := range subjects {
		stats.SubjectAverage = append(stats.SubjectAverage, models.SubjectAverage{
			Subject: sub.Name,
			Average: mean(perSubject[sub.ID]),
		})
	}
	return stats
}

// Gradebook returns one row per student for a subject, with "N/A" where the
// student has no record.
func Gradebook(store *db.Store, subjectID string) ([]models.GradebookRow, error) {
	if _, ok := store.Subject(subjectID); !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrSubjectNotFound, subjectID)
	}
	students := store.Students()
	rows := make([]models.GradebookRow, 0, len(students))
	for _, st := range students {
		rec, _ := store.GetScore(st.ID, subjectID)
		rows = append(rows, models.GradebookRow{
			StudentID:   st.ID,
			StudentName: st.Name,
			Record:      rec,
			Average:     models.AverageDisplay(rec),
		})
	}
	return rows, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
