package attempt

import (
	"math"

	"github.com/provanota/provanota-backend/internal/question"
)

// Bucket questions with neither area nor subject here.
const fallbackArea = "Geral"

type CategoryScore struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type ScoreRecord struct {
	TotalCorrect   int                      `json:"total_correct"`
	TotalQuestions int                      `json:"total_questions"`
	Percentage     float64                  `json:"percentage"`
	ByArea         map[string]CategoryScore `json:"by_area"`
	BySubject      map[string]CategoryScore `json:"by_subject"`
}

// Score computes aggregate and per-category correctness from the
// authoritative questions and an attempt's answer map. Missing answers
// count as incorrect. The output is deterministic: no randomness and no
// dependency on question order. An empty question set yields zeroes,
// never an error.
func Score(questions []question.Question, answers map[string]string) ScoreRecord {
	byArea := map[string]CategoryScore{}
	bySubject := map[string]CategoryScore{}
	totalCorrect := 0

	for _, q := range questions {
		area := q.Area
		if area == "" {
			area = q.Subject
		}
		if area == "" {
			area = fallbackArea
		}
		subject := q.Subject
		if subject == "" {
			subject = area
		}

		a := byArea[area]
		s := bySubject[subject]
		a.Total++
		s.Total++

		if answers[q.ID] == q.CorrectAnswer {
			totalCorrect++
			a.Correct++
			s.Correct++
		}
		byArea[area] = a
		bySubject[subject] = s
	}

	for k, v := range byArea {
		v.Percentage = percentage(v.Correct, v.Total)
		byArea[k] = v
	}
	for k, v := range bySubject {
		v.Percentage = percentage(v.Correct, v.Total)
		bySubject[k] = v
	}

	return ScoreRecord{
		TotalCorrect:   totalCorrect,
		TotalQuestions: len(questions),
		Percentage:     percentage(totalCorrect, len(questions)),
		ByArea:         byArea,
		BySubject:      bySubject,
	}
}

// percentage is round(correct/total*100, 2), reported as 0 when total
// is 0 so an empty bucket never divides by zero.
func percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}
