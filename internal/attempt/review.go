package attempt

import (
	"context"

	"github.com/provanota/provanota-backend/internal/question"
)

type ReviewItem struct {
	QuestionID     string                 `json:"question_id"`
	Statement      string                 `json:"statement"`
	ImageURL       string                 `json:"image_url,omitempty"`
	Alternatives   []question.Alternative `json:"alternatives"`
	CorrectAnswer  string                 `json:"correct_answer"`
	SelectedAnswer string                 `json:"selected_answer,omitempty"`
	IsCorrect      bool                   `json:"is_correct"`
	Tags           []string               `json:"tags"`
	Difficulty     string                 `json:"difficulty"`
	Area           string                 `json:"area,omitempty"`
	Subject        string                 `json:"subject,omitempty"`
	Topic          string                 `json:"topic,omitempty"`
	EducationLevel string                 `json:"education_level"`
	SourceExam     string                 `json:"source_exam,omitempty"`
	Year           int                    `json:"year,omitempty"`
}

type Review struct {
	AttemptID      string       `json:"attempt_id"`
	SourceID       string       `json:"exam_id"`
	Score          float64      `json:"score"`
	CorrectCount   int          `json:"correct_count"`
	TotalQuestions int          `json:"total_questions"`
	Questions      []ReviewItem `json:"questions"`
}

// Review reconstructs the ordered, answer-annotated question breakdown
// for an attempt. It works for in-progress attempts too, so the overall
// score is recomputed from the items rather than read from the possibly
// absent stored score. Ordering follows the authoritative source order;
// question ids whose documents have since been deleted are skipped.
func (s *Service) Review(ctx context.Context, attemptID, userID string) (Review, error) {
	a, err := s.store.GetForUser(ctx, attemptID, userID)
	if err != nil {
		return Review{}, err
	}
	questions, err := s.sourceQuestions(ctx, a)
	if err != nil {
		return Review{}, err
	}

	items := make([]ReviewItem, 0, len(questions))
	correct := 0
	for _, q := range questions {
		selected := a.Answers[q.ID]
		isCorrect := selected != "" && selected == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		items = append(items, ReviewItem{
			QuestionID:     q.ID,
			Statement:      q.Statement,
			ImageURL:       q.ImageURL,
			Alternatives:   q.Alternatives,
			CorrectAnswer:  q.CorrectAnswer,
			SelectedAnswer: selected,
			IsCorrect:      isCorrect,
			Tags:           q.Tags,
			Difficulty:     q.Difficulty,
			Area:           q.Area,
			Subject:        q.Subject,
			Topic:          q.Topic,
			EducationLevel: q.EducationLevel,
			SourceExam:     q.SourceExam,
			Year:           q.Year,
		})
	}

	sourceID := a.ExamID
	if sourceID == "" {
		sourceID = a.SimulationID
	}
	return Review{
		AttemptID:      attemptID,
		SourceID:       sourceID,
		Score:          percentage(correct, len(items)),
		CorrectCount:   correct,
		TotalQuestions: len(items),
		Questions:      items,
	}, nil
}
