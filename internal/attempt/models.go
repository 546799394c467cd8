package attempt

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed" // terminal
)

const (
	ModeOfficial  = "official"  // sourced from a published exam
	ModeGenerated = "generated" // sourced from a simulation
)

// Attempt is one user's timed run through an exam's or simulation's
// questions. Exactly one of ExamID/SimulationID is set. While
// in_progress the answer map grows monotonically; once completed the
// answers and score are frozen.
type Attempt struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	ExamID          string            `json:"exam_id,omitempty"`
	SimulationID    string            `json:"simulation_id,omitempty"`
	ExamTitle       string            `json:"exam_title"`
	Mode            string            `json:"mode"`
	StartTime       int64             `json:"start_time"`
	EndTime         int64             `json:"end_time,omitempty"`
	Status          string            `json:"status"`
	Answers         map[string]string `json:"answers"` // question id -> selected letter
	Score           *ScoreRecord      `json:"score,omitempty"`
	DurationSeconds int               `json:"duration_seconds,omitempty"`
}
