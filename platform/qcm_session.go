package platform

import (
	"errors"

	"bac_exam_platform/models"
)

var (
	ErrResultsShown  = errors.New("Les résultats sont affichés. Recommencez pour répondre à nouveau.")
	ErrUnknownOption = errors.New("Option inconnue")
	ErrQCMIncomplete = errors.New("Répondez à toutes les questions avant de valider")
)

// QCMSession is a chapter quiz in progress. Answers are frozen once the
// results are shown.
type QCMSession struct {
	ChapterID   int64
	Questions   []models.QCMQuestion
	Selected    map[int64]string
	ShowResults bool
}

func NewQCMSession(chapterID int64, qs []models.QCMQuestion) *QCMSession {
	return &QCMSession{
		ChapterID: chapterID,
		Questions: qs,
		Selected:  make(map[int64]string),
	}
}

func (s *QCMSession) find(id int64) (models.QCMQuestion, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.QCMQuestion{}, false
}

// Select records the chosen option of a question.
func (s *QCMSession) Select(questionID int64, option string) error {
	if s.ShowResults {
		return ErrResultsShown
	}
	q, ok := s.find(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	for _, o := range q.Options {
		if o.ID == option {
			s.Selected[questionID] = option
			return nil
		}
	}
	return ErrUnknownOption
}

// QCMOutcome is the result of one question once the quiz is submitted.
type QCMOutcome struct {
	QuestionID        int64  `json:"questionId"`
	Selected          string `json:"selected"`
	CorrectAnswer     string `json:"correctAnswer"`
	IsCorrect         bool   `json:"isCorrect"`
	Explanation       string `json:"explanation,omitempty"`
	ExplanationArabic string `json:"explanationArabic,omitempty"`
}

type QCMResult struct {
	Score    int          `json:"score"`
	Total    int          `json:"total"`
	Outcomes []QCMOutcome `json:"outcomes"`
}

// Submit shows the results. Every question must be answered.
func (s *QCMSession) Submit() (QCMResult, error) {
	if !s.ShowResults && len(s.Selected) != len(s.Questions) {
		return QCMResult{}, ErrQCMIncomplete
	}
	s.ShowResults = true
	return s.Result(), nil
}

// Result grades the selected options against the expected ones.
func (s *QCMSession) Result() QCMResult {
	res := QCMResult{Total: len(s.Questions), Outcomes: make([]QCMOutcome, 0, len(s.Questions))}
	for _, q := range s.Questions {
		o := QCMOutcome{
			QuestionID:        q.ID,
			Selected:          s.Selected[q.ID],
			CorrectAnswer:     q.CorrectAnswer,
			Explanation:       q.Explanation,
			ExplanationArabic: q.ExplanationArabic,
		}
		o.IsCorrect = o.Selected != "" && o.Selected == q.CorrectAnswer
		if o.IsCorrect {
			res.Score++
		}
		res.Outcomes = append(res.Outcomes, o)
	}
	return res
}

func (s *QCMSession) Reset() {
	s.Selected = make(map[int64]string)
	s.ShowResults = false
}

// QCMView is the quiz as sent to the UI. Expected answers are only
// included once the results are shown.
type QCMView struct {
	ChapterID   int64                `json:"chapterId"`
	Questions   []models.QCMQuestion `json:"questions"`
	Selected    map[int64]string     `json:"selected"`
	ShowResults bool                 `json:"showResults"`
	Result      *QCMResult           `json:"result,omitempty"`
}

func (s *QCMSession) View() QCMView {
	v := QCMView{
		ChapterID:   s.ChapterID,
		Selected:    s.Selected,
		ShowResults: s.ShowResults,
	}
	if s.ShowResults {
		v.Questions = s.Questions
		res := s.Result()
		v.Result = &res
		return v
	}
	v.Questions = make([]models.QCMQuestion, len(s.Questions))
	for i, q := range s.Questions {
		q.CorrectAnswer = ""
		q.Explanation = ""
		q.ExplanationArabic = ""
		v.Questions[i] = q
	}
	return v
}
