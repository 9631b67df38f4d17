package platform

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"bac_exam_platform/exam"
	"bac_exam_platform/models"
	"bac_exam_platform/navigation"
	"bac_exam_platform/placement"
	"bac_exam_platform/questions"
)

var (
	ErrUnknownQuestion = errors.New("Question introuvable")
	ErrAnswerShown     = errors.New("La réponse est affichée, la question ne peut plus être modifiée")
	ErrNoWidget        = errors.New("Cette question ne se joue pas par placement de mots")
	ErrNoExam          = errors.New("Aucun examen ouvert")
	ErrBoardAnswer     = errors.New("Cette question se répond en plaçant les mots sur le tableau")
)

// ExamSession is the exam a visitor is taking. Slide position, answers
// and shown answers live in the navigation transient state so that any
// router transition wipes them.
type ExamSession struct {
	Deck      *exam.Deck
	Arabic    bool
	Helpers   map[int64]bool
	Checks    map[string]models.Validation
	Singles   map[int64]*placement.Single
	Exercises map[int64]*placement.Exercise

	state *navigation.Transient
	rng   *rand.Rand
	now   func() time.Time
}

func newExamSession(e models.Exam, state *navigation.Transient, rng *rand.Rand, now func() time.Time) *ExamSession {
	if state.Answers == nil {
		state.Answers = models.Answers{}
	}
	if state.ShowAnswers == nil {
		state.ShowAnswers = map[int64]bool{}
	}
	if now == nil {
		now = time.Now
	}
	return &ExamSession{
		Deck:      exam.NewDeck(e),
		Helpers:   make(map[int64]bool),
		Checks:    make(map[string]models.Validation),
		Singles:   make(map[int64]*placement.Single),
		Exercises: make(map[int64]*placement.Exercise),
		state:     state,
		rng:       rng,
		now:       now,
	}
}

func checkKey(questionID int64) string {
	return strconv.FormatInt(questionID, 10)
}

// SlideView is a slide as sent to the UI together with the learner's
// progress on it.
type SlideView struct {
	exam.Slide
	Total     int                 `json:"total"`
	Arabic    bool                `json:"arabic"`
	Renderer  questions.Renderer  `json:"renderer,omitempty"`
	EssayMode questions.EssayMode `json:"essayMode,omitempty"`
	Answer    models.Answer       `json:"answer,omitempty"`
	Shown     bool                `json:"answerShown"`
	Helper    bool                `json:"helperShown"`
	Check     *models.Validation  `json:"check,omitempty"`
	Placement *placement.Single   `json:"placement,omitempty"`
	Exercise  *placement.Exercise `json:"exercise,omitempty"`
	Essay     *exam.Essay         `json:"essay,omitempty"`
}

// Current describes the slide the visitor is on. Expected answers are
// removed unless the learner asked to see them.
func (s *ExamSession) Current() SlideView {
	answers := s.state.Answers
	s.state.Slide = s.Deck.Clamp(s.state.Slide, answers)
	slide := s.Deck.Slide(s.state.Slide, answers, s.Arabic)
	view := SlideView{
		Slide:  slide,
		Total:  s.Deck.TotalSlides(answers),
		Arabic: s.Arabic,
	}

	switch slide.Kind {
	case exam.SlideEssay:
		essay := s.Deck.Essay(answers)
		view.Essay = &essay
	case exam.SlideQuestion:
		q := *slide.Question
		view.Renderer = questions.Dispatch(q)
		if view.Renderer == questions.RendererEssaySection {
			view.EssayMode = questions.EssayModeOf(q)
		}
		view.Answer = answers[q.ID]
		view.Shown = s.state.ShowAnswers[q.ID]
		view.Helper = s.Helpers[q.ID] && !view.Shown
		if c, ok := s.Checks[checkKey(q.ID)]; ok {
			view.Check = &c
		}
		if !view.Shown {
			q = questions.Redact(q)
		}
		view.Question = &q

		if single, err := s.Placement(q.ID); err == nil {
			view.Placement = single
		} else if ex, err := s.Exercise(q.ID); err == nil {
			view.Exercise = ex
		}
	}
	return view
}

func (s *ExamSession) Next() SlideView {
	s.state.Slide = s.Deck.Next(s.state.Slide, s.state.Answers)
	return s.Current()
}

func (s *ExamSession) Prev() SlideView {
	s.state.Slide = s.Deck.Prev(s.state.Slide, s.state.Answers)
	return s.Current()
}

func (s *ExamSession) question(id int64) (models.Question, error) {
	q, ok := s.Deck.Question(id)
	if !ok {
		return models.Question{}, ErrUnknownQuestion
	}
	return q, nil
}

// SetAnswer stores a submitted answer. A null payload clears it. Any
// previous check of the question is discarded.
func (s *ExamSession) SetAnswer(id int64, raw json.RawMessage) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if s.state.ShowAnswers[id] {
		return ErrAnswerShown
	}
	if len(q.ProgressivePhrases) > 0 || hasSingleBoard(q) {
		return ErrBoardAnswer
	}
	answer, err := questions.DecodeAnswer(q, raw)
	if err != nil {
		return err
	}
	s.store(id, answer)
	return nil
}

func (s *ExamSession) store(id int64, answer models.Answer) {
	if answer == nil {
		delete(s.state.Answers, id)
	} else {
		s.state.Answers[id] = answer
	}
	delete(s.Checks, checkKey(id))
}

// Check grades the current answer of a question.
func (s *ExamSession) Check(id int64) (models.Validation, error) {
	q, err := s.question(id)
	if err != nil {
		return models.Validation{}, err
	}
	v := questions.Validate(q, s.state.Answers[id], s.Arabic)
	s.Checks[checkKey(id)] = v
	return v, nil
}

// ToggleAnswer shows or hides the expected answer of a question.
func (s *ExamSession) ToggleAnswer(id int64) (bool, error) {
	if _, err := s.question(id); err != nil {
		return false, err
	}
	shown := !s.state.ShowAnswers[id]
	if shown {
		s.state.ShowAnswers[id] = true
	} else {
		delete(s.state.ShowAnswers, id)
	}
	return shown, nil
}

func (s *ExamSession) ToggleHelper(id int64) (bool, error) {
	q, err := s.question(id)
	if err != nil {
		return false, err
	}
	if q.Helper == nil {
		return false, nil
	}
	s.Helpers[id] = !s.Helpers[id]
	return s.Helpers[id], nil
}

func (s *ExamSession) ToggleArabic() bool {
	s.Arabic = !s.Arabic
	return s.Arabic
}

func (s *ExamSession) Essay() exam.Essay {
	return s.Deck.Essay(s.state.Answers)
}

// Placement returns the single-template word board of a question,
// shuffling its bank the first time it is opened.
func (s *ExamSession) Placement(id int64) (*placement.Single, error) {
	if w, ok := s.Singles[id]; ok {
		return w, nil
	}
	q, err := s.question(id)
	if err != nil {
		return nil, err
	}
	if !hasSingleBoard(q) {
		return nil, ErrNoWidget
	}
	w := placement.NewSingle(*q.DragDropWords, s.rng)
	s.Singles[id] = w
	return w, nil
}

// hasSingleBoard reports whether q is answered on a single-template word
// board. Its answer only changes through the board.
func hasSingleBoard(q models.Question) bool {
	if q.DragDropWords == nil || q.DragDropWords.Template == "" || len(q.ProgressivePhrases) > 0 {
		return false
	}
	switch questions.Dispatch(q) {
	case questions.RendererWordPlacement, questions.RendererText, questions.RendererEssaySection:
		return true
	}
	return false
}

func (s *ExamSession) syncSingle(id int64, w *placement.Single) {
	answer := w.Answer()
	if len(answer) == 0 {
		s.store(id, nil)
		return
	}
	s.store(id, answer)
}

func (s *ExamSession) PlacementAction(id int64, a placement.Action) (*placement.Single, error) {
	w, err := s.Placement(id)
	if err != nil {
		return nil, err
	}
	if s.state.ShowAnswers[id] {
		return nil, ErrAnswerShown
	}
	if err := w.Apply(a); err != nil {
		return nil, err
	}
	s.syncSingle(id, w)
	return w, nil
}

func (s *ExamSession) PlacementVerify(id int64) (placement.Result, error) {
	w, err := s.Placement(id)
	if err != nil {
		return placement.Result{}, err
	}
	return w.Verify(s.Arabic)
}

func (s *ExamSession) PlacementRetry(id int64) (*placement.Single, error) {
	w, err := s.Placement(id)
	if err != nil {
		return nil, err
	}
	w.TryAgain()
	return w, nil
}

// Exercise returns the progressive-phrase exercise of an essay section,
// creating it on first access. Any due automatic advance is applied.
func (s *ExamSession) Exercise(id int64) (*placement.Exercise, error) {
	ex, ok := s.Exercises[id]
	if !ok {
		q, err := s.question(id)
		if err != nil {
			return nil, err
		}
		if len(q.ProgressivePhrases) == 0 {
			return nil, ErrNoWidget
		}
		ex = placement.NewExercise(id, q.ProgressivePhrases, s.rng)
		ex.SetClock(s.now)
		s.Exercises[id] = ex
	}
	ex.Tick()
	return ex, nil
}

func (s *ExamSession) syncExercise(id int64, ex *placement.Exercise) {
	answer := ex.Answer()
	if len(answer) == 0 {
		s.store(id, nil)
		return
	}
	s.store(id, answer)
}

func (s *ExamSession) PhraseAction(id int64, a placement.Action) (*placement.Exercise, error) {
	ex, err := s.Exercise(id)
	if err != nil {
		return nil, err
	}
	if s.state.ShowAnswers[id] {
		return nil, ErrAnswerShown
	}
	if err := ex.Apply(a); err != nil {
		return nil, err
	}
	s.syncExercise(id, ex)
	return ex, nil
}

// PhraseVerify checks the current phrase and records the result under
// the phrase's check key.
func (s *ExamSession) PhraseVerify(id int64) (placement.Result, error) {
	ex, err := s.Exercise(id)
	if err != nil {
		return placement.Result{}, err
	}
	phrase := ex.Current
	res, err := ex.Verify(s.Arabic)
	if err != nil {
		return placement.Result{}, err
	}
	s.Checks[placement.CheckKey(id, phrase)] = models.Validation{
		IsCorrect: res.IsCorrect,
		Feedback:  res.Feedback,
	}
	return res, nil
}

func (s *ExamSession) PhraseNext(id int64) (*placement.Exercise, error) {
	ex, err := s.Exercise(id)
	if err != nil {
		return nil, err
	}
	return ex, ex.Next()
}

func (s *ExamSession) PhrasePrev(id int64) (*placement.Exercise, error) {
	ex, err := s.Exercise(id)
	if err != nil {
		return nil, err
	}
	return ex, ex.Prev()
}

func (s *ExamSession) PhraseReset(id int64) (*placement.Exercise, error) {
	ex, err := s.Exercise(id)
	if err != nil {
		return nil, err
	}
	if s.state.ShowAnswers[id] {
		return nil, ErrAnswerShown
	}
	ex.Reset()
	s.store(id, nil)
	for i := range ex.Phrases {
		delete(s.Checks, placement.CheckKey(id, i))
	}
	return ex, nil
}
