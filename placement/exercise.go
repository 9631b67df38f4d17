package placement

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"bac_exam_platform/models"
)

// AdvanceDelay is how long a correct phrase stays on screen before the
// next one opens.
const AdvanceDelay = 2 * time.Second

var (
	ErrNotVerified = errors.New("la phrase actuelle doit être validée avant de continuer")
	ErrNoPhrase    = errors.New("aucune phrase dans cette direction")
)

// Exercise walks the learner through progressive phrases one at a time.
// A phrase is editable until it verifies correct, then it is locked and
// the next phrase opens after AdvanceDelay.
type Exercise struct {
	QuestionID int64                      `json:"questionId"`
	Phrases    []models.ProgressivePhrase `json:"-"`
	Boards     []Board                    `json:"boards"`
	Current    int                        `json:"current"`
	Verified   map[int]bool               `json:"verified"`
	Validation map[int]Result             `json:"validation"`
	Score      int                        `json:"score"`
	Streak     int                        `json:"streak"`
	Finished   bool                       `json:"finished"`

	pending   bool
	advanceAt time.Time
	now       func() time.Time
	rng       *rand.Rand
}

func NewExercise(questionID int64, phrases []models.ProgressivePhrase, rng *rand.Rand) *Exercise {
	boards := make([]Board, len(phrases))
	for i, p := range phrases {
		boards[i] = NewBoard(p.Template, p.Words, rng)
	}
	return &Exercise{
		QuestionID: questionID,
		Phrases:    phrases,
		Boards:     boards,
		Verified:   make(map[int]bool),
		Validation: make(map[int]Result),
		now:        time.Now,
		rng:        rng,
	}
}

// SetClock replaces the time source used for the advance delay.
func (e *Exercise) SetClock(now func() time.Time) {
	e.now = now
}

// CheckKey identifies the check result of one phrase.
func CheckKey(questionID int64, phrase int) string {
	return fmt.Sprintf("%d-phrase-%d", questionID, phrase)
}

// Tick performs a due automatic advance.
func (e *Exercise) Tick() {
	if !e.pending || e.now().Before(e.advanceAt) {
		return
	}
	delete(e.Validation, e.Current)
	e.Current++
	e.pending = false
}

// Apply runs a board action on the current phrase.
func (e *Exercise) Apply(a Action) error {
	e.Tick()
	if len(e.Boards) == 0 {
		return ErrNoPhrase
	}
	if e.Verified[e.Current] {
		return ErrLocked
	}
	next, err := Reduce(e.Boards[e.Current], a)
	if err != nil {
		return err
	}
	e.Boards[e.Current] = next
	return nil
}

// Verify checks the current phrase. A correct phrase is locked, earns
// PointsPerSlot per slot and schedules the move to the next phrase. A
// wrong phrase resets the streak.
func (e *Exercise) Verify(arabic bool) (Result, error) {
	e.Tick()
	if len(e.Boards) == 0 {
		return Result{}, ErrNoPhrase
	}
	idx := e.Current
	if e.Verified[idx] {
		return e.Validation[idx], ErrLocked
	}

	phrase := e.Phrases[idx]
	res := Verify(phrase.Template, phrase.Words, e.Boards[idx].Answer(), arabic)
	e.Validation[idx] = res

	if !res.IsCorrect {
		e.Streak = 0
		return res, nil
	}

	e.Verified[idx] = true
	e.Score += res.TotalCount * PointsPerSlot
	e.Streak++
	if idx == len(e.Phrases)-1 {
		e.Finished = true
	} else {
		e.pending = true
		e.advanceAt = e.now().Add(AdvanceDelay)
	}
	return res, nil
}

// Next moves forward manually. Only verified phrases can be left forward.
func (e *Exercise) Next() error {
	e.Tick()
	if !e.Verified[e.Current] {
		return ErrNotVerified
	}
	if e.Current >= len(e.Phrases)-1 {
		return ErrNoPhrase
	}
	e.pending = false
	e.Current++
	return nil
}

func (e *Exercise) Prev() error {
	e.Tick()
	if e.Current == 0 {
		return ErrNoPhrase
	}
	e.pending = false
	e.Current--
	return nil
}

// Reset clears every phrase, the score and the streak, and reshuffles
// the word banks.
func (e *Exercise) Reset() {
	for i, p := range e.Phrases {
		e.Boards[i] = NewBoard(p.Template, p.Words, e.rng)
	}
	e.Current = 0
	e.Verified = make(map[int]bool)
	e.Validation = make(map[int]Result)
	e.Score = 0
	e.Streak = 0
	e.Finished = false
	e.pending = false
}

// Answer returns the placed words of every phrase that has at least one.
func (e *Exercise) Answer() models.PhraseAnswer {
	answer := make(models.PhraseAnswer)
	for i, b := range e.Boards {
		if len(b.Placed) == 0 {
			continue
		}
		answer[i] = b.Answer()
	}
	return answer
}
