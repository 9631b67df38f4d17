package placement

import (
	"math/rand/v2"

	"bac_exam_platform/models"
)

// PointsPerSlot is awarded for every slot of a fully correct verification.
const PointsPerSlot = 10

// Single is the word placement widget for one template.
type Single struct {
	Template string   `json:"template"`
	Words    []string `json:"-"`
	Board    Board    `json:"board"`
	Verified bool     `json:"verified"`
	Result   *Result  `json:"result,omitempty"`
	Score    int      `json:"score"`
	Streak   int      `json:"streak"`
}

func NewSingle(words models.DragDropWords, rng *rand.Rand) *Single {
	return &Single{
		Template: words.Template,
		Words:    words.Words,
		Board:    NewBoard(words.Template, words.Words, rng),
	}
}

// Apply runs a board action. Verified boards are frozen until TryAgain.
func (s *Single) Apply(a Action) error {
	if s.Verified {
		return ErrLocked
	}
	next, err := Reduce(s.Board, a)
	if err != nil {
		return err
	}
	s.Board = next
	s.Result = nil
	return nil
}

// Verify checks a complete board and updates score and streak.
func (s *Single) Verify(arabic bool) (Result, error) {
	if s.Verified && s.Result != nil {
		return *s.Result, nil
	}
	if !s.Board.Complete() {
		return Result{}, ErrIncomplete
	}

	res := Verify(s.Template, s.Words, s.Board.Answer(), arabic)
	s.Verified = true
	s.Result = &res
	if res.IsCorrect {
		s.Score += res.TotalCount * PointsPerSlot
		s.Streak++
	} else {
		s.Streak = 0
	}
	return res, nil
}

// TryAgain unlocks the board after a verification, keeping the placements.
func (s *Single) TryAgain() {
	s.Verified = false
	s.Result = nil
}

// Reset clears placements, verification, score and streak.
func (s *Single) Reset() {
	s.Board, _ = Reduce(s.Board, Action{Kind: ActionReset})
	s.Verified = false
	s.Result = nil
	s.Score = 0
	s.Streak = 0
}

func (s *Single) Answer() models.SlotAnswer {
	return s.Board.Answer()
}
