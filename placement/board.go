package placement

import (
	"errors"
	"math/rand/v2"
	"slices"

	"bac_exam_platform/models"
)

var (
	ErrUnknownToken  = errors.New("mot inconnu")
	ErrUnknownSlot   = errors.New("emplacement inconnu")
	ErrUnknownAction = errors.New("action inconnue")
	ErrLocked        = errors.New("la phrase est déjà vérifiée")
	ErrIncomplete    = errors.New("tous les emplacements doivent être remplis")
)

// Token is one word instance of the bank. Duplicated words get distinct ids.
type Token struct {
	ID   int    `json:"id"`
	Word string `json:"word"`
}

const noSelection = -1

// Board is the click-to-place state of one template: the shuffled bank,
// the token placed in each slot and the currently selected token.
type Board struct {
	Slots    []int       `json:"slots"`
	Tokens   []Token     `json:"tokens"`
	Placed   map[int]int `json:"placed"`
	Selected int         `json:"selected"`
}

type ActionKind string

const (
	ActionSelect ActionKind = "select"
	ActionPlace  ActionKind = "place"
	ActionRemove ActionKind = "remove"
	ActionReset  ActionKind = "reset"
)

type Action struct {
	Kind  ActionKind `json:"kind" binding:"required"`
	Token int        `json:"token"`
	Slot  int        `json:"slot"`
}

// Shuffle returns a Fisher-Yates shuffled copy of words. A nil rng uses the
// package level source.
func Shuffle(words []string, rng *rand.Rand) []string {
	shuffled := slices.Clone(words)
	for i := len(shuffled) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NewBoard shuffles the words once and lays out the template slots.
func NewBoard(template string, words []string, rng *rand.Rand) Board {
	shuffled := Shuffle(words, rng)
	tokens := make([]Token, len(shuffled))
	for i, w := range shuffled {
		tokens[i] = Token{ID: i, Word: w}
	}
	return Board{
		Slots:    DistinctSlots(template),
		Tokens:   tokens,
		Placed:   make(map[int]int),
		Selected: noSelection,
	}
}

// Reduce applies an action and returns the new board. The input board is
// not modified.
func Reduce(b Board, a Action) (Board, error) {
	next := b.clone()

	switch a.Kind {
	case ActionSelect:
		if !b.hasToken(a.Token) {
			return b, ErrUnknownToken
		}
		next.Selected = a.Token

	case ActionPlace:
		if !slices.Contains(b.Slots, a.Slot) {
			return b, ErrUnknownSlot
		}
		if b.Selected == noSelection {
			return b, nil
		}
		for slot, id := range next.Placed {
			if id == b.Selected {
				delete(next.Placed, slot)
			}
		}
		next.Placed[a.Slot] = b.Selected
		next.Selected = noSelection

	case ActionRemove:
		if !slices.Contains(b.Slots, a.Slot) {
			return b, ErrUnknownSlot
		}
		delete(next.Placed, a.Slot)

	case ActionReset:
		next.Placed = make(map[int]int)
		next.Selected = noSelection

	default:
		return b, ErrUnknownAction
	}

	return next, nil
}

// Available is the bank minus every placed token, in shuffled order.
func (b Board) Available() []Token {
	used := make(map[int]bool, len(b.Placed))
	for _, id := range b.Placed {
		used[id] = true
	}
	available := make([]Token, 0, len(b.Tokens)-len(used))
	for _, t := range b.Tokens {
		if !used[t.ID] {
			available = append(available, t)
		}
	}
	return available
}

// Answer returns the placed words keyed by slot number.
func (b Board) Answer() models.SlotAnswer {
	answer := make(models.SlotAnswer, len(b.Placed))
	for slot, id := range b.Placed {
		answer[slot] = b.Tokens[id].Word
	}
	return answer
}

// Complete reports whether every slot holds a token.
func (b Board) Complete() bool {
	for _, slot := range b.Slots {
		if _, ok := b.Placed[slot]; !ok {
			return false
		}
	}
	return true
}

func (b Board) hasToken(id int) bool {
	return id >= 0 && id < len(b.Tokens)
}

func (b Board) clone() Board {
	placed := make(map[int]int, len(b.Placed))
	for k, v := range b.Placed {
		placed[k] = v
	}
	return Board{
		Slots:    b.Slots,
		Tokens:   b.Tokens,
		Placed:   placed,
		Selected: b.Selected,
	}
}
