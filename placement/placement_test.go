package placement

import (
	"math/rand/v2"
	"slices"
	"sort"
	"testing"
	"time"

	"bac_exam_platform/models"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func tokenFor(t *testing.T, b Board, word string) int {
	t.Helper()
	for _, tok := range b.Tokens {
		if tok.Word == word {
			return tok.ID
		}
	}
	t.Fatalf("word %q not in bank", word)
	return -1
}

func place(t *testing.T, b Board, word string, slot int) Board {
	t.Helper()
	b, err := Reduce(b, Action{Kind: ActionSelect, Token: tokenFor(t, b, word)})
	if err != nil {
		t.Fatalf("select %q: %v", word, err)
	}
	b, err = Reduce(b, Action{Kind: ActionPlace, Slot: slot})
	if err != nil {
		t.Fatalf("place %q in %d: %v", word, slot, err)
	}
	return b
}

func TestSlotNumbers(t *testing.T) {
	tests := []struct {
		template string
		want     []int
	}{
		{"[0] and [1]", []int{0, 1}},
		{"Le [2] est [0], le [2] aussi", []int{2, 0, 2}},
		{"pas de marqueur", []int{}},
	}
	for _, tt := range tests {
		got := SlotNumbers(tt.template)
		if !slices.Equal(got, tt.want) {
			t.Errorf("SlotNumbers(%q) = %v, want %v", tt.template, got, tt.want)
		}
	}

	if got := DistinctSlots("Le [2] est [0], le [2] aussi"); !slices.Equal(got, []int{2, 0}) {
		t.Errorf("DistinctSlots = %v", got)
	}
}

func TestShuffleKeepsWords(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e"}
	shuffled := Shuffle(words, seeded())
	sorted := slices.Clone(shuffled)
	sort.Strings(sorted)
	if !slices.Equal(sorted, words) {
		t.Fatalf("shuffle changed the multiset: %v", shuffled)
	}
	if !slices.Equal(words, []string{"a", "b", "c", "d", "e"}) {
		t.Fatal("shuffle modified its input")
	}
}

func TestPlaceMovesWordBetweenSlots(t *testing.T) {
	b := NewBoard("[0] et [1]", []string{"chat", "chien"}, seeded())

	b = place(t, b, "chat", 0)
	b = place(t, b, "chat", 1)

	answer := b.Answer()
	if _, ok := answer[0]; ok {
		t.Errorf("slot 0 still holds %q", answer[0])
	}
	if answer[1] != "chat" {
		t.Errorf("slot 1 = %q, want chat", answer[1])
	}
}

func TestAvailableIsBankMinusPlaced(t *testing.T) {
	b := NewBoard("[0] [1] [2]", []string{"de", "de", "la"}, seeded())
	b = place(t, b, "la", 2)

	first := tokenFor(t, b, "de")
	b, _ = Reduce(b, Action{Kind: ActionSelect, Token: first})
	b, _ = Reduce(b, Action{Kind: ActionPlace, Slot: 0})

	var words []string
	for _, tok := range b.Available() {
		words = append(words, tok.Word)
	}
	if !slices.Equal(words, []string{"de"}) {
		t.Fatalf("available = %v, want [de]", words)
	}

	b, _ = Reduce(b, Action{Kind: ActionRemove, Slot: 2})
	if len(b.Available()) != 2 {
		t.Fatalf("available after remove = %d tokens, want 2", len(b.Available()))
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	b := NewBoard("[0]", []string{"mot"}, seeded())
	after := place(t, b, "mot", 0)

	if len(b.Placed) != 0 {
		t.Fatal("original board changed")
	}
	if len(after.Placed) != 1 {
		t.Fatal("new board has no placement")
	}
}

func TestReduceErrors(t *testing.T) {
	b := NewBoard("[0]", []string{"mot"}, seeded())

	if _, err := Reduce(b, Action{Kind: ActionSelect, Token: 5}); err != ErrUnknownToken {
		t.Errorf("select unknown token: %v", err)
	}
	if _, err := Reduce(b, Action{Kind: ActionPlace, Slot: 9}); err != ErrUnknownSlot {
		t.Errorf("place unknown slot: %v", err)
	}
	if _, err := Reduce(b, Action{Kind: "drag"}); err != ErrUnknownAction {
		t.Errorf("unknown action: %v", err)
	}

	same, err := Reduce(b, Action{Kind: ActionPlace, Slot: 0})
	if err != nil || len(same.Placed) != 0 {
		t.Errorf("place without selection should be a no-op, got %v %v", same.Placed, err)
	}
}

func TestVerify(t *testing.T) {
	template := "Le [0] mange la [1]"
	words := []string{"chat", "souris"}

	res := Verify(template, words, models.SlotAnswer{0: "chat", 1: "souris"}, false)
	if !res.IsCorrect || res.Feedback != "Phrase correcte!" || res.CorrectCount != 2 {
		t.Errorf("correct phrase: %+v", res)
	}

	res = Verify(template, words, models.SlotAnswer{0: "souris", 1: "souris"}, false)
	if res.IsCorrect || res.Feedback != "1/2 mots corrects" {
		t.Errorf("wrong phrase: %+v", res)
	}
	if res.SlotResults[0] || !res.SlotResults[1] {
		t.Errorf("slot results = %v", res.SlotResults)
	}
}

func TestSingleScoring(t *testing.T) {
	s := NewSingle(models.DragDropWords{Template: "[0] [1]", Words: []string{"un", "deux"}}, seeded())

	if _, err := s.Verify(false); err != ErrIncomplete {
		t.Fatalf("verify incomplete: %v", err)
	}

	s.Board = place(t, s.Board, "deux", 0)
	s.Board = place(t, s.Board, "un", 1)
	res, err := s.Verify(false)
	if err != nil || res.IsCorrect {
		t.Fatalf("expected wrong answer, got %+v %v", res, err)
	}
	if s.Streak != 0 || s.Score != 0 {
		t.Errorf("score=%d streak=%d after wrong answer", s.Score, s.Streak)
	}

	if err := s.Apply(Action{Kind: ActionReset}); err != ErrLocked {
		t.Fatalf("edit after verify: %v", err)
	}

	s.TryAgain()
	s.Board = place(t, s.Board, "un", 0)
	s.Board = place(t, s.Board, "deux", 1)
	res, err = s.Verify(false)
	if err != nil || !res.IsCorrect {
		t.Fatalf("expected correct answer, got %+v %v", res, err)
	}
	if s.Score != 20 || s.Streak != 1 {
		t.Errorf("score=%d streak=%d, want 20 and 1", s.Score, s.Streak)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func solve(t *testing.T, e *Exercise) {
	t.Helper()
	p := e.Phrases[e.Current]
	for i, slot := range SlotNumbers(p.Template) {
		b := e.Boards[e.Current]
		id := -1
		for _, tok := range b.Available() {
			if tok.Word == p.Words[i] {
				id = tok.ID
				break
			}
		}
		if id < 0 {
			t.Fatalf("word %q not available", p.Words[i])
		}
		if err := e.Apply(Action{Kind: ActionSelect, Token: id}); err != nil {
			t.Fatal(err)
		}
		if err := e.Apply(Action{Kind: ActionPlace, Slot: slot}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExerciseProgression(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	e := NewExercise(42, []models.ProgressivePhrase{
		{Template: "[0] et [1]", Words: []string{"pain", "beurre"}},
		{Template: "[0]", Words: []string{"fin"}},
	}, seeded())
	e.SetClock(clock.now)

	if err := e.Next(); err != ErrNotVerified {
		t.Fatalf("next before verify: %v", err)
	}

	res, err := e.Verify(false)
	if err != nil || res.IsCorrect {
		t.Fatalf("empty phrase verified: %+v %v", res, err)
	}

	solve(t, e)
	res, err = e.Verify(false)
	if err != nil || !res.IsCorrect {
		t.Fatalf("solved phrase: %+v %v", res, err)
	}
	if e.Score != 20 || e.Streak != 1 {
		t.Errorf("score=%d streak=%d", e.Score, e.Streak)
	}
	if err := e.Apply(Action{Kind: ActionReset}); err != ErrLocked {
		t.Errorf("edit of verified phrase: %v", err)
	}

	clock.t = clock.t.Add(time.Second)
	e.Tick()
	if e.Current != 0 {
		t.Fatalf("advanced before the delay")
	}
	clock.t = clock.t.Add(AdvanceDelay)
	e.Tick()
	if e.Current != 1 {
		t.Fatalf("current = %d after delay, want 1", e.Current)
	}

	solve(t, e)
	if _, err := e.Verify(false); err != nil {
		t.Fatal(err)
	}
	if !e.Finished {
		t.Error("exercise not finished after last phrase")
	}
	if e.Score != 30 || e.Streak != 2 {
		t.Errorf("score=%d streak=%d, want 30 and 2", e.Score, e.Streak)
	}

	if err := e.Prev(); err != nil || e.Current != 0 {
		t.Errorf("prev: %v current=%d", err, e.Current)
	}

	answer := e.Answer()
	if answer[0][0] != "pain" || answer[1][0] != "fin" {
		t.Errorf("answer = %v", answer)
	}

	e.Reset()
	if e.Score != 0 || e.Streak != 0 || e.Finished || len(e.Answer()) != 0 {
		t.Errorf("reset left state: %+v", e)
	}
}

func TestCheckKey(t *testing.T) {
	if got := CheckKey(12, 3); got != "12-phrase-3" {
		t.Errorf("CheckKey = %q", got)
	}
}
