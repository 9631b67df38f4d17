package platform

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"bac_exam_platform/exam"
	"bac_exam_platform/models"
	"bac_exam_platform/navigation"
	"bac_exam_platform/placement"
)

func sampleExam() models.Exam {
	return models.Exam{
		ID:    5,
		Title: "Bac 2022",
		Questions: []models.Question{
			{
				ID:      1,
				Type:    models.TypeMultipleChoiceSingle,
				Options: []models.Option{{ID: "a"}, {ID: "b"}},
				Answer:  "b",
			},
			{
				ID:   2,
				Type: models.TypeEssayIntroduction,
				ProgressivePhrases: []models.ProgressivePhrase{
					{Template: "Le [1] est [2].", Words: []string{"roman", "sombre"}},
				},
			},
			{
				ID:            3,
				Type:          models.TypeEssayDevelopment,
				DragDropWords: &models.DragDropWords{Template: "Hugo [1] la peine.", Words: []string{"condamne"}},
			},
			{ID: 4, Type: models.TypeEssayConclusion},
		},
	}
}

func newSession(t *testing.T) (*Visitor, *ExamSession, *time.Time) {
	t.Helper()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	v := newVisitor("v", func() time.Time { return now })
	v.rng = rand.New(rand.NewPCG(1, 2))
	v.Nav = navigation.State{View: navigation.ViewExam, BookID: "dernier-jour", ExamID: 5}
	v.Nav.Transient = navigation.Transient{}
	return v, v.StartExam(sampleExam()), &now
}

// place puts the token carrying word into slot.
func place(t *testing.T, b placement.Board, word string, slot int, apply func(placement.Action) error) {
	t.Helper()
	for _, tok := range b.Tokens {
		if tok.Word == word {
			if err := apply(placement.Action{Kind: placement.ActionSelect, Token: tok.ID}); err != nil {
				t.Fatal(err)
			}
			if err := apply(placement.Action{Kind: placement.ActionPlace, Slot: slot}); err != nil {
				t.Fatal(err)
			}
			return
		}
	}
	t.Fatalf("word %q not in bank", word)
}

func TestRegistryGetAndEvict(t *testing.T) {
	now := time.Now()
	r := NewRegistry(time.Minute)
	r.now = func() time.Time { return now }

	a := r.Get("a")
	if r.Get("a") != a {
		t.Fatal("Get should return the same visitor")
	}
	if a.Nav.View != navigation.ViewBooks || a.Nav.BookID != navigation.DefaultBook {
		t.Errorf("fresh visitor state = %+v", a.Nav)
	}

	now = now.Add(45 * time.Second)
	r.Get("b")
	now = now.Add(30 * time.Second)
	if n := r.Evict(); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestApplyDropsSessions(t *testing.T) {
	v, _, _ := newSession(t)
	v.StartQCM(3, nil)
	if err := v.Apply(navigation.Event{Kind: navigation.EventBackToExams}, nil); err != nil {
		t.Fatal(err)
	}
	if v.Exam != nil || v.QCM != nil {
		t.Error("sessions should be dropped on transition")
	}

	before := v.Nav
	err := v.Apply(navigation.Event{Kind: navigation.EventSelectExam, ExamID: 9, Index: 1}, nil)
	if !errors.Is(err, navigation.ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if v.Nav.View != before.View {
		t.Error("locked selection changed the view")
	}
}

func TestAnswerCheckAndReveal(t *testing.T) {
	_, s, _ := newSession(t)

	s.Next()
	s.Next()
	view := s.Current()
	if view.Kind != exam.SlideQuestion || view.Question.ID != 1 {
		t.Fatalf("slide 2 = %+v", view.Slide)
	}
	if view.Question.Answer != "" {
		t.Error("expected answer leaked before reveal")
	}

	if err := s.SetAnswer(1, json.RawMessage(`"b"`)); err != nil {
		t.Fatal(err)
	}
	v, err := s.Check(1)
	if err != nil || !v.IsCorrect || v.Feedback != "Bonne réponse!" {
		t.Fatalf("Check = %+v, %v", v, err)
	}

	if err := s.SetAnswer(1, json.RawMessage(`"a"`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Checks["1"]; ok {
		t.Error("changing the answer should drop the check")
	}

	if shown, _ := s.ToggleAnswer(1); !shown {
		t.Fatal("ToggleAnswer should show")
	}
	if got := s.Current(); got.Question.Answer != "b" || !got.Shown {
		t.Errorf("revealed slide = %+v", got)
	}
	if err := s.SetAnswer(1, json.RawMessage(`"b"`)); !errors.Is(err, ErrAnswerShown) {
		t.Errorf("err = %v, want ErrAnswerShown", err)
	}
	if err := s.SetAnswer(99, nil); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
}

func TestCompleteEssayUnlocksFinalSlide(t *testing.T) {
	_, s, now := newSession(t)
	if total := s.Current().Total; total != 6 {
		t.Fatalf("total = %d, want 6", total)
	}

	ex, err := s.Exercise(2)
	if err != nil {
		t.Fatal(err)
	}
	apply := func(a placement.Action) error {
		_, err := s.PhraseAction(2, a)
		return err
	}
	place(t, ex.Boards[0], "roman", 1, apply)
	place(t, ex.Boards[0], "sombre", 2, apply)
	res, err := s.PhraseVerify(2)
	if err != nil || !res.IsCorrect {
		t.Fatalf("PhraseVerify = %+v, %v", res, err)
	}
	if _, ok := s.Checks[placement.CheckKey(2, 0)]; !ok {
		t.Error("phrase check not recorded")
	}
	*now = now.Add(placement.AdvanceDelay)

	single, err := s.Placement(3)
	if err != nil {
		t.Fatal(err)
	}
	place(t, single.Board, "condamne", 1, func(a placement.Action) error {
		_, err := s.PlacementAction(3, a)
		return err
	})
	if res, err := s.PlacementVerify(3); err != nil || !res.IsCorrect {
		t.Fatalf("PlacementVerify = %+v, %v", res, err)
	}

	if err := s.SetAnswer(4, json.RawMessage(`"Ainsi, le roman reste actuel."`)); err != nil {
		t.Fatal(err)
	}

	view := s.Current()
	if view.Total != 7 {
		t.Fatalf("total = %d, want 7", view.Total)
	}
	essay := s.Essay()
	want := "Le roman est sombre.\n\nHugo condamne la peine.\n\nAinsi, le roman reste actuel."
	if essay.Text != want {
		t.Errorf("essay = %q, want %q", essay.Text, want)
	}

	if _, err := s.PhraseReset(2); err != nil {
		t.Fatal(err)
	}
	if s.Current().Total != 6 {
		t.Error("resetting the introduction should hide the essay slide")
	}
}

func TestPlacementOnNonPlacementQuestion(t *testing.T) {
	_, s, _ := newSession(t)
	if _, err := s.Placement(1); !errors.Is(err, ErrNoWidget) {
		t.Errorf("err = %v, want ErrNoWidget", err)
	}
	if _, err := s.Exercise(3); !errors.Is(err, ErrNoWidget) {
		t.Errorf("err = %v, want ErrNoWidget", err)
	}
}

func TestBoardQuestionsRejectTypedAnswers(t *testing.T) {
	_, s, _ := newSession(t)
	for _, id := range []int64{2, 3} {
		if err := s.SetAnswer(id, json.RawMessage(`"Le roman est sombre."`)); !errors.Is(err, ErrBoardAnswer) {
			t.Errorf("SetAnswer(%d) err = %v, want ErrBoardAnswer", id, err)
		}
	}
	if got := s.Essay().Text; got != "" {
		t.Errorf("essay = %q, want empty", got)
	}
}

func TestPhraseLockedOnceRevealed(t *testing.T) {
	_, s, _ := newSession(t)
	ex, err := s.Exercise(2)
	if err != nil {
		t.Fatal(err)
	}
	if shown, err := s.ToggleAnswer(2); err != nil || !shown {
		t.Fatalf("ToggleAnswer = %v, %v", shown, err)
	}

	tok := ex.Boards[0].Tokens[0].ID
	if _, err := s.PhraseAction(2, placement.Action{Kind: placement.ActionSelect, Token: tok}); !errors.Is(err, ErrAnswerShown) {
		t.Errorf("PhraseAction err = %v, want ErrAnswerShown", err)
	}
	if _, err := s.PhraseReset(2); !errors.Is(err, ErrAnswerShown) {
		t.Errorf("PhraseReset err = %v, want ErrAnswerShown", err)
	}
}

func TestToggles(t *testing.T) {
	_, s, _ := newSession(t)
	if !s.ToggleArabic() || s.ToggleArabic() {
		t.Error("ToggleArabic should flip")
	}
	if on, err := s.ToggleHelper(1); err != nil || on {
		t.Errorf("question without helper: %v %v", on, err)
	}
}

func qcmFixture() *QCMSession {
	return NewQCMSession(3, []models.QCMQuestion{
		{ID: 1, Options: []models.QCMOption{{ID: "a"}, {ID: "b"}}, CorrectAnswer: "a", Explanation: "car"},
		{ID: 2, Options: []models.QCMOption{{ID: "c"}, {ID: "d"}}, CorrectAnswer: "d"},
	})
}

func TestQCMFlow(t *testing.T) {
	s := qcmFixture()

	if v := s.View(); v.Questions[0].CorrectAnswer != "" || v.Questions[0].Explanation != "" {
		t.Error("answers leaked before submit")
	}
	if err := s.Select(1, "z"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("err = %v", err)
	}
	if err := s.Select(1, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrQCMIncomplete) {
		t.Fatalf("err = %v, want ErrQCMIncomplete", err)
	}
	s.Select(2, "c")

	res, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 1 || res.Total != 2 || !res.Outcomes[0].IsCorrect || res.Outcomes[1].IsCorrect {
		t.Errorf("result = %+v", res)
	}

	if err := s.Select(2, "d"); !errors.Is(err, ErrResultsShown) {
		t.Errorf("answers should be frozen, err = %v", err)
	}
	if s.Selected[2] != "c" {
		t.Error("frozen answer changed")
	}
	if v := s.View(); v.Result == nil || v.Questions[0].CorrectAnswer != "a" {
		t.Error("results view should carry the answers")
	}

	s.Reset()
	if s.ShowResults || len(s.Selected) != 0 {
		t.Error("reset left answers")
	}
}
