package navigation

import (
	"errors"
	"testing"

	"bac_exam_platform/models"
)

func mustTransition(t *testing.T, s State, e Event, user *models.User) State {
	t.Helper()
	next, err := Transition(s, e, user)
	if err != nil {
		t.Fatalf("%s from %s: %v", e.Kind, s.View, err)
	}
	return next
}

func TestExamPath(t *testing.T) {
	s := Initial()
	s = mustTransition(t, s, Event{Kind: EventSelectBook, BookID: "antigone"}, nil)
	if s.View != ViewBookContent || s.BookID != "antigone" {
		t.Fatalf("after select-book: %+v", s)
	}

	s = mustTransition(t, s, Event{Kind: EventOpenContent, Content: ContentExams}, nil)
	if s.View != ViewYears {
		t.Fatalf("exams tile opened %s", s.View)
	}

	s = mustTransition(t, s, Event{Kind: EventSelectYear, Year: "2022"}, nil)
	s = mustTransition(t, s, Event{Kind: EventSelectExam, ExamID: 9, Index: 0}, nil)
	if s.View != ViewExam || s.ExamID != 9 || s.Year != "2022" {
		t.Fatalf("after select-exam: %+v", s)
	}

	s = mustTransition(t, s, Event{Kind: EventBackToExams}, nil)
	if s.View != ViewExams || s.ExamID != 0 {
		t.Fatalf("after back-to-exams: %+v", s)
	}
	s = mustTransition(t, s, Event{Kind: EventBackToYears}, nil)
	s = mustTransition(t, s, Event{Kind: EventBackToBookContent}, nil)
	if s.View != ViewBookContent || s.Year != "" {
		t.Fatalf("after back-to-book-content: %+v", s)
	}
}

func TestContentTiles(t *testing.T) {
	want := map[ContentType]View{
		ContentChapters: ViewChapters,
		ContentQCM:      ViewQCMChapters,
		ContentEssay:    ViewEssayPractice,
		ContentExams:    ViewYears,
	}
	base := State{View: ViewBookContent, BookID: "antigone"}
	for content, view := range want {
		s := mustTransition(t, base, Event{Kind: EventOpenContent, Content: content}, nil)
		if s.View != view {
			t.Errorf("%s opened %s, want %s", content, s.View, view)
		}
	}
	if len(Tiles()) != 4 {
		t.Errorf("tiles = %d", len(Tiles()))
	}
}

func TestGatedSelections(t *testing.T) {
	exams := State{View: ViewExams, BookID: "antigone", Year: "2021"}
	if _, err := Transition(exams, Event{Kind: EventSelectExam, ExamID: 3, Index: 1}, nil); !errors.Is(err, ErrLocked) {
		t.Fatalf("locked exam: %v", err)
	}
	user := &models.User{ID: 1, Role: models.RoleStudent}
	if _, err := Transition(exams, Event{Kind: EventSelectExam, ExamID: 3, Index: 1}, user); err != nil {
		t.Fatalf("signed-in exam: %v", err)
	}

	qcm := State{View: ViewQCMChapters, BookID: "antigone"}
	if _, err := Transition(qcm, Event{Kind: EventSelectQCMChapter, ChapterID: 4, Index: 2}, nil); !errors.Is(err, ErrLocked) {
		t.Fatalf("locked qcm chapter: %v", err)
	}
	s := mustTransition(t, qcm, Event{Kind: EventSelectQCMChapter, ChapterID: 4, Index: 0}, nil)
	if s.View != ViewQCMViewer || s.ChapterID != 4 {
		t.Fatalf("free qcm chapter: %+v", s)
	}
}

func TestInvalidTransitionKeepsState(t *testing.T) {
	s := Initial()
	s.Transient.Slide = 3

	next, err := Transition(s, Event{Kind: EventSelectExam, ExamID: 1}, nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v", err)
	}
	if next.View != s.View || next.Transient.Slide != 3 {
		t.Fatalf("state changed: %+v", next)
	}

	if _, err := Transition(s, Event{Kind: "teleport"}, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unknown event: %v", err)
	}
}

func TestTransitionResetsTransient(t *testing.T) {
	s := State{View: ViewExam, BookID: "antigone", Year: "2022", ExamID: 5}
	s.Transient = Transient{
		Slide:       4,
		Answers:     models.Answers{1: models.TextAnswer("x")},
		ShowAnswers: map[int64]bool{1: true},
		Error:       "boom",
	}

	next := mustTransition(t, s, Event{Kind: EventBackToExams}, nil)
	tr := next.Transient
	if tr.Slide != 0 || len(tr.Answers) != 0 || len(tr.ShowAnswers) != 0 || tr.Error != "" {
		t.Fatalf("transient not reset: %+v", tr)
	}
	if len(s.Transient.Answers) != 1 {
		t.Fatal("previous state answers were cleared in place")
	}
}

func TestHome(t *testing.T) {
	s := State{View: ViewQCMViewer, BookID: "antigone", ChapterID: 2}
	s = mustTransition(t, s, Event{Kind: EventHome}, nil)
	if s.View != ViewBooks || s.BookID != DefaultBook || s.ChapterID != 0 {
		t.Fatalf("home: %+v", s)
	}
}

func TestTitle(t *testing.T) {
	n := Names{Book: "Antigone", Chapter: "Prologue", Exam: "Examen National"}
	tests := []struct {
		s    State
		want string
	}{
		{State{View: ViewBooks}, "Bibliothèque"},
		{State{View: ViewBookContent}, "Antigone"},
		{State{View: ViewChapters}, "Chapitres - Antigone"},
		{State{View: ViewQCMViewer}, "QCM: Prologue - Antigone"},
		{State{View: ViewEssayPractice}, "Production Écrite - Antigone"},
		{State{View: ViewExams, Year: "2022"}, "Examens 2022 - Antigone"},
		{State{View: ViewExam}, "Examen National - Antigone"},
	}
	for _, tt := range tests {
		if got := Title(tt.s, n); got != tt.want {
			t.Errorf("Title(%s) = %q, want %q", tt.s.View, got, tt.want)
		}
	}
}
