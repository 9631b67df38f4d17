package navigation

import (
	"errors"
	"fmt"

	"bac_exam_platform/gate"
	"bac_exam_platform/models"
)

type View string

const (
	ViewBooks         View = "books"
	ViewBookContent   View = "book-content"
	ViewChapters      View = "chapters"
	ViewQCMChapters   View = "qcm-chapters"
	ViewQCMViewer     View = "qcm-viewer"
	ViewEssayPractice View = "essay-practice"
	ViewYears         View = "years"
	ViewExams         View = "exams"
	ViewExam          View = "exam"
)

// DefaultBook is selected when a visitor arrives or goes home.
const DefaultBook = "dernier-jour"

var (
	ErrInvalidTransition = errors.New("navigation impossible depuis cette vue")
	ErrLocked            = errors.New("contenu réservé aux utilisateurs connectés")
	ErrMissingTarget     = errors.New("élément de destination manquant")
)

type EventKind string

const (
	EventSelectBook        EventKind = "select-book"
	EventOpenContent       EventKind = "open-content"
	EventSelectYear        EventKind = "select-year"
	EventSelectExam        EventKind = "select-exam"
	EventSelectQCMChapter  EventKind = "select-qcm-chapter"
	EventBackToBooks       EventKind = "back-to-books"
	EventBackToBookContent EventKind = "back-to-book-content"
	EventBackToYears       EventKind = "back-to-years"
	EventBackToExams       EventKind = "back-to-exams"
	EventBackToQCMChapters EventKind = "back-to-qcm-chapters"
	EventHome              EventKind = "home"
)

// Event is a user action on the router. Only the fields relevant to its
// kind are read. Index is the position of the picked item in its list and
// drives the freemium gate. HTTP callers never supply it, the handler
// looks it up in the list the visitor is shown.
type Event struct {
	Kind      EventKind   `json:"kind" binding:"required"`
	BookID    string      `json:"bookId,omitempty"`
	Content   ContentType `json:"content,omitempty"`
	Year      string      `json:"year,omitempty"`
	ExamID    int64       `json:"examId,omitempty"`
	ChapterID int64       `json:"chapterId,omitempty"`
	Index     int         `json:"index,omitempty"`
}

// Transient is the exam-taking state wiped by every transition.
type Transient struct {
	Slide       int            `json:"slide"`
	Answers     models.Answers `json:"-"`
	ShowAnswers map[int64]bool `json:"showAnswers"`
	Error       string         `json:"error,omitempty"`
}

// State is where a visitor is in the platform.
type State struct {
	View      View      `json:"view"`
	BookID    string    `json:"bookId"`
	Year      string    `json:"year,omitempty"`
	ExamID    int64     `json:"examId,omitempty"`
	ChapterID int64     `json:"chapterId,omitempty"`
	Transient Transient `json:"transient"`
}

// Initial is the state of a fresh visitor.
func Initial() State {
	return State{View: ViewBooks, BookID: DefaultBook, Transient: fresh()}
}

func fresh() Transient {
	return Transient{Answers: models.Answers{}, ShowAnswers: map[int64]bool{}}
}

// Transition applies an event. Invalid events leave the state untouched
// and return an error. Every accepted event clears the transient state.
func Transition(s State, e Event, user *models.User) (State, error) {
	next := s

	switch e.Kind {
	case EventSelectBook:
		if s.View != ViewBooks {
			return s, invalid(s, e)
		}
		if e.BookID == "" {
			return s, ErrMissingTarget
		}
		next = State{View: ViewBookContent, BookID: e.BookID}

	case EventOpenContent:
		if s.View != ViewBookContent {
			return s, invalid(s, e)
		}
		tile, ok := tiles[e.Content]
		if !ok {
			return s, ErrMissingTarget
		}
		next.View = tile.View

	case EventSelectYear:
		if s.View != ViewYears {
			return s, invalid(s, e)
		}
		if e.Year == "" {
			return s, ErrMissingTarget
		}
		next.View = ViewExams
		next.Year = e.Year

	case EventSelectExam:
		if s.View != ViewExams {
			return s, invalid(s, e)
		}
		if e.ExamID == 0 {
			return s, ErrMissingTarget
		}
		if gate.IsItemLocked(e.Index, user, gate.FreeLimit) {
			return s, ErrLocked
		}
		next.View = ViewExam
		next.ExamID = e.ExamID

	case EventSelectQCMChapter:
		if s.View != ViewQCMChapters {
			return s, invalid(s, e)
		}
		if e.ChapterID == 0 {
			return s, ErrMissingTarget
		}
		if gate.IsItemLocked(e.Index, user, gate.FreeLimit) {
			return s, ErrLocked
		}
		next.View = ViewQCMViewer
		next.ChapterID = e.ChapterID

	case EventBackToBooks:
		if s.View == ViewBooks {
			return s, invalid(s, e)
		}
		next = State{View: ViewBooks, BookID: s.BookID}

	case EventBackToBookContent:
		switch s.View {
		case ViewChapters, ViewQCMChapters, ViewEssayPractice, ViewYears:
		default:
			return s, invalid(s, e)
		}
		next = State{View: ViewBookContent, BookID: s.BookID}

	case EventBackToYears:
		if s.View != ViewExams {
			return s, invalid(s, e)
		}
		next.View = ViewYears
		next.ExamID = 0

	case EventBackToExams:
		if s.View != ViewExam {
			return s, invalid(s, e)
		}
		next.View = ViewExams
		next.ExamID = 0

	case EventBackToQCMChapters:
		if s.View != ViewQCMViewer {
			return s, invalid(s, e)
		}
		next.View = ViewQCMChapters
		next.ChapterID = 0

	case EventHome:
		next = State{View: ViewBooks, BookID: DefaultBook}

	default:
		return s, fmt.Errorf("%w: événement %q inconnu", ErrInvalidTransition, e.Kind)
	}

	next.Transient = fresh()
	return next, nil
}

func invalid(s State, e Event) error {
	return fmt.Errorf("%w: %s depuis %s", ErrInvalidTransition, e.Kind, s.View)
}

// Names carries the display names the page title needs.
type Names struct {
	Book    string
	Chapter string
	Exam    string
}

// Title is the page heading of the current view.
func Title(s State, n Names) string {
	switch s.View {
	case ViewBooks:
		return "Bibliothèque"
	case ViewBookContent:
		return n.Book
	case ViewChapters:
		return "Chapitres - " + n.Book
	case ViewQCMChapters:
		return "QCM - " + n.Book
	case ViewQCMViewer:
		if n.Chapter != "" {
			return fmt.Sprintf("QCM: %s - %s", n.Chapter, n.Book)
		}
		return "QCM - " + n.Book
	case ViewEssayPractice:
		return "Production Écrite - " + n.Book
	case ViewYears:
		return "Examens - " + n.Book
	case ViewExams:
		if s.Year != "" {
			return fmt.Sprintf("Examens %s - %s", s.Year, n.Book)
		}
		return "Examens - " + n.Book
	case ViewExam:
		if n.Exam != "" {
			return fmt.Sprintf("%s - %s", n.Exam, n.Book)
		}
		return "Examen - " + n.Book
	default:
		return "Plateforme d'Apprentissage"
	}
}
