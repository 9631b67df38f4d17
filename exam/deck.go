package exam

import (
	"fmt"

	"bac_exam_platform/models"
	"bac_exam_platform/questions"
)

type SlideKind string

const (
	SlideTitle    SlideKind = "title"
	SlideText     SlideKind = "text"
	SlideQuestion SlideKind = "question"
	SlideEssay    SlideKind = "complete_essay"
)

// Slide describes what is shown at one position of the deck.
type Slide struct {
	Index    int              `json:"index"`
	Kind     SlideKind        `json:"kind"`
	Title    string           `json:"title"`
	Number   int              `json:"number,omitempty"`
	Question *models.Question `json:"question,omitempty"`
}

// Deck is the linear slide sequence of one exam: a title page, the source
// text, one slide per question and, once every essay section is complete,
// the assembled essay.
type Deck struct {
	Exam      models.Exam
	Questions []models.Question
	Sections  []models.Question
}

func NewDeck(e models.Exam) *Deck {
	sorted := SortEssayLast(e.Questions)
	var sections []models.Question
	for _, q := range sorted {
		if q.Type.IsEssaySection() {
			sections = append(sections, q)
		}
	}
	return &Deck{Exam: e, Questions: sorted, Sections: sections}
}

// EssaysComplete holds when the exam has exactly the three essay sections
// and each one is fully answered.
func (d *Deck) EssaysComplete(answers models.Answers) bool {
	if len(d.Sections) != 3 {
		return false
	}
	for _, q := range d.Sections {
		if !SectionComplete(q, answers[q.ID]) {
			return false
		}
	}
	return true
}

// TotalSlides counts title, text and question slides plus the essay slide
// when it is unlocked.
func (d *Deck) TotalSlides(answers models.Answers) int {
	n := len(d.Questions) + 2
	if d.EssaysComplete(answers) {
		n++
	}
	return n
}

// Clamp keeps a slide index inside the deck.
func (d *Deck) Clamp(i int, answers models.Answers) int {
	last := d.TotalSlides(answers) - 1
	if i > last {
		return last
	}
	if i < 0 {
		return 0
	}
	return i
}

// Next moves one slide forward, staying on the last slide.
func (d *Deck) Next(current int, answers models.Answers) int {
	return d.Clamp(current+1, answers)
}

// Prev moves one slide back, staying on the first slide.
func (d *Deck) Prev(current int, answers models.Answers) int {
	return d.Clamp(current-1, answers)
}

// Slide returns the slide at index i, which must be inside the deck.
func (d *Deck) Slide(i int, answers models.Answers, arabic bool) Slide {
	i = d.Clamp(i, answers)
	switch {
	case i == 0:
		return Slide{Index: i, Kind: SlideTitle, Title: pick(arabic, "Page de titre", "صفحة العنوان")}
	case i == 1:
		return Slide{Index: i, Kind: SlideText, Title: pick(arabic, "Texte", "النص")}
	case i-2 < len(d.Questions):
		q := d.Questions[i-2]
		s := Slide{Index: i, Kind: SlideQuestion, Number: i - 1, Question: &q}
		s.Title = questions.SectionTitle(q, arabic)
		if s.Title == "" {
			s.Title = pick(arabic, fmt.Sprintf("Question %d", i-1), fmt.Sprintf("السؤال %d", i-1))
		}
		return s
	default:
		return Slide{Index: i, Kind: SlideEssay, Title: pick(arabic, "Essai Complet", "المقال الكامل")}
	}
}

// Question looks up a question of the deck by id.
func (d *Deck) Question(id int64) (models.Question, bool) {
	for _, q := range d.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// Essay assembles the learner's complete essay.
func (d *Deck) Essay(answers models.Answers) Essay {
	return ComposeEssay(d.Sections, answers)
}

func pick(arabic bool, fr, ar string) string {
	if arabic {
		return ar
	}
	return fr
}
