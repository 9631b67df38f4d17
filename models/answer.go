package models

// Answer is a visitor's answer to one question. Its concrete shape
// depends on the question type.
type Answer interface {
	isAnswer()
}

// TextAnswer is free text for text, essay and essay section questions.
type TextAnswer string

// ChoiceAnswer is the selected option id of a plain single choice.
type ChoiceAnswer string

// SubChoiceAnswer maps sub-question id to the selected option id.
type SubChoiceAnswer map[string]string

// TrueFalseAnswer maps sub-question id to the true/false pick.
type TrueFalseAnswer map[string]bool

type Justification struct {
	Answer        bool   `json:"answer"`
	Justification string `json:"justification"`
}

// JustifiedAnswer maps sub-question id to a true/false pick with its
// written justification.
type JustifiedAnswer map[string]Justification

// IndexedAnswer maps a row or cell index to a value. Matching rows hold an
// option id, table cells hold text.
type IndexedAnswer map[int]string

// SlotAnswer maps a template slot number to the word placed in it.
type SlotAnswer map[int]string

// PhraseAnswer maps a phrase index to the slots filled in that phrase.
type PhraseAnswer map[int]SlotAnswer

func (TextAnswer) isAnswer()      {}
func (ChoiceAnswer) isAnswer()    {}
func (SubChoiceAnswer) isAnswer() {}
func (TrueFalseAnswer) isAnswer() {}
func (JustifiedAnswer) isAnswer() {}
func (IndexedAnswer) isAnswer()   {}
func (SlotAnswer) isAnswer()      {}
func (PhraseAnswer) isAnswer()    {}

// Answers is keyed by question id.
type Answers map[int64]Answer

// Validation is the advisory result of checking one answer.
type Validation struct {
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
	IsText    bool   `json:"isText,omitempty"`
}
