package models

import "encoding/json"

type QuestionType string

const (
	TypeMultipleChoiceSingle            QuestionType = "multiple_choice_single"
	TypeMultipleChoice                  QuestionType = "multiple_choice"
	TypeMultipleChoiceWithJustification QuestionType = "multiple_choice_with_justification"
	TypeMatching                        QuestionType = "matching"
	TypeTable                           QuestionType = "table"
	TypeText                            QuestionType = "text"
	TypeEssay                           QuestionType = "essay"
	TypeWordPlacement                   QuestionType = "word_placement"
	TypeEssaySubject                    QuestionType = "essay_subject"
	TypeEssayIntroduction               QuestionType = "essay_introduction"
	TypeEssayDevelopment                QuestionType = "essay_development"
	TypeEssayConclusion                 QuestionType = "essay_conclusion"
)

// IsEssay reports whether the type belongs to the essay family that is
// always shown after the regular questions.
func (t QuestionType) IsEssay() bool {
	switch t {
	case TypeEssaySubject, TypeEssayIntroduction, TypeEssayDevelopment, TypeEssayConclusion:
		return true
	}
	return false
}

// IsEssaySection is true for the three written phases of the essay.
func (t QuestionType) IsEssaySection() bool {
	switch t {
	case TypeEssayIntroduction, TypeEssayDevelopment, TypeEssayConclusion:
		return true
	}
	return false
}

// Question merges the regular and essay question payloads of the API.
type Question struct {
	ID                 int64               `json:"id"`
	ExamID             int64               `json:"examId"`
	Type               QuestionType        `json:"type"`
	Title              string              `json:"title,omitempty"`
	SubTitle           string              `json:"subTitle,omitempty"`
	SubTitleArabic     string              `json:"subTitleArabic,omitempty"`
	Question           string              `json:"question,omitempty"`
	QuestionArabic     string              `json:"questionArabic,omitempty"`
	Instruction        string              `json:"instruction,omitempty"`
	InstructionArabic  string              `json:"instructionArabic,omitempty"`
	Prompt             string              `json:"prompt,omitempty"`
	PromptArabic       string              `json:"promptArabic,omitempty"`
	Points             int                 `json:"points"`
	Order              int                 `json:"order"`
	Options            []Option            `json:"options,omitempty"`
	SubQuestions       []SubQuestion       `json:"subQuestions,omitempty"`
	MatchingPairs      []MatchingPair      `json:"matchingPairs,omitempty"`
	TableContent       *TableContent       `json:"tableContent,omitempty"`
	DragDropWords      *DragDropWords      `json:"dragDropWords,omitempty"`
	ProgressivePhrases []ProgressivePhrase `json:"progressivePhrases,omitempty"`
	Helper             *Helper             `json:"helper,omitempty"`
	Criteria           json.RawMessage     `json:"criteria,omitempty"`
	Answer             string              `json:"answer,omitempty"`
	AnswerArabic       string              `json:"answerArabic,omitempty"`
}

type Option struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	TextArabic string `json:"textArabic,omitempty"`
}

type SubQuestion struct {
	ID                  string   `json:"id"`
	Question            string   `json:"question"`
	QuestionArabic      string   `json:"questionArabic,omitempty"`
	Options             []Option `json:"options,omitempty"`
	Answer              string   `json:"answer,omitempty"`
	AnswerArabic        string   `json:"answerArabic,omitempty"`
	Justification       string   `json:"justification,omitempty"`
	JustificationArabic string   `json:"justificationArabic,omitempty"`
}

type MatchingPair struct {
	Left        string `json:"left"`
	LeftArabic  string `json:"leftArabic,omitempty"`
	Right       string `json:"right,omitempty"`
	RightArabic string `json:"rightArabic,omitempty"`
}

type TableContent struct {
	Headers       []string `json:"headers"`
	HeadersArabic []string `json:"headersArabic,omitempty"`
	Answer        []string `json:"answer,omitempty"`
	AnswerArabic  []string `json:"answerArabic,omitempty"`
}

// DragDropWords holds a template with [N] slot markers. Words[i] is the
// expected filler of the i-th marker in template order.
type DragDropWords struct {
	Template string   `json:"template"`
	Words    []string `json:"words"`
}

type ProgressivePhrase struct {
	Template          string   `json:"template"`
	Words             []string `json:"words"`
	Description       string   `json:"description,omitempty"`
	DescriptionArabic string   `json:"descriptionArabic,omitempty"`
	Helper            *Helper  `json:"helper,omitempty"`
}

// Helper is the vocabulary hint shown on demand.
type Helper struct {
	French []string `json:"french,omitempty"`
	Arabic []string `json:"arabic,omitempty"`
}

type QuestionsList struct {
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"totalQuestions"`
	TotalPoints    int        `json:"totalPoints"`
}

// EssayGroup is the set of essay questions of one exam, shown as a
// writing exercise card.
type EssayGroup struct {
	ExamID      int64      `json:"examId"`
	ExamTitle   string     `json:"examTitle"`
	Year        string     `json:"year"`
	Region      string     `json:"region"`
	PreviewText string     `json:"previewText"`
	TotalPoints int        `json:"totalPoints"`
	Essays      []Question `json:"essays,omitempty"`
}
