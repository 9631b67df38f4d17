package exam

import (
	"strings"

	"bac_exam_platform/models"
	"bac_exam_platform/placement"
	"bac_exam_platform/questions"
)

// SectionComplete reports whether an essay section question has a full
// answer for its mode.
func SectionComplete(q models.Question, answer models.Answer) bool {
	if answer == nil {
		return false
	}
	switch questions.EssayModeOf(q) {
	case questions.EssayProgressive:
		phrases, ok := answer.(models.PhraseAnswer)
		if !ok {
			return false
		}
		for i, p := range q.ProgressivePhrases {
			slots, ok := phrases[i]
			if !ok || !placement.Filled(p.Template, slots) {
				return false
			}
		}
		return true
	case questions.EssayWordPlacement:
		slots, ok := answer.(models.SlotAnswer)
		return ok && placement.Filled(q.DragDropWords.Template, slots)
	default:
		text, ok := answer.(models.TextAnswer)
		return ok && strings.TrimSpace(string(text)) != ""
	}
}

// SectionText renders the learner's answer to an essay section as prose.
// Phrases that still have empty slots are left out, and a single template
// with empty slots yields nothing.
func SectionText(q models.Question, answer models.Answer) string {
	switch a := answer.(type) {
	case models.PhraseAnswer:
		var parts []string
		for i, p := range q.ProgressivePhrases {
			phrase := placement.Fill(p.Template, a[i])
			if phrase == "" || strings.Contains(phrase, "[") {
				continue
			}
			parts = append(parts, phrase)
		}
		return strings.Join(parts, " ")
	case models.SlotAnswer:
		if q.DragDropWords == nil {
			return ""
		}
		text := placement.Fill(q.DragDropWords.Template, a)
		if strings.Contains(text, "[") {
			return ""
		}
		return text
	case models.TextAnswer:
		return string(a)
	}
	return ""
}

// Essay is the full essay assembled from the three written sections.
type Essay struct {
	Introduction string `json:"introduction"`
	Development  string `json:"development"`
	Conclusion   string `json:"conclusion"`
	Text         string `json:"text"`
}

// Empty is true when no section produced any text.
func (e Essay) Empty() bool {
	return e.Introduction == "" && e.Development == "" && e.Conclusion == ""
}

// ComposeEssay assembles the essay from the section answers.
func ComposeEssay(sections []models.Question, answers models.Answers) Essay {
	var e Essay
	for _, q := range sections {
		text := SectionText(q, answers[q.ID])
		switch q.Type {
		case models.TypeEssayIntroduction:
			e.Introduction = text
		case models.TypeEssayDevelopment:
			e.Development = text
		case models.TypeEssayConclusion:
			e.Conclusion = text
		}
	}

	var parts []string
	for _, s := range []string{e.Introduction, e.Development, e.Conclusion} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	e.Text = strings.Join(parts, "\n\n")
	return e
}
