package questions

import "bac_exam_platform/models"

// Renderer names the widget the UI uses to display a question.
type Renderer string

const (
	RendererSingleChoice        Renderer = "single_choice"
	RendererSingleChoiceGrouped Renderer = "single_choice_grouped"
	RendererTrueFalse           Renderer = "true_false"
	RendererTrueFalseJustified  Renderer = "true_false_justified"
	RendererMatching            Renderer = "matching"
	RendererTable               Renderer = "table"
	RendererWordPlacement       Renderer = "word_placement"
	RendererText                Renderer = "text"
	RendererEssaySubject        Renderer = "essay_subject"
	RendererEssaySection        Renderer = "essay_section"
	RendererUnsupported         Renderer = "unsupported"
)

// EssayMode is how an essay section collects its answer.
type EssayMode string

const (
	EssayProgressive   EssayMode = "progressive"
	EssayWordPlacement EssayMode = "word_placement"
	EssayText          EssayMode = "text"
)

// Dispatch picks exactly one renderer for the question. Questions whose
// payload lacks the data their renderer needs are unsupported.
func Dispatch(q models.Question) Renderer {
	switch q.Type {
	case models.TypeEssaySubject:
		return RendererEssaySubject
	case models.TypeEssayIntroduction, models.TypeEssayDevelopment, models.TypeEssayConclusion:
		return RendererEssaySection
	case models.TypeTable:
		if q.TableContent == nil {
			return RendererUnsupported
		}
		return RendererTable
	case models.TypeMultipleChoice:
		if len(q.SubQuestions) == 0 {
			return RendererUnsupported
		}
		return RendererTrueFalse
	case models.TypeMultipleChoiceWithJustification:
		if len(q.SubQuestions) == 0 {
			return RendererUnsupported
		}
		return RendererTrueFalseJustified
	case models.TypeMultipleChoiceSingle:
		if len(q.SubQuestions) > 0 {
			return RendererSingleChoiceGrouped
		}
		return RendererSingleChoice
	case models.TypeMatching:
		if len(q.MatchingPairs) == 0 {
			return RendererUnsupported
		}
		return RendererMatching
	case models.TypeWordPlacement:
		if q.DragDropWords == nil {
			return RendererUnsupported
		}
		return RendererWordPlacement
	case models.TypeText, models.TypeEssay:
		return RendererText
	default:
		return RendererUnsupported
	}
}

// EssayModeOf reports how an essay section is answered: phrase by phrase,
// by placing words in one template, or as free text.
func EssayModeOf(q models.Question) EssayMode {
	switch {
	case len(q.ProgressivePhrases) > 0:
		return EssayProgressive
	case q.DragDropWords != nil && q.DragDropWords.Template != "":
		return EssayWordPlacement
	default:
		return EssayText
	}
}

// SectionTitle is the heading shown above an essay question.
func SectionTitle(q models.Question, arabic bool) string {
	type title struct{ fr, ar string }
	titles := map[models.QuestionType]title{
		models.TypeEssaySubject:      {"Sujet de l'essai", "موضوع الإنشاء"},
		models.TypeEssayIntroduction: {"Introduction", "المقدمة"},
		models.TypeEssayDevelopment:  {"Développement", "التطوير"},
		models.TypeEssayConclusion:   {"Conclusion", "الخاتمة"},
	}
	t, ok := titles[q.Type]
	if !ok {
		return ""
	}
	if arabic {
		return t.ar
	}
	return t.fr
}
