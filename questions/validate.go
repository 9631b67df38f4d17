package questions

import (
	"fmt"
	"strings"

	"bac_exam_platform/models"
	"bac_exam_platform/placement"
)

// feedback holds the French and Arabic forms of a message.
type feedback struct{ fr, ar string }

func (f feedback) in(arabic bool) string {
	if arabic {
		return f.ar
	}
	return f.fr
}

func ratio(correct, total int, fr, ar string) feedback {
	return feedback{
		fr: fmt.Sprintf("%d/%d %s", correct, total, fr),
		ar: fmt.Sprintf("%d/%d %s", correct, total, ar),
	}
}

var (
	msgNoAnswer     = feedback{"Aucune réponse fournie", "لم يتم تقديم إجابة"}
	msgIncomplete   = feedback{"Réponse incomplète", "إجابة غير مكتملة"}
	msgAllCorrect   = feedback{"Toutes les réponses sont correctes!", "جميع الإجابات صحيحة!"}
	msgGood         = feedback{"Bonne réponse!", "إجابة صحيحة!"}
	msgWrong        = feedback{"Réponse incorrecte", "إجابة خاطئة"}
	msgAllJustified = feedback{"Toutes les réponses et justifications sont correctes!", "جميع الإجابات والتبريرات صحيحة!"}
	msgAllMatched   = feedback{"Toutes les correspondances sont correctes!", "جميع المطابقات صحيحة!"}
	msgTableDone    = feedback{"Tableau complété correctement!", "جدول مكتمل بشكل صحيح!"}
	msgAllPlaced    = feedback{"Tous les mots sont placés correctement!", "جميع الكلمات في المكان الصحيح!"}
	msgAllFilled    = feedback{"Tous les espaces sont remplis!", "تم ملء جميع الفراغات!"}
	msgWrongShape   = feedback{"Type de réponse incorrect", "نوع إجابة غير صحيح"}
	msgUnsupported  = feedback{"Type de question non supporté", "نوع سؤال غير مدعوم"}
)

// trueLabels are the expected-answer spellings meaning "true".
var trueLabels = map[string]bool{"VRAI": true, "صحيح": true}

// Validate grades an answer against the expected answer of the question.
// The result is advisory practice feedback.
func Validate(q models.Question, answer models.Answer, arabic bool) models.Validation {
	if missing(answer) {
		return fail(msgNoAnswer, arabic)
	}

	switch q.Type {
	case models.TypeMultipleChoiceSingle:
		return validateSingle(q, answer, arabic)
	case models.TypeMultipleChoice:
		return validateTrueFalse(q, answer, arabic)
	case models.TypeMultipleChoiceWithJustification:
		return validateJustified(q, answer, arabic)
	case models.TypeMatching:
		return validateMatching(q, answer, arabic)
	case models.TypeTable:
		return validateTable(q, answer, arabic)
	case models.TypeWordPlacement:
		return validateWordPlacement(q, answer, arabic)
	case models.TypeText, models.TypeEssay:
		return validateText(q, answer, arabic)
	default:
		return fail(msgUnsupported, arabic)
	}
}

func missing(answer models.Answer) bool {
	switch a := answer.(type) {
	case nil:
		return true
	case models.TextAnswer:
		return a == ""
	case models.ChoiceAnswer:
		return a == ""
	}
	return false
}

func fail(msg feedback, arabic bool) models.Validation {
	return models.Validation{IsCorrect: false, Feedback: msg.in(arabic)}
}

func graded(correct, total int, all, partial feedback, arabic bool) models.Validation {
	ok := correct == total
	msg := partial
	if ok {
		msg = all
	}
	return models.Validation{IsCorrect: ok, Feedback: msg.in(arabic)}
}

func validateSingle(q models.Question, answer models.Answer, arabic bool) models.Validation {
	if len(q.SubQuestions) > 0 {
		picks, ok := answer.(models.SubChoiceAnswer)
		if !ok {
			return fail(msgIncomplete, arabic)
		}
		correct := 0
		for _, sq := range q.SubQuestions {
			if pick, ok := picks[sq.ID]; ok && pick == sq.Answer {
				correct++
			}
		}
		total := len(q.SubQuestions)
		return graded(correct, total, msgAllCorrect, ratio(correct, total, "réponses correctes", "إجابات صحيحة"), arabic)
	}

	pick, ok := answer.(models.ChoiceAnswer)
	if !ok || string(pick) != q.Answer {
		return fail(msgWrong, arabic)
	}
	return models.Validation{IsCorrect: true, Feedback: msgGood.in(arabic)}
}

func validateTrueFalse(q models.Question, answer models.Answer, arabic bool) models.Validation {
	picks, ok := answer.(models.TrueFalseAnswer)
	if len(q.SubQuestions) == 0 || !ok {
		return fail(msgIncomplete, arabic)
	}
	correct := 0
	for _, sq := range q.SubQuestions {
		if pick, ok := picks[sq.ID]; ok && pick == trueLabels[sq.Answer] {
			correct++
		}
	}
	total := len(q.SubQuestions)
	return graded(correct, total, msgAllCorrect, ratio(correct, total, "réponses correctes", "إجابات صحيحة"), arabic)
}

func validateJustified(q models.Question, answer models.Answer, arabic bool) models.Validation {
	picks, ok := answer.(models.JustifiedAnswer)
	if len(q.SubQuestions) == 0 || !ok {
		return fail(msgIncomplete, arabic)
	}
	correct := 0
	for _, sq := range q.SubQuestions {
		pick, ok := picks[sq.ID]
		if !ok {
			continue
		}
		if pick.Answer == trueLabels[sq.Answer] && strings.TrimSpace(pick.Justification) != "" {
			correct++
		}
	}
	total := len(q.SubQuestions)
	v := graded(correct, total, msgAllJustified, ratio(correct, total, "réponses complètes", "إجابات مكتملة"), arabic)
	v.IsText = true
	return v
}

func validateMatching(q models.Question, answer models.Answer, arabic bool) models.Validation {
	picks, ok := answer.(models.IndexedAnswer)
	if len(q.MatchingPairs) == 0 || !ok {
		return fail(msgIncomplete, arabic)
	}
	correct := 0
	for i, pair := range q.MatchingPairs {
		want := pair.Right
		if arabic && pair.RightArabic != "" {
			want = pair.RightArabic
		}
		for _, opt := range q.Options {
			text := opt.Text
			if arabic && opt.TextArabic != "" {
				text = opt.TextArabic
			}
			if text == want {
				if picks[i] == opt.ID {
					correct++
				}
				break
			}
		}
	}
	total := len(q.MatchingPairs)
	return graded(correct, total, msgAllMatched, ratio(correct, total, "correspondances correctes", "مطابقات صحيحة"), arabic)
}

func validateTable(q models.Question, answer models.Answer, arabic bool) models.Validation {
	cells, ok := answer.(models.IndexedAnswer)
	if q.TableContent == nil || len(q.TableContent.Answer) == 0 || !ok {
		return fail(msgIncomplete, arabic)
	}
	expected := q.TableContent.Answer
	correct := 0
	for i, want := range expected {
		got, ok := cells[i]
		if !ok || got == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want)) {
			correct++
		}
	}
	total := len(expected)
	return graded(correct, total, msgTableDone, ratio(correct, total, "cellules correctes", "خلايا صحيحة"), arabic)
}

func validateWordPlacement(q models.Question, answer models.Answer, arabic bool) models.Validation {
	slots, ok := answer.(models.SlotAnswer)
	if q.DragDropWords == nil || !ok {
		return fail(msgIncomplete, arabic)
	}
	markers := placement.SlotNumbers(q.DragDropWords.Template)
	if len(slots) < len(markers) {
		return fail(ratio(len(slots), len(markers), "mots placés", "كلمات موضوعة"), arabic)
	}
	correct := countPlacements(q.DragDropWords, slots)
	total := len(markers)
	return graded(correct, total, msgAllPlaced, ratio(correct, total, "mots corrects", "كلمات صحيحة"), arabic)
}

func countPlacements(dd *models.DragDropWords, slots models.SlotAnswer) int {
	correct := 0
	for i, n := range placement.SlotNumbers(dd.Template) {
		if i < len(dd.Words) && slots[n] == dd.Words[i] {
			correct++
		}
	}
	return correct
}

func validateText(q models.Question, answer models.Answer, arabic bool) models.Validation {
	if slots, ok := answer.(models.SlotAnswer); ok && q.DragDropWords != nil {
		total := len(placement.SlotNumbers(q.DragDropWords.Template))
		if q.Answer != "" {
			expected := placement.Expected(q.DragDropWords.Template, q.DragDropWords.Words)
			correct := 0
			for _, n := range placement.SlotNumbers(q.DragDropWords.Template) {
				want, ok := expected[n]
				if ok && slots[n] != "" && slots[n] == want {
					correct++
				}
			}
			all := correct == total && len(slots) == total
			msg := ratio(correct, total, "mots corrects", "كلمات صحيحة")
			if all {
				msg = msgAllPlaced
			}
			return models.Validation{IsCorrect: all, Feedback: msg.in(arabic)}
		}
		v := graded(len(slots), total, msgAllFilled, ratio(len(slots), total, "espaces remplis", "فراغات مملوءة"), arabic)
		v.IsText = true
		return v
	}

	text, ok := answer.(models.TextAnswer)
	if !ok {
		return fail(msgWrongShape, arabic)
	}
	words := len(strings.Fields(string(text)))
	if words == 0 {
		return models.Validation{Feedback: msgNoAnswer.in(arabic), IsText: true}
	}
	return models.Validation{
		IsCorrect: true,
		Feedback: feedback{
			fr: fmt.Sprintf("Réponse fournie (%d mots)", words),
			ar: fmt.Sprintf("تم تقديم إجابة (%d كلمة)", words),
		}.in(arabic),
		IsText: true,
	}
}
