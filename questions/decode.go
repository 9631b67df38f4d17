package questions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"bac_exam_platform/models"
)

var (
	ErrUnsupported    = errors.New("type de question non supporté")
	ErrNotAnswerable  = errors.New("cette question n'attend pas de réponse")
	ErrInvalidPayload = errors.New("format de réponse invalide")
)

// DecodeAnswer reads a submitted answer into the shape the question
// expects. A JSON null clears the answer and yields nil.
func DecodeAnswer(q models.Question, raw json.RawMessage) (models.Answer, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch Dispatch(q) {
	case RendererSingleChoice:
		return decodeInto[models.ChoiceAnswer](raw)
	case RendererSingleChoiceGrouped:
		return decodeInto[models.SubChoiceAnswer](raw)
	case RendererTrueFalse:
		return decodeInto[models.TrueFalseAnswer](raw)
	case RendererTrueFalseJustified:
		return decodeInto[models.JustifiedAnswer](raw)
	case RendererMatching, RendererTable:
		return decodeInto[models.IndexedAnswer](raw)
	case RendererWordPlacement:
		return decodeInto[models.SlotAnswer](raw)
	case RendererText:
		if raw[0] == '{' && q.DragDropWords != nil {
			return decodeInto[models.SlotAnswer](raw)
		}
		return decodeInto[models.TextAnswer](raw)
	case RendererEssaySection:
		switch EssayModeOf(q) {
		case EssayProgressive:
			return decodeInto[models.PhraseAnswer](raw)
		case EssayWordPlacement:
			return decodeInto[models.SlotAnswer](raw)
		default:
			return decodeInto[models.TextAnswer](raw)
		}
	case RendererEssaySubject:
		return nil, ErrNotAnswerable
	default:
		return nil, ErrUnsupported
	}
}

func decodeInto[T models.Answer](raw json.RawMessage) (models.Answer, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return v, nil
}

// Redact returns a copy of the question without its expected answers.
// Word lists are kept for the bank but sorted so their order gives
// nothing away.
func Redact(q models.Question) models.Question {
	q.Answer = ""
	q.AnswerArabic = ""

	if len(q.SubQuestions) > 0 {
		subs := make([]models.SubQuestion, len(q.SubQuestions))
		for i, sq := range q.SubQuestions {
			sq.Answer = ""
			sq.AnswerArabic = ""
			sq.Justification = ""
			sq.JustificationArabic = ""
			subs[i] = sq
		}
		q.SubQuestions = subs
	}

	if len(q.MatchingPairs) > 0 {
		pairs := make([]models.MatchingPair, len(q.MatchingPairs))
		for i, p := range q.MatchingPairs {
			pairs[i] = models.MatchingPair{Left: p.Left, LeftArabic: p.LeftArabic}
		}
		q.MatchingPairs = pairs
	}

	if q.TableContent != nil {
		tc := *q.TableContent
		tc.Answer = nil
		tc.AnswerArabic = nil
		q.TableContent = &tc
	}

	if q.DragDropWords != nil {
		dd := *q.DragDropWords
		dd.Words = sortedCopy(dd.Words)
		q.DragDropWords = &dd
	}

	if len(q.ProgressivePhrases) > 0 {
		phrases := make([]models.ProgressivePhrase, len(q.ProgressivePhrases))
		for i, p := range q.ProgressivePhrases {
			p.Words = sortedCopy(p.Words)
			phrases[i] = p
		}
		q.ProgressivePhrases = phrases
	}

	return q
}

func sortedCopy(words []string) []string {
	out := slices.Clone(words)
	slices.Sort(out)
	return out
}
