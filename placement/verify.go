package placement

import (
	"fmt"

	"bac_exam_platform/models"
)

type Result struct {
	Complete     bool         `json:"complete"`
	IsCorrect    bool         `json:"isCorrect"`
	CorrectCount int          `json:"correctCount"`
	TotalCount   int          `json:"totalCount"`
	SlotResults  map[int]bool `json:"slotResults"`
	Feedback     string       `json:"feedback"`
}

// Verify compares the word in the i-th marker of the template with
// words[i].
func Verify(template string, words []string, slots models.SlotAnswer, arabic bool) Result {
	markers := SlotNumbers(template)
	res := Result{
		Complete:    Filled(template, slots),
		TotalCount:  len(markers),
		SlotResults: make(map[int]bool, len(markers)),
	}

	for i, n := range markers {
		var expected string
		if i < len(words) {
			expected = words[i]
		}
		word, ok := slots[n]
		correct := ok && i < len(words) && word == expected
		res.SlotResults[n] = correct
		if correct {
			res.CorrectCount++
		}
	}

	res.IsCorrect = res.CorrectCount == res.TotalCount
	switch {
	case res.IsCorrect && arabic:
		res.Feedback = "الجملة صحيحة!"
	case res.IsCorrect:
		res.Feedback = "Phrase correcte!"
	case arabic:
		res.Feedback = fmt.Sprintf("%d/%d كلمات صحيحة", res.CorrectCount, res.TotalCount)
	default:
		res.Feedback = fmt.Sprintf("%d/%d mots corrects", res.CorrectCount, res.TotalCount)
	}
	return res
}
