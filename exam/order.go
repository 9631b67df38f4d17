package exam

import (
	"sort"

	"bac_exam_platform/models"
)

var essayRank = map[models.QuestionType]int{
	models.TypeEssaySubject:      1,
	models.TypeEssayIntroduction: 2,
	models.TypeEssayDevelopment:  3,
	models.TypeEssayConclusion:   4,
}

// SortEssayLast returns the questions with every regular question first,
// in its original order, followed by the essay questions ordered subject,
// introduction, development, conclusion.
func SortEssayLast(questions []models.Question) []models.Question {
	sorted := make([]models.Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return essayRank[sorted[i].Type] < essayRank[sorted[j].Type]
	})
	return sorted
}

// MergeByOrder joins the regular and essay question lists of an exam,
// sorted by their order field.
func MergeByOrder(regular, essays []models.Question) []models.Question {
	merged := make([]models.Question, 0, len(regular)+len(essays))
	merged = append(merged, regular...)
	merged = append(merged, essays...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})
	return merged
}
