package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"bac_exam_platform/models"
)

var ErrInvalidQuestion = errors.New("question invalide")

var (
	regularTypes = []models.QuestionType{
		models.TypeText,
		models.TypeMultipleChoice,
		models.TypeMultipleChoiceSingle,
		models.TypeTable,
		models.TypeMatching,
		models.TypeWordPlacement,
	}
	essayTypes = []models.QuestionType{
		models.TypeEssayIntroduction,
		models.TypeEssayDevelopment,
		models.TypeEssayConclusion,
		models.TypeEssaySubject,
	}
)

// essayCriteria is the fixed grading grid attached to every essay subject.
var essayCriteria = json.RawMessage(`{
	"discourse": {
		"title": "Critères d'évaluation du discours",
		"titleArabic": "معايير تقييم الخطاب",
		"items": [
			{"text": "Conformité de la production à la consigne d'écriture", "textArabic": "مطابقة الإنتاج لتعليمة الكتابة", "points": 2.5},
			{"text": "Cohérence de l'argumentation", "textArabic": "تماسك الحجاج", "points": 1.5},
			{"text": "Structure du texte (organisation et progression du texte)", "textArabic": "بنية النص (تنظيم وتطور النص)", "points": 1}
		],
		"totalPoints": 5
	},
	"language": {
		"title": "Critères d'évaluation de la langue",
		"titleArabic": "معايير تقييم اللغة",
		"items": [
			{"text": "Vocabulaire (usage des termes précis et variés)", "textArabic": "المفردات (استخدام مصطلحات دقيقة ومتنوعة)", "points": 1},
			{"text": "Syntaxe (construction des phrases correctes)", "textArabic": "التركيب (بناء جمل صحيحة)", "points": 1},
			{"text": "Ponctuation (usage d'une ponctuation adéquate)", "textArabic": "الترقيم (استخدام ترقيم مناسب)", "points": 1},
			{"text": "Respect des règles orthographiques et grammaticales", "textArabic": "احترام القواعد الإملائية والنحوية", "points": 1},
			{"text": "Conjugaison (emploi des temps verbaux)", "textArabic": "التصريف (استخدام الأزمنة الفعلية)", "points": 1}
		],
		"totalPoints": 5
	}
}`)

func allowedTypes(essay bool) []models.QuestionType {
	if essay {
		return essayTypes
	}
	return regularTypes
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuestion, msg)
}

func typeList(types []models.QuestionType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// ImportDraft parses a pasted question and fills the defaults of the
// back-office form. essay selects the essay question family. The draft is
// not attached to an exam yet.
func ImportDraft(raw []byte, essay bool) (models.Question, error) {
	var q models.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return models.Question{}, invalid("Erreur de parsing JSON: " + err.Error())
	}
	if q.Type == "" || q.Question == "" {
		return models.Question{}, invalid(`Le JSON doit contenir au minimum "type" et "question"`)
	}
	types := allowedTypes(essay)
	if !slices.Contains(types, q.Type) {
		return models.Question{}, invalid("Type invalide. Types valides: " + typeList(types))
	}

	if q.Points == 0 {
		q.Points = 1
		if essay {
			q.Points = 2
		}
	}
	if q.Helper == nil {
		q.Helper = &models.Helper{French: []string{}, Arabic: []string{}}
	}
	q.ID = 0
	q.ExamID = 0
	return q, nil
}

// PrepareForSave checks a question sent by the back office before it is
// forwarded to the API. Essay subjects get their fixed heading, grid and
// points.
func PrepareForSave(q models.Question, essay bool) (models.Question, error) {
	if q.ExamID <= 0 {
		return q, invalid("L'examen est requis")
	}
	types := allowedTypes(essay)
	if !slices.Contains(types, q.Type) {
		return q, invalid("Type invalide. Types valides: " + typeList(types))
	}

	if q.Type == models.TypeEssaySubject {
		q.Question = "PRODUCTION ÉCRITE"
		q.QuestionArabic = "الإنتاج الكتابي"
		q.SubTitle = "Sujet"
		q.SubTitleArabic = "الموضوع"
		q.Criteria = essayCriteria
		q.Points = 10
		return q, nil
	}

	if q.Question == "" {
		return q, invalid("L'énoncé de la question est requis")
	}
	return q, nil
}
