package gate

import (
	"fmt"

	"bac_exam_platform/models"
)

// FreeLimit is the number of leading items of any list that anonymous
// visitors may open.
const FreeLimit = 1

// IsItemLocked reports whether the item at index is hidden behind the
// login wall. Signed-in users never see locked items.
func IsItemLocked(index int, user *models.User, freeLimit int) bool {
	if user != nil {
		return false
	}
	return index >= freeLimit
}

// LockFlags returns the locked state of each of n list items.
func LockFlags(n int, user *models.User) []bool {
	flags := make([]bool, n)
	for i := range flags {
		flags[i] = IsItemLocked(i, user, FreeLimit)
	}
	return flags
}

type ContentKind string

const (
	KindChapter ContentKind = "chapter"
	KindExam    ContentKind = "exam"
	KindQCM     ContentKind = "qcm"
	KindEssay   ContentKind = "essay"
	KindContent ContentKind = "content"
)

type label struct {
	fr string
	ar string
}

var labels = map[ContentKind]label{
	KindChapter: {fr: "ce chapitre", ar: "هذا الفصل"},
	KindExam:    {fr: "cet examen", ar: "هذا الامتحان"},
	KindQCM:     {fr: "ce QCM", ar: "هذا الاختبار"},
	KindEssay:   {fr: "cet exercice", ar: "هذا التمرين"},
	KindContent: {fr: "ce contenu", ar: "هذا المحتوى"},
}

// Overlay is the call to action rendered over a locked item preview.
type Overlay struct {
	Kind        ContentKind `json:"kind"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description"`
	Benefits    []string    `json:"benefits"`
	Actions     []Action    `json:"actions"`
	Footer      string      `json:"footer"`
}

type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// LockOverlay builds the overlay for a locked item of the given kind.
// Unknown kinds fall back to the generic content label.
func LockOverlay(kind ContentKind, arabic bool) Overlay {
	l, ok := labels[kind]
	if !ok {
		kind = KindContent
		l = labels[KindContent]
	}

	if arabic {
		return Overlay{
			Kind:        kind,
			Title:       "محتوى مميز",
			Subtitle:    "سجّل الدخول لفتح المحتوى",
			Description: fmt.Sprintf("سجّل الدخول أو أنشئ حسابًا مجانيًا للوصول إلى %s.", l.ar),
			Actions: []Action{
				{ID: "login", Label: "تسجيل الدخول"},
				{ID: "register", Label: "إنشاء حساب مجاني"},
			},
		}
	}

	return Overlay{
		Kind:     kind,
		Title:    "Contenu Premium",
		Subtitle: "Connectez-vous pour débloquer",
		Description: fmt.Sprintf(
			"Connectez-vous ou créez un compte gratuit pour accéder à %s et débloquer tous nos contenus d'apprentissage.",
			l.fr,
		),
		Benefits: []string{
			"Tous les chapitres et résumés",
			"QCM interactifs illimités",
			"Exercices de production écrite",
			"Examens officiels complets",
		},
		Actions: []Action{
			{ID: "login", Label: "Se connecter"},
			{ID: "register", Label: "Créer un compte gratuit"},
		},
		Footer: "100% gratuit • Aucune carte bancaire requise",
	}
}
