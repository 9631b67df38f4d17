package navigation

type ContentType string

const (
	ContentChapters ContentType = "chapters"
	ContentQCM      ContentType = "qcm"
	ContentEssay    ContentType = "essay"
	ContentExams    ContentType = "exams"
)

// Tile is one entry of the book content menu.
type Tile struct {
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	View        View        `json:"view"`
}

var tiles = map[ContentType]Tile{
	ContentChapters: {
		Type:        ContentChapters,
		Title:       "Chapitres & Résumés",
		Description: "Explorez les chapitres détaillés et les résumés complets du livre",
		View:        ViewChapters,
	},
	ContentQCM: {
		Type:        ContentQCM,
		Title:       "QCM par Chapitre",
		Description: "Testez vos connaissances avec des quiz interactifs organisés par chapitre",
		View:        ViewQCMChapters,
	},
	ContentEssay: {
		Type:        ContentEssay,
		Title:       "Production Écrite",
		Description: "Pratiquez l'introduction, le développement et la conclusion séparément",
		View:        ViewEssayPractice,
	},
	ContentExams: {
		Type:        ContentExams,
		Title:       "Examens Officiels",
		Description: "Entraînez-vous avec les examens officiels des années précédentes",
		View:        ViewYears,
	},
}

// Tiles lists the content menu in display order.
func Tiles() []Tile {
	return []Tile{
		tiles[ContentChapters],
		tiles[ContentQCM],
		tiles[ContentEssay],
		tiles[ContentExams],
	}
}
