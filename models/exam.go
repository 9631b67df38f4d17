package models

type Exam struct {
	ID            int64        `json:"id"`
	BookID        string       `json:"bookId"`
	Title         string       `json:"title"`
	TitleArabic   string       `json:"titleArabic,omitempty"`
	Year          string       `json:"year"`
	Region        string       `json:"region"`
	Subject       string       `json:"subject,omitempty"`
	SubjectArabic string       `json:"subjectArabic,omitempty"`
	Points        int          `json:"points"`
	Duration      string       `json:"duration,omitempty"`
	TextExtract   *TextExtract `json:"textExtract,omitempty"`
	Questions     []Question   `json:"questions,omitempty"`
}

type TextExtract struct {
	Content       string         `json:"content"`
	SourceChapter *SourceChapter `json:"sourceChapter,omitempty"`
}

// SourceChapter links an extract back to the chapter video it comes from.
// TimeStart and TimeEnd are "mm:ss" clip bounds.
type SourceChapter struct {
	ChapterID          int64  `json:"chapterId"`
	ChapterNumber      int    `json:"chapterNumber"`
	ChapterTitle       string `json:"chapterTitle"`
	ChapterTitleArabic string `json:"chapterTitleArabic,omitempty"`
	VideoURL           string `json:"videoUrl,omitempty"`
	TimeStart          string `json:"timeStart,omitempty"`
	TimeEnd            string `json:"timeEnd,omitempty"`
	BookTitle          string `json:"bookTitle,omitempty"`
}

type ExamRequest struct {
	BookID        string       `json:"bookId" binding:"required"`
	Title         string       `json:"title" binding:"required"`
	TitleArabic   string       `json:"titleArabic"`
	Year          string       `json:"year" binding:"required"`
	Region        string       `json:"region"`
	Subject       string       `json:"subject"`
	SubjectArabic string       `json:"subjectArabic"`
	Points        int          `json:"points"`
	Duration      string       `json:"duration"`
	TextExtract   *TextExtract `json:"textExtract"`
}

type Year struct {
	ID          string   `json:"id"`
	Year        string   `json:"year"`
	Description string   `json:"description"`
	ExamCount   int      `json:"examCount"`
	Regions     []string `json:"regions"`
}

type Region struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ExamCount int    `json:"examCount"`
}
