package models

type QCMOption struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	TextArabic string `json:"textArabic,omitempty"`
}

type QCMQuestion struct {
	ID                int64       `json:"id"`
	ChapterID         int64       `json:"chapterId"`
	Question          string      `json:"question"`
	QuestionArabic    string      `json:"questionArabic,omitempty"`
	Options           []QCMOption `json:"options"`
	CorrectAnswer     string      `json:"correctAnswer,omitempty"`
	Explanation       string      `json:"explanation,omitempty"`
	ExplanationArabic string      `json:"explanationArabic,omitempty"`
}

type QCMCount struct {
	ChapterID int64 `json:"chapterId"`
	Count     int   `json:"count"`
}

type QCMRequest struct {
	ChapterID         int64       `json:"chapterId" binding:"required"`
	Question          string      `json:"question" binding:"required"`
	QuestionArabic    string      `json:"questionArabic"`
	Options           []QCMOption `json:"options" binding:"required"`
	CorrectAnswer     string      `json:"correctAnswer" binding:"required,oneof=a b c d"`
	Explanation       string      `json:"explanation"`
	ExplanationArabic string      `json:"explanationArabic"`
}
