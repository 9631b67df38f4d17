package models

type Chapter struct {
	ID            int64  `json:"id"`
	BookID        string `json:"bookId"`
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
	Duration      string `json:"duration,omitempty"`
	VideoURL      string `json:"videoUrl,omitempty"`
	Resume        string `json:"resume,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

type ChapterRequest struct {
	BookID        string `json:"bookId" binding:"required"`
	ChapterNumber int    `json:"chapterNumber" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Duration      string `json:"duration"`
	VideoURL      string `json:"videoUrl"`
	Resume        string `json:"resume"`
}
