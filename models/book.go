package models

type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Color     string `json:"color"`
	ExamCount int    `json:"examCount"`
}
