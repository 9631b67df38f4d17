package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"bac_exam_platform/models"
)

func (c *Client) Books(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.do(ctx, http.MethodGet, "/books", "", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ChaptersByBook lists the chapters of a book. The call is bounded by
// ChapterTimeout, and a payload that is not a JSON array is rejected.
func (c *Client) ChaptersByBook(ctx context.Context, bookID, token string) ([]models.Chapter, error) {
	if c.ChapterTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.ChapterTimeout)
		defer cancel()
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/chapters/book/"+url.PathEscape(bookID), token, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidFormat
	}

	var chapters []models.Chapter
	if err := json.Unmarshal(raw, &chapters); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return chapters, nil
}

func (c *Client) ExamsByBook(ctx context.Context, bookID, token string) ([]models.Exam, error) {
	var exams []models.Exam
	if err := c.do(ctx, http.MethodGet, "/exams/book/"+url.PathEscape(bookID), token, nil, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (c *Client) Exam(ctx context.Context, id int64, token string) (*models.Exam, error) {
	var exam models.Exam
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/exams/%d", id), token, nil, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *Client) QuestionsByExam(ctx context.Context, examID int64, token string) (*models.QuestionsList, error) {
	var list models.QuestionsList
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/questions/exam/%d", examID), token, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) EssayQuestionsByExam(ctx context.Context, examID int64, token string) (*models.QuestionsList, error) {
	var list models.QuestionsList
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/essay-questions/exam/%d", examID), token, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) EssayQuestionsByBook(ctx context.Context, bookID, token string) (*models.QuestionsList, error) {
	var list models.QuestionsList
	if err := c.do(ctx, http.MethodGet, "/essay-questions/book/"+url.PathEscape(bookID), token, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) QCMByChapter(ctx context.Context, chapterID int64, token string) ([]models.QCMQuestion, error) {
	var qcm []models.QCMQuestion
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/qcm/chapter/%d", chapterID), token, nil, &qcm); err != nil {
		return nil, err
	}
	return qcm, nil
}

func (c *Client) QCMCount(ctx context.Context, chapterID int64, token string) (int, error) {
	var count models.QCMCount
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/qcm/chapter/%d/count", chapterID), token, nil, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}
