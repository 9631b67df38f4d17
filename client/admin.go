package client

import (
	"context"
	"fmt"
	"net/http"

	"bac_exam_platform/models"
)

func (c *Client) CreateChapter(ctx context.Context, token string, req models.ChapterRequest) (*models.Chapter, error) {
	var ch models.Chapter
	if err := c.do(ctx, http.MethodPost, "/chapters", token, req, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) UpdateChapter(ctx context.Context, token string, id int64, req models.ChapterRequest) (*models.Chapter, error) {
	var ch models.Chapter
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/chapters/%d", id), token, req, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) DeleteChapter(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/chapters/%d", id), token, nil, nil)
}

func (c *Client) CreateExam(ctx context.Context, token string, req models.ExamRequest) (*models.Exam, error) {
	var e models.Exam
	if err := c.do(ctx, http.MethodPost, "/exams", token, req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateExam(ctx context.Context, token string, id int64, req models.ExamRequest) (*models.Exam, error) {
	var e models.Exam
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/exams/%d", id), token, req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteExam(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/exams/%d", id), token, nil, nil)
}

func (c *Client) CreateQCM(ctx context.Context, token string, req models.QCMRequest) (*models.QCMQuestion, error) {
	var q models.QCMQuestion
	if err := c.do(ctx, http.MethodPost, "/qcm", token, req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) UpdateQCM(ctx context.Context, token string, id int64, req models.QCMRequest) (*models.QCMQuestion, error) {
	var q models.QCMQuestion
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/qcm/%d", id), token, req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) DeleteQCM(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/qcm/%d", id), token, nil, nil)
}

func (c *Client) Users(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) User(ctx context.Context, token string, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, req models.UserRequest) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/users", token, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, req models.UserRequest) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, nil)
}

func (c *Client) VerifyPayment(ctx context.Context, token string, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/verify-payment", id), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateQuestion(ctx context.Context, token string, q models.Question) (*models.Question, error) {
	return c.saveQuestion(ctx, http.MethodPost, "/questions", token, q)
}

func (c *Client) UpdateQuestion(ctx context.Context, token string, id int64, q models.Question) (*models.Question, error) {
	return c.saveQuestion(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", id), token, q)
}

func (c *Client) DeleteQuestion(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/questions/%d", id), token, nil, nil)
}

func (c *Client) CreateEssayQuestion(ctx context.Context, token string, q models.Question) (*models.Question, error) {
	return c.saveQuestion(ctx, http.MethodPost, "/essay-questions", token, q)
}

func (c *Client) UpdateEssayQuestion(ctx context.Context, token string, id int64, q models.Question) (*models.Question, error) {
	return c.saveQuestion(ctx, http.MethodPut, fmt.Sprintf("/essay-questions/%d", id), token, q)
}

func (c *Client) DeleteEssayQuestion(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/essay-questions/%d", id), token, nil, nil)
}

func (c *Client) saveQuestion(ctx context.Context, method, path, token string, q models.Question) (*models.Question, error) {
	var out models.Question
	if err := c.do(ctx, method, path, token, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
