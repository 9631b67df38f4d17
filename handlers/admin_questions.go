package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"

	"bac_exam_platform/models"
	"bac_exam_platform/questions"

	"github.com/gin-gonic/gin"
)

// questionStore is the pair of upstream endpoints behind one question
// family.
type questionStore struct {
	essay  bool
	list   func(ctx context.Context, examID int64, token string) (*models.QuestionsList, error)
	create func(ctx context.Context, token string, q models.Question) (*models.Question, error)
	update func(ctx context.Context, token string, id int64, q models.Question) (*models.Question, error)
	delete func(ctx context.Context, token string, id int64) error
}

func (h *AdminHandler) regularQuestions() questionStore {
	return questionStore{
		list:   h.api.QuestionsByExam,
		create: h.api.CreateQuestion,
		update: h.api.UpdateQuestion,
		delete: h.api.DeleteQuestion,
	}
}

func (h *AdminHandler) essayQuestions() questionStore {
	return questionStore{
		essay:  true,
		list:   h.api.EssayQuestionsByExam,
		create: h.api.CreateEssayQuestion,
		update: h.api.UpdateEssayQuestion,
		delete: h.api.DeleteEssayQuestion,
	}
}

// invalidateExam drops the cached exam and its book. Without a known exam
// the whole catalog is flushed.
func (h *AdminHandler) invalidateExam(ctx context.Context, token string, examID int64) {
	if examID > 0 {
		if e, err := h.catalog.Exam(ctx, examID, token); err == nil {
			h.invalidate(ctx, e.BookID, examID)
			return
		}
	}
	if err := h.catalog.InvalidateAll(ctx); err != nil {
		log.Printf("Error flushing catalog: %v", err)
	}
}

func (h *AdminHandler) listQuestions(c *gin.Context, store questionStore) {
	examID, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		return store.list(ctx, examID, token)
	})
}

func (h *AdminHandler) importQuestion(c *gin.Context, store questionStore) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusOK, func(context.Context, string) (any, error) {
		return questions.ImportDraft(raw, store.essay)
	})
}

func (h *AdminHandler) createQuestion(c *gin.Context, store questionStore) {
	var q models.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusCreated, func(ctx context.Context, token string) (any, error) {
		q, err := questions.PrepareForSave(q, store.essay)
		if err != nil {
			return nil, err
		}
		saved, err := store.create(ctx, token, q)
		if err != nil {
			return nil, err
		}
		h.invalidateExam(ctx, token, q.ExamID)
		return saved, nil
	})
}

func (h *AdminHandler) updateQuestion(c *gin.Context, store questionStore) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var q models.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		q, err := questions.PrepareForSave(q, store.essay)
		if err != nil {
			return nil, err
		}
		saved, err := store.update(ctx, token, id, q)
		if err != nil {
			return nil, err
		}
		h.invalidateExam(ctx, token, q.ExamID)
		return saved, nil
	})
}

// deleteQuestion removes a question. The optional examId query names the
// exam whose cache is dropped.
func (h *AdminHandler) deleteQuestion(c *gin.Context, store questionStore) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	examID, _ := strconv.ParseInt(c.Query("examId"), 10, 64)
	h.run(c, http.StatusNoContent, func(ctx context.Context, token string) (any, error) {
		if err := store.delete(ctx, token, id); err != nil {
			return nil, err
		}
		h.invalidateExam(ctx, token, examID)
		return nil, nil
	})
}

func (h *AdminHandler) ListQuestions(c *gin.Context)  { h.listQuestions(c, h.regularQuestions()) }
func (h *AdminHandler) ImportQuestion(c *gin.Context) { h.importQuestion(c, h.regularQuestions()) }
func (h *AdminHandler) CreateQuestion(c *gin.Context) { h.createQuestion(c, h.regularQuestions()) }
func (h *AdminHandler) UpdateQuestion(c *gin.Context) { h.updateQuestion(c, h.regularQuestions()) }
func (h *AdminHandler) DeleteQuestion(c *gin.Context) { h.deleteQuestion(c, h.regularQuestions()) }

func (h *AdminHandler) ListEssayQuestions(c *gin.Context)  { h.listQuestions(c, h.essayQuestions()) }
func (h *AdminHandler) ImportEssayQuestion(c *gin.Context) { h.importQuestion(c, h.essayQuestions()) }
func (h *AdminHandler) CreateEssayQuestion(c *gin.Context) { h.createQuestion(c, h.essayQuestions()) }
func (h *AdminHandler) UpdateEssayQuestion(c *gin.Context) { h.updateQuestion(c, h.essayQuestions()) }
func (h *AdminHandler) DeleteEssayQuestion(c *gin.Context) { h.deleteQuestion(c, h.essayQuestions()) }
