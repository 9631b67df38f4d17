package handlers

import (
	"context"
	"log"
	"net/http"

	"bac_exam_platform/catalog"
	"bac_exam_platform/client"
	"bac_exam_platform/middleware"
	"bac_exam_platform/models"
	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

// AdminHandler proxies content and user management to the exam API with
// the admin session of the visitor.
type AdminHandler struct {
	sessions *session.Holder
	api      *client.Client
	catalog  *catalog.Catalog
}

func NewAdminHandler(sessions *session.Holder, api *client.Client, cat *catalog.Catalog) *AdminHandler {
	return &AdminHandler{sessions: sessions, api: api, catalog: cat}
}

// run executes fn with the admin token and writes its result with status.
func (h *AdminHandler) run(c *gin.Context, status int, fn func(ctx context.Context, token string) (any, error)) {
	var out any
	err := h.sessions.Do(c.Request.Context(), middleware.VisitorID(c), models.RoleAdmin,
		func(ctx context.Context, s *models.Session) error {
			if s.User.Role != "" && s.User.Role != models.RoleAdmin {
				return session.ErrAdminOnly
			}
			var err error
			out, err = fn(ctx, s.Token)
			return err
		})
	if err != nil {
		respondError(c, err)
		return
	}
	if out == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(status, out)
}

func (h *AdminHandler) invalidate(ctx context.Context, bookID string, id int64) {
	if err := h.catalog.Invalidate(ctx, bookID, id); err != nil {
		log.Printf("Error invalidating catalog for book %q exam %d: %v", bookID, id, err)
	}
}

func (h *AdminHandler) CreateChapter(c *gin.Context) {
	var req models.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusCreated, func(ctx context.Context, token string) (any, error) {
		return h.api.CreateChapter(ctx, token, req)
	})
}

func (h *AdminHandler) UpdateChapter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		return h.api.UpdateChapter(ctx, token, id, req)
	})
}

func (h *AdminHandler) DeleteChapter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusNoContent, func(ctx context.Context, token string) (any, error) {
		return nil, h.api.DeleteChapter(ctx, token, id)
	})
}

func (h *AdminHandler) CreateExam(c *gin.Context) {
	var req models.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusCreated, func(ctx context.Context, token string) (any, error) {
		e, err := h.api.CreateExam(ctx, token, req)
		if err != nil {
			return nil, err
		}
		h.invalidate(ctx, req.BookID, 0)
		return e, nil
	})
}

func (h *AdminHandler) UpdateExam(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		e, err := h.api.UpdateExam(ctx, token, id, req)
		if err != nil {
			return nil, err
		}
		h.invalidate(ctx, req.BookID, id)
		return e, nil
	})
}

// DeleteExam removes an exam. The owning book is looked up first so its
// cached exams can be dropped; when unknown the whole catalog is flushed.
func (h *AdminHandler) DeleteExam(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusNoContent, func(ctx context.Context, token string) (any, error) {
		existing, lookupErr := h.catalog.Exam(ctx, id, token)
		if err := h.api.DeleteExam(ctx, token, id); err != nil {
			return nil, err
		}
		if lookupErr != nil {
			if err := h.catalog.InvalidateAll(ctx); err != nil {
				log.Printf("Error flushing catalog: %v", err)
			}
			return nil, nil
		}
		h.invalidate(ctx, existing.BookID, id)
		return nil, nil
	})
}

func (h *AdminHandler) CreateQCM(c *gin.Context) {
	var req models.QCMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusCreated, func(ctx context.Context, token string) (any, error) {
		return h.api.CreateQCM(ctx, token, req)
	})
}

func (h *AdminHandler) UpdateQCM(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.QCMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		return h.api.UpdateQCM(ctx, token, id, req)
	})
}

func (h *AdminHandler) DeleteQCM(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusNoContent, func(ctx context.Context, token string) (any, error) {
		return nil, h.api.DeleteQCM(ctx, token, id)
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		users, err := h.api.Users(ctx, token)
		if users == nil && err == nil {
			users = []models.User{}
		}
		return users, err
	})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		return h.api.User(ctx, token, id)
	})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusCreated, func(ctx context.Context, token string) (any, error) {
		return h.api.CreateUser(ctx, token, req)
	})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		return h.api.UpdateUser(ctx, token, id, req)
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusNoContent, func(ctx context.Context, token string) (any, error) {
		return nil, h.api.DeleteUser(ctx, token, id)
	})
}

func (h *AdminHandler) VerifyPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.run(c, http.StatusOK, func(ctx context.Context, token string) (any, error) {
		return h.api.VerifyPayment(ctx, token, id)
	})
}
