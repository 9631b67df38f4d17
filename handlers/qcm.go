package handlers

import (
	"bac_exam_platform/platform"

	"github.com/gin-gonic/gin"
)

type QCMHandler struct {
	*Workspace
}

func NewQCMHandler(ws *Workspace) *QCMHandler {
	return &QCMHandler{Workspace: ws}
}

func (h *QCMHandler) GetQCM(c *gin.Context) {
	h.withQCM(c, func(s *platform.QCMSession) (any, error) {
		return s.View(), nil
	})
}

func (h *QCMHandler) PutAnswer(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	var req struct {
		Option string `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.withQCM(c, func(s *platform.QCMSession) (any, error) {
		if err := s.Select(id, req.Option); err != nil {
			return nil, err
		}
		return s.View(), nil
	})
}

func (h *QCMHandler) Submit(c *gin.Context) {
	h.withQCM(c, func(s *platform.QCMSession) (any, error) {
		if _, err := s.Submit(); err != nil {
			return nil, err
		}
		return s.View(), nil
	})
}

func (h *QCMHandler) Reset(c *gin.Context) {
	h.withQCM(c, func(s *platform.QCMSession) (any, error) {
		s.Reset()
		return s.View(), nil
	})
}
