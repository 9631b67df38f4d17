package handlers

import (
	"encoding/json"

	"bac_exam_platform/exam"
	"bac_exam_platform/platform"

	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	*Workspace
}

func NewExamHandler(ws *Workspace) *ExamHandler {
	return &ExamHandler{Workspace: ws}
}

func (h *ExamHandler) GetSlide(c *gin.Context) {
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Current(), nil
	})
}

func (h *ExamHandler) NextSlide(c *gin.Context) {
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Next(), nil
	})
}

func (h *ExamHandler) PrevSlide(c *gin.Context) {
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Prev(), nil
	})
}

// PutAnswer stores the raw JSON body as the answer of the question. A
// null body clears it.
func (h *ExamHandler) PutAnswer(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		badRequest(c, err)
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		if err := s.SetAnswer(id, raw); err != nil {
			return nil, err
		}
		return s.Current(), nil
	})
}

func (h *ExamHandler) CheckAnswer(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Check(id)
	})
}

func (h *ExamHandler) ToggleAnswer(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		if _, err := s.ToggleAnswer(id); err != nil {
			return nil, err
		}
		return s.Current(), nil
	})
}

func (h *ExamHandler) ToggleHelper(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		shown, err := s.ToggleHelper(id)
		return gin.H{"helperShown": shown}, err
	})
}

func (h *ExamHandler) ToggleArabic(c *gin.Context) {
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		s.ToggleArabic()
		return s.Current(), nil
	})
}

func (h *ExamHandler) GetEssay(c *gin.Context) {
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Essay(), nil
	})
}

// GetClip returns the chapter video segment the exam extract comes from.
func (h *ExamHandler) GetClip(c *gin.Context) {
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		te := s.Deck.Exam.TextExtract
		if te == nil || te.SourceChapter == nil || te.SourceChapter.VideoURL == "" {
			return nil, errNoClip
		}
		src := te.SourceChapter
		return gin.H{
			"sourceChapter": src,
			"clip":          exam.NewClip(src.VideoURL, src.TimeStart, src.TimeEnd),
		}, nil
	})
}
