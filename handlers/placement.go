package handlers

import (
	"bac_exam_platform/placement"
	"bac_exam_platform/platform"

	"github.com/gin-gonic/gin"
)

type PlacementHandler struct {
	*Workspace
}

func NewPlacementHandler(ws *Workspace) *PlacementHandler {
	return &PlacementHandler{Workspace: ws}
}

func bindAction(c *gin.Context) (placement.Action, bool) {
	var a placement.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return a, false
	}
	return a, true
}

func (h *PlacementHandler) GetBoard(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Placement(id)
	})
}

// PostAction runs a select, place, remove or reset action on the board.
func (h *PlacementHandler) PostAction(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	a, ok := bindAction(c)
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.PlacementAction(id, a)
	})
}

func (h *PlacementHandler) Verify(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		res, err := s.PlacementVerify(id)
		if err != nil {
			return nil, err
		}
		w, _ := s.Placement(id)
		return gin.H{"result": res, "placement": w}, nil
	})
}

func (h *PlacementHandler) Retry(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.PlacementRetry(id)
	})
}

func (h *PlacementHandler) GetExercise(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.Exercise(id)
	})
}

func (h *PlacementHandler) PostPhraseAction(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	a, ok := bindAction(c)
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.PhraseAction(id, a)
	})
}

// VerifyPhrase checks the current phrase. A correct phrase opens the next
// one after a short delay, visible on the next read of the exercise.
func (h *PlacementHandler) VerifyPhrase(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		res, err := s.PhraseVerify(id)
		if err != nil {
			return nil, err
		}
		ex, _ := s.Exercise(id)
		return gin.H{"result": res, "exercise": ex}, nil
	})
}

func (h *PlacementHandler) NextPhrase(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.PhraseNext(id)
	})
}

func (h *PlacementHandler) PrevPhrase(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.PhrasePrev(id)
	})
}

func (h *PlacementHandler) ResetPhrases(c *gin.Context) {
	id, ok := idParam(c, "questionId")
	if !ok {
		return
	}
	h.withExam(c, func(s *platform.ExamSession) (any, error) {
		return s.PhraseReset(id)
	})
}
