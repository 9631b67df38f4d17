package handlers

import (
	"context"
	"log"
	"net/http"

	"bac_exam_platform/catalog"
	"bac_exam_platform/middleware"
	"bac_exam_platform/models"
	"bac_exam_platform/navigation"
	"bac_exam_platform/platform"
	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

// Workspace gives handlers access to the visitor state, the catalog and
// the sessions of the calling visitor.
type Workspace struct {
	registry *platform.Registry
	catalog  *catalog.Catalog
	sessions *session.Holder
}

func NewWorkspace(registry *platform.Registry, cat *catalog.Catalog, sessions *session.Holder) *Workspace {
	return &Workspace{registry: registry, catalog: cat, sessions: sessions}
}

func (w *Workspace) visitor(c *gin.Context) *platform.Visitor {
	return w.registry.Get(middleware.VisitorID(c))
}

// contentToken is the bearer used for content requests: the student
// token when logged in as a student, otherwise the admin token.
func (w *Workspace) contentToken(ctx context.Context, visitorID string) string {
	for _, role := range []models.Role{models.RoleStudent, models.RoleAdmin} {
		s, err := w.sessions.Session(ctx, visitorID, role)
		if err != nil {
			log.Printf("Error reading %s session: %v", role, err)
			continue
		}
		if s != nil {
			return s.Token
		}
	}
	return ""
}

func (w *Workspace) currentUser(ctx context.Context, visitorID string) *models.User {
	u, err := w.sessions.CurrentUser(ctx, visitorID)
	if err != nil {
		log.Printf("Error reading current user: %v", err)
		return nil
	}
	return u
}

// load opens the exam or quiz of the current view if it is not open yet.
// The caller holds the visitor lock.
func (w *Workspace) load(ctx context.Context, v *platform.Visitor) error {
	switch v.Nav.View {
	case navigation.ViewExam:
		if v.Exam != nil {
			return nil
		}
		e, err := w.catalog.Exam(ctx, v.Nav.ExamID, w.contentToken(ctx, v.ID))
		if err != nil {
			v.SetError(err.Error())
			return err
		}
		v.StartExam(*e)
	case navigation.ViewQCMViewer:
		if v.QCM != nil {
			return nil
		}
		qs, err := w.catalog.QCM(ctx, v.Nav.ChapterID, w.contentToken(ctx, v.ID))
		if err != nil {
			v.SetError("Impossible de charger le QCM")
			return err
		}
		v.StartQCM(v.Nav.ChapterID, qs)
	}
	return nil
}

// withExam runs fn on the open exam of the calling visitor.
func (w *Workspace) withExam(c *gin.Context, fn func(s *platform.ExamSession) (any, error)) {
	v := w.visitor(c)
	v.Lock()
	defer v.Unlock()

	if v.Nav.View != navigation.ViewExam {
		respondError(c, platform.ErrNoExam)
		return
	}
	if err := w.load(c.Request.Context(), v); err != nil {
		respondError(c, err)
		return
	}
	out, err := fn(v.Exam)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// withQCM runs fn on the open quiz of the calling visitor.
func (w *Workspace) withQCM(c *gin.Context, fn func(s *platform.QCMSession) (any, error)) {
	v := w.visitor(c)
	v.Lock()
	defer v.Unlock()

	if v.Nav.View != navigation.ViewQCMViewer {
		respondError(c, errNoQCM)
		return
	}
	if err := w.load(c.Request.Context(), v); err != nil {
		respondError(c, err)
		return
	}
	out, err := fn(v.QCM)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
