package handlers

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"bac_exam_platform/catalog"
	"bac_exam_platform/exam"
	"bac_exam_platform/gate"
	"bac_exam_platform/models"
	"bac_exam_platform/navigation"
	"bac_exam_platform/platform"
	"bac_exam_platform/questions"

	"github.com/gin-gonic/gin"
)

type PlatformHandler struct {
	*Workspace
}

func NewPlatformHandler(ws *Workspace) *PlatformHandler {
	return &PlatformHandler{Workspace: ws}
}

// ViewResponse is everything the UI needs to draw the current view.
type ViewResponse struct {
	State   navigation.State    `json:"state"`
	Title   string              `json:"title"`
	User    *models.User        `json:"user,omitempty"`
	Books   []models.Book       `json:"books,omitempty"`
	Book    *models.Book        `json:"book,omitempty"`
	Tiles   []navigation.Tile   `json:"tiles,omitempty"`
	Items   any                 `json:"items,omitempty"`
	Locked  []bool              `json:"locked,omitempty"`
	Overlay *gate.Overlay       `json:"overlay,omitempty"`
	Slide   *platform.SlideView `json:"slide,omitempty"`
	QCM     *platform.QCMView   `json:"qcm,omitempty"`
}

func (h *PlatformHandler) GetBooks(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Books())
}

func (h *PlatformHandler) GetView(c *gin.Context) {
	v := h.visitor(c)
	v.Lock()
	defer v.Unlock()
	c.JSON(http.StatusOK, h.buildView(c.Request.Context(), v))
}

// PostEvent applies a router event and answers with the new view. Locked
// items answer 403 with the login call to action.
func (h *PlatformHandler) PostEvent(c *gin.Context) {
	var e navigation.Event
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	v := h.visitor(c)
	v.Lock()
	defer v.Unlock()

	if e.Kind == navigation.EventSelectBook {
		if _, ok := h.catalog.Book(e.BookID); !ok && e.BookID != "" {
			respondError(c, catalog.ErrUnknownBook)
			return
		}
	}

	if err := h.resolveIndex(ctx, v, &e); err != nil {
		respondError(c, err)
		return
	}

	if err := v.Apply(e, h.currentUser(ctx, v.ID)); err != nil {
		if errors.Is(err, navigation.ErrLocked) {
			kind := gate.KindExam
			if e.Kind == navigation.EventSelectQCMChapter {
				kind = gate.KindQCM
			}
			c.JSON(http.StatusForbidden, gin.H{
				"error":   err.Error(),
				"overlay": gate.LockOverlay(kind, false),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildView(ctx, v))
}

// resolveIndex replaces the list position sent by the client with the
// position of the picked exam or chapter in the list the server shows,
// so the freemium gate cannot be skipped. The caller holds the visitor
// lock.
func (h *PlatformHandler) resolveIndex(ctx context.Context, v *platform.Visitor, e *navigation.Event) error {
	token := h.contentToken(ctx, v.ID)

	switch {
	case e.Kind == navigation.EventSelectExam && v.Nav.View == navigation.ViewExams && e.ExamID != 0:
		exams, err := h.catalog.ExamsByYear(ctx, v.Nav.BookID, v.Nav.Year, token)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(exams, func(x models.Exam) bool { return x.ID == e.ExamID })
		if i < 0 {
			return catalog.ErrExamMissing
		}
		e.Index = i

	case e.Kind == navigation.EventSelectQCMChapter && v.Nav.View == navigation.ViewQCMChapters && e.ChapterID != 0:
		chapters, err := h.catalog.QCMChapters(ctx, v.Nav.BookID, token)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(chapters, func(ch catalog.QCMChapter) bool { return ch.ID == e.ChapterID })
		if i < 0 {
			return catalog.ErrChapterMissing
		}
		e.Index = i
	}
	return nil
}

// buildView assembles the payload of the current view. Loading errors are
// reported in the transient error of the state. The caller holds the
// visitor lock.
func (h *PlatformHandler) buildView(ctx context.Context, v *platform.Visitor) ViewResponse {
	user := h.currentUser(ctx, v.ID)
	token := h.contentToken(ctx, v.ID)
	resp := ViewResponse{User: user}

	book, ok := h.catalog.Book(v.Nav.BookID)
	if ok {
		resp.Book = &book
	}
	names := navigation.Names{Book: book.Title}

	lock := func(n int, kind gate.ContentKind) {
		resp.Locked = gate.LockFlags(n, user)
		if user == nil && n > gate.FreeLimit {
			o := gate.LockOverlay(kind, false)
			resp.Overlay = &o
		}
	}
	fail := func(err error) {
		v.SetError(err.Error())
	}

	switch v.Nav.View {
	case navigation.ViewBooks:
		resp.Books = h.catalog.Books()

	case navigation.ViewBookContent:
		resp.Tiles = navigation.Tiles()

	case navigation.ViewChapters:
		chapters, err := h.catalog.Chapters(ctx, v.Nav.BookID, token)
		if err != nil {
			fail(err)
			break
		}
		resp.Items = chapters
		lock(len(chapters), gate.KindChapter)

	case navigation.ViewQCMChapters:
		chapters, err := h.catalog.QCMChapters(ctx, v.Nav.BookID, token)
		if err != nil {
			fail(err)
			break
		}
		resp.Items = chapters
		lock(len(chapters), gate.KindQCM)

	case navigation.ViewQCMViewer:
		if err := h.load(ctx, v); err != nil {
			break
		}
		qv := v.QCM.View()
		resp.QCM = &qv

	case navigation.ViewEssayPractice:
		groups, err := h.catalog.EssayGroups(ctx, v.Nav.BookID, token)
		if err != nil {
			fail(err)
			break
		}
		for i := range groups {
			if gate.IsItemLocked(i, user, gate.FreeLimit) {
				groups[i].Essays = nil
				continue
			}
			for j, q := range groups[i].Essays {
				groups[i].Essays[j] = questions.Redact(q)
			}
		}
		resp.Items = groups
		lock(len(groups), gate.KindEssay)

	case navigation.ViewYears:
		years, err := h.catalog.Years(ctx, v.Nav.BookID, token)
		if err != nil {
			fail(err)
			break
		}
		resp.Items = years

	case navigation.ViewExams:
		exams, err := h.catalog.ExamsByYear(ctx, v.Nav.BookID, v.Nav.Year, token)
		if err != nil {
			fail(err)
			break
		}
		for i := range exams {
			exams[i].Questions = nil
		}
		resp.Items = exams
		lock(len(exams), gate.KindExam)

	case navigation.ViewExam:
		if err := h.load(ctx, v); err != nil {
			break
		}
		names.Exam = v.Exam.Deck.Exam.Title
		slide := v.Exam.Current()
		resp.Slide = &slide
	}

	resp.State = v.Nav
	resp.Title = navigation.Title(v.Nav, names)
	return resp
}

// GetChapterVideo returns the embeddable video of a chapter of the
// current book. Chapters past the free limit need a login.
func (h *PlatformHandler) GetChapterVideo(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de chapitre invalide"})
		return
	}

	ctx := c.Request.Context()
	v := h.visitor(c)
	v.Lock()
	bookID := v.Nav.BookID
	v.Unlock()
	if b := c.Query("book"); b != "" {
		bookID = b
	}

	chapters, err := h.catalog.Chapters(ctx, bookID, h.contentToken(ctx, v.ID))
	if err != nil {
		respondError(c, err)
		return
	}
	for i, ch := range chapters {
		if ch.ChapterNumber != number {
			continue
		}
		if gate.IsItemLocked(i, h.currentUser(ctx, v.ID), gate.FreeLimit) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   navigation.ErrLocked.Error(),
				"overlay": gate.LockOverlay(gate.KindChapter, false),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"chapter":  ch,
			"embedUrl": exam.EmbedURL(ch.VideoURL, ""),
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Chapitre introuvable"})
}
