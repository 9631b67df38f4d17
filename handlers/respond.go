package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"bac_exam_platform/catalog"
	"bac_exam_platform/client"
	"bac_exam_platform/gate"
	"bac_exam_platform/navigation"
	"bac_exam_platform/placement"
	"bac_exam_platform/platform"
	"bac_exam_platform/questions"
	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

const unexpectedError = "Une erreur inattendue s'est produite. Veuillez actualiser la page."

var (
	errNoQCM  = errors.New("Aucun QCM ouvert")
	errNoClip = errors.New("Aucune vidéo associée à ce texte")
)

var statusOf = []struct {
	err    error
	status int
}{
	{session.ErrSessionExpired, http.StatusUnauthorized},
	{session.ErrNotAuthenticated, http.StatusUnauthorized},
	{session.ErrAdminOnly, http.StatusForbidden},
	{session.ErrMissingRole, http.StatusBadRequest},
	{navigation.ErrInvalidTransition, http.StatusConflict},
	{navigation.ErrMissingTarget, http.StatusBadRequest},
	{platform.ErrUnknownQuestion, http.StatusNotFound},
	{platform.ErrAnswerShown, http.StatusConflict},
	{platform.ErrNoWidget, http.StatusBadRequest},
	{platform.ErrBoardAnswer, http.StatusBadRequest},
	{platform.ErrNoExam, http.StatusConflict},
	{errNoQCM, http.StatusConflict},
	{errNoClip, http.StatusNotFound},
	{platform.ErrResultsShown, http.StatusConflict},
	{platform.ErrUnknownOption, http.StatusBadRequest},
	{platform.ErrQCMIncomplete, http.StatusBadRequest},
	{placement.ErrLocked, http.StatusConflict},
	{placement.ErrNotVerified, http.StatusConflict},
	{placement.ErrNoPhrase, http.StatusConflict},
	{placement.ErrIncomplete, http.StatusBadRequest},
	{placement.ErrUnknownToken, http.StatusBadRequest},
	{placement.ErrUnknownSlot, http.StatusBadRequest},
	{placement.ErrUnknownAction, http.StatusBadRequest},
	{questions.ErrInvalidPayload, http.StatusBadRequest},
	{questions.ErrUnsupported, http.StatusBadRequest},
	{questions.ErrNotAnswerable, http.StatusBadRequest},
	{questions.ErrInvalidQuestion, http.StatusBadRequest},
	{catalog.ErrUnknownBook, http.StatusNotFound},
	{catalog.ErrExamMissing, http.StatusNotFound},
	{catalog.ErrChapterMissing, http.StatusNotFound},
	{catalog.ErrChapters, http.StatusBadGateway},
	{client.ErrTimeout, http.StatusGatewayTimeout},
	{client.ErrInvalidFormat, http.StatusBadGateway},
}

// respondError writes err as a JSON error with the matching status.
// Unknown errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var verr *session.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}

	if errors.Is(err, navigation.ErrLocked) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   err.Error(),
			"overlay": gate.LockOverlay(gate.KindContent, false),
		})
		return
	}

	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			c.JSON(s.status, gin.H{"error": err.Error()})
			return
		}
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Message})
		return
	}

	log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": unexpectedError})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return 0, false
	}
	return id, true
}
