package handlers

import (
	"errors"
	"log"
	"net/http"

	"bac_exam_platform/middleware"
	"bac_exam_platform/models"
	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions *session.Holder
	tokens   *middleware.TokenService
}

func NewAuthHandler(sessions *session.Holder, tokens *middleware.TokenService) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens}
}

// CreateVisitor issues a new visitor identity with its token pair.
func (h *AuthHandler) CreateVisitor(c *gin.Context) {
	tokens, err := h.tokens.IssueVisitor(c.Request.Context())
	if err != nil {
		log.Printf("Error issuing visitor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": unexpectedError})
		return
	}
	c.JSON(http.StatusCreated, tokens)
}

func (h *AuthHandler) RefreshVisitor(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, err := h.tokens.Refresh(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, middleware.ErrInvalidRefreshToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Error refreshing visitor tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": unexpectedError})
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Login authenticates the visitor as whatever role the account has.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.sessions.Login(c.Request.Context(), middleware.VisitorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(s))
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.sessions.AdminLogin(c.Request.Context(), middleware.VisitorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(s))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.sessions.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Logout ends the session of the role given in the query, student by
// default.
func (h *AuthHandler) Logout(c *gin.Context) {
	role := models.Role(c.DefaultQuery("role", string(models.RoleStudent)))
	if err := h.sessions.Logout(c.Request.Context(), middleware.VisitorID(c), role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Déconnexion réussie"})
}

// GetSession reports both sessions of the visitor without their tokens.
func (h *AuthHandler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()
	visitorID := middleware.VisitorID(c)

	out := gin.H{}
	for _, role := range []models.Role{models.RoleStudent, models.RoleAdmin} {
		s, err := h.sessions.Session(ctx, visitorID, role)
		if err != nil {
			respondError(c, err)
			return
		}
		if s != nil {
			out[string(role)] = sessionView(s)
		} else {
			out[string(role)] = nil
		}
	}
	user, err := h.sessions.CurrentUser(ctx, visitorID)
	if err != nil {
		respondError(c, err)
		return
	}
	out["user"] = user
	c.JSON(http.StatusOK, out)
}

func sessionView(s *models.Session) gin.H {
	return gin.H{"role": s.Role, "user": s.User}
}
