package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"bac_exam_platform/client"
	"bac_exam_platform/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrAdminOnly      = errors.New("Accès réservé aux administrateurs")
	ErrMissingRole    = errors.New("rôle de session inconnu")
	errAdminExpired   = errors.New("Session administrateur expirée. Veuillez vous reconnecter.")
	errStudentExpired = errors.New("Session étudiant expirée. Veuillez vous reconnecter.")
	errAdminMissing   = errors.New("Aucune session administrateur. Veuillez vous connecter.")
	errStudentMissing = errors.New("Aucune session étudiant. Veuillez vous connecter.")
)

// ErrSessionExpired is returned by Do when the API rejected the token.
// The session of that role has already been cleared.
var ErrSessionExpired = errors.New("session expirée")

// ErrNotAuthenticated is returned by Do when the role has no session.
var ErrNotAuthenticated = errors.New("non connecté")

type sessionError struct {
	kind error
	msg  error
}

func (e *sessionError) Error() string        { return e.msg.Error() }
func (e *sessionError) Is(target error) bool { return target == e.kind }

// Storage keys of one role.
func TokenKey(role models.Role) string { return string(role) + "_token" }
func UserKey(role models.Role) string  { return string(role) + "_user" }

// Holder owns the admin and student sessions of every visitor.
type Holder struct {
	store Store
	api   *client.Client
	now   func() time.Time
}

func NewHolder(store Store, api *client.Client) *Holder {
	return &Holder{store: store, api: api, now: time.Now}
}

func validRole(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleStudent
}

// Session loads the session of a role. It returns nil when the visitor is
// not logged in with that role or when the stored token has expired.
func (h *Holder) Session(ctx context.Context, visitorID string, role models.Role) (*models.Session, error) {
	if !validRole(role) {
		return nil, ErrMissingRole
	}
	token, ok, err := h.store.Get(ctx, visitorID, TokenKey(role))
	if err != nil || !ok || token == "" {
		return nil, err
	}

	if Expired(token, h.now()) {
		log.Printf("Stored %s token expired for visitor %s", role, visitorID)
		return nil, h.clear(ctx, visitorID, role)
	}

	s := &models.Session{Role: role, Token: token}
	raw, ok, err := h.store.Get(ctx, visitorID, UserKey(role))
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			log.Printf("Corrupt %s user record for visitor %s: %v", role, visitorID, err)
		}
	}
	return s, nil
}

// CurrentUser is the user the freemium gate looks at: the student if one
// is logged in, otherwise the admin.
func (h *Holder) CurrentUser(ctx context.Context, visitorID string) (*models.User, error) {
	for _, role := range []models.Role{models.RoleStudent, models.RoleAdmin} {
		s, err := h.Session(ctx, visitorID, role)
		if err != nil {
			return nil, err
		}
		if s != nil {
			return &s.User, nil
		}
	}
	return nil, nil
}

// Login authenticates against the API and stores the session under the
// role carried by the returned user.
func (h *Holder) Login(ctx context.Context, visitorID string, req models.LoginRequest) (*models.Session, error) {
	resp, err := h.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	role := resp.User.Role
	if !validRole(role) {
		role = models.RoleStudent
	}
	return h.save(ctx, visitorID, role, resp)
}

// AdminLogin uses the admin endpoint and refuses non-admin accounts.
func (h *Holder) AdminLogin(ctx context.Context, visitorID string, req models.LoginRequest) (*models.Session, error) {
	resp, err := h.api.AdminLogin(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.User.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}
	return h.save(ctx, visitorID, models.RoleAdmin, resp)
}

func (h *Holder) save(ctx context.Context, visitorID string, role models.Role, resp *models.LoginResponse) (*models.Session, error) {
	user, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("encoding user: %w", err)
	}
	if err := h.store.Set(ctx, visitorID, TokenKey(role), resp.Token); err != nil {
		return nil, err
	}
	if err := h.store.Set(ctx, visitorID, UserKey(role), string(user)); err != nil {
		return nil, err
	}
	return &models.Session{Role: role, Token: resp.Token, User: resp.User}, nil
}

// Register validates the form locally before calling the API.
func (h *Holder) Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}
	return h.api.Register(ctx, req)
}

// Logout tells the API and always clears the local session of the role.
func (h *Holder) Logout(ctx context.Context, visitorID string, role models.Role) error {
	if !validRole(role) {
		return ErrMissingRole
	}
	token, ok, err := h.store.Get(ctx, visitorID, TokenKey(role))
	if err == nil && ok && token != "" {
		if err := h.api.Logout(ctx, token); err != nil {
			log.Printf("Logout request failed for %s session of visitor %s: %v", role, visitorID, err)
		}
	}
	return h.clear(ctx, visitorID, role)
}

func (h *Holder) clear(ctx context.Context, visitorID string, role models.Role) error {
	return h.store.Delete(ctx, visitorID, TokenKey(role), UserKey(role))
}

// Do runs an authenticated API call with the token of a role. When the API
// answers 401 or 403 the session is cleared and ErrSessionExpired is
// returned with a message the UI can show.
func (h *Holder) Do(ctx context.Context, visitorID string, role models.Role, fn func(ctx context.Context, s *models.Session) error) error {
	s, err := h.Session(ctx, visitorID, role)
	if err != nil {
		return err
	}
	if s == nil {
		msg := errStudentMissing
		if role == models.RoleAdmin {
			msg = errAdminMissing
		}
		return &sessionError{kind: ErrNotAuthenticated, msg: msg}
	}

	err = fn(ctx, s)
	if err == nil || !client.IsAuthError(err) {
		return err
	}

	log.Printf("API rejected %s token of visitor %s: %v", role, visitorID, err)
	if cerr := h.clear(ctx, visitorID, role); cerr != nil {
		log.Printf("Error clearing %s session: %v", role, cerr)
	}
	msg := errStudentExpired
	if role == models.RoleAdmin {
		msg = errAdminExpired
	}
	return &sessionError{kind: ErrSessionExpired, msg: msg}
}

// Expired reports whether a JWT bearer token is past its exp claim. Tokens
// that are not JWTs or carry no exp never expire locally.
func Expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
