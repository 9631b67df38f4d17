package session

import (
	"regexp"
	"sort"
	"strings"

	"bac_exam_platform/models"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^(0|\+212)[5-7]\d{8}$`)
)

// ValidationError lists the invalid registration fields with their
// messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return strings.Join(msgs, "; ")
}

// ValidateRegistration checks the sign-up form the way the UI does before
// anything is sent.
func ValidateRegistration(req models.RegisterRequest) error {
	fields := make(map[string]string)

	if strings.TrimSpace(req.FullName) == "" {
		fields["fullName"] = "Le nom complet est requis"
	}

	switch {
	case strings.TrimSpace(req.Email) == "":
		fields["email"] = "L'email est requis"
	case !emailPattern.MatchString(req.Email):
		fields["email"] = "Email invalide"
	}

	switch {
	case req.Password == "":
		fields["password"] = "Le mot de passe est requis"
	case len(req.Password) < 6:
		fields["password"] = "Le mot de passe doit contenir au moins 6 caractères"
	}
	if req.Password != req.ConfirmPassword {
		fields["confirmPassword"] = "Les mots de passe ne correspondent pas"
	}

	phone := strings.Join(strings.Fields(req.Phone), "")
	switch {
	case phone == "":
		fields["phone"] = "Le numéro de téléphone est requis"
	case !phonePattern.MatchString(phone):
		fields["phone"] = "Numéro de téléphone marocain invalide"
	}

	if strings.TrimSpace(req.School) == "" {
		fields["school"] = "L'établissement est requis"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
