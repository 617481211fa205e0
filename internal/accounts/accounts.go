// Package accounts registers and authenticates roster users.
package accounts

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"student-roster/internal/store"
)

var (
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidRole        = errors.New("role must be teacher or student")
	ErrUnknownStudent     = errors.New("student id does not exist, ask a teacher to add it first")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// RegisterRequest carries the fields of a new account.
// StudentID is only consulted for the student role.
type RegisterRequest struct {
	Username  string
	Password  string
	Role      string
	StudentID string
}

// Service manages accounts stored in the roster document.
type Service struct {
	store *store.Store
	log   zerolog.Logger
}

// NewService creates an account service on top of st.
func NewService(st *store.Store, log zerolog.Logger) *Service {
	return &Service{
		store: st,
		log:   log.With().Str("component", "accounts").Logger(),
	}
}

// Register creates a new account. Nothing is written when validation fails.
func (s *Service) Register(req RegisterRequest) (*store.User, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrEmptyUsername
	}

	if doc.FindUser(req.Username) >= 0 {
		s.log.Warn().Str("username", req.Username).Msg("registration rejected: username taken")
		return nil, errors.Wrapf(ErrUsernameTaken, "user '%s'", req.Username)
	}

	role, ok := store.ParseRole(req.Role)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidRole, "got '%s'", req.Role)
	}

	user := store.User{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	}

	if role == store.RoleStudent {
		if !doc.HasStudent(req.StudentID) {
			s.log.Warn().
				Str("username", req.Username).
				Str("student_id", req.StudentID).
				Msg("registration rejected: unknown student id")
			return nil, errors.Wrapf(ErrUnknownStudent, "student id '%s'", req.StudentID)
		}
		id := req.StudentID
		user.StudentID = &id
	}

	doc.Users = append(doc.Users, user)
	if err := s.store.Save(doc); err != nil {
		return nil, errors.Wrap(err, "failed to save user")
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")
	return &user, nil
}

// Login returns the first account whose username and password both match exactly.
func (s *Service) Login(username, password string) (*store.User, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	for _, u := range doc.Users {
		if u.Username == username && u.Password == password {
			s.log.Info().Str("username", username).Msg("login succeeded")
			user := u
			return &user, nil
		}
	}

	s.log.Warn().Str("username", username).Msg("login failed")
	return nil, ErrInvalidCredentials
}
