package accounts

import (
	"errors"

	"github.com/google/uuid"
	"github.com/roomhub/socket/src/auth"
	"github.com/roomhub/socket/src/types"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingFields is returned when a required field is blank.
	ErrMissingFields = errors.New("missing fields")
	// ErrInvalidCredentials is returned on a failed login. It does not
	// distinguish unknown user from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is a successful signup or login result.
type Session struct {
	Token string         `json:"token"`
	User  types.Identity `json:"user"`
}

// Service implements signup and login, issuing signed identity tokens.
type Service struct {
	store  *Store
	tokens *auth.TokenManager
	logger zerolog.Logger
}

// NewService creates an account service over the given store and token
// manager.
func NewService(store *Store, tokens *auth.TokenManager, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: logger.With().Str("component", "accounts").Logger(),
	}
}

// Signup registers a new user and returns a session for it.
func (s *Service) Signup(username, email, password string) (*Session, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.store.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	return s.session(user)
}

// Login authenticates a user by username or email and returns a session.
func (s *Service) Login(handle, password string) (*Session, error) {
	if handle == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.store.FindByUsernameOrEmail(handle)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *Service) session(user *User) (*Session, error) {
	identity := types.Identity{ID: user.ID, Username: user.Username}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: identity}, nil
}
