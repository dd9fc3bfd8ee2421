package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"userhub/internal/model"
	"userhub/internal/pkg/jwtutil"
	"userhub/internal/pkg/passwordutil"
	"userhub/internal/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
	// ErrInvalidCredential covers unknown identifier, wrong password and
	// deactivated account alike, so a caller cannot enumerate usernames.
	ErrInvalidCredential = errors.New("invalid username or password")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated rule so the caller sees field-level
// detail in one round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByLogin(ctx context.Context, identifier string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type SignupEventPublisher interface {
	Publish(ctx context.Context, event model.SignupEvent) error
}

type UserCache interface {
	Get(ctx context.Context, id uint) (*model.User, bool, error)
	Set(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
}

type AuthService struct {
	users         UserStore
	publisher     SignupEventPublisher
	cache         UserCache
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginInput struct {
	// Identifier accepts either the username or the email address.
	Identifier string
	Password   string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(
	users UserStore,
	publisher SignupEventPublisher,
	cache UserCache,
	jwtSecret string,
	jwtExpiration time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		publisher:     publisher,
		cache:         cache,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register validates the input, hashes the password and inserts the record.
// Uniqueness is pre-checked for a friendly error, but the database
// constraint remains the source of truth: a racing duplicate insert comes
// back as a conflict error, never as a second success.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if fields := validateRegistration(username, email, input.Password); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	existingByName, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	hash, err := passwordutil.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameExists
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailExists
		}
		return nil, err
	}

	if s.publisher != nil {
		event := model.SignupEvent{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			// The registration already committed; the audit trail catches up
			// on the next consumer run.
			log.Printf("publish signup event failed: %v", err)
		}
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.users.GetByLogin(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if !passwordutil.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}
	if !user.IsActive {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// GetUserByID serves reads through the projection cache when one is wired.
// A cache outage degrades to a store read.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		if user, ok, err := s.cache.Get(ctx, id); err == nil && ok {
			return user, nil
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, user)
	}
	return user, nil
}

func validateRegistration(username, email, password string) []FieldError {
	var fields []FieldError

	switch {
	case username == "":
		fields = append(fields, FieldError{Field: "username", Message: "is required"})
	case len(username) < 3:
		fields = append(fields, FieldError{Field: "username", Message: "must be at least 3 characters long"})
	case len(username) > 64:
		fields = append(fields, FieldError{Field: "username", Message: "must be at most 64 characters long"})
	}

	switch {
	case email == "":
		fields = append(fields, FieldError{Field: "email", Message: "is required"})
	case len(email) > 128:
		fields = append(fields, FieldError{Field: "email", Message: "must be at most 128 characters long"})
	case !emailRe.MatchString(email):
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}

	for _, violation := range passwordutil.CheckPolicy(password) {
		fields = append(fields, FieldError{Field: "password", Message: violation})
	}

	return fields
}
