package service

import (
	"errors"
	"fmt"
	"strings"

	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/pkg/token"
	"go-sweetshop/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailExists        = errors.New("email address already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Fields []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	first := e.Fields[0]
	return fmt.Sprintf("validation failed: field '%s' failed on rule '%s'", first.FailedField, first.Tag)
}

// RegisterRequest is the registration body.
type RegisterRequest struct {
	EmailAddress    string `json:"email_address" validate:"required,email"`
	FullName        string `json:"full_name" validate:"required,min=2,max=100"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	IsAdministrator bool   `json:"is_administrator"`
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService interface {
	Register(req *RegisterRequest) (*model.UserResponse, error)
	Login(email, password string) (*TokenResponse, error)
	Profile(userID uint) (*model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(req *RegisterRequest) (*model.UserResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	// Pre-emptive duplicate check; the unique index still backstops races.
	if _, err := s.userRepo.FindByEmail(req.EmailAddress); err == nil {
		return nil, ErrEmailExists
	}

	user := &model.User{
		EmailAddress:    req.EmailAddress,
		FullName:        req.FullName,
		IsAdministrator: req.IsAdministrator,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Login(email, password string) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// Unknown email and wrong password look identical to the caller
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func (s *authService) Profile(userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}
