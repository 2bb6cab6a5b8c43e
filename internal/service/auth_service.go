package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	StreamID      uint   `json:"stream_id"`
	InstitutionID uint   `json:"institution_id"`
}

// UpdateProfileRequest is the self-profile update payload. Email, stars and
// id are deliberately absent: none of them may be edited here.
type UpdateProfileRequest struct {
	Name          string `json:"name"`
	Password      string `json:"password"`
	StreamID      uint   `json:"stream_id"`
	InstitutionID uint   `json:"institution_id"`
}

// AuthService interface
type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(email, password string) (*model.User, string, string, error)
	Refresh(refreshToken string) (string, string, error)
	UpdateProfile(user *model.User, req *UpdateProfileRequest) (*model.User, error)
}

type authService struct {
	userRepo        repository.UserRepository
	streamRepo      repository.StreamRepository
	institutionRepo repository.InstitutionRepository
	tokens          TokenIssuer
}

// TokenIssuer abstracts credential issuance so the service stays testable.
type TokenIssuer interface {
	Issue(user *model.User) (access string, refresh string, err error)
	Rotate(refreshToken string) (access string, refresh string, err error)
}

// NewAuthService initializes the authentication service.
func NewAuthService(userRepo repository.UserRepository, streamRepo repository.StreamRepository,
	institutionRepo repository.InstitutionRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo:        userRepo,
		streamRepo:      streamRepo,
		institutionRepo: institutionRepo,
		tokens:          tokens,
	}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, apperr.Validation("MISSING_FIELDS", "name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("INVALID_EMAIL", "email is not valid")
	}
	if len(req.Password) < 6 {
		return nil, apperr.Validation("WEAK_PASSWORD", "password must be at least 6 characters")
	}

	if req.StreamID != 0 {
		if _, err := s.streamRepo.GetByID(req.StreamID); err != nil {
			return nil, apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
		}
	}
	if req.InstitutionID != 0 {
		if _, err := s.institutionRepo.GetByID(req.InstitutionID); err != nil {
			return nil, apperr.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
		}
	}

	if existing, err := s.userRepo.GetUserByEmail(email); err == nil && existing != nil {
		return nil, apperr.Conflict("DUPLICATE_EMAIL", "email already in use")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.From(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.From(err)
	}

	user := &model.User{
		Name:          name,
		Email:         email,
		Password:      string(hash),
		StreamID:      req.StreamID,
		InstitutionID: req.InstitutionID,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("DUPLICATE_EMAIL", "email already in use")
		}
		return nil, apperr.From(err)
	}
	return user, nil
}

func (s *authService) Login(email, password string) (*model.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", "", apperr.Validation("MISSING_FIELDS", "email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		// Uniform failure: never reveal whether the email exists.
		return nil, "", "", apperr.Auth("INVALID_CREDENTIALS", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", apperr.Auth("INVALID_CREDENTIALS", "invalid email or password")
	}

	access, refresh, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", "", apperr.From(err)
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", apperr.Auth("MISSING_TOKEN", "refresh token is required")
	}
	access, refresh, err := s.tokens.Rotate(refreshToken)
	if err != nil {
		return "", "", apperr.Auth("INVALID_TOKEN", "invalid or expired refresh token")
	}
	return access, refresh, nil
}

// UpdateProfile edits the caller's own record. StarsGathered stays untouched
// no matter what the client sends; only the attempt engine mutates it.
func (s *authService) UpdateProfile(user *model.User, req *UpdateProfileRequest) (*model.User, error) {
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.StreamID != 0 && req.StreamID != user.StreamID {
		if _, err := s.streamRepo.GetByID(req.StreamID); err != nil {
			return nil, apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
		}
		user.StreamID = req.StreamID
	}
	if req.InstitutionID != 0 && req.InstitutionID != user.InstitutionID {
		if _, err := s.institutionRepo.GetByID(req.InstitutionID); err != nil {
			return nil, apperr.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
		}
		user.InstitutionID = req.InstitutionID
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return nil, apperr.Validation("WEAK_PASSWORD", "password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.From(err)
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, apperr.From(err)
	}
	return user, nil
}
