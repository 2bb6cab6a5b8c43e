package service

import (
	"strings"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

type InstitutionRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type InstitutionService interface {
	Create(req *InstitutionRequest) (*model.Institution, error)
	Get(id uint) (*model.Institution, error)
	List(offset, limit int) ([]model.Institution, int64, error)
	Update(id uint, req *InstitutionRequest) (*model.Institution, error)
	Delete(id uint) error
}

type institutionService struct {
	institutionRepo repository.InstitutionRepository
	userRepo        repository.UserRepository
	quizRepo        repository.QuizRepository
}

func NewInstitutionService(institutionRepo repository.InstitutionRepository,
	userRepo repository.UserRepository, quizRepo repository.QuizRepository) InstitutionService {
	return &institutionService{
		institutionRepo: institutionRepo,
		userRepo:        userRepo,
		quizRepo:        quizRepo,
	}
}

func (s *institutionService) Create(req *InstitutionRequest) (*model.Institution, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("MISSING_FIELDS", "institution name is required")
	}

	exists, err := s.institutionRepo.ExistsByNameAndCity(name, req.City, 0)
	if err != nil {
		return nil, apperr.From(err)
	}
	if exists {
		return nil, apperr.Conflict("DUPLICATE_INSTITUTION", "an institution with this name already exists in this city")
	}

	institution := &model.Institution{
		Name:    name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	}
	if err := s.institutionRepo.Create(institution); err != nil {
		return nil, apperr.From(err)
	}
	return institution, nil
}

func (s *institutionService) Get(id uint) (*model.Institution, error) {
	institution, err := s.institutionRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}
	return institution, nil
}

func (s *institutionService) List(offset, limit int) ([]model.Institution, int64, error) {
	institutions, total, err := s.institutionRepo.List(offset, limit)
	if err != nil {
		return nil, 0, apperr.From(err)
	}
	return institutions, total, nil
}

func (s *institutionService) Update(id uint, req *InstitutionRequest) (*model.Institution, error) {
	institution, err := s.institutionRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		institution.Name = name
	}
	if req.Address != "" {
		institution.Address = req.Address
	}
	if req.City != "" {
		institution.City = req.City
	}
	if req.Country != "" {
		institution.Country = req.Country
	}

	exists, err := s.institutionRepo.ExistsByNameAndCity(institution.Name, institution.City, institution.ID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if exists {
		return nil, apperr.Conflict("DUPLICATE_INSTITUTION", "an institution with this name already exists in this city")
	}

	if err := s.institutionRepo.Update(institution); err != nil {
		return nil, apperr.From(err)
	}
	return institution, nil
}

// Delete refuses while any user or quiz still references the institution.
func (s *institutionService) Delete(id uint) error {
	if _, err := s.institutionRepo.GetByID(id); err != nil {
		return apperr.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	userCount, err := s.userRepo.CountByInstitution(id)
	if err != nil {
		return apperr.From(err)
	}
	if userCount > 0 {
		return apperr.Validation("INSTITUTION_IN_USE", "institution still has registered users")
	}
	quizCount, err := s.quizRepo.CountByInstitution(id)
	if err != nil {
		return apperr.From(err)
	}
	if quizCount > 0 {
		return apperr.Validation("INSTITUTION_IN_USE", "institution still has quizzes")
	}

	if err := s.institutionRepo.Delete(id); err != nil {
		return apperr.From(err)
	}
	return nil
}
