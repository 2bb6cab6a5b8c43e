package service

import (
	"strings"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/model"
	"quizhive-backend/internal/repository"
)

type StreamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type StreamService interface {
	Create(req *StreamRequest) (*model.Stream, error)
	Get(id uint) (*model.Stream, error)
	List(offset, limit int) ([]model.Stream, int64, error)
	Update(id uint, req *StreamRequest) (*model.Stream, error)
	Delete(id uint) error
}

type streamService struct {
	streamRepo repository.StreamRepository
	userRepo   repository.UserRepository
	quizRepo   repository.QuizRepository
}

func NewStreamService(streamRepo repository.StreamRepository,
	userRepo repository.UserRepository, quizRepo repository.QuizRepository) StreamService {
	return &streamService{
		streamRepo: streamRepo,
		userRepo:   userRepo,
		quizRepo:   quizRepo,
	}
}

func (s *streamService) Create(req *StreamRequest) (*model.Stream, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("MISSING_FIELDS", "stream name is required")
	}

	exists, err := s.streamRepo.ExistsByName(name, 0)
	if err != nil {
		return nil, apperr.From(err)
	}
	if exists {
		return nil, apperr.Conflict("DUPLICATE_STREAM", "a stream with this name already exists")
	}

	stream := &model.Stream{Name: name, Description: req.Description}
	if err := s.streamRepo.Create(stream); err != nil {
		return nil, apperr.From(err)
	}
	return stream, nil
}

func (s *streamService) Get(id uint) (*model.Stream, error) {
	stream, err := s.streamRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
	}
	return stream, nil
}

func (s *streamService) List(offset, limit int) ([]model.Stream, int64, error) {
	streams, total, err := s.streamRepo.List(offset, limit)
	if err != nil {
		return nil, 0, apperr.From(err)
	}
	return streams, total, nil
}

func (s *streamService) Update(id uint, req *StreamRequest) (*model.Stream, error) {
	stream, err := s.streamRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
	}

	if name := strings.TrimSpace(req.Name); name != "" && !strings.EqualFold(name, stream.Name) {
		exists, err := s.streamRepo.ExistsByName(name, stream.ID)
		if err != nil {
			return nil, apperr.From(err)
		}
		if exists {
			return nil, apperr.Conflict("DUPLICATE_STREAM", "a stream with this name already exists")
		}
		stream.Name = name
	}
	if req.Description != "" {
		stream.Description = req.Description
	}

	if err := s.streamRepo.Update(stream); err != nil {
		return nil, apperr.From(err)
	}
	return stream, nil
}

// Delete refuses while any user or quiz still references the stream.
func (s *streamService) Delete(id uint) error {
	if _, err := s.streamRepo.GetByID(id); err != nil {
		return apperr.NotFound("STREAM_NOT_FOUND", "stream not found")
	}

	userCount, err := s.userRepo.CountByStream(id)
	if err != nil {
		return apperr.From(err)
	}
	if userCount > 0 {
		return apperr.Validation("STREAM_IN_USE", "stream still has registered users")
	}
	quizCount, err := s.quizRepo.CountByStream(id)
	if err != nil {
		return apperr.From(err)
	}
	if quizCount > 0 {
		return apperr.Validation("STREAM_IN_USE", "stream still has quizzes")
	}

	if err := s.streamRepo.Delete(id); err != nil {
		return apperr.From(err)
	}
	return nil
}
