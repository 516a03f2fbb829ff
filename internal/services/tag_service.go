package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// TagService handles tag business logic
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// TagInput represents input for creating or updating a tag
type TagInput struct {
	Name  string
	Color string
}

// ListTags returns all tags
func (s *TagService) ListTags() ([]models.Tag, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		return nil, apperrors.Internal("Failed to list tags", err)
	}
	return tags, nil
}

// GetTag returns one tag
func (s *TagService) GetTag(id uint64) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Tag not found")
		}
		return nil, apperrors.Internal("Failed to find tag", err)
	}
	return tag, nil
}

// CreateTag creates a tag after a name-uniqueness pre-check
func (s *TagService) CreateTag(input TagInput) (*models.Tag, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("Tag name is required")
	}

	if _, err := s.tagRepo.FindByName(input.Name); err == nil {
		return nil, apperrors.Conflict("Tag name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check tag name", err)
	}

	tag := &models.Tag{Name: input.Name, Color: input.Color}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, apperrors.Internal("Failed to create tag", err)
	}
	return tag, nil
}

// UpdateTag renames a tag; the new name must not belong to a different tag
func (s *TagService) UpdateTag(id uint64, input TagInput) (*models.Tag, error) {
	tag, err := s.GetTag(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" && input.Name != tag.Name {
		if existing, err := s.tagRepo.FindByName(input.Name); err == nil && existing.ID != id {
			return nil, apperrors.Conflict("Tag name already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal("Failed to check tag name", err)
		}
		tag.Name = input.Name
	}
	if input.Color != "" {
		tag.Color = input.Color
	}

	if err := s.tagRepo.Update(tag); err != nil {
		return nil, apperrors.Internal("Failed to update tag", err)
	}
	return tag, nil
}

// DeleteTag removes the tag and its tasks_tags rows atomically
func (s *TagService) DeleteTag(id uint64) error {
	if err := s.tagRepo.DeleteWithRelations(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Tag not found")
		}
		return apperrors.Internal("Failed to delete tag", err)
	}
	return nil
}
