package mapper

import (
	"studynotes-be/internal/entity"
	"studynotes-be/internal/model"
)

type SubjectMapper struct{}

func NewSubjectMapper() *SubjectMapper {
	return &SubjectMapper{}
}

func (m *SubjectMapper) ToEntity(s *model.Subject) *entity.Subject {
	if s == nil {
		return nil
	}
	return &entity.Subject{
		Id:          s.Id,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		UserId:      s.UserId,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SubjectMapper) ToModel(s *entity.Subject) *model.Subject {
	if s == nil {
		return nil
	}
	return &model.Subject{
		Id:          s.Id,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		UserId:      s.UserId,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SubjectMapper) ToEntities(subjects []*model.Subject) []*entity.Subject {
	entities := make([]*entity.Subject, len(subjects))
	for i, s := range subjects {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
