package implementation

import (
	"context"
	"errors"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/mapper"
	"studynotes-be/internal/model"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubjectMapper
}

func NewSubjectRepository(db *gorm.DB) contract.SubjectRepository {
	return &SubjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubjectMapper(),
	}
}

func (r *SubjectRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubjectRepositoryImpl) Create(ctx context.Context, subject *entity.Subject) error {
	m := r.mapper.ToModel(subject)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("subject with this name already exists")
		}
		return err
	}
	*subject = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubjectRepositoryImpl) Update(ctx context.Context, subject *entity.Subject) error {
	m := r.mapper.ToModel(subject)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("subject with this name already exists")
		}
		return err
	}
	*subject = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Subject{}, id).Error
}

func (r *SubjectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subject, error) {
	var m model.Subject
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SubjectRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subject, error) {
	var models []*model.Subject
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SubjectRepositoryImpl) NotesCountByOwner(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		SubjectId uuid.UUID
		Count     int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Select("subject_id, COUNT(*) as count").
		Where("user_id = ? AND subject_id IS NOT NULL", userId).
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.SubjectId] = row.Count
	}
	return counts, nil
}
