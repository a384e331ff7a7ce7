package implementation

import (
	"context"
	"errors"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/mapper"
	"studynotes-be/internal/model"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TagMapper
}

func NewTagRepository(db *gorm.DB) contract.TagRepository {
	return &TagRepositoryImpl{
		db:     db,
		mapper: mapper.NewTagMapper(),
	}
}

func (r *TagRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *entity.Tag) error {
	m := r.mapper.ToModel(tag)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tag = *r.mapper.ToEntity(m)
	return nil
}

func (r *TagRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tag{}, id).Error
}

func (r *TagRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error) {
	var m model.Tag
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TagRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error) {
	var models []*model.Tag
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TagRepositoryImpl) FindAllForNotes(ctx context.Context, noteIds []uuid.UUID) (map[uuid.UUID][]*entity.Tag, error) {
	result := make(map[uuid.UUID][]*entity.Tag)
	if len(noteIds) == 0 {
		return result, nil
	}

	var rows []struct {
		model.Tag
		NoteId uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.*, note_tags.note_id").
		Joins("JOIN note_tags ON note_tags.tag_id = tags.id").
		Where("note_tags.note_id IN ?", noteIds).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		tag := rows[i].Tag
		result[rows[i].NoteId] = append(result[rows[i].NoteId], r.mapper.ToEntity(&tag))
	}
	return result, nil
}

func (r *TagRepositoryImpl) NotesCountByOwner(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		TagId uuid.UUID
		Count int64
	}
	err := r.db.WithContext(ctx).
		Table("note_tags").
		Select("note_tags.tag_id, COUNT(*) as count").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("tags.user_id = ?", userId).
		Group("note_tags.tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.TagId] = row.Count
	}
	return counts, nil
}
