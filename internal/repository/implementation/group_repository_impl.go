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

type GroupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GroupMapper
}

func NewGroupRepository(db *gorm.DB) contract.GroupRepository {
	return &GroupRepositoryImpl{
		db:     db,
		mapper: mapper.NewGroupMapper(),
	}
}

func (r *GroupRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *entity.Group) error {
	m := r.mapper.ToModel(group)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*group = *r.mapper.ToEntity(m)
	return nil
}

func (r *GroupRepositoryImpl) Update(ctx context.Context, group *entity.Group) error {
	m := r.mapper.ToModel(group)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*group = *r.mapper.ToEntity(m)
	return nil
}

func (r *GroupRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}

func (r *GroupRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Group, error) {
	var m model.Group
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GroupRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Group, error) {
	var models []*model.Group
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GroupRepositoryImpl) FindAllByMember(ctx context.Context, userId uuid.UUID) ([]*entity.Group, error) {
	var models []*model.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GroupRepositoryImpl) AddMember(ctx context.Context, member *entity.GroupMember) error {
	m := r.mapper.MemberToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user is already a member of this group")
		}
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *GroupRepositoryImpl) RemoveMember(ctx context.Context, groupId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		Delete(&model.GroupMember{}).Error
}

func (r *GroupRepositoryImpl) FindMembers(ctx context.Context, groupId uuid.UUID) ([]*entity.GroupMember, error) {
	var models []*model.GroupMember
	query := r.applySpecifications(r.db.WithContext(ctx), specification.Filter("group_id", groupId))
	err := query.Order("created_at ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.MembersToEntities(models), nil
}

func (r *GroupRepositoryImpl) FindMembership(ctx context.Context, groupId, userId uuid.UUID) (*entity.GroupMember, error) {
	var m model.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MemberToEntity(&m), nil
}

func (r *GroupRepositoryImpl) ShareNote(ctx context.Context, share *entity.GroupNote) error {
	m := r.mapper.ShareToModel(share)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("note is already shared into this group")
		}
		return err
	}
	*share = *r.mapper.ShareToEntity(m)
	return nil
}

func (r *GroupRepositoryImpl) UnshareNote(ctx context.Context, groupId, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND note_id = ?", groupId, noteId).
		Delete(&model.GroupNote{}).Error
}

func (r *GroupRepositoryImpl) FindSharedNoteIds(ctx context.Context, groupId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.GroupNote{}).
		Where("group_id = ?", groupId).
		Order("created_at DESC").
		Pluck("note_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GroupRepositoryImpl) IsNoteSharedWithUser(ctx context.Context, noteId, userId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("group_notes").
		Joins("JOIN group_members ON group_members.group_id = group_notes.group_id").
		Where("group_notes.note_id = ? AND group_members.user_id = ?", noteId, userId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
