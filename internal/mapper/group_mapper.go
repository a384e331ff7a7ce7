package mapper

import (
	"studynotes-be/internal/entity"
	"studynotes-be/internal/model"
)

type GroupMapper struct{}

func NewGroupMapper() *GroupMapper {
	return &GroupMapper{}
}

func (m *GroupMapper) ToEntity(g *model.Group) *entity.Group {
	if g == nil {
		return nil
	}
	return &entity.Group{
		Id:          g.Id,
		Name:        g.Name,
		Description: g.Description,
		IsPrivate:   g.IsPrivate,
		OwnerId:     g.OwnerId,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (m *GroupMapper) ToModel(g *entity.Group) *model.Group {
	if g == nil {
		return nil
	}
	return &model.Group{
		Id:          g.Id,
		Name:        g.Name,
		Description: g.Description,
		IsPrivate:   g.IsPrivate,
		OwnerId:     g.OwnerId,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (m *GroupMapper) ToEntities(groups []*model.Group) []*entity.Group {
	entities := make([]*entity.Group, len(groups))
	for i, g := range groups {
		entities[i] = m.ToEntity(g)
	}
	return entities
}

func (m *GroupMapper) MemberToEntity(gm *model.GroupMember) *entity.GroupMember {
	if gm == nil {
		return nil
	}
	return &entity.GroupMember{
		Id:        gm.Id,
		GroupId:   gm.GroupId,
		UserId:    gm.UserId,
		Role:      entity.GroupRole(gm.Role),
		CreatedAt: gm.CreatedAt,
		UpdatedAt: gm.UpdatedAt,
	}
}

func (m *GroupMapper) MemberToModel(gm *entity.GroupMember) *model.GroupMember {
	if gm == nil {
		return nil
	}
	return &model.GroupMember{
		Id:        gm.Id,
		GroupId:   gm.GroupId,
		UserId:    gm.UserId,
		Role:      string(gm.Role),
		CreatedAt: gm.CreatedAt,
		UpdatedAt: gm.UpdatedAt,
	}
}

func (m *GroupMapper) MembersToEntities(members []*model.GroupMember) []*entity.GroupMember {
	entities := make([]*entity.GroupMember, len(members))
	for i, gm := range members {
		entities[i] = m.MemberToEntity(gm)
	}
	return entities
}

func (m *GroupMapper) ShareToEntity(gn *model.GroupNote) *entity.GroupNote {
	if gn == nil {
		return nil
	}
	return &entity.GroupNote{
		Id:        gn.Id,
		GroupId:   gn.GroupId,
		NoteId:    gn.NoteId,
		CreatedAt: gn.CreatedAt,
	}
}

func (m *GroupMapper) ShareToModel(gn *entity.GroupNote) *model.GroupNote {
	if gn == nil {
		return nil
	}
	return &model.GroupNote{
		Id:        gn.Id,
		GroupId:   gn.GroupId,
		NoteId:    gn.NoteId,
		CreatedAt: gn.CreatedAt,
	}
}
