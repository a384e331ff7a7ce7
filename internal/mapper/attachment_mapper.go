package mapper

import (
	"studynotes-be/internal/entity"
	"studynotes-be/internal/model"
)

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}
	return &entity.Attachment{
		Id:           a.Id,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		Mimetype:     a.Mimetype,
		Size:         a.Size,
		Path:         a.Path,
		NoteId:       a.NoteId,
		UserId:       a.UserId,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}
	return &model.Attachment{
		Id:           a.Id,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		Mimetype:     a.Mimetype,
		Size:         a.Size,
		Path:         a.Path,
		NoteId:       a.NoteId,
		UserId:       a.UserId,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AttachmentMapper) ToEntities(attachments []*model.Attachment) []*entity.Attachment {
	entities := make([]*entity.Attachment, len(attachments))
	for i, a := range attachments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
