package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySubjectID struct {
	SubjectID uuid.UUID
}

func (s BySubjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_id = ?", s.SubjectID)
}

type ByNoteID struct {
	NoteID uuid.UUID
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}

type ByNoteIDs struct {
	NoteIDs []uuid.UUID
}

func (s ByNoteIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id IN ?", s.NoteIDs)
}

type ByPublic struct {
	IsPublic bool
}

func (s ByPublic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_public = ?", s.IsPublic)
}

// HasTag restricts notes to those carrying the given tag. The filter
// joins the tagging table, so combining it with other note
// specifications keeps AND semantics.
type HasTag struct {
	TagID uuid.UUID
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Where("note_tags.tag_id = ?", s.TagID)
}
