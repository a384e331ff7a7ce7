package specification

import "gorm.io/gorm"

// TitleOrContentLike matches the search term case-insensitively as a
// substring against title or content (OR semantics).
type TitleOrContentLike struct {
	Search string
}

func (s TitleOrContentLike) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Search + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}
