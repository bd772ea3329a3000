package models

// Tag is a named label attached to segments via the segment_tags
// association table.
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
