package models

import "github.com/google/uuid"

type FileKind string

const (
	KindFolder FileKind = "folder"
	KindFile   FileKind = "file"
	KindImage  FileKind = "image"
)

func (k FileKind) Valid() bool {
	switch k {
	case KindFolder, KindFile, KindImage:
		return true
	default:
		return false
	}
}

// HasContent reports whether records of this kind carry bytes in the
// content store. Folders never do.
func (k FileKind) HasContent() bool {
	return k == KindFile || k == KindImage
}

type File struct {
	BaseModel
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Kind        FileKind   `json:"type" gorm:"column:kind;type:varchar(20);not null;index"`
	ParentID    *uuid.UUID `json:"parentId,omitempty" gorm:"type:uuid;index"`
	OwnerID     uuid.UUID  `json:"ownerId" gorm:"type:uuid;not null;index"`
	IsPublic    bool       `json:"isPublic" gorm:"not null;default:false"`
	StoragePath string     `json:"-" gorm:"type:text"`

	Parent   *File  `json:"-" gorm:"foreignKey:ParentID"`
	Children []File `json:"-" gorm:"foreignKey:ParentID"`
	Owner    User   `json:"-" gorm:"foreignKey:OwnerID;references:ID"`
}
