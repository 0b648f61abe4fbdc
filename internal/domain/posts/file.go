package posts

import (
	"time"

	domainerrors "creatorhub/internal/domain/errors"
)

// MaxFileSize caps uploads at 50MB.
const MaxFileSize = 50 * 1024 * 1024

// FileAsset is file metadata attached to a post. It has no access
// policy of its own: gating always proxies through the owning post.
type FileAsset struct {
	ID     string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID string `gorm:"type:uuid;not null;index" json:"post_id"`

	FileName    string `gorm:"not null" json:"file_name"`
	FileSize    int64  `gorm:"not null" json:"file_size"`
	MimeType    string `json:"mime_type"`
	StoragePath string `gorm:"not null" json:"-"`
	UploadedBy  string `gorm:"type:uuid;not null" json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (FileAsset) TableName() string {
	return "file_assets"
}

// FileAccessLog is the append-only audit record written when a file
// download is allowed. Rows are never updated or deleted. ViewerID is
// NULL for anonymous downloads of public content; those are audited
// too.
type FileAccessLog struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ViewerID   *string   `gorm:"type:uuid;index" json:"viewer_id,omitempty"`
	FileID     string    `gorm:"type:uuid;not null;index" json:"file_id"`
	PostID     string    `gorm:"type:uuid;not null" json:"post_id"`
	AccessedAt time.Time `gorm:"not null" json:"accessed_at"`
}

func (FileAccessLog) TableName() string {
	return "file_access_logs"
}

// ValidateFile checks upload metadata before a FileAsset is recorded.
func ValidateFile(fileName string, fileSize int64) error {
	if fileName == "" {
		return domainerrors.Invalid("file_name", "must not be empty")
	}
	if fileSize <= 0 {
		return domainerrors.Invalid("file_size", "must be positive")
	}
	if fileSize > MaxFileSize {
		return domainerrors.Invalid("file_size", "exceeds the 50MB limit")
	}
	return nil
}
