package users

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonHandle = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeHandle generates a URL-safe base handle from a display name.
// Example: "Alice Painter" -> "alice-painter"
func MakeHandle(displayName string) string {
	base := strings.ToLower(strings.TrimSpace(displayName))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonHandle.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "user"
	}
	return base
}

// EnsureHandle makes sure user.Handle exists and is unique, suffixing a
// counter when the base is taken. Pass db in, do not import
// creatorhub/database here (avoids import cycle).
func EnsureHandle(db *gorm.DB, user *User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if strings.TrimSpace(user.Handle) != "" {
		return strings.TrimSpace(user.Handle), nil
	}

	base := MakeHandle(user.DisplayName)
	handle := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&User{}).Where("handle = ?", handle).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			break
		}
		handle = fmt.Sprintf("%s-%d", base, i)
	}

	user.Handle = handle
	return handle, nil
}
