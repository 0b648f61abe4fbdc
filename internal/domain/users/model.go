package users

import "time"

// Capability is what a profile is allowed to act as. A user may hold
// zero, one, or both capabilities.
type Capability string

const (
	CapMember  Capability = "member"
	CapCreator Capability = "creator"
)

type User struct {
	ID       string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Handle   string  `gorm:"not null;uniqueIndex:idx_users_handle" json:"handle"`
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password *string `gorm:"" json:"-"`

	DisplayName string `gorm:"not null" json:"display_name"`
	Bio         string `gorm:"type:text" json:"bio"`

	IsMember  bool `gorm:"not null;default:true" json:"is_member"`
	IsCreator bool `gorm:"not null;default:false" json:"is_creator"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Can reports whether the user holds the given capability.
func (u User) Can(cap Capability) bool {
	switch cap {
	case CapMember:
		return u.IsMember
	case CapCreator:
		return u.IsCreator
	default:
		return false
	}
}

// Capabilities returns the capability set, member first.
func (u User) Capabilities() []Capability {
	caps := make([]Capability, 0, 2)
	if u.IsMember {
		caps = append(caps, CapMember)
	}
	if u.IsCreator {
		caps = append(caps, CapCreator)
	}
	return caps
}
