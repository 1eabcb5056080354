package models

// Session is ephemeral: it lives only in redis, keyed by an opaque session
// ID carried inside the signed cookie, and expires two hours after the last
// authenticated request.
type Session struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
