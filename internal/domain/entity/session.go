package entity

import "time"

// Session registro persistido de una identidad autenticada.
// Role es la etiqueta tal como se guardó; su interpretación la hace access.Resolve.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Lastname  string    `json:"lastname,omitempty"`
	Role      string    `json:"role"`
	RoleID    int       `json:"role_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
