package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User cuenta del personal de ventas.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Level        string // 직급
	Position     string // 직책
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoginLog intento de inicio de sesión.
type LoginLog struct {
	ID        string
	Email     string
	IPAddress string
	UserAgent string
	LoginTime time.Time
	Success   bool
}
