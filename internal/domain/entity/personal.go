package entity

import "time"

// Memo nota personal única por usuario (uno a uno, upsert).
type Memo struct {
	UserID    string
	Content   string
	UpdatedAt time.Time
}

// Todo tarea de un usuario con posición ordenable manualmente.
type Todo struct {
	ID          string
	UserID      string
	Content     string
	IsCompleted bool
	SortOrder   int
	StartDate   *time.Time
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tipos de notificación.
const (
	NotificationConsultationAssigned = "consultation_assigned"
	NotificationConsultationFollowUp = "consultation_followup"
	NotificationDocumentStatus       = "document_status"
)

// Notification notificación dentro de la aplicación.
type Notification struct {
	ID          string
	UserID      string
	Type        string
	Title       string
	Message     string
	RelatedID   string
	RelatedType string
	Read        bool
	CreatedAt   time.Time
}
