package entity

import (
	"time"

	"github.com/shandysiswandi/yatri/internal/pkg/valueobject"
)

const (
	// DefaultQuizScore is stored for staff who have not taken the quiz.
	DefaultQuizScore = "Not taken"
	// DefaultCreatedBy is stored when the creating admin is not known.
	DefaultCreatedBy = "Unknown"
)

// Staff is a staff record as shown to admins and to the staff member.
// It never carries the password hash.
type Staff struct {
	ID        int64
	Name      string
	StaffID   string
	Email     string
	Progress  valueobject.JSONMap
	QuizScore string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffCredential is a staff record loaded for login.
type StaffCredential struct {
	Staff
	PasswordHash string
}

type NewStaff struct {
	Name      string
	StaffID   string
	Email     string
	CreatedBy string
}

type UpdateStaff struct {
	CurrentStaffID string
	Name           string
	StaffID        string
	Email          string
}
