package inbound

import (
	"net/http"

	"github.com/samber/lo"
	"github.com/shandysiswandi/yatri/internal/pkg/valueobject"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
)

type AdminLoginRequest struct {
	AdminID  string `json:"adminId"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Success bool `json:"success"`
}

func (AdminLoginResponse) Message() string {
	return "Login successful"
}

type StaffLoginRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

type StaffLoginResponse struct {
	Success bool          `json:"success"`
	User    StaffResponse `json:"user"`
}

func (StaffLoginResponse) Message() string {
	return "Login successful"
}

type StaffResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	StaffID   string              `json:"staff_id"`
	Email     *string             `json:"email"`
	Progress  valueobject.JSONMap `json:"progress"`
	QuizScore string              `json:"quiz_score"`
	CreatedBy string              `json:"created_by"`
}

func newStaffResponse(st entity.Staff) StaffResponse {
	return StaffResponse{
		ID:        st.ID,
		Name:      st.Name,
		StaffID:   st.StaffID,
		Email:     lo.EmptyableToPtr(st.Email),
		Progress:  st.Progress,
		QuizScore: st.QuizScore,
		CreatedBy: st.CreatedBy,
	}
}

type StaffListResponse []StaffResponse

func (l StaffListResponse) Meta() map[string]any {
	return map[string]any{"total": len(l)}
}

type StaffCreateRequest struct {
	Name     string `json:"name"`
	StaffID  string `json:"staff_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AdminID  string `json:"adminId"`
}

type NotificationResponse struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type StaffCreateResponse struct {
	Success bool                 `json:"success"`
	ID      int64                `json:"id"`
	Email   NotificationResponse `json:"email"`

	hasEmail bool
}

func (r StaffCreateResponse) Message() string {
	switch {
	case r.Email.Sent:
		return "Staff created, welcome email sent"
	case r.hasEmail:
		return "Staff created, notification not sent"
	default:
		return "Staff created"
	}
}

func (StaffCreateResponse) StatusCode() int {
	return http.StatusCreated
}

type StaffUpdateRequest struct {
	Name     string `json:"name"`
	StaffID  string `json:"staff_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangesResponse struct {
	Success bool  `json:"success"`
	Changes int64 `json:"changes"`
}

type ProgressUpdateRequest struct {
	StaffID   string              `json:"staffId"`
	Progress  valueobject.JSONMap `json:"progress"`
	QuizScore string              `json:"quizScore"`
}
