package inbound

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
	"github.com/shandysiswandi/yatri/internal/staff/usecase"
)

// HTTPEndpoint exposes HTTP handlers for staff records and logins.
type HTTPEndpoint struct {
	uc uc
}

// AdminLogin checks admin credentials.
// @Summary Admin login
// @Tags Staff, Authentication
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} router.successResponse{data=AdminLoginResponse} "Credentials accepted"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid Admin credentials."
// @Router /api/admin/login [post]
func (h *HTTPEndpoint) AdminLogin(r *router.Request) (any, error) {
	var req AdminLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.AdminLogin(r.Context(), usecase.AdminLoginInput{
		AdminID:  req.AdminID,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return AdminLoginResponse{Success: true}, nil
}

// StaffLogin checks staff credentials and returns the staff record.
// @Summary Staff login
// @Tags Staff, Authentication
// @Accept json
// @Produce json
// @Param request body StaffLoginRequest true "Staff credentials"
// @Success 200 {object} router.successResponse{data=StaffLoginResponse} "Staff record without password"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid Staff ID or password."
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/staff/login [post]
func (h *HTTPEndpoint) StaffLogin(r *router.Request) (any, error) {
	var req StaffLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	st, err := h.uc.StaffLogin(r.Context(), usecase.StaffLoginInput{
		StaffID:  req.StaffID,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return StaffLoginResponse{Success: true, User: newStaffResponse(*st)}, nil
}

// StaffList returns every staff record.
// @Summary List staff
// @Tags Staff
// @Produce json
// @Success 200 {object} router.successResponse{data=[]StaffResponse} "Staff records"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/staff [get]
func (h *HTTPEndpoint) StaffList(r *router.Request) (any, error) {
	list, err := h.uc.StaffList(r.Context())
	if err != nil {
		return nil, err
	}

	return StaffListResponse(lo.Map(list, func(st entity.Staff, _ int) StaffResponse {
		return newStaffResponse(st)
	})), nil
}

// StaffCreate adds a staff record and mails the welcome email.
// @Summary Create staff
// @Description Creates the record, then sends the welcome email when an email is on file. A failed email does not fail the request.
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body StaffCreateRequest true "Staff payload"
// @Success 201 {object} router.successResponse{data=StaffCreateResponse} "Staff created"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Staff ID already exists."
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/staff [post]
func (h *HTTPEndpoint) StaffCreate(r *router.Request) (any, error) {
	var req StaffCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.StaffCreate(r.Context(), usecase.StaffCreateInput{
		Name:     req.Name,
		StaffID:  req.StaffID,
		Email:    req.Email,
		Password: req.Password,
		AdminID:  req.AdminID,
	})
	if err != nil {
		return nil, err
	}

	return StaffCreateResponse{
		Success: true,
		ID:      out.ID,
		Email: NotificationResponse{
			Sent:      out.Notification.Sent,
			MessageID: out.Notification.MessageID,
			Error:     out.Notification.Error,
		},
		hasEmail: strings.TrimSpace(req.Email) != "",
	}, nil
}

// StaffUpdate changes a staff record. The password is only replaced when provided.
// @Summary Update staff
// @Tags Staff
// @Accept json
// @Produce json
// @Param staff_id path string true "Current staff id"
// @Param request body StaffUpdateRequest true "Staff payload"
// @Success 200 {object} router.successResponse{data=ChangesResponse} "Number of changed records"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Staff ID might already be in use."
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/staff/{staff_id} [put]
func (h *HTTPEndpoint) StaffUpdate(r *router.Request) (any, error) {
	var req StaffUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.StaffUpdate(r.Context(), usecase.StaffUpdateInput{
		CurrentStaffID: r.GetParam("staff_id"),
		Name:           req.Name,
		StaffID:        req.StaffID,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		return nil, err
	}

	return ChangesResponse{Success: true, Changes: out.Changes}, nil
}

// StaffDelete removes a staff record.
// @Summary Delete staff
// @Tags Staff
// @Produce json
// @Param staff_id path string true "Staff id"
// @Success 200 {object} router.successResponse{data=ChangesResponse} "Number of deleted records"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/staff/{staff_id} [delete]
func (h *HTTPEndpoint) StaffDelete(r *router.Request) (any, error) {
	out, err := h.uc.StaffDelete(r.Context(), usecase.StaffDeleteInput{StaffID: r.GetParam("staff_id")})
	if err != nil {
		return nil, err
	}

	return ChangesResponse{Success: true, Changes: out.Changes}, nil
}

// ProgressUpdate stores training progress or a quiz score.
// @Summary Update progress
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body ProgressUpdateRequest true "Progress payload"
// @Success 200 {object} router.successResponse{data=ChangesResponse} "Progress stored"
// @Failure 400 {object} router.errorResponse "No progress or quiz score provided."
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/progress [post]
func (h *HTTPEndpoint) ProgressUpdate(r *router.Request) (any, error) {
	var req ProgressUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.ProgressUpdate(r.Context(), usecase.ProgressUpdateInput{
		StaffID:   req.StaffID,
		Progress:  req.Progress,
		QuizScore: req.QuizScore,
	})
	if err != nil {
		return nil, err
	}

	return ChangesResponse{Success: true, Changes: out.Changes}, nil
}
