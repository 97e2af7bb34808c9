package inbound

import (
	"github.com/shandysiswandi/yatri/internal/notification/usecase"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
)

// HTTPEndpoint exposes admin email operations.
type HTTPEndpoint struct {
	uc uc
}

// Broadcast mails an announcement to every staff member with an email on file.
// @Summary Broadcast announcement
// @Description Sends the announcement to all staff with an email on file and reports per-recipient failures. A repeated Idempotency-Key is rejected.
// @Tags Notification
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Key that guards against sending the same broadcast twice"
// @Param request body BroadcastRequest true "Broadcast payload"
// @Success 200 {object} router.successResponse{data=BroadcastResponse} "Broadcast report"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Idempotency key already used"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 503 {object} router.errorResponse "Email service not available"
// @Router /api/admin/broadcast [post]
func (h *HTTPEndpoint) Broadcast(r *router.Request) (any, error) {
	var req BroadcastRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	report, err := h.uc.BroadcastAll(r.Context(), usecase.BroadcastAllInput{
		Subject:        req.Subject,
		Message:        req.Message,
		SenderName:     req.SenderName,
		IdempotencyKey: r.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return newBroadcastResponse(report), nil
}

// EmailTest sends the test email to the relay account.
// @Summary Send test email
// @Tags Notification
// @Produce json
// @Success 200 {object} router.successResponse{data=EmailTestResponse} "Send outcome"
// @Failure 503 {object} router.errorResponse "Email service not available"
// @Router /api/admin/email/test [post]
func (h *HTTPEndpoint) EmailTest(r *router.Request) (any, error) {
	out, err := h.uc.SendTest(r.Context())
	if err != nil {
		return nil, err
	}

	return EmailTestResponse{newSendOutcomeResponse(*out)}, nil
}

// EmailStatus reports whether outbound email is available.
// @Summary Email transport status
// @Tags Notification
// @Produce json
// @Success 200 {object} router.successResponse{data=EmailStatusResponse} "Transport status"
// @Router /api/admin/email/status [get]
func (h *HTTPEndpoint) EmailStatus(r *router.Request) (any, error) {
	st := h.uc.Status(r.Context())

	return EmailStatusResponse{Available: st.Available, Account: st.Account}, nil
}
