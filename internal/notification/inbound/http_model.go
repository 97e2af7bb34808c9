package inbound

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shandysiswandi/yatri/internal/notification/entity"
)

type BroadcastRequest struct {
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	SenderName string `json:"senderName"`
}

type SendOutcomeResponse struct {
	Email     string `json:"email"`
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newSendOutcomeResponse(o entity.SendOutcome) SendOutcomeResponse {
	return SendOutcomeResponse{
		Email:     o.Recipient.Address,
		Sent:      o.Succeeded,
		MessageID: o.MessageID,
		Error:     o.Error,
	}
}

type BroadcastResponse struct {
	TotalRecipients int                   `json:"totalRecipients"`
	Succeeded       int                   `json:"succeeded"`
	Failed          []SendOutcomeResponse `json:"failed"`
}

func (b BroadcastResponse) Message() string {
	if b.TotalRecipients == 0 {
		return "No staff with an email on file"
	}
	return fmt.Sprintf("Broadcast sent to %d of %d staff", b.Succeeded, b.TotalRecipients)
}

func newBroadcastResponse(r *entity.BroadcastReport) BroadcastResponse {
	return BroadcastResponse{
		TotalRecipients: r.TotalRecipients,
		Succeeded:       r.Succeeded,
		Failed:          lo.Map(r.Failed, func(o entity.SendOutcome, _ int) SendOutcomeResponse { return newSendOutcomeResponse(o) }),
	}
}

type EmailTestResponse struct {
	SendOutcomeResponse
}

func (e EmailTestResponse) Message() string {
	if e.Sent {
		return "Test email sent"
	}
	return "Test email not sent"
}

type EmailStatusResponse struct {
	Available bool   `json:"available"`
	Account   string `json:"account,omitempty"`
}
