package inbound

import (
	"context"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/notification/usecase"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
)

type uc interface {
	BroadcastAll(ctx context.Context, in usecase.BroadcastAllInput) (*entity.BroadcastReport, error)
	SendTest(ctx context.Context) (*entity.SendOutcome, error)
	Status(ctx context.Context) entity.TransportStatus
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/admin/broadcast", end.Broadcast)
	r.POST("/api/admin/email/test", end.EmailTest)
	r.GET("/api/admin/email/status", end.EmailStatus)
}
