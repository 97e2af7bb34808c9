package inbound

import (
	"context"

	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
	"github.com/shandysiswandi/yatri/internal/staff/usecase"
)

type uc interface {
	AdminLogin(ctx context.Context, in usecase.AdminLoginInput) error
	StaffLogin(ctx context.Context, in usecase.StaffLoginInput) (*entity.Staff, error)

	StaffList(ctx context.Context) ([]entity.Staff, error)
	StaffCreate(ctx context.Context, in usecase.StaffCreateInput) (*usecase.StaffCreateOutput, error)
	StaffUpdate(ctx context.Context, in usecase.StaffUpdateInput) (*usecase.ChangesOutput, error)
	StaffDelete(ctx context.Context, in usecase.StaffDeleteInput) (*usecase.ChangesOutput, error)

	ProgressUpdate(ctx context.Context, in usecase.ProgressUpdateInput) (*usecase.ChangesOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/admin/login", end.AdminLogin)
	r.POST("/api/staff/login", end.StaffLogin)

	// Staff records
	r.GET("/api/staff", end.StaffList)
	r.POST("/api/staff", end.StaffCreate)
	r.PUT("/api/staff/:staff_id", end.StaffUpdate)
	r.DELETE("/api/staff/:staff_id", end.StaffDelete)

	// Training
	r.POST("/api/progress", end.ProgressUpdate)
}
