package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/shandysiswandi/yatri/internal/pkg/uid"
	"github.com/shandysiswandi/yatri/internal/pkg/valueobject"
	"github.com/shandysiswandi/yatri/internal/shared/event"
	"github.com/shandysiswandi/yatri/internal/staff/entity"
	"github.com/shandysiswandi/yatri/internal/staff/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	err          error
	staff        []entity.Staff
	createOut    *usecase.StaffCreateOutput
	lastUpdate   usecase.StaffUpdateInput
	lastDelete   usecase.StaffDeleteInput
	lastProgress usecase.ProgressUpdateInput
}

func (f *fakeUsecase) AdminLogin(context.Context, usecase.AdminLoginInput) error { return f.err }

func (f *fakeUsecase) StaffLogin(context.Context, usecase.StaffLoginInput) (*entity.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.staff[0], nil
}

func (f *fakeUsecase) StaffList(context.Context) ([]entity.Staff, error) { return f.staff, f.err }

func (f *fakeUsecase) StaffCreate(context.Context, usecase.StaffCreateInput) (*usecase.StaffCreateOutput, error) {
	return f.createOut, f.err
}

func (f *fakeUsecase) StaffUpdate(_ context.Context, in usecase.StaffUpdateInput) (*usecase.ChangesOutput, error) {
	f.lastUpdate = in
	return &usecase.ChangesOutput{Changes: 1}, f.err
}

func (f *fakeUsecase) StaffDelete(_ context.Context, in usecase.StaffDeleteInput) (*usecase.ChangesOutput, error) {
	f.lastDelete = in
	return &usecase.ChangesOutput{Changes: 1}, f.err
}

func (f *fakeUsecase) ProgressUpdate(_ context.Context, in usecase.ProgressUpdateInput) (*usecase.ChangesOutput, error) {
	f.lastProgress = in
	if f.err != nil {
		return nil, f.err
	}
	return &usecase.ChangesOutput{Changes: 1}, nil
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func do(t *testing.T, f *fakeUsecase, method, path, body string) (int, envelope) {
	t.Helper()

	r := router.NewRouter(router.Config{UUID: uid.NewUUID(), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec.Code, env
}

func TestHTTPEndpoint_AdminLogin(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		code, env := do(t, &fakeUsecase{}, http.MethodPost, "/api/admin/login", `{"adminId":"pratham","password":"x"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"success":true}`, string(env.Data))
	})

	t.Run("rejected", func(t *testing.T) {
		f := &fakeUsecase{err: goerror.NewBusiness("Invalid Admin credentials.", goerror.CodeUnauthorized)}

		code, env := do(t, f, http.MethodPost, "/api/admin/login", `{"adminId":"x","password":"y"}`)

		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid Admin credentials.", env.Message)
	})
}

func TestHTTPEndpoint_StaffLogin(t *testing.T) {
	f := &fakeUsecase{staff: []entity.Staff{{
		ID: 1, Name: "Jane", StaffID: "S100", Progress: valueobject.JSONMap{}, QuizScore: "Not taken", CreatedBy: "pratham",
	}}}

	code, env := do(t, f, http.MethodPost, "/api/staff/login", `{"staffId":"S100","password":"x"}`)

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"user":{"id":1,"name":"Jane","staff_id":"S100","email":null,"progress":{},"quiz_score":"Not taken","created_by":"pratham"}}`, string(env.Data))
	assert.NotContains(t, string(env.Data), "password")
}

func TestHTTPEndpoint_StaffList(t *testing.T) {
	f := &fakeUsecase{staff: []entity.Staff{
		{ID: 1, Name: "Jane", StaffID: "S1", Email: "jane@x.com", Progress: valueobject.JSONMap{"m1": true}},
		{ID: 2, Name: "Ben", StaffID: "S2", Progress: valueobject.JSONMap{}},
	}}

	code, env := do(t, f, http.MethodGet, "/api/staff", "")

	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 2, env.Meta["total"], 0)

	var data []StaffResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 2)
	require.NotNil(t, data[0].Email)
	assert.Equal(t, "jane@x.com", *data[0].Email)
	assert.Nil(t, data[1].Email)
}

func TestHTTPEndpoint_StaffCreate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		delivery event.Delivery
		wantMsg  string
	}{
		{
			name:     "welcome sent",
			body:     `{"name":"Jane","staff_id":"S1","email":"jane@x.com","password":"p","adminId":"pratham"}`,
			delivery: event.Delivery{Sent: true, MessageID: "<1@x>"},
			wantMsg:  "Staff created, welcome email sent",
		},
		{
			name:     "welcome failed",
			body:     `{"name":"Jane","staff_id":"S1","email":"jane@x.com","password":"p"}`,
			delivery: event.Delivery{Error: "Email service not available"},
			wantMsg:  "Staff created, notification not sent",
		},
		{
			name:     "no email on file",
			body:     `{"name":"Jane","staff_id":"S1","password":"p"}`,
			delivery: event.Delivery{Error: "no email on file"},
			wantMsg:  "Staff created",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeUsecase{createOut: &usecase.StaffCreateOutput{ID: 9, Notification: tt.delivery}}

			code, env := do(t, f, http.MethodPost, "/api/staff", tt.body)

			assert.Equal(t, http.StatusCreated, code)
			assert.Equal(t, tt.wantMsg, env.Message)

			var data StaffCreateResponse
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, int64(9), data.ID)
			assert.Equal(t, tt.delivery.Sent, data.Email.Sent)
			assert.Equal(t, tt.delivery.Error, data.Email.Error)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		f := &fakeUsecase{err: goerror.NewBusiness("Staff ID already exists.", goerror.CodeConflict)}

		code, env := do(t, f, http.MethodPost, "/api/staff", `{"name":"Jane","staff_id":"S1","password":"p"}`)

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "Staff ID already exists.", env.Message)
	})
}

func TestHTTPEndpoint_StaffUpdateAndDelete(t *testing.T) {
	f := &fakeUsecase{}

	code, env := do(t, f, http.MethodPut, "/api/staff/S1", `{"name":"Jane","staff_id":"S2","email":"","password":""}`)

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"changes":1}`, string(env.Data))
	assert.Equal(t, usecase.StaffUpdateInput{CurrentStaffID: "S1", Name: "Jane", StaffID: "S2"}, f.lastUpdate)

	code, _ = do(t, f, http.MethodDelete, "/api/staff/S2", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "S2", f.lastDelete.StaffID)
}

func TestHTTPEndpoint_ProgressUpdate(t *testing.T) {
	t.Run("progress object", func(t *testing.T) {
		f := &fakeUsecase{}

		code, _ := do(t, f, http.MethodPost, "/api/progress", `{"staffId":"S1","progress":{"m1":true},"quizScore":"5/10"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, valueobject.JSONMap{"m1": true}, f.lastProgress.Progress)
		assert.Equal(t, "5/10", f.lastProgress.QuizScore)
	})

	t.Run("nothing provided", func(t *testing.T) {
		f := &fakeUsecase{err: goerror.NewInvalidFormat("No progress or quiz score provided.")}

		code, env := do(t, f, http.MethodPost, "/api/progress", `{"staffId":"S1"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "No progress or quiz score provided.", env.Message)
	})
}
