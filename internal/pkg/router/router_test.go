package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/yatri/internal/pkg/goerror"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createdResponse struct {
	ID int64 `json:"id"`
}

func (createdResponse) Message() string { return "Staff created" }

func (createdResponse) StatusCode() int { return http.StatusCreated }

func newTestRouter() *Router {
	return NewRouter(Config{
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})
}

func TestRouter_Envelope(t *testing.T) {
	r := newTestRouter()
	r.POST("/api/staff", func(req *Request) (any, error) {
		var body struct {
			Name string `json:"name"`
		}
		if err := req.DecodeBody(&body); err != nil {
			return nil, err
		}
		return createdResponse{ID: 7}, nil
	})
	r.DELETE("/api/staff/:staff_id", func(req *Request) (any, error) {
		return nil, goerror.NewBusiness("staff "+req.GetParam("staff_id")+" not found", goerror.CodeNotFound)
	})

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(`{"name":"Asha"}`))

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body struct {
			Message string          `json:"message"`
			Data    createdResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Staff created", body.Message)
		assert.Equal(t, int64(7), body.Data.ID)
		assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID))
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(`{"nope":1}`))

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("business error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/staff/Y-01", nil)
		req.Header.Set(HeaderCorrelationID, "cid-1")

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"staff Y-01 not found"}`, rec.Body.String())
		assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))
	})

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_Recoverer(t *testing.T) {
	r := newTestRouter()
	r.GET("/panic", func(*Request) (any, error) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]string
		want   int
	}{
		{name: "all up", checks: map[string]string{"database": HealthUp, "email": HealthUp}, want: http.StatusOK},
		{name: "email down", checks: map[string]string{"database": HealthUp, "email": "email service not available"}, want: http.StatusServiceUnavailable},
		{name: "email disabled", checks: map[string]string{"database": HealthUp, "email": HealthDisabled}, want: http.StatusOK},
		{name: "database down, email disabled", checks: map[string]string{"database": "connection refused", "email": HealthDisabled}, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(Config{
				Instrument: instrument.NewNoop(),
				Health:     func(context.Context) map[string]string { return tt.checks },
			})
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"checks"`)
		})
	}
}
