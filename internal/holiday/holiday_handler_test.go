package holiday_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/holiday"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error)
	getAllFn func(ctx context.Context) ([]holiday.HolidayResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]holiday.HolidayResponse, error) {
	return f.getAllFn(ctx)
}

func postHoliday(t *testing.T, role, body string, svc holiday.Service) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := holiday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Set("role", role)
	c.Request = httptest.NewRequest(http.MethodPost, "/holidays", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	return w
}

func TestHandler_Create_EmployeeDefaultsToPersonal(t *testing.T) {
	var got holiday.CreateHolidayRequest
	svc := &fakeService{
		createFn: func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
			got = req
			return holiday.HolidayResponse{
				ID:   uuid.New().String(),
				Name: req.Name,
				Date: req.Date,
				Type: req.Type,
			}, nil
		},
	}

	w := postHoliday(t, "employee", `{"name":"My Anniversary","date":"2026-06-01"}`, svc)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, holiday.TypePersonal, got.Type)
}

func TestHandler_Create_EmployeeCannotCreateNational(t *testing.T) {
	svc := &fakeService{
		createFn: func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
			t.Fatal("service must not be reached")
			return holiday.HolidayResponse{}, nil
		},
	}

	w := postHoliday(t, "employee", `{"name":"Independence Day","date":"2026-07-04","type":"national"}`, svc)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var env struct {
		Ok    bool `json:"ok"`
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestHandler_Create_AdminCreatesNational(t *testing.T) {
	var got holiday.CreateHolidayRequest
	svc := &fakeService{
		createFn: func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
			got = req
			return holiday.HolidayResponse{
				ID:   uuid.New().String(),
				Name: req.Name,
				Date: req.Date,
				Type: req.Type,
			}, nil
		},
	}

	w := postHoliday(t, "admin", `{"name":"Independence Day","date":"2026-07-04","type":"national"}`, svc)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, holiday.TypeNational, got.Type)
}
