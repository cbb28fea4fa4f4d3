package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/validation"
)

func TestRespondErrorMapsValidationTo422(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
	}{
		{"chronology", &validation.ChronologyError{Field: "end_time", Strict: true}},
		{"duplicate", &validation.DuplicateCombinationError{Field: "start_date"}},
		{"conflict", &validation.ConflictError{Field: "start_time"}},
		{"reference", &validation.ReferenceNotFoundError{Field: "faculty_id"}},
		{"inactive session", &validation.InactiveSessionError{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", w.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Status {
				t.Fatal("status must be false on validation failure")
			}
			if body.Message != tc.err.Error() {
				t.Fatalf("expected message %q, got %q", tc.err.Error(), body.Message)
			}
		})
	}
}

func TestRespondErrorMapsNotFoundTo404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, gorm.ErrRecordNotFound)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("404 body must be empty, got %q", w.Body.String())
	}
}

func TestRespondErrorMapsUnexpectedTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Fatal("internal error details must not leak to the client")
	}
}

func bindProbe[R any](t *testing.T) func(body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterBindings()

	r := gin.New()
	r.POST("/probe", func(c *gin.Context) {
		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	return func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}
}

func TestDayOfWeekBinding(t *testing.T) {
	do := bindProbe[StoreScheduleRequest](t)

	ok := `{"user_id":1,"day_of_week":"MONDAY","room_id":2,"subject_id":3}`
	if w := do(ok); w.Code != http.StatusOK {
		t.Fatalf("valid body rejected: %d", w.Code)
	}
	bad := `{"user_id":1,"day_of_week":"Monday","room_id":2,"subject_id":3}`
	w := do(bad)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("lowercase day: expected 422, got %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Status || !strings.Contains(body.Message, "day_of_week") {
		t.Fatalf("message must name the wire field, got %q", body.Message)
	}
}

func TestTimeOfDayBinding(t *testing.T) {
	do := bindProbe[StoreSchedulePeriodRequest](t)

	if w := do(`{"schedule_id":1,"start_time":"08:00:00","end_time":"09:00:00"}`); w.Code != http.StatusOK {
		t.Fatalf("valid times rejected: %d", w.Code)
	}
	if w := do(`{"schedule_id":1,"start_time":"8am","end_time":"09:00:00"}`); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("malformed time: expected 422, got %d", w.Code)
	}
}

func TestBindingFailureMapping(t *testing.T) {
	do := bindProbe[StoreScheduleRequest](t)

	// A missing required field is a validation failure, not a bad request.
	w := do(`{"day_of_week":"MONDAY","room_id":2,"subject_id":3}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing field: expected 422, got %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !strings.Contains(body.Message, "user_id") || !strings.Contains(body.Message, "required") {
		t.Fatalf("unexpected message %q", body.Message)
	}

	// Malformed JSON never reached the validator; it stays a 400.
	if w := do(`{"user_id":`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed JSON: expected 400, got %d", w.Code)
	}
}
