package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/handler"
	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
)

type stubLeaveUseCase struct {
	requestFn func(ctx context.Context, in leave.RequestAbsenceInput) (*leave.Request, error)
	skipFn    func(ctx context.Context, in leave.RequestAbsenceInput) (*leave.Request, error)
	listFn    func(ctx context.Context, employeeID string) ([]*leave.Request, error)
	onFn      func(ctx context.Context, employeeID string, date time.Time) (leave.Type, bool, error)
}

func (s *stubLeaveUseCase) RequestAbsence(ctx context.Context, in leave.RequestAbsenceInput) (*leave.Request, error) {
	return s.requestFn(ctx, in)
}

func (s *stubLeaveUseCase) SkipApproval(ctx context.Context, in leave.RequestAbsenceInput) (*leave.Request, error) {
	return s.skipFn(ctx, in)
}

func (s *stubLeaveUseCase) ListRequests(ctx context.Context, employeeID string) ([]*leave.Request, error) {
	return s.listFn(ctx, employeeID)
}

func (s *stubLeaveUseCase) LeaveOn(ctx context.Context, employeeID string, date time.Time) (leave.Type, bool, error) {
	return s.onFn(ctx, employeeID, date)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

var _ = Describe("LeaveHandler", func() {
	var (
		stub    *stubLeaveUseCase
		router  *gin.Engine
		created time.Time
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		stub = &stubLeaveUseCase{}

		h := handler.NewLeaveHandler(stub)
		router = gin.New()
		router.POST("/api/absences/request", h.Request)
		router.POST("/api/absences/skip-approval", h.SkipApproval)
		router.GET("/api/absences/:employeeId", h.List)
		router.GET("/api/absences/:employeeId/on", h.LeaveOn)
	})

	post := func(path string, body any) (*httptest.ResponseRecorder, envelope) {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp envelope
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return w, resp
	}

	get := func(path string) (*httptest.ResponseRecorder, envelope) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp envelope
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return w, resp
	}

	validBody := map[string]string{
		"employeeId": "emp-1",
		"type":       "paid",
		"startDate":  "2024-03-04",
		"endDate":    "2024-03-06",
		"comment":    "family trip",
	}

	Describe("POST /api/absences/request", func() {
		It("stores a pending request", func() {
			var captured leave.RequestAbsenceInput
			stub.requestFn = func(_ context.Context, in leave.RequestAbsenceInput) (*leave.Request, error) {
				captured = in
				return &leave.Request{
					ID: 42, EmployeeID: in.EmployeeID, Type: leave.TypePaid,
					StartDate: in.StartDate, EndDate: in.EndDate, Comment: in.Comment,
					Status: leave.StatusPending, CreatedAt: created,
				}, nil
			}

			w, resp := post("/api/absences/request", validBody)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Message).To(Equal("Absence request submitted successfully"))
			Expect(captured.EmployeeID).To(Equal("emp-1"))
			Expect(captured.StartDate).To(Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))

			var data map[string]any
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data["status"]).To(Equal("pending"))
			Expect(data["typeLabel"]).To(Equal("Paid Leave"))
			Expect(data["startDate"]).To(Equal("2024-03-04"))
		})

		It("returns 400 when a required field is missing", func() {
			w, resp := post("/api/absences/request", map[string]string{"employeeId": "emp-1"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Failed to submit absence request"))
		})

		It("returns 400 for an unparsable date", func() {
			body := map[string]string{"employeeId": "emp-1", "type": "paid", "startDate": "03/04/2024", "endDate": "2024-03-06"}

			w, resp := post("/api/absences/request", body)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp.Error).To(Equal(leave.ErrInvalidDate.Error()))
		})

		It("returns 400 for validation errors from the use case", func() {
			stub.requestFn = func(context.Context, leave.RequestAbsenceInput) (*leave.Request, error) {
				return nil, leave.ErrInvalidDateRange
			}

			w, resp := post("/api/absences/request", validBody)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp.Success).To(BeFalse())
		})

		It("returns 500 for unexpected errors", func() {
			stub.requestFn = func(context.Context, leave.RequestAbsenceInput) (*leave.Request, error) {
				return nil, errors.New("disk full")
			}

			w, resp := post("/api/absences/request", validBody)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(resp.Message).To(Equal("Failed to submit absence request"))
		})
	})

	Describe("POST /api/absences/skip-approval", func() {
		It("stores an approved request", func() {
			stub.skipFn = func(_ context.Context, in leave.RequestAbsenceInput) (*leave.Request, error) {
				return &leave.Request{
					ID: 7, EmployeeID: in.EmployeeID, Type: leave.TypeSick,
					StartDate: in.StartDate, EndDate: in.EndDate,
					Status: leave.StatusApproved, CreatedAt: created,
				}, nil
			}

			w, resp := post("/api/absences/skip-approval", validBody)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp.Message).To(Equal("Absence request approved successfully"))

			var data map[string]any
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data["status"]).To(Equal("approved"))
		})
	})

	Describe("GET /api/absences/:employeeId", func() {
		It("lists requests for the employee", func() {
			stub.listFn = func(_ context.Context, employeeID string) ([]*leave.Request, error) {
				Expect(employeeID).To(Equal("emp-1"))
				return []*leave.Request{
					{ID: 1, EmployeeID: "emp-1", Type: leave.TypePaid, StartDate: created, EndDate: created, Status: leave.StatusApproved, CreatedAt: created},
					{ID: 2, EmployeeID: "emp-1", Type: leave.TypeUnpaid, StartDate: created, EndDate: created, Status: leave.StatusPending, CreatedAt: created},
				}, nil
			}

			w, resp := get("/api/absences/emp-1")

			Expect(w.Code).To(Equal(http.StatusOK))
			var data []map[string]any
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data).To(HaveLen(2))
			Expect(data[1]["type"]).To(Equal("unpaid"))
		})

		It("returns 500 when the store fails", func() {
			stub.listFn = func(context.Context, string) ([]*leave.Request, error) {
				return nil, errors.New("boom")
			}

			w, resp := get("/api/absences/emp-1")

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(resp.Message).To(Equal("Failed to fetch leave requests"))
		})
	})

	Describe("GET /api/absences/:employeeId/on", func() {
		It("reports the leave type covering the date", func() {
			stub.onFn = func(_ context.Context, employeeID string, date time.Time) (leave.Type, bool, error) {
				Expect(date).To(Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
				return leave.TypeMaternity, true, nil
			}

			w, resp := get("/api/absences/emp-1/on?date=2024-03-05")

			Expect(w.Code).To(Equal(http.StatusOK))
			var data map[string]any
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data["onLeave"]).To(BeTrue())
			Expect(data["typeLabel"]).To(Equal("Maternity Leave"))
		})

		It("reports no leave", func() {
			stub.onFn = func(context.Context, string, time.Time) (leave.Type, bool, error) {
				return "", false, nil
			}

			w, resp := get("/api/absences/emp-1/on?date=2024-03-05")

			Expect(w.Code).To(Equal(http.StatusOK))
			var data map[string]any
			Expect(json.Unmarshal(resp.Data, &data)).To(Succeed())
			Expect(data["onLeave"]).To(BeFalse())
			Expect(data).NotTo(HaveKey("type"))
		})

		It("rejects a malformed date", func() {
			w, _ := get("/api/absences/emp-1/on?date=tomorrow")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
