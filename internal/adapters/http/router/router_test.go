package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/middleware"
	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/router"
	"github.com/ogurasousui/recruit-dashboard/internal/adapters/repository/memory"
	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
)

type sequenceIDs struct{ next int64 }

func (s *sequenceIDs) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var _ = Describe("Router", func() {
	var (
		engine *gin.Engine
		logs   *bytes.Buffer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		logs = &bytes.Buffer{}
		svc := leave.NewService(memory.NewLeaveRepository(), &sequenceIDs{}, fixedClock{now: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
		engine = router.New(router.Config{
			Leave:       svc,
			CORSOrigins: []string{"http://localhost:3000"},
			Logger:      zerolog.New(logs),
		})
	})

	It("answers the health check with the security policy header", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Security-Policy")).To(Equal(middleware.ContentSecurityPolicy))

		var body map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal(router.HealthMessage))
		Expect(logs.String()).To(ContainSubstring(`"status":200`))
	})

	It("allows configured origins", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/absences/request", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		Expect(w.Header().Get("Access-Control-Allow-Headers")).To(ContainSubstring("Authorization"))
	})

	It("does not echo unknown origins", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("does not answer preflights from unknown origins", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/absences/request", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Code).NotTo(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("passes plain OPTIONS requests through to routing", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/absences/request", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Code).NotTo(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
	})

	It("round-trips a leave request through the in-memory store", func() {
		body := []byte(`{"employeeId":"emp-9","type":"Sick","startDate":"2024-03-04","endDate":"2024-03-05"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/absences/skip-approval", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		req = httptest.NewRequest(http.MethodGet, "/api/absences/emp-9/on?date=2024-03-05", nil)
		w = httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp struct {
			Data struct {
				OnLeave bool   `json:"onLeave"`
				Type    string `json:"type"`
			} `json:"data"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data.OnLeave).To(BeTrue())
		Expect(resp.Data.Type).To(Equal("sick"))
	})

	It("recovers from panics with a 500", func() {
		engine.GET("/panic", func(*gin.Context) { panic("boom") })

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(logs.String()).To(ContainSubstring("panic recovered"))
	})
})
