package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/handler"
	"github.com/ogurasousui/recruit-dashboard/internal/adapters/http/middleware"
	"github.com/ogurasousui/recruit-dashboard/internal/core/leave"
)

// HealthMessage は GET / が返す稼働確認メッセージです。
const HealthMessage = "Recruit Dashboard API Server is running!"

// Config はルーター構築時の依存です。
type Config struct {
	Leave       leave.UseCase
	CORSOrigins []string
	Logger      zerolog.Logger
}

// New は休暇 API を公開する gin エンジンを構築します。
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.Logger(cfg.Logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.CSP(),
	)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": HealthMessage})
	})

	leaveHandler := handler.NewLeaveHandler(cfg.Leave)
	absences := engine.Group("/api/absences")
	{
		absences.POST("/request", leaveHandler.Request)
		absences.POST("/skip-approval", leaveHandler.SkipApproval)
		absences.GET("/:employeeId", leaveHandler.List)
		absences.GET("/:employeeId/on", leaveHandler.LeaveOn)
	}

	return engine
}
