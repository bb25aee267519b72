// Package v1 exposes the HTTP API: chat, OTP auth, document requests,
// employee directory lookups, and PDF summarization.
package v1

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/orgai/hr-assistant/internal/profile"
	"github.com/orgai/hr-assistant/plugin/filter"
	"github.com/orgai/hr-assistant/plugin/textextract"
	"github.com/orgai/hr-assistant/server/docrequest"
	"github.com/orgai/hr-assistant/server/finops"
	"github.com/orgai/hr-assistant/server/middleware"
	"github.com/orgai/hr-assistant/server/qa"
	"github.com/orgai/hr-assistant/server/service/auth"
	"github.com/orgai/hr-assistant/server/service/employee"
	"github.com/orgai/hr-assistant/server/service/summary"
	"github.com/orgai/hr-assistant/server/stats"
	"github.com/orgai/hr-assistant/store"
)

// APIV1Service wires the assistant's services into echo routes.
// Stats, Costs, and Extractor are optional; their endpoints degrade
// gracefully when unset.
type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Resolver  *qa.Resolver
	Auth      *auth.Service
	Documents *docrequest.Service
	Employees *employee.Service
	Summaries *summary.Service
	Filter    *filter.Filter
	Stats     *stats.Collector
	Costs     *finops.CostMonitor
	Extractor *textextract.Client
}

// Register attaches all routes and middleware to the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc: func(_ string) (bool, error) {
			return true, nil
		},
		AllowMethods:     []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete, nethttp.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	e.Use(middleware.SessionAuth(s.Profile.Secret, s.Profile.AuthDisabled))

	e.GET("/health", s.Health)

	g := e.Group("/api/v1")

	authGroup := g.Group("/auth")
	authGroup.POST("/send-otp", s.SendOTP)
	authGroup.POST("/verify-otp", s.VerifyOTP)
	authGroup.POST("/resend-otp", s.ResendOTP)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.Me)

	rateLimiter := middleware.NewRateLimiter(10, 20)
	g.POST("/chat", s.Chat, rateLimiter.Middleware())

	docGroup := g.Group("/documents")
	docGroup.GET("/menu", s.DocumentMenu)
	docGroup.POST("/validate", s.ValidateDocumentDetails)
	docGroup.POST("", s.SubmitDocumentRequest)
	docGroup.GET("", s.ListMyDocumentRequests)
	docGroup.GET("/:id", s.GetDocumentRequest)

	empGroup := g.Group("/employees")
	empGroup.GET("/search", s.SearchEmployees)
	empGroup.POST("/validate", s.ValidateEmployee)

	g.POST("/summarize", s.Summarize)
	g.POST("/summarize/upload", s.SummarizeUpload)

	g.GET("/stats", s.UsageStats)
}
