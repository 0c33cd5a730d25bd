package server

import (
	"log/slog"
	"slices"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grcwalk/internal/config"
	"grcwalk/internal/handlers"
	"grcwalk/internal/middleware"
	"grcwalk/internal/models"
	"grcwalk/internal/service"
	"grcwalk/internal/transfer"
)

const sessionName = "grcwalk_session"

// NewRouter wires every API route. Metrics are registered on reg and
// served from the same registry at /metrics.
func NewRouter(cfg *config.Config, svc *service.Service, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(slog.Default()))
	r.Use(middleware.NewMetrics(reg).Middleware())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 12 * 60 * 60})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.InjectUser(svc))

	h := handlers.New(svc)

	r.GET("/", handlers.IndexPage)
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/health", handlers.Health)

	// AUTH
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)

	// без AUTH_ENABLED все маршруты открыты
	var guard, editor, admin []gin.HandlerFunc
	if cfg.AuthEnabled {
		guard = []gin.HandlerFunc{middleware.RequireAuth()}
		editor = slices.Concat(guard, []gin.HandlerFunc{middleware.RequireRole(models.RoleAdmin, models.RoleAnalyst)})
		admin = slices.Concat(guard, []gin.HandlerFunc{middleware.RequireRole(models.RoleAdmin)})
	}
	read := api.Group("", guard...)
	write := api.Group("", editor...)

	// ПОЛЬЗОВАТЕЛИ
	users := api.Group("/users", admin...)
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)

	// РИСКИ
	read.GET("/risks", h.ListRisks)
	read.GET("/risks/recent", h.RecentRisks)
	read.GET("/risks/categories", h.RiskCategories)
	read.GET("/risks/export", h.Export(transfer.KindRisks))
	read.GET("/risks/:id", h.GetRisk)
	write.POST("/risks", h.CreateRisk)
	write.POST("/risks/import", h.Import(transfer.KindRisks))
	write.PUT("/risks/:id", h.UpdateRisk)
	write.DELETE("/risks/:id", h.DeleteRisk)

	// МЕРЫ
	read.GET("/controls", h.ListControls)
	read.GET("/controls/export", h.Export(transfer.KindControls))
	read.GET("/controls/:id", h.GetControl)
	write.POST("/controls", h.CreateControl)
	write.POST("/controls/import", h.Import(transfer.KindControls))
	write.PUT("/controls/:id", h.UpdateControl)
	write.DELETE("/controls/:id", h.DeleteControl)

	// BOW-TIE
	read.GET("/bowtie/factors", h.ListRiskFactors)
	read.GET("/bowtie/factors/export", h.Export(transfer.KindRiskFactors))
	read.GET("/bowtie/factors/:id", h.GetRiskFactor)
	write.POST("/bowtie/factors", h.CreateRiskFactor)
	write.POST("/bowtie/factors/import", h.Import(transfer.KindRiskFactors))
	write.PUT("/bowtie/factors/:id", h.UpdateRiskFactor)
	write.DELETE("/bowtie/factors/:id", h.DeleteRiskFactor)

	read.GET("/bowtie/consequences", h.ListConsequences)
	read.GET("/bowtie/consequences/export", h.Export(transfer.KindConsequences))
	read.GET("/bowtie/consequences/:id", h.GetConsequence)
	write.POST("/bowtie/consequences", h.CreateConsequence)
	write.POST("/bowtie/consequences/import", h.Import(transfer.KindConsequences))
	write.PUT("/bowtie/consequences/:id", h.UpdateConsequence)
	write.DELETE("/bowtie/consequences/:id", h.DeleteConsequence)

	read.GET("/bowtie/relationships", h.ListBowTies)
	read.GET("/bowtie/relationships/export", h.Export(transfer.KindBowTies))
	read.GET("/bowtie/relationships/:id", h.GetBowTie)
	write.POST("/bowtie/relationships", h.CreateBowTie)
	write.POST("/bowtie/relationships/import", h.Import(transfer.KindBowTies))
	write.PUT("/bowtie/relationships/:id", h.UpdateBowTie)
	write.DELETE("/bowtie/relationships/:id", h.DeleteBowTie)

	read.GET("/bowtie/risks/:riskId", h.BowTieDiagram)

	// СООТВЕТСТВИЕ
	read.GET("/compliance", h.ListCompliance)
	read.GET("/compliance/frameworks", h.ComplianceFrameworks)
	read.GET("/compliance/export", h.Export(transfer.KindCompliance))
	read.GET("/compliance/:id", h.GetCompliance)
	write.POST("/compliance", h.CreateCompliance)
	write.POST("/compliance/import", h.Import(transfer.KindCompliance))
	write.PUT("/compliance/:id", h.UpdateCompliance)
	write.DELETE("/compliance/:id", h.DeleteCompliance)

	// ПЛАНЫ МЕРОПРИЯТИЙ
	read.GET("/action-plans", h.ListActionPlans)
	read.GET("/action-plans/export", h.Export(transfer.KindActionPlans))
	read.GET("/action-plans/:id", h.GetActionPlan)
	write.POST("/action-plans", h.CreateActionPlan)
	write.POST("/action-plans/import", h.Import(transfer.KindActionPlans))
	write.PUT("/action-plans/:id", h.UpdateActionPlan)
	write.DELETE("/action-plans/:id", h.DeleteActionPlan)
	write.POST("/action-plans/:id/comments", h.AddComment)
	write.PUT("/action-plans/:id/tasks/:taskId", h.UpdateTask)

	// АУДИТ
	read.GET("/audit-plans", h.ListAuditPlans)
	read.GET("/audit-plans/export", h.Export(transfer.KindAuditPlans))
	read.GET("/audit-plans/:id", h.GetAuditPlan)
	write.POST("/audit-plans", h.CreateAuditPlan)
	write.POST("/audit-plans/import", h.Import(transfer.KindAuditPlans))
	write.PUT("/audit-plans/:id", h.UpdateAuditPlan)
	write.DELETE("/audit-plans/:id", h.DeleteAuditPlan)
	write.POST("/audit-plans/:id/findings", h.AddFinding)

	// ПОСТАВЩИКИ
	read.GET("/vendors", h.ListVendors)
	read.GET("/vendors/export", h.Export(transfer.KindVendors))
	read.GET("/vendors/:id", h.GetVendor)
	write.POST("/vendors", h.CreateVendor)
	write.POST("/vendors/import", h.Import(transfer.KindVendors))
	write.PUT("/vendors/:id", h.UpdateVendor)
	write.DELETE("/vendors/:id", h.DeleteVendor)

	// ДАШБОРД
	read.GET("/dashboard", h.Dashboard)
	read.GET("/heatmap", h.Heatmap)

	return r
}
