package payroll

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("/report", rbac.Authorize(enforcer, "payslip", "report"), handler.ReportAllPayslips)
		payslips.POST("/send-all", rbac.Authorize(enforcer, "payslip", "issue"), handler.SendAllPayslips)
		payslips.GET("/:id",
			rbac.Authorize(enforcer, "payslip", "read"),
			rbac.RequireSelfOrAdmin("id"),
			handler.GetPayslip,
		)
		payslips.POST("/:id/send", rbac.Authorize(enforcer, "payslip", "issue"), handler.SendPayslip)
	}

	bonus := r.Group("/bonus")
	bonus.Use(middleware.AuthMiddleware())
	{
		bonus.POST("",
			rbac.Authorize(enforcer, "bonus", "grant"),
			middleware.Idempotency(rdb),
			handler.AddBonusToAll,
		)
	}
}
