package attendance

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", rbac.Authorize(enforcer, "attendance", "read"), h.History)
		attendances.POST("/clock-in", rbac.Authorize(enforcer, "attendance", "clock"), h.ClockIn)
		attendances.POST("/clock-out", rbac.Authorize(enforcer, "attendance", "clock"), h.ClockOut)
	}
}
