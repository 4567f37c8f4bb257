package leave

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", rbac.Authorize(enforcer, "leave", "submit"), handler.Submit)
		leaves.GET("", rbac.Authorize(enforcer, "leave", "read"), handler.GetOwn)
	}

	// Admin decision surface hangs off the employee resource.
	admin := r.Group("/employees/:id/leaves")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", rbac.Authorize(enforcer, "leave", "read_all"), handler.GetForEmployee)
		admin.GET("/position/:index", rbac.Authorize(enforcer, "leave", "read_all"), handler.GetByPosition)
		admin.POST("/:leaveId/approve", rbac.Authorize(enforcer, "leave", "decide"), handler.Approve)
		admin.POST("/:leaveId/reject", rbac.Authorize(enforcer, "leave", "decide"), handler.Reject)
	}
}
