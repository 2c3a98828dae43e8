package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hostel-backend/controllers"
	"hostel-backend/middleware"
	"hostel-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the route tree. Role gating happens
// here; services receive the resolved actor explicitly.
func SetupRouter(
	appc *controllers.ApplicationController,
	alc *controllers.AllocationController,
	cc *controllers.ComplaintController,
	fc *controllers.FeeController,
	rc *controllers.ReportController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth())

		student := authed.Group("")
		student.Use(middleware.RequireRole(models.RoleStudent))
		{
			student.GET("/student/dashboard", rc.StudentDashboard)
			student.POST("/applications", appc.SubmitApplication)
			student.GET("/applications/my", appc.GetMyApplication)
			student.GET("/rooms/open", controllers.GetOpenRooms)
			student.POST("/complaints", cc.SubmitComplaint)
			student.GET("/complaints/my", cc.GetMyComplaints)
			student.GET("/fees/my", fc.GetMyFees)
		}

		admin := authed.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/admin/dashboard", rc.AdminDashboard)
			admin.GET("/admin/reports/occupancy", rc.OccupancyReport)

			admin.GET("/blocks", controllers.GetBlocks)
			admin.POST("/blocks", controllers.CreateBlock)

			admin.GET("/rooms", controllers.GetRooms)
			admin.POST("/rooms", controllers.CreateRoom)
			admin.PATCH("/rooms/:id", controllers.UpdateRoom)
			admin.PUT("/rooms/:id", controllers.UpdateRoom)
			admin.DELETE("/rooms/:id", controllers.DeleteRoom)

			admin.GET("/applications", appc.GetApplications)
			admin.POST("/applications/:id/approve", alc.ApproveApplication)
			admin.POST("/applications/:id/auto-allocate", alc.AutoAllocateApplication)
			admin.POST("/applications/:id/reject", alc.RejectApplication)

			admin.GET("/allocations", alc.GetAllocations)
			admin.POST("/allocations/:id/check-in", alc.CheckIn)
			admin.POST("/allocations/:id/check-out", alc.CheckOut)

			admin.GET("/complaints", cc.GetComplaints)
			admin.PATCH("/complaints/:id", cc.UpdateComplaint)

			admin.GET("/fees", fc.GetFees)
			admin.POST("/fees/:id/pay", fc.RecordPayment)
			admin.POST("/fees/backfill", fc.BackfillFees)

			admin.GET("/admin/exports/students.csv", rc.ExportStudents)
			admin.GET("/admin/exports/fees.csv", rc.ExportFees)
			admin.GET("/admin/exports/allocations.csv", rc.ExportAllocations)
			admin.GET("/admin/exports/rooms.csv", rc.ExportRooms)
		}
	}

	return r
}
