package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lodge-backend/controllers"
	"lodge-backend/middleware"
	"lodge-backend/models"
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

// SetupRouter wires controller instances to the public and admin route trees.
func SetupRouter(
	ac *controllers.AuthController,
	lc *controllers.LodgeController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	uc *controllers.UserController,
	sc *controllers.StatsController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())
	r.Static("/uploads", "./uploads")

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
		lodges := api.Group("/lodges")
		{
			lodges.GET("", lc.GetLodges)
			lodges.GET("/:slug", lc.GetLodgeBySlug)
			lodges.POST("/:slug/reviews", lc.AddReview)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:ref", bc.GetBooking)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/order", pc.CreateOrder)
			payments.POST("/verify", pc.VerifyPayment)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(jwtSecret), middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
		{
			adminBookings := admin.Group("/bookings")
			{
				adminBookings.GET("", bc.GetBookings)

				// static route registered before /:ref
				adminBookings.GET("/export", bc.ExportBookings)

				adminBookings.GET("/:ref", bc.GetBooking)
				adminBookings.PATCH("/:ref/status", bc.UpdateStatus)
				adminBookings.PATCH("/:ref/payment", bc.UpdatePaymentStatus)
			}

			adminLodges := admin.Group("/lodges")
			{
				adminLodges.POST("", middleware.RequireSuperAdmin(), lc.CreateLodge)
				adminLodges.PUT("/:id", lc.UpdateLodge)
				adminLodges.PATCH("/:id", lc.UpdateLodge)
				adminLodges.DELETE("/:id", middleware.RequireSuperAdmin(), lc.DeleteLodge)
				adminLodges.GET("/:id/rooms", rc.GetRooms)
				adminLodges.POST("/:id/rooms", rc.CreateRoom)
			}

			adminRooms := admin.Group("/rooms")
			{
				adminRooms.PUT("/:roomId", rc.UpdateRoom)
				adminRooms.PATCH("/:roomId/stock", rc.SetRoomStock)
				adminRooms.DELETE("/:roomId", rc.DeleteRoom)
			}

			users := admin.Group("/users")
			users.Use(middleware.RequireSuperAdmin())
			{
				users.GET("", uc.GetUsers)
				users.POST("", uc.CreateUser)
				users.DELETE("/:id", uc.DeleteUser)
			}

			admin.GET("/dashboard", sc.GetDashboard)
			admin.POST("/uploads", controllers.UploadImage)
		}
	}

	return r
}
