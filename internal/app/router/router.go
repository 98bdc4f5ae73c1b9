package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "simpeg_backend/internal/feature/auth/transport/handler"
	employeehandler "simpeg_backend/internal/feature/employee/transport/handler"
	platformhandler "simpeg_backend/internal/platform/http/handler"
	"simpeg_backend/internal/platform/http/middleware"
	jwtmw "simpeg_backend/internal/platform/jwt"
)

// Deps は NewRouter が必要とするハンドラーと設定です。
type Deps struct {
	Auth      *authhandler.AuthHandler
	Employees *employeehandler.EmployeeHandler

	JWTSecret      string
	AllowedOrigins []string
	HealthChecks   []platformhandler.Check
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  d.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{middleware.HeaderRequestID, "Retry-After"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	health := platformhandler.Health(d.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	// ログイン（JWT 発行）
	r.POST("/login", d.Auth.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// ロールはトークンではなく保存済みのユーザーから解決する
	auth.Use(jwtmw.AuthRequired(d.JWTSecret), d.Auth.CurrentUser())
	{
		auth.GET("/me", d.Auth.Me)

		employees := auth.Group("/employees")
		employees.GET("", d.Employees.List)
		employees.POST("", d.Employees.Create)
		// /:id より先に登録する
		employees.GET("/options", d.Employees.Options)
		employees.GET("/:id", d.Employees.Show)
		employees.PUT("/:id", d.Employees.Update)
		employees.DELETE("/:id", d.Employees.Delete)
	}

	return r
}
