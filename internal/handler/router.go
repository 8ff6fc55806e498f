package handler

import (
	"github.com/chatlite/chatlite/internal/service"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. Signup and signin are open; the rest of
// the auth group sits behind the bearer middleware.
func NewRouter(authService *service.AuthService, allowedOrigins []string) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware(allowedOrigins))

	router.GET("/", Root)
	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(authService)

	auth := router.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	protected := auth.Group("")
	protected.Use(AuthMiddleware(authService))
	protected.GET("/me", authHandler.Me)
	protected.POST("/signout", authHandler.Signout)
	protected.PATCH("/credits", authHandler.UpdateCredits)
	protected.POST("/consume-credit", authHandler.ConsumeCredit)

	return router
}
