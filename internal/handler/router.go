package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oakmall/oakmall/internal/middleware"
)

type RouterDeps struct {
	Recommendations *RecommendationHandler
	Interactions    *InteractionHandler
	JWTSecret       []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/recommendations", deps.Recommendations.Get)
	authGroup.POST("/interactions", deps.Interactions.Create)
}
