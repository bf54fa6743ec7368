package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Resolve *ResolveHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", deps.Resolve.Health)
	api.POST("/numeral", deps.Resolve.Numeral)
	api.POST("/duration", deps.Resolve.Duration)
	api.POST("/batch", deps.Resolve.Batch)
}
