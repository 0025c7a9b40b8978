package api

import (
	"github.com/gin-gonic/gin"

	"aequitas/server/internal/database"
	"aequitas/server/internal/memo"
)

func SetupRoutes(router *gin.Engine, db *database.Database, engine *memo.Engine) {
	handler := NewHandler(db, engine, nil)

	api := router.Group("/api")
	{
		api.POST("/deals", handler.CreateDeal)
		api.GET("/deals", handler.ListDeals)
		api.POST("/deals/compare", handler.CompareDeals)
		api.GET("/deals/:id", handler.GetDeal)
		api.PUT("/deals/:id", handler.UpdateDeal)
		api.DELETE("/deals/:id", handler.DeleteDeal)
		api.POST("/deals/:id/assess", handler.AssessDeal)
		api.GET("/deals/:id/assessment", handler.GetAssessment)
		api.GET("/deals/:id/memo", handler.GetMemo)

		api.GET("/benchmarks", handler.GetBenchmarks)
		api.GET("/thresholds", handler.GetThresholds)
	}
}
