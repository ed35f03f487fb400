package main

import (
	"net/http"

	"tix/src/cache"
	"tix/src/db"
	"tix/src/services"
	"tix/src/types"

	"github.com/gin-gonic/gin"
)

const cacheHitMessage = "Data retrieved from cache."

func catalogService() *services.CatalogService {
	return services.NewCatalogService(db.GetDb(), cache.GetStore())
}

func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/getfilmbyname", func(ctx *gin.Context) {
			var query types.NameQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a movie title"})
				return
			}
			details, cached, err := catalogService().GetFilmByName(ctx, query.Title)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if cached {
				ctx.JSON(http.StatusOK, gin.H{"message": cacheHitMessage, "data": details})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": details})
		}).
		GET("/getfilmsforday", func(ctx *gin.Context) {
			var query types.DayQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a date in the format YYYY-MM-DD"})
				return
			}
			entries, cached, err := catalogService().GetFilmsForDay(ctx, query.Date, query.Time)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if len(entries) == 0 {
				ctx.JSON(http.StatusOK, gin.H{"message": "No sessions found for this date and time.", "data": entries})
				return
			}
			if cached {
				ctx.JSON(http.StatusOK, gin.H{"message": cacheHitMessage, "data": entries})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
		}).
		GET("/geteventbyname", func(ctx *gin.Context) {
			var query types.NameQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an event name"})
				return
			}
			details, cached, err := catalogService().GetEventByName(ctx, query.Title)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if cached {
				ctx.JSON(http.StatusOK, gin.H{"message": cacheHitMessage, "data": details})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": details})
		}).
		GET("/geteventsforday", func(ctx *gin.Context) {
			var query types.DayQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a date in the format YYYY-MM-DD"})
				return
			}
			events, cached, err := catalogService().GetEventsForDay(ctx, query.Date, query.Time)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if len(events) == 0 {
				ctx.JSON(http.StatusOK, gin.H{"message": "No events found for this date.", "data": events})
				return
			}
			if cached {
				ctx.JSON(http.StatusOK, gin.H{"message": cacheHitMessage, "data": events})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		})
	return g
}
