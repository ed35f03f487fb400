package main

import (
	"net/http"

	"tix/src/db"
	"tix/src/services"
	"tix/src/types"

	"github.com/gin-gonic/gin"
)

func cartHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/cart/add_or_update_cartitem", func(ctx *gin.Context) {
			var body types.AddOrUpdateCartItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			target, err := types.NewTarget(body.EventID, body.SessionID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			var quantity uint
			if body.Quantity != nil {
				quantity = *body.Quantity
			}
			userId := ctx.GetUint("id")
			svc := services.NewCartService(db.GetDb())
			item, err := svc.AddOrUpdateItem(userId, target, quantity)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Item added/updated in cart", "data": item})
		}).
		GET("/cart/", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			svc := services.NewCartService(db.GetDb())
			items, err := svc.GetCart(userId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if len(items) == 0 {
				ctx.JSON(http.StatusOK, gin.H{"message": "Cart is empty.", "data": items})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		DELETE("/cart/item_remove/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			svc := services.NewCartService(db.GetDb())
			if err := svc.RemoveItem(userId, params.ID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Item removed from cart."})
		})
	return g
}
