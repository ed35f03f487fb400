package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path"

	"tix/src/db"
	"tix/src/models"
	"tix/src/services"
	"tix/src/types"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders/checkout", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			carts := services.NewCartService(db.GetDb())
			cart, err := carts.CartByUser(userId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			items, err := carts.GetCart(userId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if len(items) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty."})
				return
			}

			orders := services.NewOrderService(db.GetDb())
			order, err := orders.CreateOrder(userId, cart.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			tickets := make([]models.Ticket, 0, len(items))
			for _, item := range items {
				target, err := types.NewTarget(item.EventID, item.SessionID)
				if err != nil {
					abortWithError(ctx, err)
					return
				}
				ticket, err := orders.CreateTicket(order, target)
				if err != nil {
					abortWithError(ctx, err)
					return
				}
				tickets = append(tickets, *ticket)
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Order created", "data": gin.H{"order": order, "tickets": tickets}})
		}).
		GET("/orders", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			orders := services.NewOrderService(db.GetDb())
			data, err := orders.OrdersByUser(userId)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/tickets/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			orders := services.NewOrderService(db.GetDb())
			ticket, err := orders.TicketForUser(userId, params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			qrc, err := qrcode.New(ticket.TicketNumber)
			if err != nil {
				log.Printf("Could not build qrcode for ticket %d: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
				return
			}
			filepath := path.Join(os.TempDir(), fmt.Sprintf("%s.jpeg", ticket.TicketNumber))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
				return
			}
			ctx.FileAttachment(filepath, "eticket.jpeg")
		})
	return g
}
