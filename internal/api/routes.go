package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/qr", h.qr)
		api.GET("/deck/:code", h.decodeDeck)
		api.GET("/deck/:code/qr", h.deckQR)
		api.POST("/deck/encode", h.encodeDeck)
		api.POST("/deck/image", h.deckImage)
	}
}
