package handler

import (
	"net/http"

	"github.com/chatlite/chatlite/internal/model"
	"github.com/gin-gonic/gin"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.MessageResponse{Message: "pong"})
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "chatlite API server is running",
	})
}
