package app

import (
	"net/http"
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
)

func (a *App) HandleReadiness(c *gin.Context) {
	c.JSON(http.StatusOK, a.db.Health())
}

func (a *App) HandleLiveness(c *gin.Context) {
	host, _ := os.Hostname()
	if host == "" {
		host = "unavailable"
	}

	c.JSON(http.StatusOK, LivenessResponse{
		Status:     "up",
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	})
}
