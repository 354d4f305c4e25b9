package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler, requestLog gin.HandlerFunc, environment string) *gin.Engine {
	r := newEngine(requestLog, environment)
	h.Register(r)
	return r
}

func NewStatusRouter(h *StatusHandler, requestLog gin.HandlerFunc, environment string) *gin.Engine {
	r := newEngine(requestLog, environment)
	h.Register(r)
	return r
}

func newEngine(requestLog gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLog)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsConfig))

	return r
}
