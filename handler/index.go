package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Index describes the widget API: where the docs are, how to get a session
// and which store endpoints the router serves.
func Index(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoints := []endpoint{}
		for _, route := range router.Routes() {
			if !strings.HasPrefix(route.Path, "/store/") {
				continue
			}
			endpoints = append(endpoints, endpoint{Method: route.Method, Path: route.Path})
		}
		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return endpoints[i].Method < endpoints[j].Method
		})

		c.JSON(http.StatusOK, gin.H{
			"service":   "storefront widget API",
			"docs":      "/swagger/index.html",
			"session":   "POST /store/session",
			"endpoints": endpoints,
		})
	}
}
