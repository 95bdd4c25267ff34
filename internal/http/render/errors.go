package render

import (
	"github.com/gin-gonic/gin"
)

type errorData struct {
	Status  int
	Message string
}

func ErrorPage(c *gin.Context, status int, msg string) {
	HTML(c, status, "error.tmpl", "Erreur", errorData{Status: status, Message: msg})
}
