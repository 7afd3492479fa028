package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// redirectHome ends a POST by sending the browser back to the screen view.
func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// respondInternalError logs the error and renders the generic error page.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, logger *zap.Logger, err error, context string) {
	_ = c.Error(err)
	logger.Error("internal error",
		zap.String("context", context),
		zap.String("request_id", GetRequestID(c)),
		zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error.html", screenData{})
}

// sendAttachment sends data as a file download.
func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, contentType, data)
}
