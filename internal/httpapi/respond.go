package httpapi

import "github.com/gin-gonic/gin"

// respondError writes the shared error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondErrorFields is respondError with per-field validation detail attached.
func respondErrorFields(c *gin.Context, status int, code, message string, fields []fieldError) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"fields":  fields,
		},
	})
}
