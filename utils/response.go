package utils

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the shape of every JSON API response.
type Envelope struct {
	Status  int    `json:"status"`
	Result  any    `json:"result"`
	Message string `json:"message,omitempty"`
}

// Respond writes result wrapped in the envelope. A "message" entry in the result is lifted
// into the envelope.
func Respond(c *gin.Context, status int, result any) {
	c.JSON(status, Envelope{Status: status, Result: result, Message: messageOf(result)})
}

// JSONError writes an error envelope and aborts the handler chain.
func JSONError(c *gin.Context, status int, message string) {
	result := gin.H{"message": message}
	c.AbortWithStatusJSON(status, Envelope{Status: status, Result: result, Message: message})
}

func messageOf(result any) string {
	switch r := result.(type) {
	case gin.H:
		if m, ok := r["message"].(string); ok {
			return m
		}
	case map[string]any:
		if m, ok := r["message"].(string); ok {
			return m
		}
	}
	return ""
}
