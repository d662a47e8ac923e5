// Package response defines the JSON envelope shared by every endpoint.
package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the standard envelope. Controllers pass "success" or
// "error" as status; data and errors are mutually exclusive in practice.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
