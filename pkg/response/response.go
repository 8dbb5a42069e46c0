// Package response defines the JSON envelope shared by every endpoint.
package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every payload the API returns. Exactly one of Data and
// Error is populated: Data on success, Error with a human-readable message
// otherwise.
type Envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// OK writes a 200 envelope around data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{OK: true, Data: data})
}

// Created writes a 201 envelope around a freshly stored resource.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{OK: true, Data: data})
}

// Outcome writes a 200 envelope carrying a detection outcome name, the
// shape the ping endpoint answers with.
func Outcome(c *gin.Context, outcome fmt.Stringer) {
	OK(c, gin.H{"outcome": outcome.String()})
}

// Fail writes an error envelope with the given HTTP status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{OK: false, Error: message})
}

// NotFound writes a 404 error envelope.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}
