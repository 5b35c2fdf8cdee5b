package controllers

import (
	"errors"
	"log"
	"net/http"

	"dartapi/internal/pkg/dart"

	"github.com/gin-gonic/gin"
)

type ErrorKind int

const (
	InvalidInput ErrorKind = iota
	UpstreamFailure
)

// RequestError is the only failure shape handlers produce: a coarse kind that
// decides the status code, plus the underlying message as detail.
type RequestError struct {
	Kind    ErrorKind
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func invalidInput(msg string) *RequestError {
	return &RequestError{Kind: InvalidInput, Message: msg}
}

func upstream(msg string) *RequestError {
	return &RequestError{Kind: UpstreamFailure, Message: msg}
}

// classify maps provider failures onto the two request error kinds.
func classify(err error) *RequestError {
	var paramErr *dart.ParamError
	if errors.As(err, &paramErr) {
		return invalidInput(paramErr.Error())
	}

	var apiErr *dart.APIError
	if errors.As(err, &apiErr) && apiErr.Invalid() {
		return invalidInput(apiErr.Error())
	}

	if errors.Is(err, dart.ErrDocumentNotFound) {
		return invalidInput(err.Error())
	}

	return upstream(err.Error())
}

func writeError(c *gin.Context, reqErr *RequestError) {
	status := http.StatusBadRequest
	if reqErr.Kind == UpstreamFailure {
		status = http.StatusInternalServerError
		log.Printf("upstream failure: %s", reqErr.Message)
	}
	c.JSON(status, gin.H{"detail": reqErr.Message})
}
