package service

import (
	"net/http"

	"github.com/MSMikl/aviata-test/internal/pkg/exception"
)

var ErrSearchNotFound = exception.ApplicationError{
	Message:    "search_id not found",
	StatusCode: http.StatusNotFound,
}
