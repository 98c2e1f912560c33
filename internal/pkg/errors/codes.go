package errors

import (
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007
	ErrServiceUnavail  = 1008

	// Search errors (2000-2999)
	ErrSearchFailed      = 2000
	ErrSearchQuota       = 2001
	ErrSearchInvalidKey  = 2002
	ErrSearchEmptyQuery  = 2003
	ErrSearchUnavailable = 2004

	// Storage errors (3000-3999)
	ErrStorageWriteFailed = 3000
	ErrStorageReadFailed  = 3001
	ErrResponseNotFound   = 3002
	ErrSnippetWriteFailed = 3003
	ErrStorageUnavailable = 3004
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	ErrSearchFailed:      {ErrSearchFailed, http.StatusBadGateway, "Search request failed"},
	ErrSearchQuota:       {ErrSearchQuota, http.StatusTooManyRequests, "Search quota exceeded"},
	ErrSearchInvalidKey:  {ErrSearchInvalidKey, http.StatusUnauthorized, "Invalid API key"},
	ErrSearchEmptyQuery:  {ErrSearchEmptyQuery, http.StatusBadRequest, "Empty search query"},
	ErrSearchUnavailable: {ErrSearchUnavailable, http.StatusServiceUnavailable, "Search provider unavailable"},

	ErrStorageWriteFailed: {ErrStorageWriteFailed, http.StatusInternalServerError, "Failed to write record"},
	ErrStorageReadFailed:  {ErrStorageReadFailed, http.StatusInternalServerError, "Failed to read records"},
	ErrResponseNotFound:   {ErrResponseNotFound, http.StatusNotFound, "Response not found"},
	ErrSnippetWriteFailed: {ErrSnippetWriteFailed, http.StatusInternalServerError, "Failed to write snippets"},
	ErrStorageUnavailable: {ErrStorageUnavailable, http.StatusServiceUnavailable, "Storage unavailable"},
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if c, ok := codeMap[code]; ok {
		return c.Message
	}
	return "Unknown error"
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code int) int {
	if c, ok := codeMap[code]; ok {
		return c.Status
	}
	return http.StatusInternalServerError
}
