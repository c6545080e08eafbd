package web

// errors.go provides unified error responses for the JSON API.
//
// Every handler error funnels through respondError, which logs the
// technical error with the request ID and returns a user-facing message
// with a support code. Users can quote the code when reporting problems.
//
// # Error Codes Reference
//
// File errors (FILE001-FILE099):
//
//	FILE001 - File too large
//	          Patterns: "request body too large", "file too large"
//	FILE002 - Invalid CSV
//	          Patterns: "parse csv"
//	FILE003 - Invalid workbook
//	          Patterns: "parse xlsx"
//	FILE004 - No file selected
//	          Patterns: "no such file", "no file provided"
//	FILE005 - Empty file
//	          Patterns: "no data found"
//	FILE006 - Unsupported format
//	          Patterns: "unsupported file format"
//
// Data errors (DATA001-DATA099):
//
//	DATA001 - Malformed JSON body
//	          Patterns: "invalid character", "unexpected end of json",
//	          "cannot unmarshal"
//	DATA002 - Records are not objects
//	          Patterns: "is not an object"
//
// Session errors (SESS001-SESS099):
//
//	SESS001 - Dataset not found or expired
//	          Patterns: "dataset not found"
//
// Upload errors (UPL001-UPL099):
//
//	UPL001 - System busy
//	          Patterns: "too many concurrent"
//	UPL002 - Request cancelled
//	          Patterns: "context canceled"
//	UPL003 - Request timed out
//	          Patterns: "context deadline exceeded"
//
// Rate limiting (RATE001):
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// Auth errors (AUTH001-AUTH002) are written directly by the API-key
// middleware and do not pass through this table.
//
// ERR000 is the fallback when no pattern matches. Patterns are matched
// case-insensitively with strings.Contains; the first match wins, so
// specific patterns sit above general ones.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON body for API errors. Code is the
// machine-readable support reference; Message and Action are for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// UserMessage is user-facing error information with actionable guidance.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Upload a smaller file or split it into parts",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Upload a smaller file or split it into parts",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse csv",
		msg: UserMessage{
			Message: "The file could not be read as CSV",
			Action:  "Check that the file is comma-separated text",
			Code:    "FILE002",
		},
	},
	{
		pattern: "parse xlsx",
		msg: UserMessage{
			Message: "The file could not be read as an Excel workbook",
			Action:  "Re-save the file as .xlsx and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no data found",
		msg: UserMessage{
			Message: "The file contains no data",
			Action:  "Upload a file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE006",
		},
	},
	{
		pattern: "unexpected end of json",
		msg: UserMessage{
			Message: "The request body is not valid JSON",
			Action:  "Send a JSON array of record objects",
			Code:    "DATA001",
		},
	},
	{
		pattern: "invalid character",
		msg: UserMessage{
			Message: "The request body is not valid JSON",
			Action:  "Send a JSON array of record objects",
			Code:    "DATA001",
		},
	},
	{
		pattern: "cannot unmarshal",
		msg: UserMessage{
			Message: "The request body has the wrong shape",
			Action:  "Send a JSON array of record objects",
			Code:    "DATA001",
		},
	},
	{
		pattern: "is not an object",
		msg: UserMessage{
			Message: "Every record must be a JSON object",
			Action:  "Remove non-object entries from the array",
			Code:    "DATA002",
		},
	},
	{
		pattern: "dataset not found",
		msg: UserMessage{
			Message: "This dataset no longer exists",
			Action:  "It may have expired. Upload the file again",
			Code:    "SESS001",
		},
	},
	{
		pattern: "too many concurrent",
		msg: UserMessage{
			Message: "The server is busy analyzing other files",
			Action:  "Wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Try again or contact support",
	Code:    "ERR000",
}

// MapError translates a technical error into a user-facing message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// respondError logs the technical error and writes the mapped JSON
// error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}
