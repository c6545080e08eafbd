package web

import (
	"errors"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "oversized body maps to FILE001",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE001",
			wantMessage: "The file exceeds the upload size limit",
		},
		{
			name:        "oversized multipart form maps to FILE001",
			err:         errors.New("file too large or invalid form: multipart: message too large"),
			wantCode:    "FILE001",
			wantMessage: "The file exceeds the upload size limit",
		},
		{
			name:        "csv failure maps to FILE002",
			err:         errors.New("parse csv: record on line 3: wrong number of fields"),
			wantCode:    "FILE002",
			wantMessage: "The file could not be read as CSV",
		},
		{
			name:        "xlsx failure maps to FILE003",
			err:         errors.New("parse xlsx: zip: not a valid zip file"),
			wantCode:    "FILE003",
			wantMessage: "The file could not be read as an Excel workbook",
		},
		{
			name:        "missing file maps to FILE004",
			err:         errors.New("no file provided: http: no such file"),
			wantCode:    "FILE004",
			wantMessage: "No file was selected",
		},
		{
			name:        "empty file maps to FILE005",
			err:         errors.New("no data found in file"),
			wantCode:    "FILE005",
			wantMessage: "The file contains no data",
		},
		{
			name:        "unknown extension maps to FILE006",
			err:         errors.New(`unsupported file format: file "report.txt"`),
			wantCode:    "FILE006",
			wantMessage: "This file type is not supported",
		},
		{
			name:        "malformed json maps to DATA001",
			err:         errors.New("invalid character 'x' looking for beginning of value"),
			wantCode:    "DATA001",
			wantMessage: "The request body is not valid JSON",
		},
		{
			name:        "non object record maps to DATA002",
			err:         errors.New("record 2 is not an object"),
			wantCode:    "DATA002",
			wantMessage: "Every record must be a JSON object",
		},
		{
			name:        "unknown dataset maps to SESS001",
			err:         errors.New("dataset not found"),
			wantCode:    "SESS001",
			wantMessage: "This dataset no longer exists",
		},
		{
			name:        "limiter busy maps to UPL001",
			err:         errors.New("too many concurrent uploads, please try again later"),
			wantCode:    "UPL001",
			wantMessage: "The server is busy analyzing other files",
		},
		{
			name:        "cancelled request maps to UPL002",
			err:         errors.New("context canceled"),
			wantCode:    "UPL002",
			wantMessage: "The request was cancelled",
		},
		{
			name:        "timed out request maps to UPL003",
			err:         errors.New("context deadline exceeded"),
			wantCode:    "UPL003",
			wantMessage: "The request timed out",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DATASET NOT FOUND"),
			wantCode:    "SESS001",
			wantMessage: "This dataset no longer exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}
