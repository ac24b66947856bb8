package graph

import "iggallery/pkg/models"

// MediaResponse is the body of a media listing request
type MediaResponse struct {
	Data   []models.MediaRecord `json:"data"`
	Paging *Paging              `json:"paging,omitempty"`
}

// Paging holds the cursors of a listing. Only the first page is ever read.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next,omitempty"`
}

// ErrorResponse is the error envelope the Graph API returns on failures
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError describes a Graph API failure
type APIError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id,omitempty"`
}
