package models

// Endpoint is an HTTP operation declared by an API document
type Endpoint struct {
	Path        string
	Method      string
	OperationID string
	Tags        []string
}
