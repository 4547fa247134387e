package handlers

const (
	// Progression listing
	defaultPageSize = 50
	maxPageSize     = 200
)
