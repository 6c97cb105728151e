package utils

// Application constants
const (
	// Application name
	AppName = "GigSphere"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8

	// Rating bounds for reviews
	MinRating = 1
	MaxRating = 5
)
