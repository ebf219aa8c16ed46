package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware allows browser clients from any origin. Credentials are not
// allowed since the wildcard origin forbids them.
func CORSMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	})
}
