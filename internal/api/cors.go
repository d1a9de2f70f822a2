package api

import (
	"net/http"
	"slices"

	"github.com/cortexai/cortex-api/internal/config"
	"github.com/go-chi/cors"
)

var allMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// CORSOptions turns the configured policy into cors.Options. A "*" method
// list expands to every method the services use. A "*" origin list with
// credentials enabled echoes the request origin, since browsers refuse
// credentialed responses carrying Access-Control-Allow-Origin: *.
func CORSOptions(cfg config.CORS) cors.Options {
	methods := cfg.AllowedMethods
	if slices.Contains(methods, "*") {
		methods = allMethods
	}

	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   methods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           300,
	}
	if cfg.AllowCredentials && slices.Contains(cfg.AllowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return opts
}
