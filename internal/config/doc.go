// Package config handles configuration loading for vigor-site.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from VIGOR_CONFIG environment variable
//  2. ./config.yaml (current directory)
//  3. ~/.config/vigor/site.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${VIGOR_JWT_SECRET}"
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: ":8080"
//	  base_url: "https://vigor.example.com"
//
// Database:
//
//	database:
//	  path: "/var/lib/vigor/site.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${VIGOR_JWT_SECRET}"  # required
//	  token_ttl: "168h"                  # credential validity window
//	  secure_cookies: true               # set Secure on auth cookies
//
// AI chat proxy:
//
//	chat:
//	  api_key: "${GEMINI_API_KEY}"
//	  rate_limit: 20     # requests per window, per client
//	  rate_window: "60s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax (ns, us, ms, s, m, h).
package config
