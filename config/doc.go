// Package config loads application configuration from the environment and
// from YAML tenant source files.
//
// Load parses env-tagged structs via caarlos0/env, pulling in a .env file
// through godotenv when present. Each configuration type is parsed once per
// process and cached.
//
// LoadSources reads an ordered tenant source chain definition:
//
//	sources:
//	  - strategy: header
//	    options: {name: X-Tenant-ID}
//	  - strategy: subdomain
//	    options: {suffix: .saas.com}
//
// which feeds tenant.DefaultRegistry().Build to construct the resolution
// chain used by the middleware.
package config
