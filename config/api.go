package config

import "os"

// Upstream holds the base URLs for one environment's backend set.
type Upstream struct {
	ResourceAPI string
	AdminAPI    string
	IdentityAPI string
	Origin      string
}

var upstreams = map[string]Upstream{
	"staging": {
		ResourceAPI: "https://staging-api.6ixgo.com/api/v1",
		AdminAPI:    "https://staging-admin-api.6ixgo.com/api/v1",
		IdentityAPI: "https://staging-identity.6ixgo.com/id/v1",
		Origin:      "https://staging-admin.6ixgo.com",
	},
	"production": {
		ResourceAPI: "https://b2c.api.6ixgo.com/api/v1",
		AdminAPI:    "https://admin-api.6ixgo.com/api/v1",
		IdentityAPI: "https://identity.6ixgo.com/id/v1",
		Origin:      "https://admin.6ixgo.com",
	},
}

func upstreamFor(env string) Upstream {
	if u, ok := upstreams[env]; ok {
		return u
	}
	return upstreams["staging"]
}

// GetUpstream resolves the upstream base URLs for the current environment.
// Individual URLs can be overridden via env vars for local testing.
func GetUpstream() Upstream {
	env := "staging"
	if IsProduction() {
		env = "production"
	}
	u := upstreamFor(env)
	if v := os.Getenv("RESOURCE_API_URL"); v != "" {
		u.ResourceAPI = v
	}
	if v := os.Getenv("ADMIN_API_URL"); v != "" {
		u.AdminAPI = v
	}
	if v := os.Getenv("IDENTITY_API_URL"); v != "" {
		u.IdentityAPI = v
	}
	if v := os.Getenv("ORIGIN_URL"); v != "" {
		u.Origin = v
	}
	return u
}

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Login and health endpoints are reachable without console credentials
	return []string{"/api/session/login", "/healthz"}
}
