package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps named routes to their required security level.
// Route names are assigned in the HTTP router.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Infrastructure
	"health":  SecurityPublic,
	"metrics": SecurityPublic,
	"uploads": SecurityPublic,

	// Auth
	"auth.login": SecurityPublic,

	// Public site
	"public.products": SecurityPublic,
	"public.settings": SecurityPublic,
	"public.contact":  SecurityPublic,

	// Everything else in the admin dashboard requires an access token and
	// falls through to the default below.
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown or unnamed routes
	return SecurityAccess
}
