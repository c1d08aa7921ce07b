// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityAdmin                       // Access token with admin role required
)

// EndpointSecurityConfig maps route names to their required security level.
// Route names are "METHOD /path" as registered on the router.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /api/v1/auth/login": SecurityPublic,
	"GET /api/v1/health":      SecurityPublic,

	// Users - Admin
	"POST /api/v1/users": SecurityAdmin,

	// Offers - Access Protected
	"POST /api/v1/offers":                              SecurityAccess,
	"GET /api/v1/offers":                               SecurityAccess,
	"GET /api/v1/offers/{id}":                          SecurityAccess,
	"PUT /api/v1/offers/{id}/equipment":                SecurityAccess,
	"POST /api/v1/offers/{id}/transition":              SecurityAccess,
	"POST /api/v1/offers/{id}/score":                   SecurityAdmin,
	"POST /api/v1/offers/{id}/documents/request":       SecurityAdmin,
	"POST /api/v1/offers/{id}/documents/upload":        SecurityAccess,
	"POST /api/v1/offers/{id}/documents/mark-received": SecurityAdmin,
	"GET /api/v1/offers/{id}/history":                  SecurityAccess,
	"GET /api/v1/offers/{id}/commission":               SecurityAccess,
	"GET /api/v1/documents/download/{key}":             SecurityAccess,

	// Contracts - Access Protected
	"GET /api/v1/contracts/{id}":                 SecurityAccess,
	"POST /api/v1/contracts/{id}/terminate":      SecurityAccess,
	"POST /api/v1/contracts/{id}/extend":         SecurityAccess,
	"POST /api/v1/contracts/{id}/reactivate":     SecurityAccess,
	"GET /api/v1/contracts/{id}/breakeven":       SecurityAccess,
	"GET /api/v1/contracts/{id}/history":         SecurityAccess,

	// Leasers - Admin
	"POST /api/v1/leasers":                  SecurityAdmin,
	"PUT /api/v1/leasers/{id}/ranges":       SecurityAdmin,
	"POST /api/v1/leasers/{id}/set-default": SecurityAdmin,
	"GET /api/v1/leasers":                   SecurityAccess,

	// Commission levels - Admin
	"POST /api/v1/commission-levels":            SecurityAdmin,
	"PUT /api/v1/commission-levels/{id}/rates":  SecurityAdmin,
	"GET /api/v1/commission-levels":             SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
