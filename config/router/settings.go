package router

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/akeren/interest-waitlist/pkg/utils"
)

const (
	defaultPort         = "8080"
	defaultMaxBodyBytes = 1 << 20
	defaultHSTSMaxAge   = 365 * 24 * 60 * 60
)

// httpSettings are read from the environment once, when the router is built.
type httpSettings struct {
	port           string
	trustedProxies []string
	corsOrigins    []string
	maxBodyBytes   int64
	hsts           string
}

func loadHTTPSettings() httpSettings {
	return httpSettings{
		port:           utils.GetEnvTrimmedOrDefault("APP_PORT", defaultPort),
		trustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		corsOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGIN")),
		maxBodyBytes:   int64(utils.GetEnvIntOrDefault("MAX_REQUEST_BODY_BYTES", defaultMaxBodyBytes)),
		hsts:           hstsHeaderValue(),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseTrustedProxies returns nil when unset so ClientIP uses RemoteAddr and
// X-Forwarded-For cannot be spoofed. "*" trusts every proxy.
func parseTrustedProxies(raw string) []string {
	if strings.TrimSpace(raw) == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}
	return splitList(raw)
}

// hstsHeaderValue returns "" when HSTS is off. HSTS_ENABLED overrides the
// default of on in production.
func hstsHeaderValue() string {
	enabled := false
	if raw := utils.GetEnvTrimmed("HSTS_ENABLED"); raw != "" {
		enabled, _ = strconv.ParseBool(raw)
	} else {
		env := strings.ToLower(utils.GetEnvTrimmed("APP_ENV"))
		enabled = env == "production" || env == "prod"
	}
	if !enabled {
		return ""
	}

	value := fmt.Sprintf("max-age=%d", utils.GetEnvIntOrDefault("HSTS_MAX_AGE", defaultHSTSMaxAge))
	includeSubdomains := true
	if raw := utils.GetEnvTrimmed("HSTS_INCLUDE_SUBDOMAINS"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			includeSubdomains = b
		}
	}
	if includeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}

func (s httpSettings) originAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
