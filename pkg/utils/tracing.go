package utils

import "github.com/akeren/interest-waitlist/pkg/constants"

// IsTracingEnabled reports OTEL_TRACES_ENABLED; tracing is off unless set.
func IsTracingEnabled() bool {
	return GetEnvBoolOrDefault("OTEL_TRACES_ENABLED", false)
}

func OTelServiceName() string {
	return GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", constants.ServiceName)
}

// ServiceVersion is the build identifier attached to traces.
func ServiceVersion() string {
	return GetEnvTrimmedOrDefault("APP_VERSION", "dev")
}
