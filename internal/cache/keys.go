package cache

import "strings"

const (
	GlobalKeyPrefix = "studydeck"
)

// GenerateCacheKey joins prefix, service, object type and identifier with ":".
// Extra params are joined by "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// WorkspaceKey is where a session's workspace state lives.
func WorkspaceKey(sessionKey string) string {
	return GenerateCacheKey("workspace", "state", sessionKey)
}
