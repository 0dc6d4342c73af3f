package validators

import "strings"

// HasValidShape is a cheap local-part@domain check. Binding-level validation
// handles the strict cases; this guards paths that accept raw emails (demo
// auto-provisioning) without a request struct.
func HasValidShape(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}

// LocalPart returns everything before the last "@", or the whole string when
// there is none. Used as the default display name for auto-provisioned users.
func LocalPart(email string) string {
	if at := strings.LastIndex(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
