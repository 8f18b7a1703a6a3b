package provision

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// appIDPattern matches app identifiers in the external CLI's output, e.g.
// "1:935421059312:web:9a3f0c2d7e51b846". This extraction rule is coupled to
// the tool's textual output format by construction; when it stops matching
// we fail with a distinct parse error rather than guessing.
var appIDPattern = regexp.MustCompile(`1:\d+:(?:web|ios|android):[0-9a-f]+`)

// extractAppID returns the first app ID token found in the given output.
func extractAppID(out string) (string, bool) {
	id := appIDPattern.FindString(out)
	return id, id != ""
}

// extractAppIDs returns every app ID token found in the given output, in
// order of appearance.
func extractAppIDs(out string) []string {
	return appIDPattern.FindAllString(out, -1)
}

// isAlreadyExists reports whether the external tool's output indicates the
// requested resource already exists.
func isAlreadyExists(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "already exists") ||
		strings.Contains(lower, "already in use") ||
		strings.Contains(lower, "duplicate")
}

// parseSDKConfig extracts the JSON configuration object from the sdkconfig
// command's output and decodes it into a bundle. The command wraps the JSON
// in explanatory text, so we take the outermost brace pair.
func parseSDKConfig(out string) (*CredentialBundle, error) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in sdkconfig output")
	}

	var bundle CredentialBundle
	if err := json.Unmarshal([]byte(out[start:end+1]), &bundle); err != nil {
		return nil, fmt.Errorf("cannot decode sdkconfig output: %w", err)
	}
	return &bundle, nil
}
