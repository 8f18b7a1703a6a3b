// Package credentials renders credential bundles into plain key=value
// environment files.
//
// The client pattern exposes every scalar under a public VITE_ prefix; none
// of those values are secret. The server pattern writes only the project ID
// plus a pointer to where the long-lived service-account key (not produced
// by this tool) must be placed, and never the client key.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinderbox-cli/tinderbox/internal/provision"
)

// Pattern selects the environment-file layout.
type Pattern string

const (
	// PatternClient writes the publicly exposable client configuration.
	PatternClient Pattern = "client"
	// PatternServer writes the server-private configuration.
	PatternServer Pattern = "server"
)

// serviceAccountPath is where the generated server env file tells operators
// to place the service-account key.
const serviceAccountPath = "./service-account.json"

// Write renders the bundle in the given pattern and writes it to path,
// creating parent directories as needed.
func Write(bundle *provision.CredentialBundle, pattern Pattern, path string) error {
	content, err := Render(bundle, pattern)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// Render produces the environment-file content for a bundle.
func Render(bundle *provision.CredentialBundle, pattern Pattern) (string, error) {
	if bundle == nil {
		return "", fmt.Errorf("credential bundle is nil")
	}

	var b strings.Builder
	switch pattern {
	case PatternClient:
		b.WriteString("# Public client configuration. These values are not secret.\n")
		writeEntry(&b, "VITE_FIREBASE_API_KEY", bundle.APIKey)
		writeEntry(&b, "VITE_FIREBASE_AUTH_DOMAIN", bundle.AuthDomain)
		writeEntry(&b, "VITE_FIREBASE_PROJECT_ID", bundle.ProjectID)
		writeEntry(&b, "VITE_FIREBASE_STORAGE_BUCKET", bundle.StorageBucket)
		writeEntry(&b, "VITE_FIREBASE_MESSAGING_SENDER_ID", bundle.MessagingSenderID)
		writeEntry(&b, "VITE_FIREBASE_APP_ID", bundle.AppID)
		if bundle.MeasurementID != "" {
			writeEntry(&b, "VITE_FIREBASE_MEASUREMENT_ID", bundle.MeasurementID)
		}

	case PatternServer:
		b.WriteString("# Server-private configuration. Never commit this file.\n")
		writeEntry(&b, "FIREBASE_PROJECT_ID", bundle.ProjectID)
		b.WriteString("# Download a service-account key from the backend console and place it here:\n")
		writeEntry(&b, "GOOGLE_APPLICATION_CREDENTIALS", serviceAccountPath)

	default:
		return "", fmt.Errorf("unknown credential pattern %q", pattern)
	}

	return b.String(), nil
}

// Placeholder returns the content for a committed example file: the same
// layout as Render, with every value replaced by a human-readable
// placeholder and never a real value.
func Placeholder(pattern Pattern) (string, error) {
	bundle := &provision.CredentialBundle{
		APIKey:            "your-api-key",
		AuthDomain:        "your-project.firebaseapp.com",
		ProjectID:         "your-project-id",
		StorageBucket:     "your-project.appspot.com",
		MessagingSenderID: "your-sender-id",
		AppID:             "your-app-id",
	}
	return Render(bundle, pattern)
}

func writeEntry(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s=%s\n", key, value)
}
