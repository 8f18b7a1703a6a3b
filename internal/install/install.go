// Package install runs the chosen package manager's install step inside a
// freshly generated project.
package install

import (
	"context"
	"fmt"

	"github.com/tinderbox-cli/tinderbox/internal/execx"
)

// Dependencies installs project dependencies with the given package manager,
// showing a spinner while the install runs.
func Dependencies(ctx context.Context, packageManager, projectDir string) error {
	runner := execx.NewRunner(&execx.Options{Dir: projectDir})

	msg := fmt.Sprintf("Installing dependencies with %s", packageManager)
	if err := runner.RunWithSpinner(ctx, msg, packageManager, "install"); err != nil {
		return fmt.Errorf("dependency installation failed: %w", err)
	}
	return nil
}
