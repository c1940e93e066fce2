// Package destination provides the storage backends sorted files are copied into.
package destination

import (
	"fmt"
	"strings"
)

// validateName rejects folder and file names that would escape their parent.
func validateName(kind, name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid %s name: %q", kind, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s name must not contain path separators: %q", kind, name)
	}
	return nil
}
