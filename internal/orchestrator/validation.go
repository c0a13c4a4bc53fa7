package orchestrator

import (
	"fmt"
	"strings"
)

// forbiddenRefChars are rejected anywhere in a ref name by git check-ref-format.
const forbiddenRefChars = " ~^:?*[\\"

// ValidateBranchName validates a git branch name against the rules of
// git check-ref-format --branch.
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(branch) > 255 {
		return fmt.Errorf("branch name too long: %d characters (max: 255)", len(branch))
	}
	if branch == "@" {
		return fmt.Errorf("branch name cannot be @")
	}
	// Check for invalid patterns
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") {
		return fmt.Errorf("branch name cannot start or end with slash: %s", branch)
	}
	if strings.HasPrefix(branch, "-") {
		return fmt.Errorf("branch name cannot start with a dash: %s", branch)
	}
	if strings.HasSuffix(branch, ".") {
		return fmt.Errorf("branch name cannot end with a dot: %s", branch)
	}
	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain consecutive dots: %s", branch)
	}
	if strings.Contains(branch, "//") {
		return fmt.Errorf("branch name cannot contain consecutive slashes: %s", branch)
	}
	if strings.Contains(branch, "@{") {
		return fmt.Errorf("branch name cannot contain @{: %s", branch)
	}
	if strings.ContainsAny(branch, forbiddenRefChars) {
		return fmt.Errorf("branch name contains a forbidden character: %s", branch)
	}
	for _, r := range branch {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("branch name contains a control character: %q", branch)
		}
	}
	for _, component := range strings.Split(branch, "/") {
		if strings.HasPrefix(component, ".") {
			return fmt.Errorf("branch name components cannot start with a dot: %s", branch)
		}
		if strings.HasSuffix(component, ".lock") {
			return fmt.Errorf("branch name components cannot end with .lock: %s", branch)
		}
	}
	return nil
}

// ValidateLabel validates a pull request label. Labels are free text on
// GitHub, so only blank and overlong values are rejected.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("label cannot be empty")
	}
	if len(label) > 100 {
		return fmt.Errorf("label too long: %d characters (max: 100)", len(label))
	}
	return nil
}
