package cleaner

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/jmylchreest/pastefix/pkg/sanitize"
)

// PolicyCleaner runs a bluemonday pass with the sanitizer's allow-list. It
// is an independent check for output that is about to be published: markup
// the pipeline produced passes through with its text unchanged.
type PolicyCleaner struct {
	policy *bluemonday.Policy
}

// NewPolicy creates a cleaner enforcing sanitize.Policy.
func NewPolicy() *PolicyCleaner {
	return &PolicyCleaner{policy: sanitize.Policy()}
}

// Clean removes anything the allow-list does not permit.
func (c *PolicyCleaner) Clean(content string) (string, error) {
	return c.policy.Sanitize(content), nil
}

// Name returns the cleaner type.
func (c *PolicyCleaner) Name() string {
	return "policy"
}
