package transform

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/net/html"

	"github.com/jmylchreest/pastefix/internal/logger"
	"github.com/jmylchreest/pastefix/pkg/dom"
)

// rewrite mutates the tree and returns how many nodes it changed.
type rewrite func(root *html.Node) int

var rewrites = map[Name]rewrite{
	HeadingStrong:  wrapHeadings,
	KeyTakeaways:   normalizeKeyTakeaways,
	StrayHeading:   removeStrayHeading,
	LinkAttributes: addLinkAttributes,
	HeadingLists:   convertHeadingLists,
	SectionSpacing: insertSpacing,
	ListColons:     normalizeListColons,
	Sources:        normalizeSources,
	RelativeLinks:  relativizeLinks,
}

// Report describes one transform run.
type Report struct {
	Name    Name   `json:"name" yaml:"name"`
	Changes int    `json:"changes" yaml:"changes"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Apply runs every transform enabled in p, in Order. A transform that
// panics is reported and its partial edits are discarded: the tree it
// started from is carried forward to the next transform. The returned root
// must be used in place of root.
func Apply(root *html.Node, p Profile) (*html.Node, []Report) {
	var reports []Report
	for _, name := range Order {
		if !p.Enabled(name) {
			continue
		}

		backup := dom.Clone(root)
		changes, err := run(name, root)
		r := Report{Name: name, Changes: changes}
		if err != nil {
			logger.Warn("transform failed, keeping previous tree",
				"transform", string(name),
				"profile", p.Name(),
				"error", err)
			r.Error = err.Error()
			r.Changes = 0
			root = backup
		} else if changes > 0 {
			logger.Debug("transform applied", "transform", string(name), "changes", changes)
		}
		reports = append(reports, r)
	}
	return root, reports
}

func run(name Name, root *html.Node) (changes int, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("transform panic", "transform", string(name), "stack", string(debug.Stack()))
			err = fmt.Errorf("transform %s: panic: %v", name, r)
		}
	}()
	return rewrites[name](root), nil
}
