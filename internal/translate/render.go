package translate

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/swrldrl/internal/drl"
)

// DefaultPackage is the DRL package of rendered documents.
const DefaultPackage = "org.swrldrl.rules"

// FactsRuleName names the rule that inserts the flattened facts.
const FactsRuleName = "swrldrl facts"

// RenderOptions controls DRL document rendering.
type RenderOptions struct {
	// Package is the DRL package declaration. Empty means DefaultPackage.
	Package string
	// Header adds a comment naming the pass token and digest.
	Header bool
}

// Render writes res as a DRL document: the package declaration, one rule
// inserting every fact, and one rule per translated body. Rule heads are
// not translated, so every consequence is empty.
func Render(w io.Writer, res *Result, opts RenderOptions) error {
	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	var b strings.Builder
	if opts.Header {
		fmt.Fprintf(&b, "// pass %s\n// digest %s\n\n", res.PassToken, res.Digest)
	}
	fmt.Fprintf(&b, "package %s;\n", pkg)

	if len(res.Facts) > 0 {
		fmt.Fprintf(&b, "\nrule %s\nsalience 1000\nwhen\nthen\n", drl.Quote(FactsRuleName))
		for _, f := range res.Facts {
			fmt.Fprintf(&b, "    insert(%s);\n", f.DRL)
		}
		b.WriteString("end\n")
	}

	for _, r := range res.Rules {
		fmt.Fprintf(&b, "\nrule %s\nwhen\n", drl.Quote(r.Name))
		for _, p := range r.Patterns {
			fmt.Fprintf(&b, "    %s\n", p)
		}
		b.WriteString("then\nend\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
