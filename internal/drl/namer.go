package drl

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/swrldrl/internal/ir"
)

// namerCacheSize bounds the IRI → prefixed name memo. Rule documents reuse a
// small vocabulary, so misses are rare past the first few rules.
const namerCacheSize = 4096

type prefixBinding struct {
	prefix    string
	namespace string
}

// Namer compacts IRIs to prefixed names ("ex:Person") using an ontology's
// prefix bindings. IRIs with no matching namespace are returned unchanged.
type Namer struct {
	bindings []prefixBinding
	cache    *lru.Cache[ir.IRI, string]
}

// NewNamer creates a Namer over the given prefix → namespace map.
//
// When namespaces nest, the longest namespace wins. Ties between prefixes
// bound to the same namespace go to the lexically smallest prefix so output
// does not depend on map iteration order.
func NewNamer(prefixes map[string]string) *Namer {
	bindings := make([]prefixBinding, 0, len(prefixes))
	for p, ns := range prefixes {
		if ns == "" {
			continue
		}
		bindings = append(bindings, prefixBinding{prefix: p, namespace: ns})
	}
	sort.Slice(bindings, func(i, j int) bool {
		if len(bindings[i].namespace) != len(bindings[j].namespace) {
			return len(bindings[i].namespace) > len(bindings[j].namespace)
		}
		return bindings[i].prefix < bindings[j].prefix
	})

	cache, _ := lru.New[ir.IRI, string](namerCacheSize)
	return &Namer{bindings: bindings, cache: cache}
}

// PrefixedName returns the prefixed form of iri, or iri itself when no
// binding yields a valid local name.
func (n *Namer) PrefixedName(iri ir.IRI) string {
	if name, ok := n.cache.Get(iri); ok {
		return name
	}
	name := n.compact(iri)
	n.cache.Add(iri, name)
	return name
}

func (n *Namer) compact(iri ir.IRI) string {
	s := string(iri)
	for _, b := range n.bindings {
		if !strings.HasPrefix(s, b.namespace) {
			continue
		}
		local := s[len(b.namespace):]
		if strings.ContainsAny(local, "/#?") {
			continue
		}
		return b.prefix + ":" + local
	}
	return s
}

// Quote renders s as a double-quoted DRL string literal. The text is NFC
// normalized first so canonically equivalent names produce identical output.
func Quote(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// constructor renders "new <typ>(<args>)".
func constructor(typ string, args ...string) string {
	return "new " + typ + "(" + strings.Join(args, ", ") + ")"
}
