package testutil

// StaticTokenGenerator returns the same pass token every time.
//
// The same scenario translated with the same StaticTokenGenerator produces
// byte-identical output, including the pass header.
//
// Unlike translate.FixedGenerator, which returns tokens in sequence and
// panics when they run out, this generator serves any number of passes.
//
// Thread-safety: StaticTokenGenerator is stateless and safe for concurrent use.
type StaticTokenGenerator struct {
	token string
}

// DefaultPassToken is used when no token is configured.
const DefaultPassToken = "test-pass-default"

// NewStaticTokenGenerator creates a generator that always returns token.
//
// The token is typically set in the scenario YAML:
//
//	pass_token: "test-pass-00000000-0000-0000-0000-000000000001"
//
// If token is empty, Generate() returns DefaultPassToken.
func NewStaticTokenGenerator(token string) *StaticTokenGenerator {
	if token == "" {
		token = DefaultPassToken
	}
	return &StaticTokenGenerator{token: token}
}

// Generate returns the configured token.
//
// Implements translate.TokenGenerator.
func (g *StaticTokenGenerator) Generate() string {
	return g.token
}
