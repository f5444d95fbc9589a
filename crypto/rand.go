package crypto

import "crypto/rand"

// DefaultRNG reads from the operating system CSPRNG. Hosts needing a
// deterministic RNG (e.g. for tests) supply their own io.Reader in its
// place.
var DefaultRNG RNG = rand.Reader
