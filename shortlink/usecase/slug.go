package usecase

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

// slugAlphabet is carried over verbatim from the previous service so old and
// new slugs share one distribution. The duplicated "chars" runs skew it
// toward those five letters.
const slugAlphabet = "0123456789charsdefghijklmnopqrstuvwxyzcharsDEFGHIJKLMNOPQRSTUVWXYZ"

const slugLength = 8

var reservedSlugs = map[string]struct{}{
	"api":     {},
	"metrics": {},
	"healthz": {},
	"admin":   {},
	"docs":    {},
}

func generateSlug() (string, error) {
	for {
		randomBytes := make([]byte, slugLength)
		if _, err := rand.Read(randomBytes); err != nil {
			return "", errors.Wrap(err, "read random bytes failed")
		}
		slug := make([]byte, slugLength)
		for i := range randomBytes {
			slug[i] = slugAlphabet[int(randomBytes[i])%len(slugAlphabet)]
		}
		if _, ok := reservedSlugs[string(slug)]; ok {
			continue
		}
		return string(slug), nil
	}
}
