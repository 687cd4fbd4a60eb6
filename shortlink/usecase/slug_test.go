package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	slug, err := generateSlug()
	assert.Nil(t, err)
	assert.Len(t, slug, slugLength)
	for _, slugChar := range slug {
		assert.True(t, strings.ContainsRune(slugAlphabet, slugChar))
	}
}

func TestGenerateSlugUnique(t *testing.T) {
	seenSlugs := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		slug, err := generateSlug()
		assert.Nil(t, err)
		if _, ok := seenSlugs[slug]; ok {
			assert.Fail(t, "duplicate slug generated, slug: "+slug)
		}
		seenSlugs[slug] = struct{}{}
	}
}

func TestGenerateSlugNeverReserved(t *testing.T) {
	for i := 0; i < 1000; i++ {
		slug, err := generateSlug()
		assert.Nil(t, err)
		_, ok := reservedSlugs[slug]
		assert.False(t, ok)
	}
}
