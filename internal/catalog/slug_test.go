package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JantaElectricals/JE-Backend/internal/catalog"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"trailing space", "Coolers ", "coolers"},
		{"punctuation and runs", "  Premium   Coolers!! ", "premium-coolers"},
		{"digits kept, dot dropped", "My App 2.0!", "my-app-20"},
		{"hyphen runs collapsed", "a --- b", "a-b"},
		{"already a slug", "desert-cooler-60l", "desert-cooler-60l"},
		{"non-ascii dropped", "Café Fans", "caf-fans"},
		{"ampersand", "Wiring & Cables", "wiring-cables"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, catalog.Slugify(tc.in))
		})
	}
}

// Renames re-derive slugs from stored names, so Slugify has to be a fixed
// point on its own output.
func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"  Premium   Coolers!! ",
		"My App 2.0!",
		"a --- b",
		"Wiring & Cables",
		"!!!",
	}

	for _, in := range inputs {
		once := catalog.Slugify(in)
		assert.Equal(t, once, catalog.Slugify(once), "Slugify(%q) not idempotent", in)
	}
}

func TestSlugifyOutputAlphabet(t *testing.T) {
	for _, in := range []string{"Hello, World!", "REO Grande 9000", "ऊर्जा Cooler", "A&B (new)"} {
		slug := catalog.Slugify(in)
		for _, r := range slug {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "Slugify(%q) produced %q containing %q", in, slug, r)
		}
	}
}
