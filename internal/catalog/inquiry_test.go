package catalog_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JantaElectricals/JE-Backend/internal/catalog"
)

func TestInquiryURL(t *testing.T) {
	link := catalog.InquiryURL("918586836646", "Desert Cooler 60L", 7499)

	require.True(t, strings.HasPrefix(link, "https://wa.me/918586836646?text="), "got %q", link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)

	text := parsed.Query().Get("text")
	assert.Contains(t, text, "I would like to Buy Desert Cooler 60L")
	assert.Contains(t, text, "₹")
}

func TestFormatINR(t *testing.T) {
	formatted := catalog.FormatINR(7499)

	assert.True(t, strings.HasPrefix(formatted, "₹"), "got %q", formatted)
	assert.Contains(t, formatted, "7")
	assert.Contains(t, formatted, "499")
}
