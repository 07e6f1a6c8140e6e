package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a?b=c#d", true},
		{"http://example.com", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"mailto:someone@example.com", true},
		{"tel:+15551234", true},
		{"docs/guide.md", true},
		{"../up.md", true},
		{"/absolute/path", true},
		{"#anchor", true},
		{"#frag:with-colon", true},
		{"page.md#sec:tion", true},
		{"?q=a:b&c=d", true},
		{"./a:b", true},

		{"", false},
		{"javascript:alert(1)", false},
		{"JavaScript:alert(1)", false},
		{"data:text/html;base64,xx", false},
		{"vbscript:msgbox", false},
		{"file:///etc/passwd", false},
		{"//evil.example.com", false},
		{"\\\\evil.example.com", false},
		{"/\\evil.example.com", false},
		{"java\tscript:alert(1)", false},
		{"java\nscript:alert(1)", false},
		{" javascript:alert(1)", false},
		{"java\x00script:alert(1)", false},
		{"java%73cript:alert(1)", false},
		{"&#106;avascript:alert(1)", false},
		{"1http://x", false},
		{"https://exa mple.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, warehouse.ValidateURL(tt.url), "url %q", tt.url)
	}
}

func TestAllowedSchemes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	schemes := warehouse.AllowedSchemes()
	assert.Equal(t, []string{"http", "https", "mailto", "tel"}, schemes)

	schemes[0] = "javascript"
	assert.False(t, warehouse.ValidateURL("javascript:x"))
}
