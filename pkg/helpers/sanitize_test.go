package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "plain text", SanitizeText("plain text"))
	assert.Equal(t, "&lt;script&gt;alert(&#x27;x&#x27;)&lt;/script&gt;", SanitizeText("<script>alert('x')</script>"))
	assert.Equal(t, "a &amp;lt; b", SanitizeText("a &lt; b"))
	assert.Equal(t, "&quot;q&quot; &#x5C;n", SanitizeText(`"q" \n`))
}
