package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "mixed line endings",
			input:  "rad ett\r\nrad två\rrad tre\nrad fyra",
			expect: "rad ett\nrad två\nrad tre\nrad fyra",
		},
		{
			name:   "blank line runs collapse to two",
			input:  "stycke ett\n\n\n\n\nstycke två",
			expect: "stycke ett\n\nstycke två",
		},
		{
			name:   "trailing whitespace per line",
			input:  "rad ett   \nrad två\t\nrad tre",
			expect: "rad ett\nrad två\nrad tre",
		},
		{
			name:   "overall trim",
			input:  "\n\n  text  \n\n",
			expect: "text",
		},
		{
			name:   "whitespace-only lines count as blank",
			input:  "a\n \n \n \nb",
			expect: "a\n\nb",
		},
		{
			name:   "empty input",
			input:  "",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"rad ett\r\nrad två\r\r\n\nrad tre\n\n\n\nrad fyra",
		"a\n \n\t\n \nb",
		"  inledande och avslutande  ",
		"",
		"enkel rad",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestNormalize_MixedEndingsWithBlankRun(t *testing.T) {
	// Four consecutive blank lines across CRLF/CR/LF styles collapse to
	// exactly two newlines, and a second pass changes nothing.
	input := "första\r\n\r\n\r\n\r\n\r\nandra\rtredje"
	once := Normalize(input)

	assert.Equal(t, "första\n\nandra\ntredje", once)
	assert.Equal(t, once, Normalize(once))
}
