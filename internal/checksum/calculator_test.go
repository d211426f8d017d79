package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty content",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "Short text",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.CalculateRaw([]byte(tt.content)))
		})
	}
}

func TestSHA256Calculator_RawDetectsLineEndings(t *testing.T) {
	calc := New()
	assert.NotEqual(t,
		calc.CalculateRaw([]byte("alpha\nbravo\n")),
		calc.CalculateRaw([]byte("alpha\r\nbravo\r\n")))
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()
	lf := calc.CalculateNormalized([]byte("alpha\nbravo\n"))

	tests := []struct {
		name    string
		content string
		same    bool
	}{
		{"identical", "alpha\nbravo\n", true},
		{"crlf", "alpha\r\nbravo\r\n", true},
		{"lone cr", "alpha\rbravo\r", true},
		{"different text", "alpha\ncharlie\n", false},
		{"missing final newline", "alpha\nbravo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateNormalized([]byte(tt.content))
			if tt.same {
				assert.Equal(t, lf, got)
			} else {
				assert.NotEqual(t, lf, got)
			}
		})
	}
}

func TestSHA256Calculator_NormalizedMatchesRawForLF(t *testing.T) {
	calc := New()
	content := []byte("no carriage returns here\n")
	assert.Equal(t, calc.CalculateRaw(content), calc.CalculateNormalized(content))
}
