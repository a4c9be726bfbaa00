package cvparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Reach me at john.perera@gmail.com anytime", "john.perera@gmail.com"},
		{"denylisted skipped", "noreply@company.com\njohn.perera@gmail.com", "john.perera@gmail.com"},
		{"only denylisted kept as last resort", "contact info@company.com", "info@company.com"},
		{"none", "no contact details here", ""},
		{"plus tag", "john+jobs@perera.dev", "john+jobs@perera.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractEmail(tt.text))
		})
	}
}

func TestExtractPhoneUK(t *testing.T) {
	phone := extractPhone("Phone: +44 20 7946 0958")
	assert.True(t, strings.HasPrefix(phone, "+44"), "got %q", phone)
}

func TestExtractPhoneSriLanka(t *testing.T) {
	phone := extractPhone("Mobile: +94 77 123 4567")
	assert.True(t, strings.HasPrefix(phone, "+94"), "got %q", phone)
}

func TestExtractPhoneUnvalidatableKeptStripped(t *testing.T) {
	// A pattern hit that no trial region validates keeps its digits
	// instead of being discarded.
	phone := extractPhone("Tel: (555) 555-0100")
	assert.NotEmpty(t, phone)
	assert.Contains(t, strings.ReplaceAll(phone, " ", ""), "5550100")
}

func TestExtractPhoneNone(t *testing.T) {
	assert.Equal(t, "", extractPhone("no numbers at all"))
}

func TestStripPhonePunctuation(t *testing.T) {
	assert.Equal(t, "+94771234567", stripPhonePunctuation("+94 77-123 4567"))
	assert.Equal(t, "0771234567", stripPhonePunctuation("(077) 123-4567"))
}
