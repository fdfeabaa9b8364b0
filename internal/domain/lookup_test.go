package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callguard/spam-checker/internal/domain"
)

func TestIsValidPhoneNumber(t *testing.T) {
	cases := []struct {
		Name  string
		Input string
		Valid bool
	}{
		{"valid minimum length", "+123456789", true},
		{"valid typical US number", "+12345678901", true},
		{"valid maximum length", "+12345678901234", true},
		{"empty string", "", false},
		{"missing plus", "12345678901", false},
		{"too short", "+12345678", false},
		{"too long", "+123456789012345", false},
		{"embedded space", "+1234 678901", false},
		{"embedded dash", "+1234-678901", false},
		{"parentheses", "+1(234)67890", false},
		{"letters", "+1234567890a", false},
		{"plus only", "+", false},
		{"double plus", "++2345678901", false},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Valid, domain.IsValidPhoneNumber(tc.Input))
		})
	}
}

func TestMaskNumber(t *testing.T) {
	cases := []struct {
		Input    string
		Expected string
	}{
		{"+12345678901", "********8901"},
		{"+123456789", "******6789"},
		{"+12", "***"},
		{"", ""},
	}

	for _, tc := range cases {
		masked := domain.MaskNumber(tc.Input)
		assert.Equal(t, tc.Expected, masked)
		assert.Len(t, masked, len(tc.Input), "mask must preserve length")
	}
}

func TestDocumentIDDeterministic(t *testing.T) {
	first := domain.DocumentID("+12345678901")
	second := domain.DocumentID("+12345678901")
	other := domain.DocumentID("+12345678902")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Regexp(t, `^spam_check_[0-9a-f]{8}$`, first)
	assert.Regexp(t, `^error_[0-9a-f]{8}$`, domain.ErrorID("+12345678901"))
}

func TestNewLookupResultDerivations(t *testing.T) {
	spam := domain.NewLookupResult("+12345678901", 1, "Acme Mobile", "US", "mobile")
	assert.Equal(t, domain.ReputationSpam, spam.Reputation)
	assert.Equal(t, domain.ConfidenceHigh, spam.Confidence)
	assert.Equal(t, "********8901", spam.MaskedNumber)
	assert.Equal(t, domain.Source, spam.Source)

	clean := domain.NewLookupResult("+12345678901", 0, "", "", "")
	assert.Equal(t, domain.ReputationClean, clean.Reputation)
	assert.Equal(t, domain.ConfidenceHigh, clean.Confidence)
	assert.Equal(t, domain.Unknown, clean.Carrier)
	assert.Equal(t, domain.Unknown, clean.CountryCode)
	assert.Equal(t, domain.Unknown, clean.PhoneType)

	odd := domain.NewLookupResult("+12345678901", 7, "", "", "")
	assert.Equal(t, domain.ReputationClean, odd.Reputation)
	assert.Equal(t, domain.ConfidenceLow, odd.Confidence)
}

func TestIsFresh(t *testing.T) {
	result := domain.NewLookupResult("+12345678901", 0, "", "", "")
	require.False(t, result.CheckedAt.IsZero())

	now := result.CheckedAt
	assert.True(t, result.IsFresh(now.Add(23*time.Hour)))
	assert.False(t, result.IsFresh(now.Add(24*time.Hour)))
	assert.False(t, result.IsFresh(now.Add(25*time.Hour)))
}
