package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reputation is the binary verdict derived from the provider's spam score.
// Using a custom type prevents string typos in the business logic.
type Reputation string

// Confidence tells clients how much to trust the verdict.
type Confidence string

const (
	ReputationSpam  Reputation = "SPAM"
	ReputationClean Reputation = "CLEAN"

	// ConfidenceHigh covers the binary 0/1 scores the add-on normally
	// returns. Anything outside that range is ConfidenceLow.
	ConfidenceHigh Confidence = "High"
	ConfidenceLow  Confidence = "Low"
)

const (
	// Source is the fixed provenance string attached to every result.
	Source = "Twilio Lookup API + Nomorobo"

	// Unknown fills passthrough fields the provider did not populate.
	Unknown = "Unknown"

	// FreshnessWindow is how long a cached result is served without
	// re-querying the provider.
	FreshnessWindow = 24 * time.Hour
)

// LookupResult is the normalized outcome of one spam-reputation lookup.
// It is the unit stored in the cache and the document exposed through the
// search/fetch tools. The raw phone number is never kept, only its mask.
type LookupResult struct {
	ID           string     `json:"id"`
	MaskedNumber string     `json:"phone_number_masked"`
	SpamScore    int        `json:"spam_score"`
	Reputation   Reputation `json:"reputation"`
	Confidence   Confidence `json:"confidence"`
	Carrier      string     `json:"carrier"`
	CountryCode  string     `json:"country_code"`
	PhoneType    string     `json:"phone_type"`
	CheckedAt    time.Time  `json:"checked_at"`
	Source       string     `json:"source"`
}

// NewLookupResult builds a result from provider data, deriving the masked
// number, reputation and confidence labels. Empty passthrough fields become
// Unknown. CheckedAt is stamped with the current UTC time.
func NewLookupResult(phone string, score int, carrier, countryCode, phoneType string) *LookupResult {
	if carrier == "" {
		carrier = Unknown
	}
	if countryCode == "" {
		countryCode = Unknown
	}
	if phoneType == "" {
		phoneType = Unknown
	}

	reputation := ReputationClean
	if score == 1 {
		reputation = ReputationSpam
	}

	confidence := ConfidenceLow
	if score == 0 || score == 1 {
		confidence = ConfidenceHigh
	}

	return &LookupResult{
		ID:           DocumentID(phone),
		MaskedNumber: MaskNumber(phone),
		SpamScore:    score,
		Reputation:   reputation,
		Confidence:   confidence,
		Carrier:      carrier,
		CountryCode:  countryCode,
		PhoneType:    phoneType,
		CheckedAt:    time.Now().UTC(),
		Source:       Source,
	}
}

// IsFresh reports whether the result is still inside the freshness window
// relative to now. Stale results are re-fetched on the next lookup.
func (r *LookupResult) IsFresh(now time.Time) bool {
	return now.Sub(r.CheckedAt) < FreshnessWindow
}

// ProviderResult is the raw normalized payload from the lookup provider.
// Score is a pointer because the scoring add-on may omit it entirely; the
// service layer decides whether that is an error or defaults to clean.
type ProviderResult struct {
	Score       *int
	Carrier     string
	CountryCode string
	PhoneType   string
}

// HistoryEntry records one completed lookup in the recent-activity log.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	ResultID  string    `json:"result_id"`
	SpamScore int       `json:"spam_score"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHistoryEntry is a factory for a history record stamped with now.
func NewHistoryEntry(query, resultID string, spamScore int) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.New(),
		Query:     query,
		ResultID:  resultID,
		SpamScore: spamScore,
		Timestamp: time.Now().UTC(),
	}
}

// SearchHit is the short summary form returned by the search tool.
type SearchHit struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Report is the long-form document returned by the fetch tool.
type Report struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Text     string        `json:"text"`
	URL      string        `json:"url"`
	Metadata *LookupResult `json:"metadata"`
}

// Classification is the strict-mode answer used by the authenticated
// classify endpoint.
type Classification struct {
	PhoneNumber string    `json:"phone_number"`
	SpamScore   int       `json:"spam_score"`
	CheckedAt   time.Time `json:"-"`
}

// IsValidPhoneNumber reports whether s is a plain E.164 string: a leading
// '+' followed only by ASCII digits, 10 to 15 characters total. No
// normalization is attempted; separators and spaces are rejected outright.
func IsValidPhoneNumber(s string) bool {
	if len(s) < 10 || len(s) > 15 {
		return false
	}
	if s[0] != '+' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MaskNumber hides everything but the last four characters of a phone
// number. Shorter inputs are masked entirely.
func MaskNumber(phone string) string {
	if len(phone) < 4 {
		return strings.Repeat("*", len(phone))
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// DocumentID derives the stable cache/document identifier for a phone
// number. Re-checking the same number always yields the same id, which is
// what makes cache hits possible.
func DocumentID(phone string) string {
	return "spam_check_" + shortHash(phone)
}

// ErrorID derives the synthetic identifier attached to search error-hits.
func ErrorID(query string) string {
	return "error_" + shortHash(query)
}

func shortHash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
