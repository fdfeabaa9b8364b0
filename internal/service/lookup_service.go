package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/callguard/spam-checker/internal/domain"
)

const reportBaseURL = "https://spam-checker.example.com"

// historyScanDepth is how many recent log entries the history keywords pull
// into search results.
const historyScanDepth = 10

// lookupService is the concrete implementation of the Service interface.
// It is unexported (starts with lowercase) to force usage of the Interface.
type lookupService struct {
	store    Store
	provider Provider
}

// NewLookupService is the constructor.
// It initializes the logic layer with its necessary dependencies.
func NewLookupService(store Store, provider Provider) Service {
	return &lookupService{
		store:    store,
		provider: provider,
	}
}

// CheckNumber implements the cached, lenient lookup path used by the tool
// surface. A fresh cached result short-circuits the provider call entirely
// and is returned unchanged, original CheckedAt included.
func (s *lookupService) CheckNumber(ctx context.Context, phoneNumber string) (*domain.LookupResult, error) {
	if !domain.IsValidPhoneNumber(phoneNumber) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, domain.MaskNumber(phoneNumber))
	}

	id := domain.DocumentID(phoneNumber)
	cached, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cache read for %s: %w", id, err)
	}
	if cached != nil && cached.IsFresh(time.Now().UTC()) {
		log.Printf("cache hit for %s", cached.MaskedNumber)
		return cached, nil
	}

	raw, err := s.provider.Lookup(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	// Lenient path: a missing add-on score counts as clean.
	score := 0
	if raw.Score != nil {
		score = *raw.Score
	}

	result := domain.NewLookupResult(phoneNumber, score, raw.Carrier, s.countryCode(phoneNumber, raw), s.phoneType(phoneNumber, raw))

	if err := s.store.Put(ctx, result); err != nil {
		return nil, fmt.Errorf("cache write for %s: %w", id, err)
	}
	if err := s.store.AppendHistory(ctx, domain.NewHistoryEntry(phoneNumber, result.ID, score)); err != nil {
		log.Printf("⚠️  history append failed for %s: %v", result.MaskedNumber, err)
	}

	log.Printf("spam check completed for %s: score=%d", result.MaskedNumber, score)
	return result, nil
}

// Classify implements the strict, always-live path used by the HTTP surface.
// The store is never consulted or updated here.
func (s *lookupService) Classify(ctx context.Context, phoneNumber string) (*domain.Classification, error) {
	if !domain.IsValidPhoneNumber(phoneNumber) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, domain.MaskNumber(phoneNumber))
	}

	raw, err := s.provider.Lookup(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if raw.Score == nil {
		return nil, domain.ErrScoreUnavailable
	}

	return &domain.Classification{
		PhoneNumber: phoneNumber,
		SpamScore:   *raw.Score,
		CheckedAt:   time.Now().UTC(),
	}, nil
}

// Search applies three match rules in order (direct number, cache scan,
// history keywords), concatenates their hits and deduplicates by id with
// first occurrence winning.
func (s *lookupService) Search(ctx context.Context, query string) ([]*domain.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.SearchHit{}, nil
	}
	lower := strings.ToLower(query)

	var hits []*domain.SearchHit

	// Rule 1: query shaped like a phone number triggers a direct check,
	// which may populate the cache as a side effect of searching. Failures
	// degrade to an error-hit instead of aborting the whole search.
	if strings.HasPrefix(query, "+") && len(query) > 5 {
		result, err := s.CheckNumber(ctx, query)
		if err != nil {
			log.Printf("⚠️  search lookup failed for %s: %v", domain.MaskNumber(query), err)
			hits = append(hits, &domain.SearchHit{
				ID:    domain.ErrorID(query),
				Title: "Error checking " + domain.MaskNumber(query),
				Text:  "Could not check spam status: " + err.Error(),
				URL:   reportBaseURL + "/error",
			})
		} else {
			hits = append(hits, &domain.SearchHit{
				ID:    result.ID,
				Title: "Spam Check: " + result.MaskedNumber,
				Text: fmt.Sprintf("Phone: %s, Score: %d, Reputation: %s, Carrier: %s",
					result.MaskedNumber, result.SpamScore, result.Reputation, result.Carrier),
				URL: reportURL(result.ID),
			})
		}
	}

	// Rule 2: scan every cached result.
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache scan: %w", err)
	}
	for _, doc := range all {
		if matchesQuery(doc, lower) {
			hits = append(hits, &domain.SearchHit{
				ID:    doc.ID,
				Title: "Spam Report: " + doc.MaskedNumber,
				Text: fmt.Sprintf("Phone: %s, Score: %d, Reputation: %s, Checked: %s",
					doc.MaskedNumber, doc.SpamScore, doc.Reputation, doc.CheckedAt.Format(time.RFC3339)),
				URL: reportURL(doc.ID),
			})
		}
	}

	// Rule 3: history keywords surface the latest checks.
	if lower == "recent" || lower == "history" || lower == "all" {
		entries, err := s.store.RecentHistory(ctx, historyScanDepth)
		if err != nil {
			return nil, fmt.Errorf("history read: %w", err)
		}
		for _, entry := range entries {
			doc, err := s.store.Get(ctx, entry.ResultID)
			if err != nil || doc == nil {
				continue
			}
			hits = append(hits, &domain.SearchHit{
				ID:    doc.ID,
				Title: "Recent Check: " + doc.MaskedNumber,
				Text: fmt.Sprintf("Recent spam check - Score: %d, Reputation: %s",
					doc.SpamScore, doc.Reputation),
				URL: reportURL(doc.ID),
			})
		}
	}

	return dedupeHits(hits), nil
}

// Fetch implements the fetch formatter: pure presentation over a cached
// result, never a fresh lookup.
func (s *lookupService) Fetch(ctx context.Context, id string) (*domain.Report, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", domain.ErrReportNotFound)
	}

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cache read for %s: %w", id, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, id)
	}

	return &domain.Report{
		ID:       doc.ID,
		Title:    "Complete Spam Analysis: " + doc.MaskedNumber,
		Text:     renderReport(doc),
		URL:      reportURL(doc.ID),
		Metadata: doc,
	}, nil
}

func (s *lookupService) countryCode(phone string, raw *domain.ProviderResult) string {
	if raw.CountryCode != "" {
		return raw.CountryCode
	}
	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return ""
	}
	return phonenumbers.GetRegionCodeForNumber(num)
}

func (s *lookupService) phoneType(phone string, raw *domain.ProviderResult) string {
	if raw.PhoneType != "" {
		return raw.PhoneType
	}
	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return ""
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE:
		return "landline"
	case phonenumbers.VOIP:
		return "voip"
	default:
		return ""
	}
}

func matchesQuery(doc *domain.LookupResult, lower string) bool {
	return strings.Contains(strings.ToLower(doc.MaskedNumber), lower) ||
		strings.Contains(strings.ToLower(string(doc.Reputation)), lower) ||
		strings.Contains(strings.ToLower(doc.Carrier), lower) ||
		strings.Contains(strconv.Itoa(doc.SpamScore), lower) ||
		(lower == "spam" && doc.SpamScore == 1) ||
		(lower == "clean" && doc.SpamScore == 0)
}

func dedupeHits(hits []*domain.SearchHit) []*domain.SearchHit {
	seen := make(map[string]bool, len(hits))
	unique := make([]*domain.SearchHit, 0, len(hits))
	for _, hit := range hits {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		unique = append(unique, hit)
	}
	return unique
}

func reportURL(id string) string {
	return reportBaseURL + "/report/" + id
}
