// Package scylla backs the result cache with ScyllaDB. Expected schema:
//
//	CREATE TABLE lookup_results (
//	    id text PRIMARY KEY,
//	    masked_number text, spam_score int, reputation text, confidence text,
//	    carrier text, country_code text, phone_type text,
//	    checked_at timestamp, source text
//	);
//
//	CREATE TABLE lookup_history (
//	    bucket text, ts timestamp, id uuid,
//	    query text, result_id text, spam_score int,
//	    PRIMARY KEY (bucket, ts, id)
//	) WITH CLUSTERING ORDER BY (ts DESC, id ASC);
//
// RecentHistory depends on the ts DESC clustering order: LIMIT n grabs the
// newest rows and the reversal below restores the oldest-first contract.
package scylla

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/callguard/spam-checker/internal/domain"
	"github.com/callguard/spam-checker/internal/service"
)

const (
	// resultTTLSeconds matches the 24h freshness window; ScyllaDB drops
	// the row shortly after it would have gone stale anyway.
	resultTTLSeconds = 2 * 86400

	// historyTTLSeconds keeps a week of activity log.
	historyTTLSeconds = 7 * 86400

	// historyBucket is the single partition the activity log lives in.
	// Volume is tiny (search reads the last ten entries), so one
	// partition clustered by timestamp is enough.
	historyBucket = "recent"
)

type scyllaStore struct {
	session *gocql.Session
}

func NewScyllaStore(session *gocql.Session) service.Store {
	return &scyllaStore{
		session: session,
	}
}

func Connect(keyspace string, hosts ...string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.ProtoVersion = 4
	cluster.Timeout = 5 * time.Second
	cluster.ConnectTimeout = 5 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to scylla: %w", err)
	}

	log.Println("✅ Connected to ScyllaDB")
	return session, nil
}

func (s *scyllaStore) Get(ctx context.Context, id string) (*domain.LookupResult, error) {
	query := `
        SELECT id, masked_number, spam_score, reputation, confidence, carrier, country_code, phone_type, checked_at, source
        FROM lookup_results WHERE id = ?`

	var r domain.LookupResult
	var reputation, confidence string

	err := s.session.Query(query, id).WithContext(ctx).Scan(
		&r.ID,
		&r.MaskedNumber,
		&r.SpamScore,
		&reputation,
		&confidence,
		&r.Carrier,
		&r.CountryCode,
		&r.PhoneType,
		&r.CheckedAt,
		&r.Source,
	)

	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scylla: failed to get result: %w", err)
	}

	r.Reputation = domain.Reputation(reputation)
	r.Confidence = domain.Confidence(confidence)
	return &r, nil
}

func (s *scyllaStore) Put(ctx context.Context, result *domain.LookupResult) error {
	query := `
        INSERT INTO lookup_results (id, masked_number, spam_score, reputation, confidence, carrier, country_code, phone_type, checked_at, source)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) USING TTL ?`

	err := s.session.Query(query,
		result.ID,
		result.MaskedNumber,
		result.SpamScore,
		string(result.Reputation),
		string(result.Confidence),
		result.Carrier,
		result.CountryCode,
		result.PhoneType,
		result.CheckedAt,
		result.Source,
		resultTTLSeconds,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to save result: %w", err)
	}

	return nil
}

func (s *scyllaStore) All(ctx context.Context) ([]*domain.LookupResult, error) {
	query := `SELECT id, masked_number, spam_score, reputation, confidence, carrier, country_code, phone_type, checked_at, source
	          FROM lookup_results`

	iter := s.session.Query(query).WithContext(ctx).Iter()

	var results []*domain.LookupResult
	var id, masked, reputation, confidence, carrier, country, phoneType, source string
	var score int
	var checkedAt time.Time

	for iter.Scan(&id, &masked, &score, &reputation, &confidence, &carrier, &country, &phoneType, &checkedAt, &source) {
		results = append(results, &domain.LookupResult{
			ID:           id,
			MaskedNumber: masked,
			SpamScore:    score,
			Reputation:   domain.Reputation(reputation),
			Confidence:   domain.Confidence(confidence),
			Carrier:      carrier,
			CountryCode:  country,
			PhoneType:    phoneType,
			CheckedAt:    checkedAt,
			Source:       source,
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate results: %w", err)
	}

	return results, nil
}

func (s *scyllaStore) AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `
        INSERT INTO lookup_history (bucket, ts, id, query, result_id, spam_score)
        VALUES (?, ?, ?, ?, ?, ?) USING TTL ?`

	err := s.session.Query(query,
		historyBucket,
		entry.Timestamp,
		entry.ID.String(),
		entry.Query,
		entry.ResultID,
		entry.SpamScore,
		historyTTLSeconds,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to append history: %w", err)
	}

	return nil
}

func (s *scyllaStore) RecentHistory(ctx context.Context, n int) ([]*domain.HistoryEntry, error) {
	query := `SELECT ts, id, query, result_id, spam_score
	          FROM lookup_history WHERE bucket = ? LIMIT ?`

	iter := s.session.Query(query, historyBucket, n).WithContext(ctx).Iter()

	var entries []*domain.HistoryEntry
	var ts time.Time
	var id gocql.UUID
	var q, resultID string
	var score int

	for iter.Scan(&ts, &id, &q, &resultID, &score) {
		parsedID, _ := uuid.Parse(id.String())
		entries = append(entries, &domain.HistoryEntry{
			ID:        parsedID,
			Query:     q,
			ResultID:  resultID,
			SpamScore: score,
			Timestamp: ts,
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate history: %w", err)
	}

	// Rows come back newest-first; the contract is oldest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}
