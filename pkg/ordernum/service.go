// Package ordernum provides sequential order numbering.
// Numbers are allocated per tenant per day through a database UPSERT, so
// concurrent order creation never produces duplicates and the sequence
// has no gaps within a committed day.
package ordernum

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Prefix used for all order numbers.
const Prefix = "ORD"

// Querier interface for database operations. Satisfied by pgxpool.Pool
// and pgx.Tx, so numbers can be allocated inside the order transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Generator produces order numbers.
type Generator interface {
	// Next returns the next order number for the tenant,
	// formatted ORD-YYYYMMDD-NNNN.
	Next(ctx context.Context, tenantID string, day time.Time) (string, error)
}

// Service implements Generator against a sys_sequences table.
type Service struct {
	querier Querier
}

func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// Next allocates the next number in the tenant's daily sequence.
// The allocation rides the caller's transaction when the querier is a
// transaction, so a rolled-back order releases its number only if it
// was the last one issued; gaps from rollbacks are acceptable.
func (s *Service) Next(ctx context.Context, tenantID string, day time.Time) (string, error) {
	key := sequenceKey(day)

	var num int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (tenant_id, sequence_key, current_val)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, sequence_key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, tenantID, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}

	return Format(day, num), nil
}

// Format renders an order number. The counter is padded to 4 digits and
// grows beyond that on very busy days.
func Format(day time.Time, num int64) string {
	return fmt.Sprintf("%s-%s-%04d", Prefix, day.Format("20060102"), num)
}

// ParseCounter extracts the numeric counter from a formatted order
// number. Returns -1 if parsing fails.
func ParseCounter(formatted string) int64 {
	var date string
	var num int64
	if _, err := fmt.Sscanf(formatted, Prefix+"-%8s-%d", &date, &num); err != nil {
		return -1
	}
	return num
}

func sequenceKey(day time.Time) string {
	return Prefix + "_" + day.Format("20060102")
}
