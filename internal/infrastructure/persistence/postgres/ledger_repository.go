package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CopaymentLedgerRepository persists per-patient yearly copayment totals.
// Pool-backed instances serve reads; the transaction coordinator hands out
// tx-scoped instances with locking enabled, so an adjudication pins the
// ledger row for its whole transaction.
type CopaymentLedgerRepository struct {
	q       Executor
	locking bool
}

func NewCopaymentLedgerRepository(db *DB) *CopaymentLedgerRepository {
	return &CopaymentLedgerRepository{q: db.Pool}
}

// Accumulated returns the running copayment total for a patient and year.
// A missing record reads as zero. In locking mode the row is created first
// so FOR UPDATE always has something to lock.
func (r *CopaymentLedgerRepository) Accumulated(ctx context.Context, patientCedula string, year int) (domain.Money, error) {
	if r.locking {
		ensure := `
			INSERT INTO copayment_ledger (patient_cedula, year, accumulated)
			VALUES ($1, $2, 0)
			ON CONFLICT (patient_cedula, year) DO NOTHING
		`
		if _, err := r.q.Exec(ctx, ensure, patientCedula, year); err != nil {
			return domain.Money{}, fmt.Errorf("ensure ledger row: %w", err)
		}
	}

	query := `
		SELECT accumulated::text
		FROM copayment_ledger
		WHERE patient_cedula = $1 AND year = $2
	`
	if r.locking {
		query += " FOR UPDATE"
	}

	var raw string
	err := r.q.QueryRow(ctx, query, patientCedula, year).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ZeroMoney(), nil
		}
		return domain.Money{}, fmt.Errorf("query accumulated copayment: %w", err)
	}

	accumulated, err := domain.ParseMoney(raw)
	if err != nil {
		return domain.Money{}, fmt.Errorf("ledger %s/%d: %w", patientCedula, year, err)
	}
	return accumulated, nil
}

// RecordCopayment adds amount to the patient's yearly total and returns the
// new total. The upsert creates the record on the first copayment of a year.
func (r *CopaymentLedgerRepository) RecordCopayment(ctx context.Context, patientCedula string, year int, amount domain.Money) (domain.Money, error) {
	query := `
		INSERT INTO copayment_ledger (patient_cedula, year, accumulated, updated_at)
		VALUES ($1, $2, $3::numeric, NOW())
		ON CONFLICT (patient_cedula, year)
		DO UPDATE SET accumulated = copayment_ledger.accumulated + EXCLUDED.accumulated,
		              updated_at = NOW()
		RETURNING accumulated::text
	`

	var raw string
	err := r.q.QueryRow(ctx, query, patientCedula, year, amount.String()).Scan(&raw)
	if err != nil {
		return domain.Money{}, fmt.Errorf("record copayment: %w", err)
	}

	accumulated, err := domain.ParseMoney(raw)
	if err != nil {
		return domain.Money{}, fmt.Errorf("ledger %s/%d: %w", patientCedula, year, err)
	}
	return accumulated, nil
}
