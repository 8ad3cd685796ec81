package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application"
	"github.com/clinicdesk/clinic-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type InvoiceRepository struct {
	q Executor
}

func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{q: db.Pool}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (
			invoice_number, patient_cedula, billing_date, due_date,
			total_amount, copayment_amount, insurance_coverage, patient_responsibility,
			status, notes
		) VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric, $9, $10)
	`

	_, err := r.q.Exec(ctx, query,
		invoice.InvoiceNumber,
		invoice.PatientCedula,
		invoice.BillingDate,
		invoice.DueDate,
		invoice.TotalAmount.String(),
		invoice.CopaymentAmount.String(),
		invoice.InsuranceCoverage.String(),
		invoice.PatientResponsibility.String(),
		string(invoice.Status),
		invoice.Notes,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("invoice number %s already exists: %w", invoice.InvoiceNumber, err)
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (
			invoice_number, order_id, category, item_name, unit_cost, quantity
		) VALUES ($1, $2, $3, $4, $5::numeric, $6)
	`
	for _, l := range toLineModels(invoice) {
		_, err := r.q.Exec(ctx, lineQuery,
			l.InvoiceNumber, l.OrderID, l.Category, l.ItemName, l.UnitCost, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to create invoice line: %w", err)
		}
	}

	return nil
}

func (r *InvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	query := `
		SELECT invoice_number, patient_cedula, billing_date, due_date,
		       total_amount::text, copayment_amount::text,
		       insurance_coverage::text, patient_responsibility::text,
		       status, notes
		FROM invoices WHERE invoice_number = $1
	`

	m, err := scanInvoice(r.q.QueryRow(ctx, query, invoiceNumber))
	if err != nil {
		return nil, err
	}

	lines, err := r.findLines(ctx, []string{invoiceNumber})
	if err != nil {
		return nil, err
	}
	return toDomainInvoice(m, lines[invoiceNumber])
}

// FindByPatient lists a patient's invoices, most recent billing date first.
func (r *InvoiceRepository) FindByPatient(ctx context.Context, patientCedula string, limit, offset int) ([]*domain.Invoice, error) {
	query := `
		SELECT invoice_number, patient_cedula, billing_date, due_date,
		       total_amount::text, copayment_amount::text,
		       insurance_coverage::text, patient_responsibility::text,
		       status, notes
		FROM invoices
		WHERE patient_cedula = $1
		ORDER BY billing_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, patientCedula, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query invoices by patient: %w", err)
	}
	models, err := pgx.CollectRows(rows, collectInvoice)
	if err != nil {
		return nil, fmt.Errorf("scan invoices by patient: %w", err)
	}
	if len(models) == 0 {
		return nil, nil
	}

	numbers := make([]string, len(models))
	for i, m := range models {
		numbers[i] = m.InvoiceNumber
	}
	lines, err := r.findLines(ctx, numbers)
	if err != nil {
		return nil, err
	}

	invoices := make([]*domain.Invoice, 0, len(models))
	for _, m := range models {
		invoice, err := toDomainInvoice(m, lines[m.InvoiceNumber])
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

// Statistics aggregates a patient's invoices, excluding cancelled ones.
// Outstanding covers what patients still owe on pending and overdue
// invoices.
func (r *InvoiceRepository) Statistics(ctx context.Context, patientCedula string) (*domain.BillingStatistics, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount), 0)::text,
		       COALESCE(SUM(copayment_amount), 0)::text,
		       COALESCE(SUM(insurance_coverage), 0)::text,
		       COALESCE(SUM(patient_responsibility) FILTER (WHERE status IN ('PENDING', 'OVERDUE')), 0)::text
		FROM invoices
		WHERE patient_cedula = $1 AND status <> 'CANCELLED'
	`

	var (
		count                                int
		billed, copaid, covered, outstanding string
	)
	err := r.q.QueryRow(ctx, query, patientCedula).Scan(&count, &billed, &copaid, &covered, &outstanding)
	if err != nil {
		return nil, fmt.Errorf("query billing statistics: %w", err)
	}

	stats := &domain.BillingStatistics{
		PatientCedula: patientCedula,
		InvoiceCount:  count,
	}
	for _, field := range []struct {
		raw  string
		dest *domain.Money
	}{
		{billed, &stats.TotalBilled},
		{copaid, &stats.TotalCopaid},
		{covered, &stats.TotalCovered},
		{outstanding, &stats.TotalOutstanding},
	} {
		m, err := domain.ParseMoney(field.raw)
		if err != nil {
			return nil, fmt.Errorf("billing statistics for %s: %w", patientCedula, err)
		}
		*field.dest = m
	}
	return stats, nil
}

// FindOverduePending finds PENDING invoices whose due date has passed. Lines
// are not loaded; the sweep only needs the invoice head.
func (r *InvoiceRepository) FindOverduePending(ctx context.Context, asOf time.Time, limit int) ([]*domain.Invoice, error) {
	query := `
		SELECT invoice_number, patient_cedula, billing_date, due_date,
		       total_amount::text, copayment_amount::text,
		       insurance_coverage::text, patient_responsibility::text,
		       status, notes
		FROM invoices
		WHERE status = 'PENDING'
		  AND due_date < $1
		ORDER BY due_date ASC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("query overdue invoices: %w", err)
	}
	models, err := pgx.CollectRows(rows, collectInvoice)
	if err != nil {
		return nil, fmt.Errorf("scan overdue invoices: %w", err)
	}

	invoices := make([]*domain.Invoice, 0, len(models))
	for _, m := range models {
		invoice, err := toDomainInvoice(m, nil)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, invoice *domain.Invoice) error {
	query := `UPDATE invoices SET status = $1 WHERE invoice_number = $2`

	result, err := r.q.Exec(ctx, query, string(invoice.Status), invoice.InvoiceNumber)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoice.InvoiceNumber, application.ErrNotFound)
	}
	return nil
}

// findLines loads the lines of the given invoices, keyed by invoice number.
func (r *InvoiceRepository) findLines(ctx context.Context, invoiceNumbers []string) (map[string][]InvoiceLineModel, error) {
	query := `
		SELECT invoice_number, order_id, category, item_name, unit_cost::text, quantity
		FROM invoice_lines
		WHERE invoice_number = ANY($1)
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, query, invoiceNumbers)
	if err != nil {
		return nil, fmt.Errorf("query invoice lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (InvoiceLineModel, error) {
		var l InvoiceLineModel
		err := row.Scan(&l.InvoiceNumber, &l.OrderID, &l.Category, &l.ItemName, &l.UnitCost, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan invoice lines: %w", err)
	}

	byInvoice := make(map[string][]InvoiceLineModel, len(invoiceNumbers))
	for _, l := range lines {
		byInvoice[l.InvoiceNumber] = append(byInvoice[l.InvoiceNumber], l)
	}
	return byInvoice, nil
}

func collectInvoice(row pgx.CollectableRow) (InvoiceModel, error) {
	var m InvoiceModel
	err := row.Scan(
		&m.InvoiceNumber, &m.PatientCedula, &m.BillingDate, &m.DueDate,
		&m.TotalAmount, &m.CopaymentAmount, &m.InsuranceCoverage, &m.PatientResponsibility,
		&m.Status, &m.Notes,
	)
	return m, err
}

// scanInvoice converts a database row into an invoice model.
// Returns ErrNotFound if the row doesn't exist.
func scanInvoice(row pgx.Row) (InvoiceModel, error) {
	var m InvoiceModel
	err := row.Scan(
		&m.InvoiceNumber, &m.PatientCedula, &m.BillingDate, &m.DueDate,
		&m.TotalAmount, &m.CopaymentAmount, &m.InsuranceCoverage, &m.PatientResponsibility,
		&m.Status, &m.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InvoiceModel{}, fmt.Errorf("invoice: %w", application.ErrNotFound)
		}
		return InvoiceModel{}, fmt.Errorf("failed to scan invoice: %w", err)
	}
	return m, nil
}
