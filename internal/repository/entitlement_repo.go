package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"oneflex/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EntitlementFields is the merge set of an entitlement record: every column
// except the account key. Writing with all of them is a full overwrite.
var EntitlementFields = []string{
	"email",
	"plan_id",
	"plan_name",
	"amount_paid",
	"currency",
	"phone_number",
	"payment_reference",
	"status",
	"is_active",
	"starts_at",
	"expires_at",
	"updated_at",
}

// ErrUnknownField is returned when a merge field is not part of EntitlementFields.
var ErrUnknownField = errors.New("unknown entitlement field")

// EntitlementRepository stores at most one entitlement record per account.
type EntitlementRepository interface {
	// Get returns nil, nil when the account has no record.
	Get(ctx context.Context, accountID string) (*model.Entitlement, error)
	// Put inserts the record or, when one exists, overwrites the given fields.
	// With no fields, every field in EntitlementFields is overwritten.
	Put(ctx context.Context, e *model.Entitlement, mergeFields ...string) error
	// List returns all records, most recent purchase first.
	List(ctx context.Context) ([]model.Entitlement, error)
}

type entitlementRepo struct {
	pool *pgxpool.Pool
}

// NewEntitlementRepo creates a Postgres-backed EntitlementRepository.
func NewEntitlementRepo(pool *pgxpool.Pool) EntitlementRepository {
	return &entitlementRepo{pool: pool}
}

const entitlementColumns = `account_id, email, plan_id, plan_name, amount_paid, currency, phone_number,
               payment_reference, status, is_active, starts_at, expires_at, updated_at`

func (r *entitlementRepo) Get(ctx context.Context, accountID string) (*model.Entitlement, error) {
	q := `
        SELECT ` + entitlementColumns + `
        FROM entitlements
        WHERE account_id = $1
    `
	e, err := scanEntitlement(r.pool.QueryRow(ctx, q, accountID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch entitlement for account %s: %w", accountID, err)
	}
	return e, nil
}

func (r *entitlementRepo) Put(ctx context.Context, e *model.Entitlement, mergeFields ...string) error {
	fields, err := resolveMergeFields(mergeFields)
	if err != nil {
		return err
	}
	sets := make([]string, 0, len(fields))
	for _, f := range fields {
		sets = append(sets, f+" = EXCLUDED."+f)
	}
	q := `
        INSERT INTO entitlements (` + entitlementColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (account_id) DO UPDATE
        SET ` + strings.Join(sets, ",\n            ")

	_, err = r.pool.Exec(ctx, q,
		e.AccountID,
		e.Email,
		e.PlanID,
		e.PlanName,
		e.AmountPaid,
		e.Currency,
		e.PhoneNumber,
		e.PaymentReference,
		string(e.Status),
		e.IsActive,
		e.StartsAt,
		e.ExpiresAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert entitlement for account %s: %w", e.AccountID, err)
	}
	return nil
}

func (r *entitlementRepo) List(ctx context.Context) ([]model.Entitlement, error) {
	q := `
        SELECT ` + entitlementColumns + `
        FROM entitlements
        ORDER BY starts_at DESC
    `
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}
	defer rows.Close()

	var out []model.Entitlement
	for rows.Next() {
		e, err := scanEntitlement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entitlement: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entitlements: %w", err)
	}
	return out, nil
}

func scanEntitlement(row pgx.Row) (*model.Entitlement, error) {
	var e model.Entitlement
	var status string
	err := row.Scan(
		&e.AccountID,
		&e.Email,
		&e.PlanID,
		&e.PlanName,
		&e.AmountPaid,
		&e.Currency,
		&e.PhoneNumber,
		&e.PaymentReference,
		&status,
		&e.IsActive,
		&e.StartsAt,
		&e.ExpiresAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = model.EntitlementStatus(status)
	return &e, nil
}

// resolveMergeFields validates the requested fields and drops repeats,
// keeping first-seen order. No fields means every field.
func resolveMergeFields(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return EntitlementFields, nil
	}
	known := make(map[string]struct{}, len(EntitlementFields))
	for _, k := range EntitlementFields {
		known[k] = struct{}{}
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := known[f]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

// mergeEntitlement copies the named fields from src into dst.
func mergeEntitlement(dst, src *model.Entitlement, fields []string) {
	for _, f := range fields {
		switch f {
		case "email":
			dst.Email = src.Email
		case "plan_id":
			dst.PlanID = src.PlanID
		case "plan_name":
			dst.PlanName = src.PlanName
		case "amount_paid":
			dst.AmountPaid = src.AmountPaid
		case "currency":
			dst.Currency = src.Currency
		case "phone_number":
			dst.PhoneNumber = src.PhoneNumber
		case "payment_reference":
			dst.PaymentReference = src.PaymentReference
		case "status":
			dst.Status = src.Status
		case "is_active":
			dst.IsActive = src.IsActive
		case "starts_at":
			dst.StartsAt = src.StartsAt
		case "expires_at":
			dst.ExpiresAt = src.ExpiresAt
		case "updated_at":
			dst.UpdatedAt = src.UpdatedAt
		}
	}
}
