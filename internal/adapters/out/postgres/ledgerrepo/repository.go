package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/domain/model/ledger"
	"carrycampus/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolationCode = "23505"

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTransactionRepository implements TransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormTransactionRepository creates a new GORM ledger transaction repository.
func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ledger entry. A second entry for the same delivery request
// trips the unique index, so even a bug that slipped past the status
// compare-and-swap cannot record a double settlement.
func (r *GormTransactionRepository) Add(ctx context.Context, aggregate *ledger.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("request already has a settlement", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a transaction by ID.
func (r *GormTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*ledger.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("transaction", id.String())
		}
		return nil, err
	}

	return transactionToDomain(dto)
}

// CompareAndSwapStatus flips the transaction's status to next only if the
// stored row still carries the expected status. Same contract as the request
// repository's conditional write: zero affected rows means another caller got
// there first.
func (r *GormTransactionRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	next ledger.TransactionStatus,
	expected ledger.TransactionStatus,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TransactionDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(expected)).
		Update("status", int(next))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("transaction already settled")
	}

	return nil
}

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// Credit adds amount to both counters of the user's wallet, inserting the
// row when none exists. The accumulation happens inside the upsert's UPDATE
// expression against the stored values, never against values read earlier,
// so concurrent credits for the same user compose additively.
func (r *GormWalletRepository) Credit(ctx context.Context, userID kernel.UUID, amount int) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("credit amount", amount, 1, nil)
	}

	dto := WalletDTO{
		UserID:        userID.Bytes(),
		Balance:       amount,
		TotalEarnings: amount,
		LastUpdated:   time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance":        gorm.Expr("wallets.balance + excluded.balance"),
				"total_earnings": gorm.Expr("wallets.total_earnings + excluded.total_earnings"),
				"last_updated":   gorm.Expr("excluded.last_updated"),
			}),
		}).
		Create(&dto).Error
}

// Get retrieves a user's wallet. Reading never creates a row; a user who has
// never been credited gets NotFoundError and the caller decides how to
// present the empty wallet.
func (r *GormWalletRepository) Get(ctx context.Context, userID kernel.UUID) (*ledger.Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("wallet", userID.String())
		}
		return nil, err
	}

	return walletToDomain(dto)
}

// isUniqueViolation reports whether err is a postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
