package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursegate/internal/domain/user"
	"coursegate/internal/infrastructure/persistence/models"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

// UserRepositoryImpl implements the user.Repository interface
type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// GetByID returns the user with the given identity provider id, or nil.
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserDomain(&model)
}

// GetByCustomerID resolves the user linked to a payment provider customer.
func (r *UserRepositoryImpl) GetByCustomerID(ctx context.Context, customerID string) (*user.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by customer id", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get user by customer id: %w", err)
	}
	return toUserDomain(&model)
}

// Ensure creates the user row if it does not exist. Safe under concurrent
// invocation: the insert does nothing on conflict with the primary key.
func (r *UserRepositoryImpl) Ensure(ctx context.Context, u *user.User) error {
	model := &models.UserModel{
		ID:        u.ID(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
	if customerID, ok := u.CustomerID(); ok {
		model.CustomerID = &customerID
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to ensure user", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

// AttachCustomerID persists the one-time customer linkage. The guarded update
// only succeeds while the column is still empty, so the first writer wins.
func (r *UserRepositoryImpl) AttachCustomerID(ctx context.Context, userID, customerID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ? AND (customer_id IS NULL OR customer_id = '')", userID).
		Update("customer_id", customerID)
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("customer already linked to another user")
		}
		r.logger.Errorw("failed to attach customer id",
			"user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to attach customer id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		existing, err := r.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return errors.NewNotFoundError("user not found")
		}
		if linked, ok := existing.CustomerID(); ok && linked == customerID {
			return nil
		}
		return errors.NewConflictError("user already linked to a different customer")
	}

	r.logger.Infow("customer linked to user", "user_id", userID)
	return nil
}

func toUserDomain(model *models.UserModel) (*user.User, error) {
	u, err := user.ReconstructUser(model.ID, model.Email, model.CustomerID, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user: %w", err)
	}
	return u, nil
}
