package usecases

import (
	"context"

	"coursegate/internal/domain/user"
	"coursegate/internal/shared/logger"
)

type mockUserRepo struct {
	GetByIDFunc          func(ctx context.Context, id string) (*user.User, error)
	GetByCustomerIDFunc  func(ctx context.Context, customerID string) (*user.User, error)
	EnsureFunc           func(ctx context.Context, u *user.User) error
	AttachCustomerIDFunc func(ctx context.Context, userID, customerID string) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByCustomerID(ctx context.Context, customerID string) (*user.User, error) {
	if m.GetByCustomerIDFunc != nil {
		return m.GetByCustomerIDFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockUserRepo) Ensure(ctx context.Context, u *user.User) error {
	if m.EnsureFunc != nil {
		return m.EnsureFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) AttachCustomerID(ctx context.Context, userID, customerID string) error {
	if m.AttachCustomerIDFunc != nil {
		return m.AttachCustomerIDFunc(ctx, userID, customerID)
	}
	return nil
}

type mockGateway struct {
	CreateCustomerFunc        func(ctx context.Context, email, userID string) (string, error)
	CreateCheckoutSessionFunc func(ctx context.Context, params CheckoutSessionParams) (string, error)
	CreatePortalSessionFunc   func(ctx context.Context, customerID string) (string, error)

	CheckoutCalls []CheckoutSessionParams
}

func (m *mockGateway) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, email, userID)
	}
	return "cus_test", nil
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (string, error) {
	m.CheckoutCalls = append(m.CheckoutCalls, params)
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return "https://checkout.example.com/session", nil
}

func (m *mockGateway) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	if m.CreatePortalSessionFunc != nil {
		return m.CreatePortalSessionFunc(ctx, customerID)
	}
	return "https://billing.example.com/portal", nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
