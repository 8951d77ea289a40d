package usecases

import (
	"context"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/domain/user"
	"coursegate/internal/shared/logger"
)

type mockDefinitionRepo struct {
	GetBySlugFunc func(ctx context.Context, slug string) (*entitlement.Definition, error)
	CreateFunc    func(ctx context.Context, def *entitlement.Definition) error
	ListFunc      func(ctx context.Context) ([]*entitlement.Definition, error)
}

func (m *mockDefinitionRepo) GetBySlug(ctx context.Context, slug string) (*entitlement.Definition, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockDefinitionRepo) Create(ctx context.Context, def *entitlement.Definition) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, def)
	}
	return nil
}

func (m *mockDefinitionRepo) List(ctx context.Context) ([]*entitlement.Definition, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

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

type mockRecordRepo struct {
	GetFunc             func(ctx context.Context, userID string, entitlementID uint) (*entitlement.Record, error)
	UpsertFunc          func(ctx context.Context, record *entitlement.Record) error
	ListActiveSlugsFunc func(ctx context.Context, userID string) ([]string, error)
}

func (m *mockRecordRepo) Get(ctx context.Context, userID string, entitlementID uint) (*entitlement.Record, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, entitlementID)
	}
	return nil, nil
}

func (m *mockRecordRepo) Upsert(ctx context.Context, record *entitlement.Record) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, record)
	}
	return nil
}

func (m *mockRecordRepo) ListActiveSlugs(ctx context.Context, userID string) ([]string, error) {
	if m.ListActiveSlugsFunc != nil {
		return m.ListActiveSlugsFunc(ctx, userID)
	}
	return nil, nil
}

type mockGranter struct {
	ExecuteFunc func(ctx context.Context, cmd GrantEntitlementCommand) error
	Commands    []GrantEntitlementCommand
}

func (m *mockGranter) Execute(ctx context.Context, cmd GrantEntitlementCommand) error {
	m.Commands = append(m.Commands, cmd)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return nil
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
