package usecases

import (
	"context"
	"time"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/shared/logger"
)

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

type mockAccessChecker struct {
	ExecuteFunc func(ctx context.Context, userID, accessTag string) (bool, error)
}

func (m *mockAccessChecker) Execute(ctx context.Context, userID, accessTag string) (bool, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, userID, accessTag)
	}
	return false, nil
}

type mockSigner struct {
	SignFunc func(assetID string) (string, time.Time, error)
	Signed   []string
}

func (m *mockSigner) Sign(assetID string) (string, time.Time, error) {
	m.Signed = append(m.Signed, assetID)
	if m.SignFunc != nil {
		return m.SignFunc(assetID)
	}
	return "signed-token", time.Now().Add(time.Hour), nil
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
