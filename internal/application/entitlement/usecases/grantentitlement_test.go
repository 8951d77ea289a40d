package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/shared/errors"
)

func courseDefinition(t *testing.T, id uint, slug string) *entitlement.Definition {
	t.Helper()
	def, err := entitlement.ReconstructDefinition(id, slug, entitlement.KindCourse, time.Now().UTC())
	require.NoError(t, err)
	return def
}

func TestGrantEntitlementUseCase_FirstGrantInsertsRecord(t *testing.T) {
	def := courseDefinition(t, 7, "course:go-basics")

	var upserted *entitlement.Record
	defRepo := &mockDefinitionRepo{
		GetBySlugFunc: func(ctx context.Context, slug string) (*entitlement.Definition, error) {
			assert.Equal(t, "course:go-basics", slug)
			return def, nil
		},
	}
	recordRepo := &mockRecordRepo{
		UpsertFunc: func(ctx context.Context, record *entitlement.Record) error {
			upserted = record
			return nil
		},
	}

	uc := NewGrantEntitlementUseCase(defRepo, &mockUserRepo{}, recordRepo, &mockLogger{})

	err := uc.Execute(context.Background(), GrantEntitlementCommand{
		UserID:          "auth0|user-1",
		Email:           "user@example.com",
		EntitlementSlug: "course:go-basics",
		Status:          entitlement.StatusActive,
		Metadata:        map[string]any{"last_event_type": "checkout.session.completed"},
	})

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, "auth0|user-1", upserted.UserID())
	assert.Equal(t, uint(7), upserted.EntitlementID())
	assert.Equal(t, entitlement.StatusActive, upserted.Status())
	assert.Equal(t, entitlement.SourceStripe, upserted.Source())
	assert.Equal(t, "checkout.session.completed", upserted.Metadata()["last_event_type"])
}

func TestGrantEntitlementUseCase_RepeatGrantUpdatesStatusInPlace(t *testing.T) {
	def := courseDefinition(t, 7, "membership:monthly")

	existing, err := entitlement.ReconstructRecord(
		11, "auth0|user-1", 7, entitlement.StatusActive, nil,
		entitlement.SourceStripe, nil, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)

	var upserted *entitlement.Record
	defRepo := &mockDefinitionRepo{
		GetBySlugFunc: func(ctx context.Context, slug string) (*entitlement.Definition, error) {
			return def, nil
		},
	}
	recordRepo := &mockRecordRepo{
		GetFunc: func(ctx context.Context, userID string, entitlementID uint) (*entitlement.Record, error) {
			return existing, nil
		},
		UpsertFunc: func(ctx context.Context, record *entitlement.Record) error {
			upserted = record
			return nil
		},
	}

	uc := NewGrantEntitlementUseCase(defRepo, &mockUserRepo{}, recordRepo, &mockLogger{})

	err = uc.Execute(context.Background(), GrantEntitlementCommand{
		UserID:          "auth0|user-1",
		EntitlementSlug: "membership:monthly",
		Status:          entitlement.StatusPastDue,
	})

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, uint(11), upserted.ID(), "existing row is updated, not replaced")
	assert.Equal(t, entitlement.StatusPastDue, upserted.Status())
}

func TestGrantEntitlementUseCase_Idempotent(t *testing.T) {
	def := courseDefinition(t, 3, "course:sql")

	var stored *entitlement.Record
	defRepo := &mockDefinitionRepo{
		GetBySlugFunc: func(ctx context.Context, slug string) (*entitlement.Definition, error) {
			return def, nil
		},
	}
	recordRepo := &mockRecordRepo{
		GetFunc: func(ctx context.Context, userID string, entitlementID uint) (*entitlement.Record, error) {
			return stored, nil
		},
		UpsertFunc: func(ctx context.Context, record *entitlement.Record) error {
			stored = record
			return nil
		},
	}

	uc := NewGrantEntitlementUseCase(defRepo, &mockUserRepo{}, recordRepo, &mockLogger{})

	cmd := GrantEntitlementCommand{
		UserID:          "auth0|user-1",
		EntitlementSlug: "course:sql",
		Status:          entitlement.StatusActive,
	}

	require.NoError(t, uc.Execute(context.Background(), cmd))
	first := stored
	require.NoError(t, uc.Execute(context.Background(), cmd))

	assert.Equal(t, first.Status(), stored.Status())
	assert.Equal(t, first.UserID(), stored.UserID())
	assert.Equal(t, first.EntitlementID(), stored.EntitlementID())
}

func TestGrantEntitlementUseCase_UnknownSlugIsValidationError(t *testing.T) {
	defRepo := &mockDefinitionRepo{
		GetBySlugFunc: func(ctx context.Context, slug string) (*entitlement.Definition, error) {
			return nil, nil
		},
	}

	uc := NewGrantEntitlementUseCase(defRepo, &mockUserRepo{}, &mockRecordRepo{}, &mockLogger{})

	err := uc.Execute(context.Background(), GrantEntitlementCommand{
		UserID:          "auth0|user-1",
		EntitlementSlug: "course:does-not-exist",
		Status:          entitlement.StatusActive,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestGrantEntitlementUseCase_InvalidStatusRejected(t *testing.T) {
	uc := NewGrantEntitlementUseCase(&mockDefinitionRepo{}, &mockUserRepo{}, &mockRecordRepo{}, &mockLogger{})

	err := uc.Execute(context.Background(), GrantEntitlementCommand{
		UserID:          "auth0|user-1",
		EntitlementSlug: "course:go-basics",
		Status:          entitlement.Status("incomplete"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestGrantEntitlementUseCase_StoreFailureIsUpstreamError(t *testing.T) {
	def := courseDefinition(t, 7, "course:go-basics")

	defRepo := &mockDefinitionRepo{
		GetBySlugFunc: func(ctx context.Context, slug string) (*entitlement.Definition, error) {
			return def, nil
		},
	}
	recordRepo := &mockRecordRepo{
		UpsertFunc: func(ctx context.Context, record *entitlement.Record) error {
			return fmt.Errorf("connection refused")
		},
	}

	uc := NewGrantEntitlementUseCase(defRepo, &mockUserRepo{}, recordRepo, &mockLogger{})

	err := uc.Execute(context.Background(), GrantEntitlementCommand{
		UserID:          "auth0|user-1",
		EntitlementSlug: "course:go-basics",
		Status:          entitlement.StatusActive,
	})

	require.Error(t, err)
	assert.True(t, errors.IsUpstreamError(err))
}
