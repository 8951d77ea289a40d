package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/domain/user"
	"coursegate/internal/infrastructure/persistence/models"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.EntitlementDefinitionModel{},
		&models.UserEntitlementModel{},
	)
	require.NoError(t, err)

	return db
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (n noopLogger) With(args ...any) logger.Interface             { return n }
func (n noopLogger) Named(name string) logger.Interface            { return n }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func createTestUser(t *testing.T, repo user.Repository, id string) *user.User {
	t.Helper()
	u, err := user.NewUser(id, id+"@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Ensure(context.Background(), u))
	return u
}

func createTestDefinition(t *testing.T, repo entitlement.DefinitionRepository, slug string) *entitlement.Definition {
	t.Helper()
	def, err := entitlement.NewDefinition(slug, entitlement.KindForSlug(slug))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), def))
	return def
}

func TestUserRepository_EnsureIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noopLogger{})
	ctx := context.Background()

	u, err := user.NewUser("auth0|user-1", "user@example.com")
	require.NoError(t, err)

	require.NoError(t, repo.Ensure(ctx, u))
	require.NoError(t, repo.Ensure(ctx, u), "second ensure must not fail")

	found, err := repo.GetByID(ctx, "auth0|user-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user@example.com", found.Email())
}

func TestUserRepository_GetByIDMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noopLogger{})

	found, err := repo.GetByID(context.Background(), "auth0|nobody")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepository_AttachCustomerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noopLogger{})
	ctx := context.Background()

	createTestUser(t, repo, "auth0|user-1")

	require.NoError(t, repo.AttachCustomerID(ctx, "auth0|user-1", "cus_1"))

	found, err := repo.GetByCustomerID(ctx, "cus_1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "auth0|user-1", found.ID())

	t.Run("same customer again is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.AttachCustomerID(ctx, "auth0|user-1", "cus_1"))
	})

	t.Run("different customer is a conflict", func(t *testing.T) {
		err := repo.AttachCustomerID(ctx, "auth0|user-1", "cus_2")
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		err := repo.AttachCustomerID(ctx, "auth0|nobody", "cus_3")
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestEntitlementDefinitionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntitlementDefinitionRepository(db, noopLogger{})
	ctx := context.Background()

	def := createTestDefinition(t, repo, "course:go-basics")
	assert.NotZero(t, def.ID())
	assert.Equal(t, entitlement.KindCourse, def.Kind())

	found, err := repo.GetBySlug(ctx, "course:go-basics")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, def.ID(), found.ID())

	missing, err := repo.GetBySlug(ctx, "course:nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	t.Run("duplicate slug is a conflict", func(t *testing.T) {
		dup, err := entitlement.NewDefinition("course:go-basics", entitlement.KindCourse)
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestUserEntitlementRepository_UpsertConverges(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, noopLogger{})
	defRepo := NewEntitlementDefinitionRepository(db, noopLogger{})
	recordRepo := NewUserEntitlementRepository(db, noopLogger{})
	ctx := context.Background()

	createTestUser(t, userRepo, "auth0|user-1")
	def := createTestDefinition(t, defRepo, "membership:monthly")

	first, err := entitlement.NewRecord("auth0|user-1", def.ID(), entitlement.StatusActive, entitlement.SourceStripe)
	require.NoError(t, err)
	first.SetMetadata("subscription_id", "sub_1")
	require.NoError(t, recordRepo.Upsert(ctx, first))
	assert.NotZero(t, first.ID())

	// Re-apply for the same pair with a different status: one row, updated
	// in place.
	second, err := entitlement.NewRecord("auth0|user-1", def.ID(), entitlement.StatusPastDue, entitlement.SourceStripe)
	require.NoError(t, err)
	require.NoError(t, recordRepo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.UserEntitlementModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	found, err := recordRepo.Get(ctx, "auth0|user-1", def.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entitlement.StatusPastDue, found.Status())
	assert.Equal(t, first.ID(), found.ID())
}

func TestUserEntitlementRepository_GetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	recordRepo := NewUserEntitlementRepository(db, noopLogger{})

	found, err := recordRepo.Get(context.Background(), "auth0|user-1", 99)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserEntitlementRepository_ListActiveSlugs(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, noopLogger{})
	defRepo := NewEntitlementDefinitionRepository(db, noopLogger{})
	recordRepo := NewUserEntitlementRepository(db, noopLogger{})
	ctx := context.Background()

	createTestUser(t, userRepo, "auth0|user-1")
	active := createTestDefinition(t, defRepo, "course:go-basics")
	lapsed := createTestDefinition(t, defRepo, "membership:monthly")

	activeRec, err := entitlement.NewRecord("auth0|user-1", active.ID(), entitlement.StatusActive, entitlement.SourceStripe)
	require.NoError(t, err)
	require.NoError(t, recordRepo.Upsert(ctx, activeRec))

	lapsedRec, err := entitlement.NewRecord("auth0|user-1", lapsed.ID(), entitlement.StatusCanceled, entitlement.SourceStripe)
	require.NoError(t, err)
	require.NoError(t, recordRepo.Upsert(ctx, lapsedRec))

	slugs, err := recordRepo.ListActiveSlugs(ctx, "auth0|user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"course:go-basics"}, slugs, "only active records surface")

	slugs, err = recordRepo.ListActiveSlugs(ctx, "auth0|other")
	require.NoError(t, err)
	assert.Empty(t, slugs)
}

func TestUserEntitlementRepository_MetadataRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db, noopLogger{})
	defRepo := NewEntitlementDefinitionRepository(db, noopLogger{})
	recordRepo := NewUserEntitlementRepository(db, noopLogger{})
	ctx := context.Background()

	createTestUser(t, userRepo, "auth0|user-1")
	def := createTestDefinition(t, defRepo, "course:sql")

	rec, err := entitlement.NewRecord("auth0|user-1", def.ID(), entitlement.StatusActive, entitlement.SourceStripe)
	require.NoError(t, err)
	rec.SetMetadata("last_event_type", "checkout.session.completed")
	require.NoError(t, recordRepo.Upsert(ctx, rec))

	found, err := recordRepo.Get(ctx, "auth0|user-1", def.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "checkout.session.completed", found.Metadata()["last_event_type"])
	assert.Equal(t, entitlement.SourceStripe, found.Source())
}
