package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/secopslab/secwatch/internal/mock"
	"github.com/secopslab/secwatch/models"
)

func writeLegacyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMigrateLegacyUsers_ImportsRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	ctx := context.Background()

	path := writeLegacyFile(t, "alice,$2a$10$hashA,admin\nbob,$2a$10$hashB,user\n")

	users.EXPECT().CreateUserIfAbsent(ctx, models.User{
		Username:     "alice",
		PasswordHash: "$2a$10$hashA",
		Role:         models.RoleAdmin,
	}).Return(int64(1), true, nil)
	users.EXPECT().CreateUserIfAbsent(ctx, models.User{
		Username:     "bob",
		PasswordHash: "$2a$10$hashB",
		Role:         models.RoleUser,
	}).Return(int64(2), true, nil)

	res, err := MigrateLegacyUsers(ctx, path, users)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 2}, res)
}

func TestMigrateLegacyUsers_MissingRoleDefaultsToUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	ctx := context.Background()

	path := writeLegacyFile(t, "carol,$2a$10$hashC\n")

	users.EXPECT().CreateUserIfAbsent(ctx, models.User{
		Username:     "carol",
		PasswordHash: "$2a$10$hashC",
		Role:         models.RoleUser,
	}).Return(int64(3), true, nil)

	res, err := MigrateLegacyUsers(ctx, path, users)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1}, res)
}

func TestMigrateLegacyUsers_SkipsExistingAndDropsMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	ctx := context.Background()

	path := writeLegacyFile(t, "alice,$2a$10$hashA,admin\n\njusta-username-no-comma\n,\n")

	users.EXPECT().CreateUserIfAbsent(ctx, gomock.Any()).Return(int64(0), false, nil)

	res, err := MigrateLegacyUsers(ctx, path, users)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1, Dropped: 2}, res)
}

func TestMigrateLegacyUsers_RerunNeverOverwrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	ctx := context.Background()

	path := writeLegacyFile(t, "alice,$2a$10$hashA,admin\n")

	// both runs go through the conditional insert; nothing is updated
	gomock.InOrder(
		users.EXPECT().CreateUserIfAbsent(ctx, gomock.Any()).Return(int64(1), true, nil),
		users.EXPECT().CreateUserIfAbsent(ctx, gomock.Any()).Return(int64(0), false, nil),
	)

	first, err := MigrateLegacyUsers(ctx, path, users)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1}, first)

	second, err := MigrateLegacyUsers(ctx, path, users)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1}, second)
}

func TestMigrateLegacyUsers_MissingFileIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)

	res, err := MigrateLegacyUsers(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), users)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}
