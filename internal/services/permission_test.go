package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dimitrije/frame-nest/internal/database"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOwner   = models.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	testWallet1 = models.Principal("ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5")
)

var permissionColumns = []string{"collection_id", "grantee", "can_view", "can_edit", "updated_by", "updated_at"}

const authorizeQuery = `SELECT c.owner, .+ FROM collections c LEFT JOIN collection_permissions p`

func setupPermissionService(t *testing.T) (*PermissionService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewPermissionService(db), mock
}

func expectAuthorize(mock pgxmock.PgxPoolIface, collectionID int64, caller models.Principal, owner models.Principal, canView, canEdit bool) {
	mock.ExpectQuery(authorizeQuery).
		WithArgs(collectionID, string(caller)).
		WillReturnRows(pgxmock.NewRows([]string{"owner", "can_view", "can_edit"}).AddRow(owner, canView, canEdit))
}

func expectAuthorizeMissing(mock pgxmock.PgxPoolIface, collectionID int64, caller models.Principal) {
	mock.ExpectQuery(authorizeQuery).
		WithArgs(collectionID, string(caller)).
		WillReturnError(pgx.ErrNoRows)
}

func TestPermissionService_Authorize(t *testing.T) {
	testCases := []struct {
		name     string
		caller   models.Principal
		canView  bool
		canEdit  bool
		access   models.Access
		expected error
	}{
		{"owner view", testOwner, false, false, models.AccessView, nil},
		{"owner edit", testOwner, false, false, models.AccessEdit, nil},
		{"owner owner", testOwner, false, false, models.AccessOwner, nil},
		{"no grant view", testWallet1, false, false, models.AccessView, ErrUnauthorized},
		{"view grant view", testWallet1, true, false, models.AccessView, nil},
		{"view grant edit", testWallet1, true, false, models.AccessEdit, ErrUnauthorized},
		{"edit grant edit", testWallet1, false, true, models.AccessEdit, nil},
		{"edit grant view", testWallet1, false, true, models.AccessView, nil},
		{"full grant owner", testWallet1, true, true, models.AccessOwner, ErrUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock := setupPermissionService(t)
			expectAuthorize(mock, 1, tc.caller, testOwner, tc.canView, tc.canEdit)

			err := svc.Authorize(context.Background(), 1, tc.caller, tc.access)

			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPermissionService_Authorize_CollectionNotFound(t *testing.T) {
	svc, mock := setupPermissionService(t)
	expectAuthorizeMissing(mock, 5, testOwner)

	err := svc.Authorize(context.Background(), 5, testOwner, models.AccessView)

	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestPermissionService_Authorize_DBError(t *testing.T) {
	svc, mock := setupPermissionService(t)
	mock.ExpectQuery(authorizeQuery).
		WithArgs(int64(1), string(testOwner)).
		WillReturnError(errors.New("boom"))

	err := svc.Authorize(context.Background(), 1, testOwner, models.AccessView)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCollectionNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestPermissionService_Set(t *testing.T) {
	svc, mock := setupPermissionService(t)
	now := time.Now()

	expectAuthorize(mock, 1, testOwner, testOwner, false, false)
	mock.ExpectQuery(`INSERT INTO collection_permissions .+ ON CONFLICT \(collection_id, grantee\) DO UPDATE`).
		WithArgs(int64(1), string(testWallet1), true, false, string(testOwner)).
		WillReturnRows(pgxmock.NewRows(permissionColumns).AddRow(int64(1), testWallet1, true, false, testOwner, now))

	perm, err := svc.Set(context.Background(), 1, testWallet1, true, false, testOwner)

	require.NoError(t, err)
	assert.True(t, perm.CanView)
	assert.False(t, perm.CanEdit)
	assert.Equal(t, testWallet1, perm.Grantee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_Set_NotOwner(t *testing.T) {
	svc, mock := setupPermissionService(t)

	// even a grantee with edit access cannot change grants
	expectAuthorize(mock, 1, testWallet1, testOwner, true, true)

	_, err := svc.Set(context.Background(), 1, testWallet1, true, true, testWallet1)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_Set_CollectionNotFound(t *testing.T) {
	svc, mock := setupPermissionService(t)
	expectAuthorizeMissing(mock, 42, testOwner)

	_, err := svc.Set(context.Background(), 42, testWallet1, true, false, testOwner)

	assert.ErrorIs(t, err, ErrCollectionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_Set_InvalidArguments(t *testing.T) {
	svc, mock := setupPermissionService(t)

	_, err := svc.Set(context.Background(), 0, testWallet1, true, false, testOwner)
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	_, err = svc.Set(context.Background(), 1, "not valid", true, false, testOwner)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_Get(t *testing.T) {
	svc, mock := setupPermissionService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM collection_permissions WHERE collection_id = .+ AND grantee`).
		WithArgs(int64(1), string(testWallet1)).
		WillReturnRows(pgxmock.NewRows(permissionColumns).AddRow(int64(1), testWallet1, true, false, testOwner, now))

	perm, err := svc.Get(context.Background(), 1, testWallet1)

	require.NoError(t, err)
	require.NotNil(t, perm)
	assert.True(t, perm.CanView)
	assert.False(t, perm.CanEdit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_Get_None(t *testing.T) {
	svc, mock := setupPermissionService(t)

	mock.ExpectQuery(`SELECT .+ FROM collection_permissions WHERE collection_id = .+ AND grantee`).
		WithArgs(int64(1), string(testWallet1)).
		WillReturnError(pgx.ErrNoRows)

	perm, err := svc.Get(context.Background(), 1, testWallet1)

	assert.NoError(t, err)
	assert.Nil(t, perm)
}

func TestPermissionService_Set_Overwrite(t *testing.T) {
	svc, mock := setupPermissionService(t)
	ctx := context.Background()
	now := time.Now()

	expectAuthorize(mock, 1, testOwner, testOwner, false, false)
	mock.ExpectQuery(`INSERT INTO collection_permissions`).
		WithArgs(int64(1), string(testWallet1), true, false, string(testOwner)).
		WillReturnRows(pgxmock.NewRows(permissionColumns).AddRow(int64(1), testWallet1, true, false, testOwner, now))
	expectAuthorize(mock, 1, testOwner, testOwner, false, false)
	mock.ExpectQuery(`INSERT INTO collection_permissions`).
		WithArgs(int64(1), string(testWallet1), false, true, string(testOwner)).
		WillReturnRows(pgxmock.NewRows(permissionColumns).AddRow(int64(1), testWallet1, false, true, testOwner, now))

	_, err := svc.Set(ctx, 1, testWallet1, true, false, testOwner)
	require.NoError(t, err)
	perm, err := svc.Set(ctx, 1, testWallet1, false, true, testOwner)
	require.NoError(t, err)

	assert.False(t, perm.CanView)
	assert.True(t, perm.CanEdit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_List(t *testing.T) {
	svc, mock := setupPermissionService(t)
	now := time.Now()

	expectAuthorize(mock, 1, testOwner, testOwner, false, false)
	mock.ExpectQuery(`SELECT .+ FROM collection_permissions WHERE collection_id = .+ ORDER BY grantee`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(permissionColumns).
			AddRow(int64(1), testWallet1, true, false, testOwner, now).
			AddRow(int64(1), models.Principal("wallet_2"), true, true, testOwner, now))

	perms, err := svc.List(context.Background(), 1, testOwner)

	require.NoError(t, err)
	assert.Len(t, perms, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionService_List_NotOwner(t *testing.T) {
	svc, mock := setupPermissionService(t)
	expectAuthorize(mock, 1, testWallet1, testOwner, true, false)

	_, err := svc.List(context.Background(), 1, testWallet1)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}
