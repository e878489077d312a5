package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_admin_dashboard/internal/testutil"
)

func TestOwnershipGuard_Authorize(t *testing.T) {
	s := setupServices(t)
	f := testutil.Seed(t, s.db, ownerID, "Main")

	tests := []struct {
		name    string
		userID  string
		storeID string
		wantErr error
	}{
		{"所有者", ownerID, f.Store.ID, nil},
		{"无身份", "", f.Store.ID, ErrUnauthenticated},
		{"非所有者", otherID, f.Store.ID, ErrUnauthorized},
		{"店铺不存在", ownerID, "missing", ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := s.guard.Authorize(bg, tt.userID, tt.storeID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, f.Store.ID, store.ID)
		})
	}
}
