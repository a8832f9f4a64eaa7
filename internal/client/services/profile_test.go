package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/client/session"
	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateValidation(t *testing.T) {
	ctx := context.Background()
	sm := session.NewManager(setupDB(t))
	client := &fakeClient{}
	svc := NewProfileService(client, sm)

	tests := []struct {
		name string
		user models.UserRecord
	}{
		{"empty name", models.UserRecord{Email: "a@b.com"}},
		{"bad email", models.UserRecord{Name: "X", Email: "nope"}},
		{"bad phone", models.UserRecord{Name: "X", Email: "a@b.com", Phone: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.user)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestProfileService_UpdateReconcilesSession(t *testing.T) {
	ctx := context.Background()
	sm := session.NewManager(setupDB(t))
	require.NoError(t, sm.Set(ctx, models.Session{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		User:         &models.UserRecord{ID: "u-1", Name: "Old Name", Email: "john@example.com"},
	}))
	svc := NewProfileService(&fakeClient{}, sm)

	updated, err := svc.Update(ctx, models.UserRecord{
		ID: "u-1", Name: "New Name", Email: "john@example.com", Phone: "+12025550147",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	cur := sm.Current()
	require.NotNil(t, cur.User)
	assert.Equal(t, "New Name", cur.User.Name)
	assert.Equal(t, "at-1", cur.AccessToken)
}
