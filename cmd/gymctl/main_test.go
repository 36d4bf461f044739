package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/domain"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPermissionsCmd(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantRoles []domain.Role
		contains  []string
		excludes  []string
		wantErr   error
	}{
		{
			name:      "all roles",
			wantRoles: domain.Roles(),
			contains:  []string{"ROLE", "PERMISSIONS", "UNLOCK_STAFF"},
		},
		{
			name:      "single role is case insensitive",
			args:      []string{"instructor"},
			wantRoles: []domain.Role{domain.RoleInstructor},
			contains:  []string{"CREATE_CHECKIN"},
			excludes:  []string{"ADMIN", "CREATE_STUDENT", "UNLOCK_STAFF"},
		},
		{
			name:    "unknown role",
			args:    []string{"janitor"},
			wantErr: domain.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, permissionsCmd(), tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, out)
				return
			}
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, len(tt.wantRoles)+1)
			for i, role := range tt.wantRoles {
				require.True(t, strings.HasPrefix(lines[i+1], string(role)+" "), lines[i+1])
			}
			for _, s := range tt.contains {
				require.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestHashPasswordCmd(t *testing.T) {
	out, err := runCommand(t, hashPasswordCmd(), "--cost", "4", "segredo123")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo123")))
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost, cost)

	_, err = runCommand(t, hashPasswordCmd(), "--cost", "99", "segredo123")
	require.Error(t, err)
}

func TestConnectRequiresDSN(t *testing.T) {
	_, err := connect(context.Background(), &config.Config{}, zap.NewNop())
	require.ErrorContains(t, err, "DSN is required")
}
