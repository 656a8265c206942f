package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm/strata/pkg/database"
)

func TestExitCode(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", cause, ExitGeneral},
		{"config", ConfigError("loading config", cause), ExitConfig},
		{"connect", DBConnectError("connecting", cause), ExitDBConnect},
		{"wrapped exit error", fmt.Errorf("running: %w", GeneralError("x", cause)), ExitGeneral},
		{"query error", &database.QueryError{Statement: "SELECT 1", Err: cause}, ExitQuery},
		{"explicit query", QueryError("status", cause), ExitQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	assert.Equal(t, "connecting: boom", DBConnectError("connecting", errors.New("boom")).Error())
	assert.Equal(t, "bad flags", GeneralError("bad flags", nil).Error())
}
