//go:build unit

package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsOverlapViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "exclusion constraint violation",
			err:  &pgconn.PgError{Code: pgErrCodeExclusionViolation, ConstraintName: "reservations_no_overlap"},
			want: true,
		},
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: pgErrCodeUniqueViolation},
			want: true,
		},
		{
			name: "wrapped exclusion violation",
			err:  errors.Join(errors.New("insert failed"), &pgconn.PgError{Code: pgErrCodeExclusionViolation}),
			want: true,
		},
		{
			name: "check violation is not an overlap",
			err:  &pgconn.PgError{Code: pgErrCodeCheckViolation},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isOverlapViolation(tt.err))
		})
	}
}
