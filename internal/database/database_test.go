package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/savvy/internal/database"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "Nil", err: nil, want: false},
		{name: "Plain", err: errors.New("boom"), want: false},
		{name: "Unique", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "Wrapped", err: fmt.Errorf("creating budget: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "OtherCode", err: &pgconn.PgError{Code: "23503"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, database.IsUniqueViolation(tt.err))
		})
	}
}
