package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/library-console/internal/domain"
)

func staticChecker(name string, err error) CheckerFunc {
	return CheckerFunc{
		CheckName: name,
		Fn:        func(context.Context) error { return err },
	}
}

func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.Empty(t, registry.checkers)
}

func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(staticChecker("console", nil)))

	err := registry.Register(staticChecker("console", nil))

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "console")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name     string
		checkers []HealthChecker
		status   HealthStatus
	}{
		{
			name:   "no checkers is healthy",
			status: HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				staticChecker("console", nil),
				staticChecker("metrics", nil),
			},
			status: HealthStatusHealthy,
		},
		{
			name: "one failing makes the result unhealthy",
			checkers: []HealthChecker{
				staticChecker("console", errors.New("input closed")),
				staticChecker("metrics", nil),
			},
			status: HealthStatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.status, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
			assert.False(t, result.Timestamp.IsZero())
		})
	}
}

func TestCheckAll_ReportsFailureMessage(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(staticChecker("console", errors.New("input closed"))))

	result := registry.CheckAll(context.Background())

	require.Contains(t, result.Checks, "console")
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["console"].Status)
	assert.Equal(t, "input closed", result.Checks["console"].Message)
}

func TestSearchResult_Err(t *testing.T) {
	tests := []struct {
		name     string
		result   SearchResult
		notFound bool
	}{
		{
			name:   "match",
			result: SearchResult{Label: domain.LabelTitle, Key: "Dune", Book: domain.Book{Title: "Dune", Author: "Herbert"}, Found: true},
		},
		{
			name:     "miss",
			result:   SearchResult{Label: domain.LabelTitle, Key: "Emma"},
			notFound: true,
		},
		{
			name:     "empty catalog",
			result:   SearchResult{Label: domain.LabelAuthor, Key: "Austen", CatalogEmpty: true},
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Err()

			if !tt.notFound {
				assert.NoError(t, err)
				return
			}

			assert.True(t, domain.IsNotFound(err))

			var nf *domain.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, "book", nf.Entity)
			assert.Equal(t, tt.result.Key, nf.Key)
		})
	}
}
