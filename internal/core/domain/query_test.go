package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.Pagination
		maxLimit int
		want     domain.Pagination
	}{
		{name: "valid passes through", in: domain.Pagination{Page: 2, Limit: 20}, maxLimit: 50, want: domain.Pagination{Page: 2, Limit: 20}},
		{name: "zero page clamps to first", in: domain.Pagination{Page: 0, Limit: 20}, maxLimit: 50, want: domain.Pagination{Page: 1, Limit: 20}},
		{name: "negative page clamps to first", in: domain.Pagination{Page: -3, Limit: 20}, maxLimit: 50, want: domain.Pagination{Page: 1, Limit: 20}},
		{name: "zero limit defaults", in: domain.Pagination{Page: 1, Limit: 0}, maxLimit: 50, want: domain.Pagination{Page: 1, Limit: 10}},
		{name: "oversized limit capped", in: domain.Pagination{Page: 1, Limit: 500}, maxLimit: 50, want: domain.Pagination{Page: 1, Limit: 50}},
		{name: "no cap when max unset", in: domain.Pagination{Page: 1, Limit: 500}, maxLimit: 0, want: domain.Pagination{Page: 1, Limit: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(tt.maxLimit))
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, domain.Pagination{Page: 5, Limit: 10}.Offset())
}
