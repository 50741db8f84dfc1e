package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "overview", path: "/api/v1/shops", want: "/api/v1/shops"},
		{name: "trailing slash", path: "/api/v1/shops/", want: "/api/v1/shops/"},
		{name: "filters", path: "/api/v1/shops/filters", want: "/api/v1/shops/filters"},
		{name: "export", path: "/api/v1/shops/export", want: "/api/v1/shops/export"},
		{name: "bulk export", path: "/api/v1/shops/export/bulk", want: "/api/v1/shops/export/bulk"},
		{name: "shop ledger", path: "/api/v1/shops/ACME SHOP/ledger", want: "/api/v1/shops/:shop/ledger"},
		{name: "shop ledger export", path: "/api/v1/shops/ACME SHOP/ledger/export", want: "/api/v1/shops/:shop/ledger/export"},
		{name: "bare shop", path: "/api/v1/shops/ACME SHOP", want: "/api/v1/shops/:shop"},
		{name: "unrelated", path: "/health", want: "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
