package openapi_test

import (
	"context"
	"testing"

	"travelagency/internal/adapters/in/http/openapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := openapi.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Travel Agency API", doc.Info.Title)
	for _, path := range []string{
		"/api/users",
		"/api/users/login",
		"/api/users/{id}",
		"/api/orders",
		"/api/orders/my-orders",
		"/api/orders/{id}",
		"/api/orders/agent/{id}",
		"/api/orders/status/{id}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	status := doc.Components.Schemas["Status"].Value
	assert.Len(t, status.Enum, 5)
}
