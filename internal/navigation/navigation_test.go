package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik-mouad/iorecycling-sub000/internal/navigation"
)

func TestLandingForRoles(t *testing.T) {
	testCases := []struct {
		name  string
		roles []string
		want  string
	}{
		{"accounting outranks admin", []string{"COMPTABLE", "ADMIN"}, navigation.LandingAccounting},
		{"admin outranks client", []string{"CLIENT", "ADMIN"}, navigation.LandingAdmin},
		{"client only", []string{"CLIENT"}, navigation.LandingClient},
		{"accounting alone", []string{"COMPTABLE"}, navigation.LandingAccounting},
		{"order in the set does not matter", []string{"ADMIN", "COMPTABLE", "CLIENT"}, navigation.LandingAccounting},
		{"no roles defaults to client", nil, navigation.LandingClient},
		{"unknown role defaults to client", []string{"VISITOR"}, navigation.LandingClient},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, navigation.LandingForRoles(tc.roles))
		})
	}
}

func TestIsAuthenticatedArea(t *testing.T) {
	assert.True(t, navigation.IsAuthenticatedArea("/admin"))
	assert.True(t, navigation.IsAuthenticatedArea("/admin/societies"))
	assert.True(t, navigation.IsAuthenticatedArea("/accounting/sales"))
	assert.True(t, navigation.IsAuthenticatedArea("/client"))

	assert.False(t, navigation.IsAuthenticatedArea("/login"))
	assert.False(t, navigation.IsAuthenticatedArea("/"))
	assert.False(t, navigation.IsAuthenticatedArea("/administrator"))
}

func TestLookup(t *testing.T) {
	route, ok := navigation.Lookup("/admin/societies")
	require.True(t, ok)
	assert.Equal(t, "society", route.Resource)
	assert.Equal(t, "read", route.Action)

	_, ok = navigation.Lookup("/nowhere")
	assert.False(t, ok)
}

func TestRecorder(t *testing.T) {
	r := navigation.NewRecorder("http://127.0.0.1/login")

	assert.Equal(t, "/login", r.Current().Path)

	r.Navigate("http://127.0.0.1/admin")
	assert.Equal(t, "/admin", r.Current().Path)
	assert.Equal(t, []string{"http://127.0.0.1/admin"}, r.History())

	// ReplaceLocation moves the visible location without a navigation
	r.ReplaceLocation("http://127.0.0.1/admin?x=1")
	assert.Equal(t, "x=1", r.Current().RawQuery)
	assert.Len(t, r.History(), 1)
}
