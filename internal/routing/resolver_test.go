package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockforge/mockforge/pkg/definition"
)

func newFixture(t *testing.T) (*Resolver, *definition.Registry) {
	t.Helper()
	reg := definition.NewRegistry()

	require.NoError(t, reg.AddCustomAPI(&definition.CustomAPI{
		Method: "GET", Path: "/status", StatusCode: 200,
	}))
	require.NoError(t, reg.AddCustomAPI(&definition.CustomAPI{
		Method: "GET", Path: "/users/:id", StatusCode: 200,
	}))
	require.NoError(t, reg.AddCustomAPI(&definition.CustomAPI{
		Method: "GET", Path: "/users/active", StatusCode: 200,
	}))
	require.NoError(t, reg.AddResource(&definition.Resource{
		Name:   "users",
		Fields: []definition.Field{{Name: "name", Type: definition.FieldString}},
	}))

	return NewResolver(reg), reg
}

func TestResolveLiteralCustomAPI(t *testing.T) {
	resolver, _ := newFixture(t)

	m, err := resolver.Resolve("GET", "/status")
	require.NoError(t, err)
	require.NotNil(t, m.CustomAPI)
	assert.Equal(t, "/status", m.CustomAPI.API.Path)
	assert.Empty(t, m.CustomAPI.Params)
}

func TestResolveTemplateBindsParams(t *testing.T) {
	resolver, _ := newFixture(t)

	m, err := resolver.Resolve("GET", "/users/42")
	require.NoError(t, err)
	require.NotNil(t, m.CustomAPI)
	assert.Equal(t, map[string]string{"id": "42"}, m.CustomAPI.Params)
}

func TestCustomAPIPrecedesResource(t *testing.T) {
	resolver, _ := newFixture(t)

	// /users/42 matches both GET /users/:id and the users resource;
	// the custom API wins.
	m, err := resolver.Resolve("GET", "/users/42")
	require.NoError(t, err)
	assert.NotNil(t, m.CustomAPI)
	assert.Nil(t, m.Resource)

	// A method the custom API does not declare falls through.
	m, err = resolver.Resolve("DELETE", "/users/42")
	require.NoError(t, err)
	require.NotNil(t, m.Resource)
	assert.Equal(t, "42", m.Resource.ItemID)
}

func TestFirstMatchWinsOverSpecificity(t *testing.T) {
	resolver, _ := newFixture(t)

	// /users/active is shadowed by the earlier /users/:id template:
	// declaration order, not specificity, decides.
	m, err := resolver.Resolve("GET", "/users/active")
	require.NoError(t, err)
	require.NotNil(t, m.CustomAPI)
	assert.Equal(t, "/users/:id", m.CustomAPI.API.Path)
	assert.Equal(t, "active", m.CustomAPI.Params["id"])
}

func TestResolveResourceCollection(t *testing.T) {
	resolver, _ := newFixture(t)

	m, err := resolver.Resolve("POST", "/users")
	require.NoError(t, err)
	require.NotNil(t, m.Resource)
	assert.Equal(t, "users", m.Resource.Resource.Name)
	assert.Empty(t, m.Resource.ItemID)
}

func TestResolveResourceItemUndefined(t *testing.T) {
	resolver, _ := newFixture(t)

	m, err := resolver.Resolve("POST", "/users/undefined")
	require.NoError(t, err)
	require.NotNil(t, m.Resource)
	assert.Empty(t, m.Resource.ItemID, `literal "undefined" means no item id`)
}

func TestResolveNotFoundCarriesHints(t *testing.T) {
	resolver, _ := newFixture(t)

	_, err := resolver.Resolve("GET", "/nope")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"users"}, nf.AvailableResources)
	assert.Contains(t, nf.AvailableAPIs, "GET /status")
	assert.Contains(t, nf.AvailableAPIs, "GET /users/:id")
}

func TestResolveDeepPathDoesNotMatchResource(t *testing.T) {
	resolver, _ := newFixture(t)

	_, err := resolver.Resolve("PUT", "/users/1/posts")
	assert.Error(t, err)
}

func TestMatchTemplate(t *testing.T) {
	tests := []struct {
		template string
		path     string
		want     bool
		params   map[string]string
	}{
		{"/ping", "/ping", true, map[string]string{}},
		{"/ping", "/pong", false, nil},
		{"/users/:id", "/users/7", true, map[string]string{"id": "7"}},
		{"/users/:id", "/users", false, nil},
		{"/users/:id", "/users/7/posts", false, nil},
		{"/a/:x/b/:y", "/a/1/b/2", true, map[string]string{"x": "1", "y": "2"}},
		{"/users/:id", "/users/", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.template+" vs "+tt.path, func(t *testing.T) {
			params, ok := MatchTemplate(tt.template, tt.path)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.params, params)
			}
		})
	}
}
