package definition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomAPIValidate(t *testing.T) {
	tests := []struct {
		name    string
		api     *CustomAPI
		wantErr bool
	}{
		{
			name: "valid literal path",
			api:  &CustomAPI{Method: "GET", Path: "/ping", StatusCode: 200},
		},
		{
			name: "valid parameterized path",
			api:  &CustomAPI{Method: "DELETE", Path: "/users/:id", StatusCode: 204},
		},
		{
			name:    "bad method",
			api:     &CustomAPI{Method: "FETCH", Path: "/ping", StatusCode: 200},
			wantErr: true,
		},
		{
			name:    "missing leading slash",
			api:     &CustomAPI{Method: "GET", Path: "ping", StatusCode: 200},
			wantErr: true,
		},
		{
			name:    "status out of range",
			api:     &CustomAPI{Method: "GET", Path: "/ping", StatusCode: 700},
			wantErr: true,
		},
		{
			name: "conditional without operator",
			api: &CustomAPI{Method: "GET", Path: "/ping", StatusCode: 200,
				Conditional: &ConditionalRule{Condition: Condition{Type: ConditionHeader}}},
			wantErr: true,
		},
		{
			name: "expression conditional needs no operator",
			api: &CustomAPI{Method: "GET", Path: "/ping", StatusCode: 200,
				Conditional: &ConditionalRule{Condition: Condition{
					Type: ConditionExpression, Expression: `query.debug == "1"`}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.api.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResourceValidate(t *testing.T) {
	valid := &Resource{Name: "users", Fields: []Field{{Name: "name", Type: FieldString}}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Resource{Name: "Users", Fields: valid.Fields}).Validate(), "uppercase name")
	assert.Error(t, (&Resource{Name: "users"}).Validate(), "no fields")
	assert.Error(t, (&Resource{Name: "users", Fields: []Field{{Name: "x", Type: "blob"}}}).Validate(), "bad type")
}

func TestCustomAPIHasBody(t *testing.T) {
	api := &CustomAPI{Body: json.RawMessage(`{"ok":true}`)}
	assert.True(t, api.HasBody())

	assert.False(t, (&CustomAPI{}).HasBody())
	assert.False(t, (&CustomAPI{Body: json.RawMessage(`null`)}).HasBody())
	assert.False(t, (&CustomAPI{Body: json.RawMessage(" null ")}).HasBody())
}

func TestRegistryCustomAPIOrder(t *testing.T) {
	reg := NewRegistry()

	first := &CustomAPI{Method: "GET", Path: "/users/:id", StatusCode: 200}
	second := &CustomAPI{Method: "GET", Path: "/users/active", StatusCode: 200}
	require.NoError(t, reg.AddCustomAPI(first))
	require.NoError(t, reg.AddCustomAPI(second))

	apis := reg.CustomAPIs()
	require.Len(t, apis, 2)
	assert.Equal(t, "/users/:id", apis[0].Path, "declaration order preserved")
	assert.Equal(t, "/users/active", apis[1].Path)

	assert.NotEmpty(t, first.ID, "ID assigned at registration")
	assert.Equal(t, first, reg.CustomAPIByID(first.ID))
}

func TestRegistryRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	err := reg.AddCustomAPI(&CustomAPI{Method: "YEET", Path: "/x", StatusCode: 200})
	assert.Error(t, err)
	assert.Empty(t, reg.CustomAPIs())
}

func TestRegistryDuplicateResource(t *testing.T) {
	reg := NewRegistry()
	fields := []Field{{Name: "name", Type: FieldString}}
	require.NoError(t, reg.AddResource(&Resource{Name: "users", Fields: fields}))

	err := reg.AddResource(&Resource{Name: "users", Fields: fields})
	assert.Error(t, err)
}

func TestRegistryDelete(t *testing.T) {
	reg := NewRegistry()
	api := &CustomAPI{Method: "GET", Path: "/ping", StatusCode: 200}
	require.NoError(t, reg.AddCustomAPI(api))
	require.NoError(t, reg.AddResource(&Resource{Name: "users", Fields: []Field{{Name: "n", Type: FieldString}}}))

	assert.True(t, reg.DeleteCustomAPI(api.ID))
	assert.False(t, reg.DeleteCustomAPI(api.ID), "second delete is a miss")
	assert.Empty(t, reg.CustomAPIs())

	assert.True(t, reg.DeleteResource("users"))
	assert.Nil(t, reg.ResourceByName("users"))
}
