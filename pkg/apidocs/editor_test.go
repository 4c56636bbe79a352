package apidocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditor(t *testing.T) {
	e := NewEditor(nil)
	assert.False(t, e.HasActive())
	assert.Equal(t, -1, e.ActiveIndex())
	assert.False(t, e.Dirty())

	e = NewEditor(Collection{{Method: "GET", Path: "/a"}, {Method: "POST", Path: "/b"}})
	assert.Equal(t, 0, e.ActiveIndex())
	assert.False(t, e.Dirty())
	// Loaded records are normalized so the sequences are never null.
	assert.NotNil(t, e.Collection()[0].Parameters)
	assert.NotNil(t, e.Collection()[1].Headers)
}

func TestAddEndpointDefaults(t *testing.T) {
	e := NewEditor(nil)
	idx := e.AddEndpoint()

	require.Equal(t, 0, idx)
	assert.Equal(t, 0, e.ActiveIndex())
	assert.True(t, e.Dirty())

	ep := e.Collection()[0]
	assert.Equal(t, "GET", ep.Method)
	assert.Equal(t, "/api/v1/new-endpoint", ep.Path)
	assert.Equal(t, "New Endpoint", ep.Title)
	assert.Equal(t, "Describe what this endpoint does", ep.Description)
	assert.Empty(t, ep.Parameters)
	assert.NotNil(t, ep.Response)
}

func TestAddEndpointAllowsDuplicates(t *testing.T) {
	e := NewEditor(nil)
	e.AddEndpoint()
	e.AddEndpoint()

	require.Len(t, e.Collection(), 2)
	assert.Equal(t, e.Collection()[0].Path, e.Collection()[1].Path)
	assert.Equal(t, 1, e.ActiveIndex())
}

func TestUpdateField(t *testing.T) {
	e := NewEditor(nil)
	e.AddEndpoint()
	e.ClearDirty()

	e.UpdateField(0, "method", "DELETE")
	e.UpdateField(0, "endpoint", "/api/v1/users/{id}")
	e.UpdateField(0, "title", "Delete User")

	ep := e.Collection()[0]
	assert.Equal(t, "DELETE", ep.Method)
	assert.Equal(t, "/api/v1/users/{id}", ep.Path)
	assert.Equal(t, "Delete User", ep.Title)
	assert.True(t, e.Dirty())
}

func TestUpdateFieldUnknownFieldIgnored(t *testing.T) {
	e := NewEditor(nil)
	e.AddEndpoint()
	e.ClearDirty()

	e.UpdateField(0, "no-such-field", "x")
	assert.False(t, e.Dirty())
}

func TestParameterLifecycle(t *testing.T) {
	e := NewEditor(nil)
	e.AddEndpoint()

	e.AddParameter(0)
	require.Len(t, e.Collection()[0].Parameters, 1)
	p := e.Collection()[0].Parameters[0]
	assert.Equal(t, Parameter{}, p)

	e.UpdateParameter(0, 0, "name", "user_id")
	e.UpdateParameter(0, 0, "type", "string")
	e.UpdateParameter(0, 0, "description", "The user identifier")
	e.UpdateParameter(0, 0, "required", true)
	e.UpdateParameter(0, 0, "example", "usr_123")

	p = e.Collection()[0].Parameters[0]
	assert.Equal(t, "user_id", p.Name)
	assert.Equal(t, "string", p.Type)
	assert.True(t, p.Required)
	assert.Equal(t, "usr_123", p.Example)
}

func TestRemoveParameterShiftsIndices(t *testing.T) {
	e := NewEditor(nil)
	e.AddEndpoint()
	for _, name := range []string{"first", "second", "third"} {
		e.AddParameter(0)
		e.UpdateParameter(0, len(e.Collection()[0].Parameters)-1, "name", name)
	}

	e.RemoveParameter(0, 1)

	params := e.Collection()[0].Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "first", params[0].Name)
	assert.Equal(t, "third", params[1].Name)
}

func TestDeleteEndpointActiveIndex(t *testing.T) {
	// Collection of 3, active index 2, delete index 2: new active index 1.
	e := NewEditor(Collection{{Path: "/a"}, {Path: "/b"}, {Path: "/c"}})
	e.SetActive(2)
	e.DeleteEndpoint(2)
	assert.Equal(t, 1, e.ActiveIndex())
	require.Len(t, e.Collection(), 2)

	// Deleting index 0 keeps index 0 active while records remain.
	e.DeleteEndpoint(0)
	assert.Equal(t, 0, e.ActiveIndex())
	assert.Equal(t, "/b", e.Collection()[0].Path)

	// Collection of 1, delete index 0: no active endpoint.
	e.DeleteEndpoint(0)
	assert.False(t, e.HasActive())
	assert.Empty(t, e.Collection())
}

func TestMutationsMarkDirty(t *testing.T) {
	e := NewEditor(Collection{{Path: "/a", Parameters: []Parameter{{Name: "x"}}}})
	require.False(t, e.Dirty())

	steps := []func(){
		func() { e.AddEndpoint() },
		func() { e.UpdateField(0, "title", "T") },
		func() { e.AddParameter(0) },
		func() { e.UpdateParameter(0, 0, "name", "y") },
		func() { e.RemoveParameter(0, 0) },
		func() { e.DeleteEndpoint(1) },
	}
	for _, step := range steps {
		e.ClearDirty()
		step()
		assert.True(t, e.Dirty())
	}
}
