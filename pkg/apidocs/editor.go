package apidocs

// Defaults for a freshly appended endpoint record.
const (
	defaultPath        = "/api/v1/new-endpoint"
	defaultTitle       = "New Endpoint"
	defaultDescription = "Describe what this endpoint does"
)

// Editor mutates a working endpoint collection independently of
// persistence. Every mutating operation marks the collection dirty; the
// save flow reads and clears the flag. Index arguments must address
// existing records and parameters - out-of-range indices are programmer
// error in the caller and are not recovered from.
type Editor struct {
	collection Collection
	active     int
	dirty      bool
}

// NewEditor creates an editor over a parsed collection. The collection is
// normalized; the first record, if any, becomes active.
func NewEditor(c Collection) *Editor {
	e := &Editor{collection: c.Normalized(), active: -1}
	if len(e.collection) > 0 {
		e.active = 0
	}
	return e
}

// Collection returns the working collection.
func (e *Editor) Collection() Collection {
	return e.collection
}

// ActiveIndex returns the index of the active record, or -1 when the
// collection is empty.
func (e *Editor) ActiveIndex() int {
	return e.active
}

// HasActive reports whether a record is currently active.
func (e *Editor) HasActive() bool {
	return e.active >= 0
}

// SetActive makes the record at index the active one.
func (e *Editor) SetActive(index int) {
	e.active = index
}

// Dirty reports whether the collection has unsaved changes.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// ClearDirty resets the unsaved-changes flag after a successful save.
func (e *Editor) ClearDirty() {
	e.dirty = false
}

// AddEndpoint appends a new record with fixed defaults and makes it active.
// No uniqueness check is applied; duplicate paths and titles are allowed.
// Returns the new record's index.
func (e *Editor) AddEndpoint() int {
	e.collection = append(e.collection, Endpoint{
		Method:      MethodGet,
		Path:        defaultPath,
		Title:       defaultTitle,
		Description: defaultDescription,
		Parameters:  []Parameter{},
		Headers:     []Header{},
		Examples:    []Example{},
		Response: map[string]any{
			"id":    "doc_456",
			"title": "API Reference",
			"slug":  "api-reference",
		},
	})
	e.active = len(e.collection) - 1
	e.dirty = true
	return e.active
}

// UpdateField replaces a single field on the record at index. Unknown field
// names are ignored. Values must carry the field's type; a mismatch is a
// programmer error and panics.
func (e *Editor) UpdateField(index int, field string, value any) {
	ep := &e.collection[index]
	switch field {
	case "method":
		ep.Method = value.(string)
	case "endpoint":
		ep.Path = value.(string)
	case "title":
		ep.Title = value.(string)
	case "description":
		ep.Description = value.(string)
	case "parameters":
		ep.Parameters = value.([]Parameter)
	case "headers":
		ep.Headers = value.([]Header)
	case "response":
		ep.Response = value
	case "examples":
		ep.Examples = value.([]Example)
	default:
		return
	}
	e.dirty = true
}

// AddParameter appends an empty parameter to the record at index.
func (e *Editor) AddParameter(index int) {
	ep := &e.collection[index]
	ep.Parameters = append(ep.Parameters, Parameter{})
	e.dirty = true
}

// UpdateParameter replaces a single field on one parameter of the record at
// index.
func (e *Editor) UpdateParameter(index, paramIndex int, field string, value any) {
	p := &e.collection[index].Parameters[paramIndex]
	switch field {
	case "name":
		p.Name = value.(string)
	case "type":
		p.Type = value.(string)
	case "description":
		p.Description = value.(string)
	case "required":
		p.Required = value.(bool)
	case "example":
		p.Example = value.(string)
	default:
		return
	}
	e.dirty = true
}

// RemoveParameter removes one parameter in place; subsequent parameters
// shift down by one. Declaration order is user-visible, so parameters are
// an ordered sequence, not a set.
func (e *Editor) RemoveParameter(index, paramIndex int) {
	ep := &e.collection[index]
	ep.Parameters = append(ep.Parameters[:paramIndex], ep.Parameters[paramIndex+1:]...)
	e.dirty = true
}

// DeleteEndpoint removes the record at index. The new active index becomes
// max(0, index-1), or -1 when the collection becomes empty.
func (e *Editor) DeleteEndpoint(index int) {
	e.collection = append(e.collection[:index], e.collection[index+1:]...)
	if len(e.collection) == 0 {
		e.active = -1
	} else if index > 0 {
		e.active = index - 1
	} else {
		e.active = 0
	}
	e.dirty = true
}
