package apidocs

// Draft holds the raw JSON text for one open-ended structured value (a
// record's response, or an example's request/response) while it is being
// edited. Typing only updates the draft text; the committed value changes
// only when a commit succeeds, so transiently invalid text never corrupts
// state.
type Draft struct {
	text      string
	committed any
	parseErr  string

	onCommit func(any)
	onEdit   func()
}

// NewDraft creates a draft seeded from the committed value, rendered with
// canonical formatting.
func NewDraft(value any) *Draft {
	d := &Draft{committed: value}
	if text, err := PrettyValue(value); err == nil {
		d.text = text
	}
	return d
}

// Text returns the current draft text.
func (d *Draft) Text() string {
	return d.text
}

// SetText replaces the draft text without touching the committed value.
func (d *Draft) SetText(text string) {
	d.text = text
	if d.onEdit != nil {
		d.onEdit()
	}
}

// Value returns the last committed value.
func (d *Draft) Value() any {
	return d.committed
}

// Err returns the parse-error message from the last failed commit, or ""
// when the draft is clean.
func (d *Draft) Err() string {
	return d.parseErr
}

// Commit attempts to parse the draft text. On success the parsed value
// becomes the committed value and the text is rewritten with canonical
// formatting. On failure the committed value is untouched, the parser's
// error detail is recorded, and the draft text is preserved verbatim so the
// user's edit is not discarded. Invoked on loss of focus.
func (d *Draft) Commit() error {
	parsed, err := ParseValue(d.text)
	if err != nil {
		d.parseErr = err.Error()
		return err
	}
	d.committed = parsed
	d.parseErr = ""
	if text, perr := PrettyValue(parsed); perr == nil {
		d.text = text
	}
	if d.onCommit != nil {
		d.onCommit(parsed)
	}
	return nil
}

// Format re-runs the same parse-and-commit step without waiting for blur.
func (d *Draft) Format() error {
	return d.Commit()
}

// ResponseDraft returns a draft bound to the response value of the record
// at index: committing writes the parsed value back to the record and marks
// the collection dirty, and edits alone mark it dirty as well.
func (e *Editor) ResponseDraft(index int) *Draft {
	d := NewDraft(e.collection[index].Response)
	d.onCommit = func(v any) {
		e.collection[index].Response = v
		e.dirty = true
	}
	d.onEdit = func() {
		e.dirty = true
	}
	return d
}

// ExampleRequestDraft returns a draft bound to the request value of one
// example of the record at index.
func (e *Editor) ExampleRequestDraft(index, exampleIndex int) *Draft {
	d := NewDraft(e.collection[index].Examples[exampleIndex].Request)
	d.onCommit = func(v any) {
		e.collection[index].Examples[exampleIndex].Request = v
		e.dirty = true
	}
	d.onEdit = func() {
		e.dirty = true
	}
	return d
}

// ExampleResponseDraft returns a draft bound to the response value of one
// example of the record at index.
func (e *Editor) ExampleResponseDraft(index, exampleIndex int) *Draft {
	d := NewDraft(e.collection[index].Examples[exampleIndex].Response)
	d.onCommit = func(v any) {
		e.collection[index].Examples[exampleIndex].Response = v
		e.dirty = true
	}
	d.onEdit = func() {
		e.dirty = true
	}
	return d
}
