package tageditor

// Editor drives a Draft from discrete input events the way the question form
// does: keystrokes only update the raw input, and a commit ("Enter") turns the
// input into a tag. Editor is not safe for concurrent use; it belongs to a
// single form session.
type Editor struct {
	draft Draft
	input string
	err   error
}

// NewEditor returns an editor over an empty draft.
func NewEditor() *Editor {
	return &Editor{draft: NewDraft()}
}

// Input replaces the raw text of the tag field.
func (e *Editor) Input(text string) {
	e.input = text
}

// Value returns the raw text of the tag field.
func (e *Editor) Value() string {
	return e.input
}

// Commit adds the current input as a tag. On success the input is cleared
// along with any field error. On rejection the input is kept so the user can
// correct it.
func (e *Editor) Commit() error {
	return e.Add(e.input)
}

// Add commits text as a tag without going through the input field.
func (e *Editor) Add(text string) error {
	before := e.draft.Len()
	next, err := Reduce(e.draft, Add(text))
	if err != nil {
		e.err = err
		return err
	}
	if next.Len() == before {
		return nil
	}
	e.draft = next
	e.input = ""
	e.err = nil
	return nil
}

// Remove drops tag from the draft.
func (e *Editor) Remove(tag string) error {
	next, err := Reduce(e.draft, Remove(tag))
	e.draft = next
	e.err = err
	return err
}

// Tags returns the current tags in insertion order.
func (e *Editor) Tags() []string {
	return e.draft.Tags()
}

// Draft returns the current draft value.
func (e *Editor) Draft() Draft {
	return e.draft
}

// Err returns the error the tag field currently shows, or nil.
func (e *Editor) Err() error {
	return e.err
}
