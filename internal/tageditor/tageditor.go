// Package tageditor holds the tag list editing rules of the question form.
//
// The rules are expressed as a reducer over an immutable Draft so they can be
// applied on the server to a client-held tag list as well as driven by an
// interactive Editor.
package tageditor

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxTagLength is the longest tag accepted, in characters.
const MaxTagLength = 15

// Tag validation errors. Their messages are shown to the user as-is.
var (
	ErrTagTooLong   = errors.New("Tag should be less than 15 characters")
	ErrTagDuplicate = errors.New("Tag already exists")
	ErrTagsRequired = errors.New("Tags are required")
)

// Draft is the ordered list of tags attached to a question being authored.
type Draft struct {
	tags []string
}

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{}
}

// Tags returns a copy of the tags in insertion order.
func (d Draft) Tags() []string {
	return slices.Clone(d.tags)
}

// Len returns the number of tags.
func (d Draft) Len() int {
	return len(d.tags)
}

// Contains reports whether tag is present using exact, case-sensitive matching.
func (d Draft) Contains(tag string) bool {
	return slices.Contains(d.tags, tag)
}

// EventKind discriminates the two draft mutations.
type EventKind int

const (
	EventAdd EventKind = iota + 1
	EventRemove
)

func (k EventKind) String() string {
	switch k {
	case EventAdd:
		return "add"
	case EventRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is a single mutation applied to a Draft.
type Event struct {
	Kind  EventKind
	Value string
}

// Add builds an event that commits text as a new tag.
func Add(text string) Event {
	return Event{Kind: EventAdd, Value: text}
}

// Remove builds an event that drops tag from the draft.
func Remove(tag string) Event {
	return Event{Kind: EventRemove, Value: tag}
}

// Reduce applies e to d and returns the resulting draft together with the
// validation error the tag field should display. A nil error clears the field.
// The input draft is never modified.
//
// Adding blank text is a no-op: the draft is returned unchanged with a nil
// error, and callers that keep a field error should leave it as it was (see
// Editor). Length is checked before duplication, so a long duplicate reports
// ErrTagTooLong.
func Reduce(d Draft, e Event) (Draft, error) {
	switch e.Kind {
	case EventAdd:
		tag := strings.TrimSpace(e.Value)
		if tag == "" {
			return d, nil
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return d, ErrTagTooLong
		}
		if d.Contains(tag) {
			return d, ErrTagDuplicate
		}
		next := make([]string, len(d.tags), len(d.tags)+1)
		copy(next, d.tags)
		return Draft{tags: append(next, tag)}, nil

	case EventRemove:
		i := slices.Index(d.tags, e.Value)
		if i < 0 {
			if len(d.tags) == 0 {
				return d, ErrTagsRequired
			}
			return d, nil
		}
		next := slices.Delete(slices.Clone(d.tags), i, i+1)
		if len(next) == 0 {
			return Draft{}, ErrTagsRequired
		}
		return Draft{tags: next}, nil
	}

	return d, nil
}

// FromTags rebuilds a draft by committing each tag in order. It stops at the
// first rejected tag and returns that error along with the draft built so far.
func FromTags(tags []string) (Draft, error) {
	d := NewDraft()
	for _, t := range tags {
		next, err := Reduce(d, Add(t))
		if err != nil {
			return d, err
		}
		d = next
	}
	return d, nil
}

// Validate reports whether d may be submitted.
func Validate(d Draft) error {
	if d.Len() == 0 {
		return ErrTagsRequired
	}
	return nil
}
