package models

import (
	"errors"
	"fmt"
)

// TargetType is the discriminator stored next to a target id.
type TargetType string

const (
	TargetQuestion TargetType = "question"
	TargetAnswer   TargetType = "answer"
)

var ErrInvalidTarget = errors.New("invalid target")

// Target is the question or answer a vote or interaction refers to. Build it
// with QuestionTarget, AnswerTarget or ParseTarget; the zero value is invalid.
type Target struct {
	kind TargetType
	id   int
}

func QuestionTarget(id int) Target {
	return Target{kind: TargetQuestion, id: id}
}

func AnswerTarget(id int) Target {
	return Target{kind: TargetAnswer, id: id}
}

// ParseTarget converts a (type, id) pair read from a request or a row into a
// Target.
func ParseTarget(kind string, id int) (Target, error) {
	if id <= 0 {
		return Target{}, fmt.Errorf("%w: id %d", ErrInvalidTarget, id)
	}
	switch TargetType(kind) {
	case TargetQuestion:
		return QuestionTarget(id), nil
	case TargetAnswer:
		return AnswerTarget(id), nil
	default:
		return Target{}, fmt.Errorf("%w: type %q", ErrInvalidTarget, kind)
	}
}

func (t Target) Type() TargetType { return t.kind }
func (t Target) ID() int          { return t.id }

func (t Target) IsQuestion() bool { return t.kind == TargetQuestion }
func (t Target) IsAnswer() bool   { return t.kind == TargetAnswer }

// Valid reports whether t was built by one of the constructors with a positive id.
func (t Target) Valid() bool {
	return (t.kind == TargetQuestion || t.kind == TargetAnswer) && t.id > 0
}

// Columns returns the (action_id, action_type) pair used by the tables that
// reference a target.
func (t Target) Columns() (int, string) {
	return t.id, string(t.kind)
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.kind, t.id)
}
