package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidStream = errors.New("model: invalid stream")

type Stream string

const (
	StreamScience    Stream = "Science"
	StreamCommerce   Stream = "Commerce"
	StreamHumanities Stream = "Humanities"
	StreamGeneral    Stream = "General"
)

func (s Stream) IsValid() bool {
	switch s {
	case StreamScience, StreamCommerce, StreamHumanities, StreamGeneral:
		return true
	default:
		return false
	}
}

func Streams() []Stream {
	return []Stream{StreamScience, StreamCommerce, StreamHumanities, StreamGeneral}
}

// Profile is the single device owner. Stream only carries meaning for
// classes 11 and 12; below that it is pinned to General.
type Profile struct {
	Name   string
	Class  int
	Stream Stream
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: profile name is required")
	}
	if p.Class < 1 || p.Class > 12 {
		return fmt.Errorf("model: class must be between 1 and 12, got %d", p.Class)
	}
	if !p.Stream.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStream, p.Stream)
	}
	if p.Class < 11 && p.Stream != StreamGeneral {
		return fmt.Errorf("model: stream %q requires class 11 or 12", p.Stream)
	}
	return nil
}

var subjectTables = map[Stream][]string{
	StreamScience:    {"Physics", "Chemistry", "Mathematics", "Biology", "English", "Computer Science"},
	StreamCommerce:   {"Accountancy", "Business Studies", "Economics", "Mathematics", "English"},
	StreamHumanities: {"History", "Geography", "Political Science", "Economics", "English"},
	StreamGeneral:    {"Mathematics", "Science", "Social Science", "English", "Hindi", "Computer"},
}

// SubjectsFor returns the subject list offered when creating or editing a
// task. Classes below 11 always get the General table, whatever stream is
// stored on the profile.
func SubjectsFor(p Profile) []string {
	stream := p.Stream
	if p.Class < 11 || !stream.IsValid() {
		stream = StreamGeneral
	}
	table := subjectTables[stream]
	out := make([]string, len(table))
	copy(out, table)
	return out
}
