package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/studyping/internal/model"
	"github.com/sandeepkv93/studyping/internal/storage"
)

// ProfileStore owns the single device owner's profile. There is no delete:
// once set up, the profile only ever changes through Update.
type ProfileStore struct {
	records storage.RecordStore
	profile model.Profile
	loaded  bool
}

func OpenProfileStore(records storage.RecordStore) (*ProfileStore, error) {
	if records == nil {
		return nil, errors.New("store: nil record store")
	}
	profile, err := records.LoadProfile()
	if errors.Is(err, storage.ErrNoRecord) {
		return &ProfileStore{records: records}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load profile: %w", err)
	}
	return &ProfileStore{records: records, profile: profile, loaded: true}, nil
}

func (s *ProfileStore) Create(name string, class int, stream model.Stream) (model.Profile, error) {
	if s.loaded {
		return model.Profile{}, ErrProfileExists
	}
	candidate, err := buildProfile(name, class, stream)
	if err != nil {
		return model.Profile{}, err
	}

	s.profile = candidate
	s.loaded = true
	if err := s.persist(); err != nil {
		return candidate, err
	}
	return candidate, nil
}

type ProfilePatch struct {
	Name   *string
	Class  *int
	Stream *model.Stream
}

func (s *ProfileStore) Update(patch ProfilePatch) (model.Profile, error) {
	if !s.loaded {
		return model.Profile{}, ErrNotFound
	}

	name := s.profile.Name
	if patch.Name != nil {
		name = *patch.Name
	}
	class := s.profile.Class
	if patch.Class != nil {
		class = *patch.Class
	}
	stream := s.profile.Stream
	if patch.Stream != nil {
		stream = *patch.Stream
	}
	candidate, err := buildProfile(name, class, stream)
	if err != nil {
		return model.Profile{}, err
	}

	s.profile = candidate
	if err := s.persist(); err != nil {
		return candidate, err
	}
	return candidate, nil
}

func (s *ProfileStore) Get() (model.Profile, bool) {
	return s.profile, s.loaded
}

// Subjects lists the subjects offered for task creation under the current
// profile. Without a profile it falls back to the General table.
func (s *ProfileStore) Subjects() []string {
	return model.SubjectsFor(s.profile)
}

func buildProfile(name string, class int, stream model.Stream) (model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if class < 1 || class > 12 {
		return model.Profile{}, &ValidationError{Field: "class", Reason: fmt.Sprintf("must be between 1 and 12, got %d", class)}
	}
	if class < 11 {
		stream = model.StreamGeneral
	} else if stream == "" {
		return model.Profile{}, &ValidationError{Field: "stream", Reason: "required for classes 11 and 12"}
	}
	if !stream.IsValid() {
		return model.Profile{}, &ValidationError{Field: "stream", Reason: fmt.Sprintf("unknown stream %q", stream)}
	}

	p := model.Profile{Name: name, Class: class, Stream: stream}
	if err := p.Validate(); err != nil {
		return model.Profile{}, &ValidationError{Field: "profile", Reason: err.Error()}
	}
	return p, nil
}

func (s *ProfileStore) persist() error {
	if err := s.records.SaveProfile(s.profile); err != nil {
		return &storage.StorageError{Op: "save profile", Err: err}
	}
	return nil
}
