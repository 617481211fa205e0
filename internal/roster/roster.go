// Package roster manages the student records of the roster document.
package roster

import (
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"student-roster/internal/store"
)

var (
	ErrEmptyID     = errors.New("student id cannot be empty")
	ErrDuplicateID = errors.New("student id already exists")
	ErrNotFound    = errors.New("student not found")
)

// Patch holds replacement values for a student. Empty fields keep the old value.
type Patch struct {
	Name  string
	Class string
	Age   string
	Score string
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Removal reports what a Remove call deleted.
type Removal struct {
	Students int
	Accounts int
}

// Service performs roster operations against a store.
type Service struct {
	store *store.Store
	log   zerolog.Logger
}

// NewService creates a roster service on top of st.
func NewService(st *store.Store, log zerolog.Logger) *Service {
	return &Service{
		store: st,
		log:   log.With().Str("component", "roster").Logger(),
	}
}

// Add appends a new student. The store is left untouched when the id is taken.
func (s *Service) Add(student store.Student) error {
	if strings.TrimSpace(student.ID) == "" {
		return ErrEmptyID
	}

	doc, err := s.store.Load()
	if err != nil {
		return err
	}

	if doc.HasStudent(student.ID) {
		s.log.Warn().Str("id", student.ID).Msg("add rejected: duplicate id")
		return errors.Wrapf(ErrDuplicateID, "id '%s'", student.ID)
	}

	doc.Students = append(doc.Students, student)
	if err := s.store.Save(doc); err != nil {
		return errors.Wrap(err, "failed to save student")
	}

	s.log.Info().Str("id", student.ID).Msg("student added")
	return nil
}

// Remove deletes every student with the given id together with every account
// linked to it. ErrNotFound is returned when no student had that id; linked
// accounts are still detached in that case.
func (s *Service) Remove(id string) (Removal, error) {
	doc, err := s.store.Load()
	if err != nil {
		return Removal{}, err
	}

	var res Removal

	students := doc.Students[:0]
	for _, st := range doc.Students {
		if st.ID == id {
			res.Students++
			continue
		}
		students = append(students, st)
	}
	doc.Students = students

	users := doc.Users[:0]
	for _, u := range doc.Users {
		if u.LinkedTo(id) {
			res.Accounts++
			continue
		}
		users = append(users, u)
	}
	doc.Users = users

	if res.Students == 0 && res.Accounts == 0 {
		return res, errors.Wrapf(ErrNotFound, "id '%s'", id)
	}

	if err := s.store.Save(doc); err != nil {
		return Removal{}, errors.Wrap(err, "failed to save roster")
	}

	s.log.Info().
		Str("id", id).
		Int("students", res.Students).
		Int("accounts", res.Accounts).
		Msg("student removed")

	if res.Students == 0 {
		return res, errors.Wrapf(ErrNotFound, "id '%s'", id)
	}
	return res, nil
}

// Update applies the non-empty fields of p to the student with the given id
// and returns the updated record.
func (s *Service) Update(id string, p Patch) (*store.Student, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	i := doc.FindStudent(id)
	if i < 0 {
		return nil, errors.Wrapf(ErrNotFound, "id '%s'", id)
	}

	if p.IsEmpty() {
		student := doc.Students[i]
		return &student, nil
	}

	if err := copier.CopyWithOption(&doc.Students[i], &p, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, errors.Wrap(err, "could not apply changes")
	}

	if err := s.store.Save(doc); err != nil {
		return nil, errors.Wrap(err, "failed to save student")
	}

	s.log.Info().Str("id", id).Msg("student updated")
	student := doc.Students[i]
	return &student, nil
}

// List returns every student in storage order.
func (s *Service) List() ([]store.Student, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("count", len(doc.Students)).Msg("students listed")
	return doc.Students, nil
}

// Get returns the student with the given id.
func (s *Service) Get(id string) (*store.Student, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	i := doc.FindStudent(id)
	if i < 0 {
		return nil, errors.Wrapf(ErrNotFound, "id '%s'", id)
	}

	student := doc.Students[i]
	return &student, nil
}
