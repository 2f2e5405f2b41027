// Package contest holds the competition catalog: tracks, competitions
// and student registrations. It is deliberately a thin CRUD layer; the
// interesting invariants (who may mutate what) live with the callers in
// contest/api, gated by the auth package.
package contest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

type (
	Track struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Icon        string    `json:"icon,omitempty"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	Competition struct {
		ID                   int64      `json:"id"`
		Title                string     `json:"title"`
		Description          string     `json:"description,omitempty"`
		ImageURL             string     `json:"imageUrl,omitempty"`
		TrackID              int64      `json:"trackId"`
		RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
		StartDate            *time.Time `json:"startDate,omitempty"`
		EndDate              *time.Time `json:"endDate,omitempty"`
		Status               string     `json:"status"`
		CreatedAt            time.Time  `json:"createdAt"`
	}

	Registration struct {
		ID            int64     `json:"id"`
		UserID        int64     `json:"userId"`
		CompetitionID int64     `json:"competitionId"`
		TeamName      string    `json:"teamName,omitempty"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	// InvalidInput reports malformed catalog input, one message per
	// field, mirroring how registration input errors are surfaced.
	InvalidInput struct {
		Fields map[string]string
	}
)

const (
	CompetitionActive   = "active"
	CompetitionClosed   = "closed"
	CompetitionArchived = "archived"

	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyRegistered = errors.New("already registered for this competition")
	ErrUnknownTrack      = errors.New("track does not exist")
)

func (i InvalidInput) Error() string {
	fields := make([]string, 0, len(i.Fields))
	for k := range i.Fields {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid input: %v", strings.Join(fields, ", "))
}

func ValidRegistrationStatus(status string) bool {
	switch status {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

func validCompetitionStatus(status string) bool {
	switch status {
	case CompetitionActive, CompetitionClosed, CompetitionArchived:
		return true
	}
	return false
}

func (t Track) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(t.Name) == "" {
		fields["name"] = "name is required"
	}
	if len(fields) > 0 {
		return InvalidInput{Fields: fields}
	}
	return nil
}

func (c Competition) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(c.Title) == "" {
		fields["title"] = "title is required"
	}
	if c.TrackID <= 0 {
		fields["trackId"] = "trackId is required"
	}
	if c.Status != "" && !validCompetitionStatus(c.Status) {
		fields["status"] = "status must be one of active, closed, archived"
	}
	if len(fields) > 0 {
		return InvalidInput{Fields: fields}
	}
	return nil
}

func (r Registration) validate() error {
	fields := map[string]string{}
	if r.UserID <= 0 {
		fields["userId"] = "userId is required"
	}
	if r.CompetitionID <= 0 {
		fields["competitionId"] = "competitionId is required"
	}
	if r.Status != "" && !ValidRegistrationStatus(r.Status) {
		fields["status"] = "status must be one of pending, approved, rejected"
	}
	if len(fields) > 0 {
		return InvalidInput{Fields: fields}
	}
	return nil
}
