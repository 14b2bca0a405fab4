package domain

import (
	"fmt"
	"strconv"
)

// FindingKind names the two classifications a secondary record can receive.
type FindingKind string

const (
	KindOrphaned   FindingKind = "orphaned"
	KindConflicted FindingKind = "conflicted"
)

// ReconciledRecordFields is the flat column layout used when a finding is
// rendered as a table row. Matched fields are empty for orphaned records.
var ReconciledRecordFields = []string{
	"secondary_id",
	"secondary_username",
	"secondary_email",
	"secondary_activity_count",
	"matched_authoritative_id",
	"matched_authoritative_username",
	"matched_authoritative_email",
}

// Finding is a secondary record classified by reconciliation. The only
// implementations are Orphaned and Conflicted.
type Finding interface {
	Kind() FindingKind
	SecondaryUser() SecondaryUser
	// Safe reports whether the secondary record may be removed automatically.
	Safe() bool
	// Fields returns the values in ReconciledRecordFields order. Missing
	// values render as empty strings.
	Fields() []string
	String() string
	isFinding()
}

// Orphaned is a secondary record whose external id matches no authoritative id.
type Orphaned struct {
	Secondary SecondaryUser
}

// Conflicted is a secondary record whose owner exists while a different
// authoritative record claims the same username or email.
type Conflicted struct {
	Secondary     SecondaryUser
	Authoritative AuthoritativeUser
}

func (Orphaned) isFinding()   {}
func (Conflicted) isFinding() {}

func (Orphaned) Kind() FindingKind   { return KindOrphaned }
func (Conflicted) Kind() FindingKind { return KindConflicted }

func (o Orphaned) SecondaryUser() SecondaryUser   { return o.Secondary }
func (c Conflicted) SecondaryUser() SecondaryUser { return c.Secondary }

func (o Orphaned) Safe() bool   { return o.Secondary.SafeToDelete() }
func (c Conflicted) Safe() bool { return c.Secondary.SafeToDelete() }

func (o Orphaned) Fields() []string {
	return append(secondaryFields(o.Secondary), "", "", "")
}

func (c Conflicted) Fields() []string {
	return append(secondaryFields(c.Secondary),
		strconv.FormatInt(c.Authoritative.ID, 10),
		text(c.Authoritative.Username),
		text(c.Authoritative.Email),
	)
}

// String renders the record on a single line for audit comments and log lines.
// Values are quoted so embedded newlines never break the line; missing
// values print as null.
func (o Orphaned) String() string {
	return fmt.Sprintf("%s{%s}", KindOrphaned, secondaryRepr(o.Secondary))
}

func (c Conflicted) String() string {
	return fmt.Sprintf("%s{%s matched_authoritative_id=%d matched_authoritative_username=%s matched_authoritative_email=%s}",
		KindConflicted, secondaryRepr(c.Secondary),
		c.Authoritative.ID, quoted(c.Authoritative.Username), quoted(c.Authoritative.Email))
}

func secondaryFields(u SecondaryUser) []string {
	return []string{
		strconv.FormatInt(u.ExternalID, 10),
		text(u.Username),
		text(u.Email),
		strconv.FormatInt(u.ActivityCount, 10),
	}
}

func secondaryRepr(u SecondaryUser) string {
	return fmt.Sprintf("secondary_id=%d secondary_username=%s secondary_email=%s secondary_activity_count=%d",
		u.ExternalID, quoted(u.Username), quoted(u.Email), u.ActivityCount)
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func quoted(s *string) string {
	if s == nil {
		return "null"
	}
	return strconv.Quote(*s)
}
