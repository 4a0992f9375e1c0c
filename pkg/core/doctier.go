package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// DocTier
// =============================================================================

// DocTier classifies how broadly the documentation of an entity is meant to be
// visible. Tiers are totally ordered; a greater tier is more exposed.
//
// New tiers must be inserted at their rank, not appended: checks compare
// tiers with < and > and rely on the numeric order.
type DocTier int

// Documentation tiers, least exposed first.
const (
	// DocTierNone means no tier was declared.
	DocTierNone DocTier = iota
	// DocTierInternal is visible only in the full (developer) documentation.
	DocTierInternal
	// DocTierLibrary is visible to other modules of the same library.
	DocTierLibrary
	// DocTierPublic is part of the installed, consumer-facing API.
	DocTierPublic
)

var docTierNames = [...]string{
	DocTierNone:     "none",
	DocTierInternal: "internal",
	DocTierLibrary:  "library",
	DocTierPublic:   "public",
}

// AllDocTiers returns every tier in ascending order.
func AllDocTiers() []DocTier {
	return []DocTier{DocTierNone, DocTierInternal, DocTierLibrary, DocTierPublic}
}

// String returns the lower-case tier name.
func (t DocTier) String() string {
	if t.Valid() {
		return docTierNames[t]
	}
	return fmt.Sprintf("DocTier(%d)", int(t))
}

// Valid reports whether t is one of the declared tiers.
func (t DocTier) Valid() bool {
	return t >= DocTierNone && t <= DocTierPublic
}

// Less reports whether t is less exposed than other.
func (t DocTier) Less(other DocTier) bool { return t < other }

// Greater reports whether t is more exposed than other.
func (t DocTier) Greater(other DocTier) bool { return t > other }

// Max returns the more exposed of t and other.
func (t DocTier) Max(other DocTier) DocTier {
	if other > t {
		return other
	}
	return t
}

// ParseDocTier converts a tier name to a DocTier. Matching is case-insensitive
// and the empty string parses as DocTierNone.
func ParseDocTier(s string) (DocTier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DocTierNone, nil
	}
	for i, n := range docTierNames {
		if n == name {
			return DocTier(i), nil
		}
	}
	return DocTierNone, fmt.Errorf("unknown documentation tier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t DocTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid documentation tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DocTier) UnmarshalText(text []byte) error {
	parsed, err := ParseDocTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
