package model

import (
	"fmt"
	"strings"
)

// ShapeID identifies a shape, optionally down to a member. Namespace is
// empty for relative IDs; Member is empty unless the ID addresses a member.
type ShapeID struct {
	Namespace string
	Name      string
	Member    string
}

// ParseShapeID splits shape ID text of the form
// 'namespace#Name$member' where the namespace and member parts are
// optional. It performs no character validation beyond locating the
// separators.
func ParseShapeID(text string) ShapeID {
	var id ShapeID
	rest := text
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		id.Namespace = rest[:i]
		rest = rest[i+1:]
	}
	if i := strings.IndexByte(rest, '$'); i >= 0 {
		id.Member = rest[i+1:]
		rest = rest[:i]
	}
	id.Name = rest
	return id
}

// IsAbsolute reports whether the ID carries a namespace.
func (id ShapeID) IsAbsolute() bool {
	return id.Namespace != ""
}

// WithMember returns the ID of the named member of this shape.
func (id ShapeID) WithMember(member string) ShapeID {
	id.Member = member
	return id
}

// WithoutMember returns the ID of the containing shape.
func (id ShapeID) WithoutMember() ShapeID {
	id.Member = ""
	return id
}

func (id ShapeID) String() string {
	var b strings.Builder
	if id.Namespace != "" {
		b.WriteString(id.Namespace)
		b.WriteByte('#')
	}
	b.WriteString(id.Name)
	if id.Member != "" {
		b.WriteByte('$')
		b.WriteString(id.Member)
	}
	return b.String()
}

// Compare orders IDs by namespace, then name, then member.
func (id ShapeID) Compare(other ShapeID) int {
	if c := strings.Compare(id.Namespace, other.Namespace); c != 0 {
		return c
	}
	if c := strings.Compare(id.Name, other.Name); c != 0 {
		return c
	}
	return strings.Compare(id.Member, other.Member)
}

func (id ShapeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ShapeID) UnmarshalText(text []byte) error {
	parsed := ParseShapeID(string(text))
	if parsed.Name == "" {
		return fmt.Errorf("invalid shape ID %q", text)
	}
	*id = parsed
	return nil
}
