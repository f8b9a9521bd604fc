package schemas

import (
	"fmt"
	"net/url"
	"strings"
)

// Slug is the human-readable handle for a federated actor or community,
// rendered as name@host. It is always derived from (apId, name) and never
// stored independently, so it cannot diverge from the identifiers it is
// built from.
type Slug struct {
	Name string
	Host string
}

func (s Slug) String() string {
	return fmt.Sprintf("%s@%s", s.Name, s.Host)
}

// CreateSlug derives the slug for an object from its federated identifier
// and local name. The host comes from the apId URL; a malformed apId yields
// a slug with an empty host rather than an error, since display code has
// nothing useful to do with a failure here.
func CreateSlug(apID, name string) Slug {
	u, err := url.Parse(apID)
	if err != nil || u.Host == "" {
		return Slug{Name: name}
	}
	return Slug{Name: name, Host: strings.ToLower(u.Host)}
}
