package entity

import "fmt"

// Role names are a closed enumeration; every persisted user carries exactly one.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile is a value object embedded in User. It has no lifecycle of its own:
// it is selected as a whole via its code and replaced as a whole on update.
type Profile struct {
	Code     string
	RoleID   int
	RoleName string
}

// profileCatalog is the fixed code -> profile mapping. It is static
// configuration initialized once at process start, never derived from the
// database and never mutated.
var profileCatalog = map[string]Profile{
	"C01": {Code: "C01", RoleID: 1, RoleName: RoleAdmin},
	"C02": {Code: "C02", RoleID: 2, RoleName: RoleUser},
}

// ErrUnknownProfileCode reports a profile code absent from the catalog.
// It carries the offending code so callers can surface it.
type ErrUnknownProfileCode struct {
	Code string
}

func (e *ErrUnknownProfileCode) Error() string {
	return fmt.Sprintf("unknown profile code %q", e.Code)
}

// ResolveProfile maps a short profile code to its canonical profile.
// Lookup is a case-sensitive exact match.
func ResolveProfile(code string) (Profile, error) {
	p, ok := profileCatalog[code]
	if !ok {
		return Profile{}, &ErrUnknownProfileCode{Code: code}
	}
	return p, nil
}
