package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var emailRe = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// ValidateNew normalizes f and builds a User ready for insertion. All
// required attributes must be present; Status and ProfileImage fall back to
// their defaults.
func ValidateNew(f Fields) (User, error) {
	var (
		verr ValidationError
		u    User
	)

	u.FirstName = required(&verr, "firstName", "First name is required", f.FirstName)
	u.LastName = required(&verr, "lastName", "Last name is required", f.LastName)
	u.Email = email(&verr, f.Email)
	u.Mobile = required(&verr, "mobile", "Mobile number is required", f.Mobile)

	if g := trimmed(f.Gender); g == "" {
		verr.add("gender", "Gender is required")
	} else if gender, ok := parseGender(g); !ok {
		verr.add("gender", enumMessage(g, "gender"))
	} else {
		u.Gender = gender
	}

	u.Status = StatusActive
	if f.Status != nil {
		s := trimmed(f.Status)
		if status, ok := parseStatus(s); ok {
			u.Status = status
		} else {
			verr.add("status", enumMessage(s, "status"))
		}
	}

	u.Location = required(&verr, "location", "Location is required", f.Location)

	if d := trimmed(f.DateOfBirth); d == "" {
		verr.add("dateOfBirth", "Date of birth is required")
	} else if dob, ok := parseDate(d); !ok {
		verr.add("dateOfBirth", "Date of birth must be a valid date")
	} else {
		u.DateOfBirth = dob
	}

	u.ProfileImage = DefaultProfileImage
	if img := trimmed(f.ProfileImage); img != "" {
		u.ProfileImage = img
	}

	if err := verr.orNil(); err != nil {
		return User{}, err
	}
	return u, nil
}

// ValidatePatch checks only the attributes present in f. A present but blank
// required or enum attribute is rejected.
func ValidatePatch(f Fields) (Patch, error) {
	var (
		verr ValidationError
		p    Patch
	)

	if f.FirstName != nil {
		p.FirstName = ptr(required(&verr, "firstName", "First name is required", f.FirstName))
	}
	if f.LastName != nil {
		p.LastName = ptr(required(&verr, "lastName", "Last name is required", f.LastName))
	}
	if f.Email != nil {
		p.Email = ptr(email(&verr, f.Email))
	}
	if f.Mobile != nil {
		p.Mobile = ptr(required(&verr, "mobile", "Mobile number is required", f.Mobile))
	}
	if f.Gender != nil {
		if g := trimmed(f.Gender); g == "" {
			verr.add("gender", "Gender is required")
		} else if gender, ok := parseGender(g); !ok {
			verr.add("gender", enumMessage(g, "gender"))
		} else {
			p.Gender = &gender
		}
	}
	if f.Status != nil {
		s := trimmed(f.Status)
		if status, ok := parseStatus(s); ok {
			p.Status = &status
		} else {
			verr.add("status", enumMessage(s, "status"))
		}
	}
	if f.Location != nil {
		p.Location = ptr(required(&verr, "location", "Location is required", f.Location))
	}
	if f.DateOfBirth != nil {
		if d := trimmed(f.DateOfBirth); d == "" {
			verr.add("dateOfBirth", "Date of birth is required")
		} else if dob, ok := parseDate(d); !ok {
			verr.add("dateOfBirth", "Date of birth must be a valid date")
		} else {
			p.DateOfBirth = &dob
		}
	}
	if img := trimmed(f.ProfileImage); img != "" {
		p.ProfileImage = &img
	}

	if err := verr.orNil(); err != nil {
		return Patch{}, err
	}
	return p, nil
}

func required(verr *ValidationError, field, msg string, v *string) string {
	s := trimmed(v)
	if s == "" {
		verr.add(field, msg)
	}
	return s
}

func email(verr *ValidationError, v *string) string {
	s := strings.ToLower(trimmed(v))
	switch {
	case s == "":
		verr.add("email", "Email is required")
	case !emailRe.MatchString(s):
		verr.add("email", "Please fill a valid email address")
	}
	return s
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func ptr(s string) *string { return &s }

func enumMessage(value, path string) string {
	return fmt.Sprintf("`%s` is not a valid enum value for path `%s`.", value, path)
}

func parseGender(s string) (Gender, bool) {
	for _, g := range Genders {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

func parseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
