package models

import "regexp"

var eduEmailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.edu$`)

// Student represents a learner registered in the institution.
type Student struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Degree string `json:"degree"`
	Email  string `json:"email"`
}

// ValidEduEmail reports whether the address is an institutional .edu one.
func ValidEduEmail(email string) bool {
	return eduEmailPattern.MatchString(email)
}
