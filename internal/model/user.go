package model

import "strings"

type UserProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	JoiningDate string `json:"joining_date"`
}

// Initials returns the upper-cased first letters of the first two words of
// the name, e.g. "Jane Doe" -> "JD".
func (u UserProfile) Initials() string {
	if u.Name == "" {
		return ""
	}
	var b strings.Builder
	for i, word := range strings.Fields(u.Name) {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(word[:1]))
	}
	return b.String()
}
