// Package validation holds syntactic checks on user input.
package validation

import "regexp"

// Word characters are Unicode letters, digits and underscore.
var reEmail = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)

// IsValidEmail reports whether s looks like local@domain.tld. It does not
// trim s and does not check that the domain exists.
func IsValidEmail(s string) bool {
	return reEmail.MatchString(s)
}
