package handlers

import "strings"

// profileComplete reports whether the default shipping fields on a profile
// are all filled in; the flag drives the storefront's checkout prefill.
func profileComplete(address, city, state, zipCode string) bool {
	for _, v := range []string{address, city, state, zipCode} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
