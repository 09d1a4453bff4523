// Package extraction turns the free-form text a vision model returns for a
// business card into a typed contact-field record. Model output is untrusted:
// parsing is best effort and never fails, worst case every field is nil.
package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Fields is the structured result of one extraction. A nil pointer means
// the field was absent or unreadable; the review form lets the user fix it.
type Fields struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Website  *string `json:"website"`
}

// fallbackRule recovers one field from a blob that is not valid JSON.
// Rules are pure: same blob in, same value out.
type fallbackRule struct {
	field string
	re    *regexp.Regexp
}

// Ordered fallback rules, one per field. The pattern tolerates single or
// double quotes and the underscore/no-underscore spelling of full_name.
var fallbackRules = []fallbackRule{
	newRule("full_name", `full_?name`),
	newRule("email", `email`),
	newRule("phone", `phone`),
	newRule("company", `company`),
	newRule("position", `position`),
	newRule("website", `website`),
}

func newRule(field, namePattern string) fallbackRule {
	return fallbackRule{
		field: field,
		re:    regexp.MustCompile(fmt.Sprintf(`(?i)["']?%s["']?\s*:\s*["']([^"']+)["']`, namePattern)),
	}
}

// Parse attempts a strict JSON decode of the blob and, if that fails, runs
// the per-field regex fallback. It never returns an error.
func Parse(blob string) Fields {
	var fields Fields
	if err := json.Unmarshal([]byte(blob), &fields); err == nil {
		return fields
	}
	return parseFallback(blob)
}

func parseFallback(blob string) Fields {
	values := make(map[string]*string, len(fallbackRules))
	for _, rule := range fallbackRules {
		if m := rule.re.FindStringSubmatch(blob); m != nil {
			v := m[1]
			values[rule.field] = &v
		}
	}

	return Fields{
		FullName: values["full_name"],
		Email:    values["email"],
		Phone:    values["phone"],
		Company:  values["company"],
		Position: values["position"],
		Website:  values["website"],
	}
}

// Deref returns the pointed-to string or "" for nil, for callers building
// entities out of a Fields record.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
