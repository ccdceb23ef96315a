package form

import (
	"strings"
	"time"
)

// dateLayout is the wire format used by the backend for date-only fields.
const dateLayout = "2006-01-02"

// requireField adds message to errs when the draft field is empty or blank.
func requireField(d Draft, field, message string, errs FieldErrors) {
	if strings.TrimSpace(d[field]) == "" {
		errs[field] = message
	}
}

// requireOneOf adds message to errs when the field value is not one of the
// allowed options. An empty value is also rejected.
func requireOneOf(d Draft, field string, allowed []string, message string, errs FieldErrors) {
	v := strings.TrimSpace(d[field])
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	errs[field] = message
}

// checkDate adds message to errs when the field is non-empty but not a valid
// YYYY-MM-DD date. Empty values pass; pair with requireField for mandatory
// dates.
func checkDate(d Draft, field, message string, errs FieldErrors) {
	v := strings.TrimSpace(d[field])
	if v == "" {
		return
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		errs[field] = message
	}
}

// checkEmail adds message to errs when the field is non-empty but not a
// plausible email address. The backend performs the authoritative check; this
// only catches obvious typos before a round trip.
func checkEmail(d Draft, field, message string, errs FieldErrors) {
	v := strings.TrimSpace(d[field])
	if v == "" {
		return
	}
	at := strings.Index(v, "@")
	if at <= 0 || at == len(v)-1 || !strings.Contains(v[at+1:], ".") {
		errs[field] = message
	}
}
