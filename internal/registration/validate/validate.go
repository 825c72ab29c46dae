// Package validate holds the single source of truth for registration field
// rules. The interactive form and the HTTP service both consume this table,
// so the two sides cannot drift apart.
package validate

import (
	"regexp"
	"strings"

	"regdesk/internal/registration/models"
)

// Field names match the JSON keys of the register request.
type Field string

const (
	FieldName        Field = "name"
	FieldAdmissionNo Field = "admissionNo"
	FieldBranch      Field = "branch"
	FieldPhone       Field = "phone"
	FieldEmail       Field = "email"
)

var (
	admissionNoPattern = regexp.MustCompile(`^\d{6}$`)
	phonePattern       = regexp.MustCompile(`^\d{10}$`)
)

// Rule binds one field to its predicate and the messages each side shows.
// ServerMessage is empty for fields the server covers with the presence check
// alone.
type Rule struct {
	Field         Field
	Valid         func(string) bool
	ClientMessage string
	ServerMessage string
}

// Rules is ordered: the client reports every failing field, the server stops
// at the first failing format rule after the presence check.
var Rules = []Rule{
	{FieldName, notBlank, "Full name is required", ""},
	{FieldAdmissionNo, admissionNoPattern.MatchString, "Admission number must be 6 digits", "Admission number must be exactly 6 digits."},
	{FieldBranch, notBlank, "Branch is required", ""},
	{FieldPhone, phonePattern.MatchString, "Phone number must be 10 digits", "Phone number must be exactly 10 digits."},
	// Deliberately weak: a single '@' anywhere passes. Full address grammar
	// is out of scope.
	{FieldEmail, containsAt, "Email must contain '@'", "Email must contain '@'"},
}

// MessageFillAllFields is the server's aggregated presence-check rejection.
const MessageFillAllFields = "Please fill all the fields."

func notBlank(s string) bool   { return strings.TrimSpace(s) != "" }
func containsAt(s string) bool { return strings.Contains(s, "@") }

// Fields flattens a request into the field/value mapping the rule table
// operates on.
func Fields(req models.RegisterRequest) map[Field]string {
	return map[Field]string{
		FieldName:        req.Name,
		FieldAdmissionNo: req.AdmissionNo,
		FieldBranch:      req.Branch,
		FieldPhone:       req.Phone,
		FieldEmail:       req.Email,
	}
}

// Client applies every rule and returns only the failing fields with their
// client-side messages. Pure: same values in, same mapping out.
func Client(values map[Field]string) map[Field]string {
	failures := make(map[Field]string)
	for _, rule := range Rules {
		if !rule.Valid(values[rule.Field]) {
			failures[rule.Field] = rule.ClientMessage
		}
	}
	return failures
}

// Server returns the first rejection message in the service's check order, or
// "" when every rule passes. Presence of all fields is checked first as one
// aggregate failure, then format rules in table order.
func Server(values map[Field]string) string {
	for _, rule := range Rules {
		if !notBlank(values[rule.Field]) {
			return MessageFillAllFields
		}
	}
	for _, rule := range Rules {
		if rule.ServerMessage == "" {
			continue
		}
		if !rule.Valid(values[rule.Field]) {
			return rule.ServerMessage
		}
	}
	return ""
}
