package booking

import (
	"fmt"
	"strings"
)

// Violation identifies one unmet confirmation condition. All violations are
// recoverable by the user correcting input; none are system faults.
type Violation string

const (
	ViolationDatesMissing     Violation = "dates_missing"
	ViolationDatesInverted    Violation = "dates_inverted"
	ViolationCheckInPast      Violation = "check_in_past"
	ViolationRangeUnavailable Violation = "range_unavailable"
	ViolationCapacityExceeded Violation = "capacity_exceeded"
	ViolationUnitUnselected   Violation = "unit_unselected"
	ViolationAdultsRequired   Violation = "adults_required"
	ViolationNameRequired     Violation = "name_required"
	ViolationEmailRequired    Violation = "email_required"
	ViolationRulesNotAccepted Violation = "rules_not_accepted"
)

// Violation classes group codes by the kind of check that failed.
const (
	ClassStructuralDate    = "structural_date"
	ClassAvailability      = "availability"
	ClassCapacity          = "capacity"
	ClassIncompleteRequest = "incomplete_request"
)

func (v Violation) Class() string {
	switch v {
	case ViolationDatesMissing, ViolationDatesInverted, ViolationCheckInPast:
		return ClassStructuralDate
	case ViolationRangeUnavailable:
		return ClassAvailability
	case ViolationCapacityExceeded:
		return ClassCapacity
	default:
		return ClassIncompleteRequest
	}
}

// ValidationError carries every condition a confirm attempt violated.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	codes := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		codes = append(codes, string(v))
	}
	return fmt.Sprintf("booking: request not confirmable: %s", strings.Join(codes, ", "))
}
