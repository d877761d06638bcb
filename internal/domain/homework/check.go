package homework

import "fmt"

// ValidationMode selects how many records CheckResponse inspects.
type ValidationMode int

const (
	// FirstRecord accepts or rejects the whole batch based on its first record.
	// Records after the first are never inspected.
	FirstRecord ValidationMode = iota
	// AllRecords rejects the batch on the first record with an unknown status.
	AllRecords
)

func (m ValidationMode) String() string {
	if m == AllRecords {
		return "all-records"
	}
	return "first-record"
}

// CheckResponse extracts the homeworks list and gates it on the status vocabulary.
// The list is returned unmodified on success.
func CheckResponse(resp *Response, mode ValidationMode) ([]Record, error) {
	if resp == nil || resp.Homeworks == nil {
		return nil, &ValidationError{Err: ErrNoHomeworks}
	}

	for _, hw := range resp.Homeworks {
		if _, ok := Verdict(hw.Status); !ok {
			return nil, &ValidationError{Status: hw.Status, Err: ErrNoStatus}
		}
		if mode == FirstRecord {
			return resp.Homeworks, nil
		}
	}
	return resp.Homeworks, nil
}

// ParseStatus renders the notification text for one record.
// An unknown status yields an empty verdict.
func ParseStatus(hw Record) string {
	verdict, _ := Verdict(hw.Status)
	return fmt.Sprintf("The status has changed: \"%s\". %s", hw.HomeworkName, verdict)
}
