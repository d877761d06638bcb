package homework

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_AllVerdicts(t *testing.T) {
	for _, s := range Statuses() {
		t.Run(string(s), func(t *testing.T) {
			verdict, ok := Verdict(s)
			require.True(t, ok)

			msg := ParseStatus(Record{Status: s, HomeworkName: "proj1"})
			assert.Contains(t, msg, verdict)
			assert.Contains(t, msg, `"proj1"`)
			assert.Equal(t, `The status has changed: "proj1". `+verdict, msg)
		})
	}
}

func TestParseStatus_UnknownStatusHasEmptyVerdict(t *testing.T) {
	msg := ParseStatus(Record{Status: "unknown", HomeworkName: "proj2"})
	assert.Equal(t, `The status has changed: "proj2". `, msg)
}

func TestCheckResponse_EmptyList(t *testing.T) {
	resp := &Response{Homeworks: []Record{}}

	got, err := CheckResponse(resp, FirstRecord)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCheckResponse_MissingList(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"current_date": 1}`), &resp))

	_, err := CheckResponse(&resp, FirstRecord)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoHomeworks)
	assert.Equal(t, "validation", Kind(err))

	_, err = CheckResponse(nil, AllRecords)
	assert.ErrorIs(t, err, ErrNoHomeworks)
}

// The first-record mode returns the whole list once the first record passes,
// so an unknown status further down is let through.
func TestCheckResponse_FirstRecordShortCircuits(t *testing.T) {
	resp := &Response{Homeworks: []Record{
		{Status: StatusApproved, HomeworkName: "a"},
		{Status: "bogus", HomeworkName: "b"},
	}}

	got, err := CheckResponse(resp, FirstRecord)
	require.NoError(t, err)
	assert.Equal(t, resp.Homeworks, got)
}

func TestCheckResponse_AllRecordsRejectsLaterUnknown(t *testing.T) {
	resp := &Response{Homeworks: []Record{
		{Status: StatusApproved, HomeworkName: "a"},
		{Status: "bogus", HomeworkName: "b"},
	}}

	_, err := CheckResponse(resp, AllRecords)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, Status("bogus"), vErr.Status)
	assert.ErrorIs(t, err, ErrNoStatus)
}

func TestCheckResponse_FirstRecordUnknown(t *testing.T) {
	for _, mode := range []ValidationMode{FirstRecord, AllRecords} {
		t.Run(mode.String(), func(t *testing.T) {
			resp := &Response{Homeworks: []Record{
				{Status: "unknown", HomeworkName: "proj2"},
				{Status: StatusApproved, HomeworkName: "proj3"},
			}}

			got, err := CheckResponse(resp, mode)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrNoStatus)
			assert.Contains(t, err.Error(), "no status")
		})
	}
}

func TestKind(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&TransportError{Op: "fetch", Err: cause}, "transport"},
		{fmt.Errorf("wrapped: %w", &DecodeError{Err: cause}), "decode"},
		{&ValidationError{Err: ErrNoStatus}, "validation"},
		{cause, "unknown"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Kind(tc.err))
	}

	tErr := &TransportError{Op: "send", Err: cause}
	assert.ErrorIs(t, tErr, cause)
	assert.Equal(t, "send failed: connection refused", tErr.Error())
}
