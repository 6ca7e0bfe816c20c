package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   Kind
	}{
		{fmt.Errorf("job not found: %w", ErrNotFound), http.StatusNotFound, KindNotFound},
		{ErrForbidden, http.StatusForbidden, KindForbidden},
		{ErrPendingApproval, http.StatusForbidden, KindPendingApproval},
		{ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials},
		{fmt.Errorf("already applied: %w", ErrConflict), http.StatusConflict, KindDuplicate},
		{ErrInvalidTransition, http.StatusConflict, KindInvalidTransition},
		{Validation("cgpa must be between 0 and 10"), http.StatusBadRequest, KindValidation},
		{ErrProfileRequired, http.StatusNotFound, KindProfileRequired},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, KindRateLimited},
		{fmt.Errorf("boom"), http.StatusInternalServerError, KindServerFault},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, MapErrorToStatus(tc.err), tc.err.Error())
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := Validation("deadline must be a date")
	assert.Equal(t, "deadline must be a date", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	wrapped := New(http.StatusInternalServerError, "", ErrInternal)
	assert.Equal(t, ErrInternal.Error(), wrapped.Error())
}
