package httperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staynest/staynest-backend/internal/httperr"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *httperr.Error
		status int
	}{
		{httperr.BadRequest("bad"), http.StatusBadRequest},
		{httperr.Unauthorized("no creds"), http.StatusUnauthorized},
		{httperr.Forbidden("nope"), http.StatusForbidden},
		{httperr.NotFound("missing"), http.StatusNotFound},
		{httperr.Conflict("dupe"), http.StatusConflict},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Status)
		assert.Equal(t, c.err.Message, c.err.Error())
	}
}

func TestFrom(t *testing.T) {
	he := httperr.NotFound("missing")
	assert.Equal(t, he, httperr.From(he))

	// Wrapped taxonomy errors keep their status
	wrapped := fmt.Errorf("lookup failed: %w", he)
	assert.Equal(t, http.StatusNotFound, httperr.From(wrapped).Status)

	// Anything else is a generic 500
	got := httperr.From(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "Something went wrong", got.Message)
}
