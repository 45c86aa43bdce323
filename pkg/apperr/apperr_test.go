package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad id"), http.StatusBadRequest},
		{NotFound("video not found"), http.StatusNotFound},
		{Ownership("only owner"), http.StatusUnauthorized},
		{Unauthorized("login required"), http.StatusUnauthorized},
		{Internal("count likes", errors.New("driver: bad conn")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Status(c.err), c.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := NotFound("comment not found")
	wrapped := fmt.Errorf("toggle: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "comment not found", Message(wrapped))
	assert.True(t, errors.Is(wrapped, NotFound("comment not found")))
	assert.False(t, errors.Is(wrapped, Validation("comment not found")))
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal("aggregation failed", errors.New("pq: relation \"likes\" does not exist"))
	assert.Equal(t, "aggregation failed", Message(err))
	assert.Contains(t, err.Error(), "pq:")
	assert.Equal(t, "internal server error", Message(errors.New("x")))
}
