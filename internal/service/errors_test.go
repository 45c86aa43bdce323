package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/testutil"
)

func TestValidIDCanonicalOnly(t *testing.T) {
	id := uuid.New().String()
	cases := map[string]bool{
		id:                              true,
		strings.ToUpper(id):             false,
		"urn:uuid:" + id:                false,
		"{" + id + "}":                  false,
		strings.ReplaceAll(id, "-", ""): false,
		"":                              false,
		"not-a-uuid":                    false,
	}
	for in, want := range cases {
		assert.Equal(t, want, validID(in), in)
	}
}

func TestToggleRejectsNonCanonicalID(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	fan := testutil.User(t, f.db, "fan")
	v := testutil.Video(t, f.db, owner, "v", true)

	_, err := f.toggles.Toggle(ctx, LikeEdge(model.TargetVideo, strings.ToUpper(v.ID)), fan.ID)
	assert.ErrorIs(t, err, ErrInvalidVideoID)
}
