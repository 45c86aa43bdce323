package handler

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestSortOrderTag(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	cases := map[string]bool{"": true, "asc": true, "DESC": true, "random": false}
	for in, ok := range cases {
		err := binding.Validator.ValidateStruct(&listVideosQuery{SortType: in})
		if ok {
			assert.NoError(t, err, in)
		} else {
			assert.Error(t, err, in)
		}
	}
}
