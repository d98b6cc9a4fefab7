package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNicknameValidator(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type form struct {
		Nickname string `binding:"required,nickname"`
	}

	for nickname, valid := range map[string]bool{
		"alice":         true,
		"Alice.Smith":   true,
		"dev+go@home_1": true,
		"has space":     false,
		"semi;colon":    false,
		"<script>":      false,
	} {
		err := binding.Validator.ValidateStruct(&form{Nickname: nickname})
		if valid {
			assert.NoError(t, err, nickname)
		} else {
			assert.Error(t, err, nickname)
		}
	}
}
