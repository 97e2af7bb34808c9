package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type broadcastInput struct {
	Subject    string `validate:"required,notblank,max=10"`
	SenderName string `json:"senderName" validate:"max=3"`
	Email      string `validate:"omitempty,email"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(broadcastInput{Subject: "Menu"}))
	})

	t.Run("field errors", func(t *testing.T) {
		err := v.Validate(broadcastInput{Subject: "   ", SenderName: "Ravi", Email: "nope"})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "subject must not be blank", verr.Values()["subject"])
		assert.Contains(t, verr.Values(), "senderName")
		assert.Contains(t, verr.Values(), "email")
		assert.Contains(t, verr.Error(), `"subject"`)
	})

	t.Run("not a struct", func(t *testing.T) {
		err := v.Validate("x")

		var verr V10ValidationError
		assert.Error(t, err)
		assert.NotErrorAs(t, err, &verr)
	})
}
