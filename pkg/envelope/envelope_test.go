package envelope

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

func TestSuccessEnvelopeWireShape(t *testing.T) {
	b, err := json.Marshal(Success(member{ID: 7, FullName: "Aru"}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":true,"data":{"id":7,"full_name":"Aru"}}`, string(b))
}

func TestFailureEnvelopeWireShape(t *testing.T) {
	b, err := json.Marshal(Failure("NOT_FOUND", "Member not found", ShowErrorMessage))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":false,"errorCode":"NOT_FOUND","errorMessage":"Member not found","showType":2}`, string(b))
}

func TestResultHidesDataOnFailure(t *testing.T) {
	var env Envelope[member]
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"data":{"id":1},"errorCode":"FORBIDDEN","errorMessage":"nope"}`), &env))

	res := env.Result()
	assert.False(t, res.IsOk())

	data, ok := res.Data()
	assert.False(t, ok)
	assert.Equal(t, member{}, data)

	require.NotNil(t, res.Problem())
	assert.Equal(t, "FORBIDDEN", res.Problem().Code)
	assert.Equal(t, ShowErrorMessage, res.Problem().ShowType)

	_, err := res.Unwrap()
	var p *Problem
	require.True(t, errors.As(err, &p))
	assert.Equal(t, "FORBIDDEN: nope", p.Error())
}

func TestResultOkRoundTrip(t *testing.T) {
	res := Ok(member{ID: 3, FullName: "Dana"})

	data, ok := res.Data()
	require.True(t, ok)
	assert.Equal(t, int64(3), data.ID)
	assert.Nil(t, res.Problem())

	env := res.Envelope()
	assert.True(t, env.Success)
	assert.Nil(t, env.ShowType)
	assert.Equal(t, "Dana", env.Data.FullName)
}

func TestErrEnvelopeKeepsShowType(t *testing.T) {
	env := Err[member]("CLASS_FULL", "Class is full", ShowWarnMessage).Envelope()

	assert.False(t, env.Success)
	require.NotNil(t, env.ShowType)
	assert.Equal(t, ShowWarnMessage, *env.ShowType)
}
