package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestFieldErrors(t *testing.T) {
	err := Validate(reportInput{Email: "bukan-email"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "Name wajib diisi.", fields["Name"])
	assert.Equal(t, "Format email tidak valid.", fields["Email"])

	assert.Nil(t, FieldErrors(errors.New("plain")))
	assert.NoError(t, Validate(reportInput{Name: "A", Email: "a@b.id"}))
}

func TestJSONValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONValidationError(rec, Validate(reportInput{}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 2)
}

func TestJSONErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusInternalServerError, "db exploded", errors.New("disk full"))

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Error)
}

type contactInput struct {
	Name    string `form:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Age     int    `form:"age" validate:"gte=0,lte=120"`
}

func TestFieldErrorsUseFormThenJSONNames(t *testing.T) {
	fields := FieldErrors(Validate(contactInput{Age: 200}))
	assert.Equal(t, "name wajib diisi.", fields["name"])
	assert.Equal(t, "subject wajib diisi.", fields["subject"])
	assert.Equal(t, "age di luar rentang yang diizinkan.", fields["age"])
}
