package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptsValidInput(t *testing.T) {
	cases := []struct {
		name  string
		email string
	}{
		{"Al", "al@x.co"},
		{"  John Doe  ", " JOHN@EXAMPLE.COM "},
		{strings.Repeat("a", 100), "user.name+tag@sub.example.org"},
		{"Zoë", "zoe@example.fr"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.name, tc.email, false)
			assert.True(t, result.IsValid)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestValidate_AccumulatesBothFields(t *testing.T) {
	result := Validate("", "", true)

	assert.False(t, result.IsValid)
	assert.Equal(t, []FieldError{
		{Field: FieldName, Message: MsgNameRequired},
		{Field: FieldEmail, Message: MsgEmailRequired},
	}, result.Errors)
}

func TestValidate_EmptyNameAndBadEmail(t *testing.T) {
	result := Validate("", "bad", false)

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, MsgNameRequired, FieldErrorFor(result.Errors, FieldName))
	assert.Equal(t, MsgEmailInvalid, FieldErrorFor(result.Errors, FieldEmail))
}

func TestValidateName(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"empty":            {"", MsgNameRequired},
		"whitespace only":  {"   \t", MsgNameRequired},
		"single character": {" a ", MsgNameTooShort},
		"two characters":   {"ab", ""},
		"one hundred":      {strings.Repeat("b", 100), ""},
		"one hundred one":  {strings.Repeat("b", 101), MsgNameTooLong},
		"multibyte short":  {"é", MsgNameTooShort},
		"decomposed pair":  {"é", MsgNameTooShort},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fe := ValidateName(tc.input)
			if tc.want == "" {
				assert.Nil(t, fe)
				return
			}
			if assert.NotNil(t, fe) {
				assert.Equal(t, FieldName, fe.Field)
				assert.Equal(t, tc.want, fe.Message)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"empty":       {"", MsgEmailRequired},
		"blank":       {"  ", MsgEmailRequired},
		"no at":       {"bad", MsgEmailInvalid},
		"no tld":      {"user@host", MsgEmailInvalid},
		"inner space": {"us er@example.com", MsgEmailInvalid},
		"double at":   {"a@b@c.com", MsgEmailInvalid},
		"padded":      {"  user@example.com ", ""},
		"upper case":  {"USER@EXAMPLE.COM", ""},
		"short tld":   {"al@x.co", ""},
		"long local":  {strings.Repeat("a", 400) + "@example.com", ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fe := ValidateEmail(tc.input)
			if tc.want == "" {
				assert.Nil(t, fe)
				return
			}
			if assert.NotNil(t, fe) {
				assert.Equal(t, FieldEmail, fe.Field)
				assert.Equal(t, tc.want, fe.Message)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "John", NormalizeName(" John "))
	assert.Equal(t, "Zo\u00eb", NormalizeName(" Zoe\u0308 "))
	assert.Equal(t, 100, utf8.RuneCountInString(NormalizeName(strings.Repeat("e\u0301", 100))))
	assert.Equal(t, "john@example.com", NormalizeEmail(" JOHN@EXAMPLE.COM "))
}

func TestFieldErrorFor_Missing(t *testing.T) {
	assert.Equal(t, "", FieldErrorFor(nil, FieldEmail))
}
