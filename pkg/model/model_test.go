package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIDs(t *testing.T) {
	assert.Equal(t, "0001", FormatUserIndex(1))
	assert.Equal(t, "0042", FormatUserIndex(42))
	assert.Equal(t, "12345", FormatUserIndex(12345))

	assert.Equal(t, "L0001", FormatLecturerID(1))
	assert.Equal(t, "L0999", FormatLecturerID(999))
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain address", input: "ada@example.edu", want: "ada@example.edu"},
		{name: "surrounding whitespace", input: "  ada@example.edu ", want: "ada@example.edu"},
		{name: "plus addressing", input: "ada+eval@uni.example.edu", want: "ada+eval@uni.example.edu"},
		{name: "missing at", input: "ada.example.edu", wantErr: true},
		{name: "missing domain dot", input: "ada@localhost", wantErr: true},
		{name: "display name", input: "Ada <ada@example.edu>", want: "ada@example.edu"},
		{name: "quoted display name", input: `"Lovelace, Ada" <Ada@Example.EDU>`, want: "Ada@example.edu"},
		{name: "domain is lowercased", input: "ada@EXAMPLE.EDU", want: "ada@example.edu"},
		{name: "local part keeps case", input: "Ada.Lovelace@example.edu", want: "Ada.Lovelace@example.edu"},
		{name: "two addresses", input: "ada@example.edu, grace@example.edu", wantErr: true},
		{name: "display name without address", input: "Ada <>", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "lecturers", Lecturer{}.TableName())
	assert.Equal(t, "evaluations", Evaluation{}.TableName())
}
