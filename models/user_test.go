package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordNeverSerialized(t *testing.T) {
	user := User{
		ID:        1,
		Username:  "John Doe",
		Password:  "$2a$10$somethinghashed",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.NotContains(t, fields, "password")
	assert.Equal(t, "John Doe", fields["username"])
}

func TestUser_CompaniesOmittedWhenAbsent(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Username: "John Doe"})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "companies")
}

func TestCompany_ZipCodeSerializesNull(t *testing.T) {
	raw, err := json.Marshal(Company{ID: 1, Name: "Acme"})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	value, present := fields["zipCode"]
	assert.True(t, present)
	assert.Nil(t, value)
}
