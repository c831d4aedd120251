package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnStringPrefersURL(t *testing.T) {
	conn, err := Settings{URL: "postgres://u:p@db/skips", Host: "ignored"}.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/skips", conn)
}

func TestConnStringFromParts(t *testing.T) {
	conn, err := Settings{Host: "localhost", User: "skips", Password: "secret", Name: "checkout"}.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=skips password=secret dbname=checkout sslmode=disable", conn)
}

func TestConnStringMissingParts(t *testing.T) {
	_, err := Settings{Host: "localhost"}.ConnString()
	assert.Error(t, err)
}
