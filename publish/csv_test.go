// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"bytes"
	"strings"
	"testing"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	providers := []*directory.Provider{
		{
			NameFirst:        "Ana",
			NameLast:         `O"Neil`,
			Email:            "ana@example.com",
			PhoneWork:        "'+1 555 0100",
			LanguageSpoken:   []string{"English", "Spanish"},
			UsesInterpreters: true,
			Point:            &spatial.Point{Lat: 40.7, Lng: -74},
			City:             "New York City",
			Country:          "United States",
			CredentialLink:   "https://secret.example/ana",
		},
		{NameFirst: "Bo"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, providers))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `"`+strings.Join(directory.PublicHeaders(), `","`)+`"`, lines[0])
	assert.Equal(t,
		`"Ana","O""Neil","ana@example.com","'+1 555 0100","","","","English, Spanish","TRUE","","40.7","-74","New York City","United States"`,
		lines[1])
	assert.Equal(t, `"Bo","","","","","","","","FALSE","","","","",""`, lines[2])
	assert.NotContains(t, buf.String(), "secret")
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.True(t, strings.HasPrefix(buf.String(), `"name_first",`))
}
