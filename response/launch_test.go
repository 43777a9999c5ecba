// response/launch_test.go
package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sectionID = "0f9b4a2c-1234-4abc-9def-0123456789ab"
	pageID    = "A1B2C3D4-0000-1111-2222-333344445555"
	extraID   = "99999999-8888-7777-6666-555555555555"
)

func TestFormulateLaunchURIString(t *testing.T) {
	base := "onenote:https://d.docs.live.net/123/Documents/Notebook/Quick%20Notes.one#Title"

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "two identifiers are wrapped",
			input:    base + "&section-id=" + sectionID + "&page-id=" + pageID + "&end",
			expected: base + "&section-id={" + sectionID + "}&page-id={" + pageID + "}&end",
		},
		{
			name:     "no identifiers",
			input:    base + "&end",
			expected: base + "&end",
		},
		{
			name:     "one identifier",
			input:    base + "&section-id=" + sectionID + "&end",
			expected: base + "&section-id=" + sectionID + "&end",
		},
		{
			name:     "three identifiers",
			input:    base + "&a=" + sectionID + "&b=" + pageID + "&c=" + extraID + "&end",
			expected: base + "&a=" + sectionID + "&b=" + pageID + "&c=" + extraID + "&end",
		},
		{
			name:     "identifier not followed by ampersand",
			input:    base + "&section-id=" + sectionID + "&page-id=" + pageID,
			expected: base + "&section-id=" + sectionID + "&page-id=" + pageID,
		},
		{
			name:     "same identifier twice",
			input:    "onenote:x?a=" + sectionID + "&b=" + sectionID + "&",
			expected: "onenote:x?a={" + sectionID + "}&b={" + sectionID + "}&",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormulateLaunchURIString(tt.input))
		})
	}
}

func TestFormulateLaunchURI(t *testing.T) {
	input := "onenote:https://d.docs.live.net/123/Notebook.one#Title&section-id=" + sectionID + "&page-id=" + pageID + "&end"

	u, err := FormulateLaunchURI(input)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "onenote", u.Scheme)
	assert.Contains(t, u.Fragment, "{"+sectionID+"}")
	assert.Contains(t, u.Fragment, "{"+pageID+"}")
}

func TestFormulateLaunchURIString_SerializedFormKeepsBraces(t *testing.T) {
	input := "onenote:https://d.docs.live.net/123/Quick%20Notes.one#Title&section-id=" + sectionID + "&page-id=" + pageID + "&end"

	launch := FormulateLaunchURIString(input)
	assert.Equal(t, "onenote:https://d.docs.live.net/123/Quick%20Notes.one#Title&section-id={"+sectionID+"}&page-id={"+pageID+"}&end", launch)

	u, err := FormulateLaunchURI(input)
	require.NoError(t, err)
	assert.NotContains(t, u.String(), "{"+sectionID+"}")
}

func TestFormulateLaunchURI_Empty(t *testing.T) {
	u, err := FormulateLaunchURI("")
	assert.NoError(t, err)
	assert.Nil(t, u)
}
