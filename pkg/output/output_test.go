package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/report"
)

// sampleReport returns a two-package report with width 6.
func sampleReport() *report.Report {
	r := report.New()
	r.Add("plone.api", report.PackageRecord{
		State: constants.StateUpdate,
		Versions: []report.VersionRecord{
			{Version: "1.8", State: constants.StateUpToDate, Description: "versions.cfg"},
			{Version: "1.10.2", State: constants.StateUpdate, Description: "Final"},
		},
		RequiredBy: []string{"Products.CMFPlone", "plone.app.<x>"},
	})
	r.Add("six", report.PackageRecord{
		State:    constants.StateUpToDate,
		Versions: []report.VersionRecord{{Version: "1.16", State: constants.StateUpToDate, Description: "base.cfg"}},
	})
	r.MaxVersionWidth = 6
	return r
}

// TestParseFormat tests the behavior of ParseFormat.
//
// It verifies:
//   - Parses valid format strings case-insensitively
//   - "machine" is an alias of json
//   - Returns FormatHuman for unrecognized formats
func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"machine", FormatJSON},
		{"human", FormatHuman},
		{"HUMAN", FormatHuman},
		{"", FormatHuman},
		{"unknown", FormatHuman},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFormat(tt.input))
		})
	}
}

// TestIsValidFormat tests the behavior of IsValidFormat.
func TestIsValidFormat(t *testing.T) {
	assert.True(t, IsValidFormat(""))
	assert.True(t, IsValidFormat("Machine"))
	assert.True(t, IsValidFormat("human"))
	assert.False(t, IsValidFormat("xml"))
	assert.True(t, IsStructuredFormat(FormatJSON))
	assert.False(t, IsStructuredFormat(FormatHuman))
}

// TestParseColorMode tests the behavior of ParseColorMode.
func TestParseColorMode(t *testing.T) {
	mode, err := ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, mode)

	mode, err = ParseColorMode("ALWAYS")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, mode)

	mode, err = ParseColorMode("never")
	require.NoError(t, err)
	assert.Equal(t, ColorNever, mode)

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

// TestWriteHuman tests the behavior of WriteHuman without colors.
//
// It verifies:
//   - The header goes to stderr only
//   - Observations are indented and dot-aligned to MaxVersionWidth
//   - The full state code precedes the description
//   - Required-by is omitted unless requested
func TestWriteHuman(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := WriteHuman(&stdout, &stderr, sampleReport(), HumanOptions{Color: ColorNever})
	require.NoError(t, err)

	assert.Equal(t, "\nReport for humans\n\n", stderr.String())
	expected := strings.Join([]string{
		"plone.api",
		"    1.8 ... A versions.cfg",
		"    1.10.2  U Final",
		"six",
		"    1.16 .. A base.cfg",
		"",
	}, "\n")
	assert.Equal(t, expected, stdout.String())
}

// TestWriteHuman_RequiredBy tests the required-by block.
//
// It verifies:
//   - Dependents are indented past the version column
//   - Packages without dependents get no block
//   - Long lists wrap
func TestWriteHuman_RequiredBy(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := WriteHuman(&stdout, &stderr, sampleReport(), HumanOptions{ShowRequiredBy: true, Color: ColorNever})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "    1.10.2  U Final\n          Products.CMFPlone plone.app.<x>\n\nsix\n")

	r := report.New()
	names := make([]string, 30)
	for i := range names {
		names[i] = "dependent"
	}
	r.Add("pkg", report.PackageRecord{
		State:      constants.StateUnpinned,
		Versions:   []report.VersionRecord{{Version: "1.0", State: constants.StateUnpinned, Description: "unpinned"}},
		RequiredBy: names,
	})
	r.MaxVersionWidth = 3

	stdout.Reset()
	require.NoError(t, WriteHuman(&stdout, &stderr, r, HumanOptions{ShowRequiredBy: true, Color: ColorNever}))

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	require.Greater(t, len(lines), 3)
	for _, line := range lines[2:] {
		assert.True(t, strings.HasPrefix(line, "       dependent"), line)
		assert.LessOrEqual(t, len(line), 7+77)
	}
}

// TestWriteHuman_Color tests that forced colors add ANSI sequences and that
// the I state stays uncolored.
func TestWriteHuman_Color(t *testing.T) {
	r := report.New()
	r.Add("pkg", report.PackageRecord{
		State: constants.StateUpToDate,
		Versions: []report.VersionRecord{
			{Version: "1.0", State: constants.StateInherited, Description: "base.cfg"},
		},
	})
	r.MaxVersionWidth = 3

	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteHuman(&stdout, &stderr, r, HumanOptions{Color: ColorAlways}))

	lines := strings.Split(stdout.String(), "\n")
	assert.Contains(t, lines[0], "\x1b[")
	assert.Contains(t, lines[0], "pkg")
	assert.Equal(t, "    1.0  I base.cfg", lines[1])
}

// TestWriteHuman_Empty tests that an empty report writes only the header.
func TestWriteHuman_Empty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteHuman(&stdout, &stderr, report.New(), HumanOptions{Color: ColorNever}))
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())
}

// TestWriteMachine tests the behavior of WriteMachine.
//
// It verifies:
//   - The header goes to stderr only
//   - Package and key order are preserved
//   - required_by is omitted when empty
//   - HTML characters are not escaped
//   - Indentation is four spaces
func TestWriteMachine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteMachine(&stdout, &stderr, sampleReport()))

	assert.Equal(t, "\nReport for machines\n\n", stderr.String())

	expected := `{
    "plone.api": {
        "state": "U",
        "versions": [
            {
                "version": "1.8",
                "state": "A",
                "description": "versions.cfg"
            },
            {
                "version": "1.10.2",
                "state": "U",
                "description": "Final"
            }
        ],
        "required_by": [
            "Products.CMFPlone",
            "plone.app.<x>"
        ]
    },
    "six": {
        "state": "A",
        "versions": [
            {
                "version": "1.16",
                "state": "A",
                "description": "base.cfg"
            }
        ]
    }
}
`
	assert.Equal(t, expected, stdout.String())

	var decoded map[string]report.PackageRecord
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, constants.StateUpdate, decoded["plone.api"].State)
}

// TestWriteMachine_Empty tests that an empty report is an empty object.
func TestWriteMachine_Empty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, WriteMachine(&stdout, &stderr, report.New()))
	assert.Equal(t, "{}\n", stdout.String())
}

// TestWrite tests format dispatch.
func TestWrite(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, Write(&stdout, &stderr, FormatJSON, sampleReport(), HumanOptions{}))
	assert.True(t, strings.HasPrefix(stdout.String(), "{"))

	stdout.Reset()
	require.NoError(t, Write(&stdout, &stderr, FormatHuman, sampleReport(), HumanOptions{Color: ColorNever}))
	assert.True(t, strings.HasPrefix(stdout.String(), "plone.api\n"))

	assert.Error(t, Write(&stdout, &stderr, Format("xml"), sampleReport(), HumanOptions{}))
}
