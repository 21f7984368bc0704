package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	got, err := GetSimpleText(reader("  hello world  \n"), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	got, err := GetSimpleText(reader("no newline"), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetMultiline(t *testing.T) {
	got, err := GetMultiline(reader("line one\nline two\n\nignored\n"), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestGetTags(t *testing.T) {
	got, err := GetTags(reader("work, home , ,errands\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "home", "errands"}, got)
}

func TestGetTags_Empty(t *testing.T) {
	got, err := GetTags(reader("\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
