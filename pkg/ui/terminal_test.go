package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	SetOutput(&stdout, &stderr)
	t.Cleanup(func() {
		SetQuietMode(false)
	})
	return &stdout, &stderr
}

func TestPrinting(t *testing.T) {
	stdout, stderr := captureOutput(t)

	PrintSuccess("done")
	PrintInfo("Records", "5")
	PrintWarning("careful", "slow")
	PrintError("failed", errors.New("boom"))

	assert.Equal(t, "done\nRecords: 5\ncareful: slow\n", stdout.String())
	assert.Equal(t, "failed: boom\n", stderr.String())
}

func TestQuietMode(t *testing.T) {
	stdout, stderr := captureOutput(t)
	SetQuietMode(true)

	PrintBanner()
	PrintSuccess("done")
	PrintHighlight("look")
	Println("plain")
	PrintError("still shown")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "still shown\n", stderr.String())
}

func TestNoColorForNonTerminal(t *testing.T) {
	captureOutput(t)

	assert.Equal(t, "text", Red("text"))
	assert.Equal(t, "text", Cyan("text"))
}
