package journal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/gobbletick/gobble"
)

func TestPrintRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintRun(&buf, testRecord("RUN1", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "RUN1")
	assert.Contains(t, out, "SLAB_52W")
	assert.Contains(t, out, "Exit Rate:     3.00%")
	assert.Contains(t, out, "Total Profit:  1500.00")
}

func TestPrintLedgerHeadAndUndefinedGain(t *testing.T) {
	t.Parallel()

	led, err := gobble.Run([]float64{100, 110, 120}, gobble.Params{
		InitialBank:  0,
		GobbleAmount: 1000,
		ExitRate:     0.1,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintLedger(&buf, led, 2)

	out := buf.String()
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "... 1 more ticks")
}
