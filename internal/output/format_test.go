package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestStatusLines(t *testing.T) {
	tests := map[string]struct {
		print func(*bytes.Buffer)
		want  string
	}{
		"success": {
			print: func(b *bytes.Buffer) { PrintSuccess(b, "12 entries written") },
			want:  "✓ 12 entries written\n",
		},
		"warning": {
			print: func(b *bytes.Buffer) { PrintWarning(b, "1 section rejected") },
			want:  "! 1 section rejected\n",
		},
		"failure": {
			print: func(b *bytes.Buffer) { PrintFailure(b, "drift") },
			want:  "✗ drift\n",
		},
		"header": {
			print: func(b *bytes.Buffer) { PrintHeader(b, "1.0.0") },
			want:  "1.0.0\n─────\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintKeyValue(t *testing.T) {
	var buf bytes.Buffer
	PrintKeyValue(&buf, "page_size", 10)
	assert.True(t, strings.HasPrefix(buf.String(), "  page_size:"))
	assert.True(t, strings.HasSuffix(buf.String(), " 10\n"))
}

func TestNewTable(t *testing.T) {
	tbl := NewTable("Version", "Date")
	tbl.AppendRow(table.Row{"1.0.0", "2024-01-05"})

	var buf bytes.Buffer
	RenderTable(&buf, tbl)
	out := buf.String()

	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "1.0.0")
	assert.Contains(t, out, "2024-01-05")
}

func TestGetTerminalWidth(t *testing.T) {
	assert.Positive(t, GetTerminalWidth())
}
