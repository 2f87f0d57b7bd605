package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/dividends"
	md "github.com/nao1215/markdown"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// money formats an amount for a table cell, zero amounts are rendered as "-".
func money(m dividends.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// numericColumns aligns a label column on the left and n-1 numeric columns on the right.
func numericColumns(n int) []md.TableAlignment {
	a := make([]md.TableAlignment, n)
	a[0] = md.AlignLeft
	for i := 1; i < n; i++ {
		a[i] = md.AlignRight
	}
	return a
}

func count(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}
