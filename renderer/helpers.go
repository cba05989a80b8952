package renderer

import (
	"bytes"
	"io"

	"github.com/tradelens/tradelens"
)

// ConditionalBlock lets you fully write a block and decide at the end to print
// it or not. If the block function returns true, the content is printed to w,
// otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// percent formats a fraction as a signed percentage, "-" when zero.
func percent(v float64) string {
	return tradelens.Percent(v * 100).SignedString()
}

// unsignedPercent formats a fraction as a percentage without a sign.
func unsignedPercent(v float64) string {
	return tradelens.Percent(v * 100).String()
}
