package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSplitsOnSemicolons(t *testing.T) {
	stmts := tokenize("#N canvas 0 0 450 300 10;\n#X obj 10 20 osc~ 440;\n")
	assert.Len(t, stmts, 2)
	assert.Equal(t, "#N", stmts[0].head())
	assert.Equal(t, "canvas", stmts[0].at(1))
	assert.Equal(t, "osc~", stmts[1].at(4))
}

func TestTokenizeJoinsStatementSpanningMultipleLines(t *testing.T) {
	stmts := tokenize("#X obj 10\n20\nosc~ 440;")
	assert.Len(t, stmts, 1)
	assert.Equal(t, []string{"#X", "obj", "10", "20", "osc~", "440"}, stmts[0].fields)
}

func TestTokenizeDropsEmptyStatements(t *testing.T) {
	stmts := tokenize(";;  ;\n#X text comment;")
	assert.Len(t, stmts, 1)
	assert.Equal(t, "text", stmts[0].at(1))
}

func TestStatementAtOutOfRangeReturnsEmpty(t *testing.T) {
	stmts := tokenize("#X obj 0 0 +;")
	assert.Equal(t, "", stmts[0].at(99))
	assert.Equal(t, "", statement{}.head())
}
