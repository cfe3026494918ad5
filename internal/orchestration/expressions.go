package orchestration

import (
	"bufio"
	"io"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// maxLineBytes bounds one line of a batch file.
const maxLineBytes = 64 << 20

// CollectExpressions returns the expressions to run: the inline ones first,
// then one per line of r when r is non-nil. Blank lines and lines starting
// with '#' are skipped.
func CollectExpressions(inline []string, r io.Reader) ([]string, error) {
	exprs := make([]string, 0, len(inline))
	for _, e := range inline {
		if strings.TrimSpace(e) != "" {
			exprs = append(exprs, e)
		}
	}
	if r == nil {
		return exprs, nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "reading expressions")
	}
	return exprs, nil
}
