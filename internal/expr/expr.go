// Package expr parses and evaluates the binary expressions accepted by the
// bigcalc command line: two unsigned operands joined by +, - or *.
package expr

import (
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Op is a binary operator.
type Op byte

const (
	// OpNone marks a bare operand, evaluated to its canonical form.
	OpNone Op = 0
	OpAdd  Op = '+'
	OpSub  Op = '-'
	OpMul  Op = '*'
)

// String returns the operator symbol, or "=" for OpNone.
func (o Op) String() string {
	if o == OpNone {
		return "="
	}
	return string(rune(o))
}

// Name returns a word for the operator, used as a metrics label.
func (o Op) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	default:
		return "value"
	}
}

// Expression is a parsed "left op right" expression.
type Expression struct {
	Text  string
	Left  string
	Op    Op
	Right string
}

// Calculator is the arithmetic an Expression needs.
type Calculator interface {
	Add(a, b bigint.Uint) bigint.Uint
	Sub(a, b bigint.Uint) (bigint.Uint, error)
	Mul(a, b bigint.Uint) (bigint.Uint, error)
}

// Options controls evaluation.
type Options struct {
	// Lenient parses operands with bigint.ParseUintLenient.
	Lenient bool
}

func parseOp(s string) (Op, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*", "x", "×":
		return OpMul, true
	}
	return OpNone, false
}

// Parse splits text into operands and operator. Both "a op b" with spaces
// and the compact "a*b" forms are accepted, as is a single operand. A
// leading sign on either operand is left for the operand parser.
func Parse(text string) (Expression, error) {
	trimmed := strings.TrimSpace(text)
	e := Expression{Text: trimmed}
	if trimmed == "" {
		return e, apperrors.ValidationError{Field: "expression", Message: "empty expression"}
	}

	fields := strings.Fields(trimmed)
	switch len(fields) {
	case 1:
		// Compact form: the operator is the first of + - * after position 0.
		if i := strings.IndexAny(trimmed[1:], "+-*"); i >= 0 {
			i++
			e.Left, e.Op, e.Right = trimmed[:i], Op(trimmed[i]), trimmed[i+1:]
			if e.Right == "" {
				return e, apperrors.ValidationError{Field: "expression", Message: "missing right operand in " + trimmed}
			}
			return e, nil
		}
		e.Left = trimmed
		return e, nil
	case 3:
		op, ok := parseOp(fields[1])
		if !ok {
			return e, apperrors.ValidationError{Field: "expression", Message: fmt.Sprintf("unknown operator %q", fields[1])}
		}
		e.Left, e.Op, e.Right = fields[0], op, fields[2]
		return e, nil
	default:
		return e, apperrors.ValidationError{Field: "expression", Message: "expected \"a op b\", got " + trimmed}
	}
}

// String renders the expression in normalized "a op b" form.
func (e Expression) String() string {
	if e.Op == OpNone {
		return e.Left
	}
	return e.Left + " " + e.Op.String() + " " + e.Right
}

func parseOperand(s string, opts Options) (bigint.Uint, error) {
	if opts.Lenient {
		return bigint.ParseUintLenient(s), nil
	}
	return bigint.ParseUint(s)
}

// Evaluate parses the operands and applies the operator with calc.
//
// Returns:
//   - bigint.Uint: The result.
//   - error: An operand parse error (wrapped with the operand side) or the
//     arithmetic error from calc.
func (e Expression) Evaluate(calc Calculator, opts Options) (bigint.Uint, error) {
	left, err := parseOperand(e.Left, opts)
	if err != nil {
		return bigint.Uint{}, apperrors.WrapError(err, "left operand")
	}
	if e.Op == OpNone {
		return left, nil
	}
	right, err := parseOperand(e.Right, opts)
	if err != nil {
		return bigint.Uint{}, apperrors.WrapError(err, "right operand")
	}

	switch e.Op {
	case OpAdd:
		return calc.Add(left, right), nil
	case OpSub:
		return calc.Sub(left, right)
	case OpMul:
		return calc.Mul(left, right)
	default:
		return bigint.Uint{}, apperrors.ValidationError{Field: "expression", Message: "unknown operator " + e.Op.String()}
	}
}
