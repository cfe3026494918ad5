package bigint_test

import (
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/ntt"
)

// ExampleMul multiplies two twelve-digit numbers through the transform.
func ExampleMul() {
	a, _ := bigint.ParseUint("999999999999")
	p, err := bigint.Mul(a, a)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(p)
	// Output: 999999999998000000000001
}

// ExampleSub shows the recoverable underflow error.
func ExampleSub() {
	a, _ := bigint.ParseUint("5")
	b, _ := bigint.ParseUint("10")
	_, err := bigint.Sub(a, b)

	var neg *apperrors.NegativeResultError
	fmt.Println(errors.As(err, &neg))
	fmt.Println(err)
	// Output:
	// true
	// unsigned subtraction underflow: minuend 5 is smaller than subtrahend 10
}

// ExampleNewCalculator binds a calculator to its own small table.
func ExampleNewCalculator() {
	table, err := ntt.NewTable(ntt.WithMaxLog(10))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	calc := bigint.NewCalculator(table)

	a, _ := bigint.ParseUint("123456789")
	b, _ := bigint.ParseUint("987654321")
	p, _ := calc.Mul(a, b)
	fmt.Println(p, calc.Table().MaxSize())
	// Output: 121932631112635269 1024
}

// ExampleParseInt shows sign handling.
func ExampleParseInt() {
	x, _ := bigint.ParseInt("-000100000")
	fmt.Println(x, x.Sign(), x.Abs())
	fmt.Println(x.Neg())
	// Output:
	// -100000 - 100000
	// 100000
}
