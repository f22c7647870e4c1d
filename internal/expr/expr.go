// Package expr provides symbolic special-function expression nodes over a
// single spatial coordinate.
//
// Ownership boundary:
// - expression node kinds and their numerical evaluation
// - the named-function registry used by figure specs
//
// Expressions are pure value trees: building one never evaluates anything,
// and evaluation carries no state between points. Differentiation and
// simplification are deliberately absent.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Expr is an expression of the spatial coordinate x, evaluated pointwise.
type Expr interface {
	Eval(x float64) float64
	String() string
}

type coord struct{}

// X returns the spatial coordinate.
func X() Expr { return coord{} }

func (coord) Eval(x float64) float64 { return x }
func (coord) String() string         { return "x" }

// Const is a constant expression.
type Const float64

func (c Const) Eval(float64) float64 { return float64(c) }
func (c Const) String() string       { return strconv.FormatFloat(float64(c), 'g', -1, 64) }

type unary struct {
	name string
	fn   func(float64) float64
	arg  Expr
}

func (u unary) Eval(x float64) float64 { return u.fn(u.arg.Eval(x)) }
func (u unary) String() string         { return u.name + "(" + u.arg.String() + ")" }

func Sin(e Expr) Expr  { return unary{"sin", math.Sin, e} }
func Cos(e Expr) Expr  { return unary{"cos", math.Cos, e} }
func Tan(e Expr) Expr  { return unary{"tan", math.Tan, e} }
func Asin(e Expr) Expr { return unary{"asin", math.Asin, e} }
func Acos(e Expr) Expr { return unary{"acos", math.Acos, e} }
func Atan(e Expr) Expr { return unary{"atan", math.Atan, e} }
func Exp(e Expr) Expr  { return unary{"exp", math.Exp, e} }
func Ln(e Expr) Expr   { return unary{"ln", math.Log, e} }
func Sqrt(e Expr) Expr { return unary{"sqrt", math.Sqrt, e} }
func Neg(e Expr) Expr  { return unary{"neg", func(v float64) float64 { return -v }, e} }

type binary struct {
	op   string
	fn   func(a, b float64) float64
	l, r Expr
}

func (b binary) Eval(x float64) float64 { return b.fn(b.l.Eval(x), b.r.Eval(x)) }
func (b binary) String() string {
	return "(" + b.l.String() + " " + b.op + " " + b.r.String() + ")"
}

func Add(l, r Expr) Expr { return binary{"+", func(a, b float64) float64 { return a + b }, l, r} }
func Mul(l, r Expr) Expr { return binary{"*", func(a, b float64) float64 { return a * b }, l, r} }
func Pow(l, r Expr) Expr { return binary{"^", math.Pow, l, r} }

type bessel struct {
	kind  byte // 'J' or 'Y'
	order int
	arg   Expr
}

// BesselJ is the Bessel function of the first kind of the given order.
func BesselJ(order int, e Expr) Expr { return bessel{'J', order, e} }

// BesselY is the Bessel function of the second kind of the given order.
func BesselY(order int, e Expr) Expr { return bessel{'Y', order, e} }

func (b bessel) Eval(x float64) float64 {
	v := b.arg.Eval(x)
	switch b.kind {
	case 'J':
		switch b.order {
		case 0:
			return math.J0(v)
		case 1:
			return math.J1(v)
		default:
			return math.Jn(b.order, v)
		}
	default:
		switch b.order {
		case 0:
			return math.Y0(v)
		case 1:
			return math.Y1(v)
		default:
			return math.Yn(b.order, v)
		}
	}
}

func (b bessel) String() string {
	return fmt.Sprintf("bessel_%c(%d, %s)", b.kind, b.order, b.arg.String())
}

// Build resolves a named function of the spatial coordinate. The order
// argument only applies to the Bessel families and is rejected elsewhere.
func Build(name string, order int) (Expr, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "bessel_J":
		if order < 0 {
			return nil, fmt.Errorf("expr: negative bessel order %d", order)
		}
		return BesselJ(order, X()), nil
	case "bessel_Y":
		if order < 0 {
			return nil, fmt.Errorf("expr: negative bessel order %d", order)
		}
		return BesselY(order, X()), nil
	}
	if order != 0 {
		return nil, fmt.Errorf("expr: %q takes no order", name)
	}
	switch name {
	case "sin":
		return Sin(X()), nil
	case "cos":
		return Cos(X()), nil
	case "tan":
		return Tan(X()), nil
	case "asin":
		return Asin(X()), nil
	case "acos":
		return Acos(X()), nil
	case "atan":
		return Atan(X()), nil
	case "exp":
		return Exp(X()), nil
	case "ln":
		return Ln(X()), nil
	case "sqrt":
		return Sqrt(X()), nil
	}
	return nil, fmt.Errorf("expr: unknown function %q", name)
}

// Names lists every function Build accepts, in the demo's order.
func Names() []string {
	return []string{
		"cos", "sin", "tan",
		"acos", "asin", "atan",
		"exp", "ln", "sqrt",
		"bessel_J", "bessel_Y",
	}
}
