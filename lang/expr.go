package lang

import (
	"log/slog"
	"math"

	"github.com/quill-lang/quill/lang/token"
)

// precedence returns the binding strength of an arithmetic operator.
// Zero means the kind is not a binary operator.
func precedence(k token.Kind) int {
	switch k {
	case token.Caret:
		return 3
	case token.Star, token.Slash, token.Percent:
		return 2
	case token.Plus, token.Minus:
		return 1
	default:
		return 0
	}
}

// rightAssociative reports whether the operator binds right to left.
// Exponentiation is the only such operator.
func rightAssociative(k token.Kind) bool {
	return k == token.Caret
}

// evalExpression evaluates an owned expression token run to a single
// value. Bare lookups resolve against the root scope only; expressions do
// not support qualified group paths as operands.
func evalExpression(expr []AnnotatedToken, root *Scope) (Value, error) {
	postfix, err := toPostfix(expr)
	if err != nil {
		return Null(), err
	}

	return evalPostfix(postfix, root)
}

// toPostfix converts the infix run to postfix order with the shunting-yard
// algorithm.
func toPostfix(expr []AnnotatedToken) ([]AnnotatedToken, error) {
	out := make([]AnnotatedToken, 0, len(expr))
	ops := make([]AnnotatedToken, 0, len(expr))

	for _, tok := range expr {
		switch {
		case tok.Role == RoleValue || tok.Role == RoleLookup:
			out = append(out, tok)

		case tok.Kind == token.OpenParen:
			ops = append(ops, tok)

		case tok.Kind == token.CloseParen:
			matched := false

			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]

				if top.Kind == token.OpenParen {
					matched = true

					break
				}

				out = append(out, top)
			}

			if !matched {
				return nil, ErrInvalidExpression.With(
					slog.String("token", ")"),
				).WithPosition(tok.Line, tok.Column)
			}

		case precedence(tok.Kind) > 0:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == token.OpenParen {
					break
				}

				if precedence(top.Kind) < precedence(tok.Kind) {
					break
				}

				if precedence(top.Kind) == precedence(tok.Kind) &&
					rightAssociative(tok.Kind) {
					break
				}

				out = append(out, top)
				ops = ops[:len(ops)-1]
			}

			ops = append(ops, tok)

		default:
			return nil, ErrInvalidExpression.With(
				slog.String("token", tok.Literal),
			).WithPosition(tok.Line, tok.Column)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		if top.Kind == token.OpenParen {
			return nil, ErrInvalidExpression.With(
				slog.String("token", "("),
			).WithPosition(top.Line, top.Column)
		}

		out = append(out, top)
	}

	return out, nil
}

// evalPostfix evaluates the postfix run on an explicit value stack.
func evalPostfix(postfix []AnnotatedToken, root *Scope) (Value, error) {
	stack := make([]Value, 0, len(postfix))

	for _, tok := range postfix {
		switch tok.Role {
		case RoleValue:
			stack = append(stack, tok.Value)

		case RoleLookup:
			v, err := root.Resolve(QualifiedPath{tok.Literal})
			if err != nil {
				return Null(), WrapError(err).WithPosition(
					tok.Line, tok.Column,
				)
			}

			stack = append(stack, v.Value)

		default:
			if len(stack) < 2 {
				return Null(), ErrNotEnoughOperands.With(
					slog.String("operator", tok.Literal),
				).WithPosition(tok.Line, tok.Column)
			}

			rhs := stack[len(stack)-1]
			lhs := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			res, err := applyBinary(tok, lhs, rhs)
			if err != nil {
				return Null(), err
			}

			stack = append(stack, res)
		}
	}

	if len(stack) != 1 {
		return Null(), ErrInvalidExpression.With(
			slog.Int("operands", len(stack)),
		)
	}

	return stack[0], nil
}

// applyBinary applies one binary operator with numeric promotion: if
// either operand is a float the result is a float, otherwise both are
// integers and the result is an integer.
func applyBinary(op AnnotatedToken, lhs, rhs Value) (Value, error) {
	if lhs.Type() == TypeFloat || rhs.Type() == TypeFloat {
		return applyFloat(op, lhs.Float(), rhs.Float())
	}

	return applyInt(op, lhs.Int(), rhs.Int())
}

func applyInt(op AnnotatedToken, lhs, rhs int64) (Value, error) {
	switch op.Kind {
	case token.Plus:
		return NewInt(lhs + rhs), nil

	case token.Minus:
		return NewInt(lhs - rhs), nil

	case token.Star:
		return NewInt(lhs * rhs), nil

	case token.Slash:
		if rhs == 0 {
			return Null(), ErrDivisionByZero.WithPosition(
				op.Line, op.Column,
			)
		}

		return NewInt(lhs / rhs), nil

	case token.Percent:
		if rhs == 0 {
			return Null(), ErrModuloByZero.WithPosition(
				op.Line, op.Column,
			)
		}

		return NewInt(lhs % rhs), nil

	case token.Caret:
		if rhs < 0 {
			return NewFloat(
				math.Pow(float64(lhs), float64(rhs)),
			), nil
		}

		return NewInt(intPow(lhs, rhs)), nil

	default:
		return Null(), ErrInvalidExpression.With(
			slog.String("token", op.Literal),
		).WithPosition(op.Line, op.Column)
	}
}

func applyFloat(op AnnotatedToken, lhs, rhs float64) (Value, error) {
	switch op.Kind {
	case token.Plus:
		return NewFloat(lhs + rhs), nil

	case token.Minus:
		return NewFloat(lhs - rhs), nil

	case token.Star:
		return NewFloat(lhs * rhs), nil

	case token.Slash:
		if rhs == 0 {
			return Null(), ErrDivisionByZero.WithPosition(
				op.Line, op.Column,
			)
		}

		return NewFloat(lhs / rhs), nil

	case token.Percent:
		if rhs == 0 {
			return Null(), ErrModuloByZero.WithPosition(
				op.Line, op.Column,
			)
		}

		return NewFloat(math.Mod(lhs, rhs)), nil

	case token.Caret:
		return NewFloat(math.Pow(lhs, rhs)), nil

	default:
		return Null(), ErrInvalidExpression.With(
			slog.String("token", op.Literal),
		).WithPosition(op.Line, op.Column)
	}
}

// intPow computes lhs**rhs by binary exponentiation for rhs >= 0.
func intPow(lhs, rhs int64) int64 {
	result := int64(1)

	for rhs > 0 {
		if rhs&1 == 1 {
			result *= lhs
		}

		lhs *= lhs
		rhs >>= 1
	}

	return result
}
