package calculator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOperation is returned when an operation name does not match a known OperationKind.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrDivisionByZero is returned when Divide is evaluated with a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")
)

// OperationKind is the closed set of supported binary operations.
type OperationKind int

const (
	OpAdd OperationKind = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

var operationNames = map[OperationKind]string{
	OpAdd:      "Add",
	OpSubtract: "Subtract",
	OpMultiply: "Multiply",
	OpDivide:   "Divide",
}

// String returns the canonical operation name.
func (k OperationKind) String() string {
	if name, ok := operationNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OperationKind(%d)", int(k))
}

// ParseOperation resolves name to an OperationKind, ignoring case.
// Surrounding whitespace is not trimmed.
func ParseOperation(name string) (OperationKind, error) {
	switch strings.ToLower(name) {
	case "add":
		return OpAdd, nil
	case "subtract":
		return OpSubtract, nil
	case "multiply":
		return OpMultiply, nil
	case "divide":
		return OpDivide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Evaluate applies op to a and b using float64 semantics. Only an exact zero
// denominator is rejected; overflow to ±Inf or NaN is returned unchanged.
func Evaluate(op OperationKind, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return Add(a, b), nil
	case OpSubtract:
		return Subtract(a, b), nil
	case OpMultiply:
		return Multiply(a, b), nil
	case OpDivide:
		return Divide(a, b)
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
}

func Add(a, b float64) float64 { return a + b }

func Subtract(a, b float64) float64 { return a - b }

func Multiply(a, b float64) float64 { return a * b }

func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, a, b)
	}
	return a / b, nil
}

// FailureMessage renders a domain error as the text returned to callers.
func FailureMessage(err error, operation string) string {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return "Cannot divide by zero"
	case errors.Is(err, ErrUnknownOperation):
		return fmt.Sprintf("Invalid operation: %s", operation)
	default:
		return err.Error()
	}
}
