package ground

import "fmt"

// evalArith evaluates a ground arithmetic term against the small
// expression grammar is/2 and the comparison built-ins accept: numeric
// constants and the usual binary/unary functors.
func evalArith(t Term) (float64, error) {
	switch v := t.(type) {
	case Const:
		switch n := v.Value.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		}
		return 0, fmt.Errorf("%s is not a number", v)
	case Compound:
		if len(v.Args) == 1 && v.Functor == "-" {
			a, err := evalArith(v.Args[0])
			return -a, err
		}
		if len(v.Args) == 1 && v.Functor == "abs" {
			a, err := evalArith(v.Args[0])
			if a < 0 {
				a = -a
			}
			return a, err
		}
		if len(v.Args) != 2 {
			return 0, fmt.Errorf("unsupported arithmetic functor %s/%d", v.Functor, len(v.Args))
		}
		a, err := evalArith(v.Args[0])
		if err != nil {
			return 0, err
		}
		b, err := evalArith(v.Args[1])
		if err != nil {
			return 0, err
		}
		switch v.Functor {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/":
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return a / b, nil
		case "mod":
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			ai, bi := int64(a), int64(b)
			return float64(((ai % bi) + bi) % bi), nil
		case "min":
			if a < b {
				return a, nil
			}
			return b, nil
		case "max":
			if a > b {
				return a, nil
			}
			return b, nil
		}
		return 0, fmt.Errorf("unsupported arithmetic functor %s", v.Functor)
	}
	return 0, fmt.Errorf("%s is not a number", t)
}

// wrapArithmetic decorates an evaluator failure with the offending call
// term and source location, per §4.2.9 / §6.
func wrapArithmetic(call Term, loc Location, err error) error {
	if err == nil {
		return nil
	}
	return &ArithmeticError{Call: call, Location: loc, Cause: err}
}

// BooleanBuiltIn wraps a pure test over instantiated, ground arguments
// that never binds anything further: comparison operators (§4.11).
func BooleanBuiltIn(test func(args Context) (bool, error)) BuiltinHandler {
	return func(e *Engine, args Context, parent int, identifier interface{}, transform *Transform, loc Location) ([]action, error) {
		ok, err := test(args)
		if err != nil {
			return nil, wrapArithmetic(Compound{Functor: "builtin", Args: args}, loc, err)
		}
		if !ok {
			return fail(parent, identifier), nil
		}
		return succeed(parent, args, TRUE, identifier, transform), nil
	}
}

// SimpleBuiltIn wraps a deterministic, single-result computation that may
// bind previously-unbound argument positions (is/2 and similar).
func SimpleBuiltIn(compute func(args Context) (Context, bool, error)) BuiltinHandler {
	return func(e *Engine, args Context, parent int, identifier interface{}, transform *Transform, loc Location) ([]action, error) {
		out, ok, err := compute(args)
		if err != nil {
			return nil, wrapArithmetic(Compound{Functor: "builtin", Args: args}, loc, err)
		}
		if !ok {
			return fail(parent, identifier), nil
		}
		return succeed(parent, out, TRUE, identifier, transform), nil
	}
}

// SimpleProbabilisticBuiltIn wraps a deterministic computation that also
// contributes its own labeled atom to the ground program, for built-ins
// that are themselves a source of probability (rather than a pure logical
// test) — e.g. a programmatically-registered probabilistic fact family.
func SimpleProbabilisticBuiltIn(compute func(args Context) (Context, float64, bool, error), key func(args Context) interface{}) BuiltinHandler {
	return func(e *Engine, args Context, parent int, identifier interface{}, transform *Transform, loc Location) ([]action, error) {
		out, prob, ok, err := compute(args)
		if err != nil {
			return nil, wrapArithmetic(Compound{Functor: "builtin", Args: args}, loc, err)
		}
		if !ok {
			return fail(parent, identifier), nil
		}
		gn := e.target.AddAtom(key(args), prob, nil)
		return succeed(parent, out, gn, identifier, transform), nil
	}
}

// RegisterStandardBuiltins installs the arithmetic and comparison
// built-ins described by §4.11 into a fresh engine's registry.
func RegisterStandardBuiltins(e *Engine) {
	e.RegisterBuiltin("is", 2, SimpleBuiltIn(func(args Context) (Context, bool, error) {
		v, err := evalArith(args[1])
		if err != nil {
			return nil, false, err
		}
		b, ok := unify(args[0], Const{Value: v}, newBindings())
		if !ok {
			return nil, false, nil
		}
		return b.deepWalkContext(args), true, nil
	}))

	cmp := func(op func(a, b float64) bool) BuiltinHandler {
		return BooleanBuiltIn(func(args Context) (bool, error) {
			a, err := evalArith(args[0])
			if err != nil {
				return false, err
			}
			b, err := evalArith(args[1])
			if err != nil {
				return false, err
			}
			return op(a, b), nil
		})
	}
	e.RegisterBuiltin("<", 2, cmp(func(a, b float64) bool { return a < b }))
	e.RegisterBuiltin(">", 2, cmp(func(a, b float64) bool { return a > b }))
	e.RegisterBuiltin("=<", 2, cmp(func(a, b float64) bool { return a <= b }))
	e.RegisterBuiltin(">=", 2, cmp(func(a, b float64) bool { return a >= b }))
	e.RegisterBuiltin("=:=", 2, cmp(func(a, b float64) bool { return a == b }))
	e.RegisterBuiltin("=\\=", 2, cmp(func(a, b float64) bool { return a != b }))
}
