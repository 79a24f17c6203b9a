package claimx

import (
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprClaim validates a claim with a compiled expr expression, for policies
// the built-in validators can't express. The expression sees the claim's
// value as "value" and its fetch instant as "fetchedAt", and must evaluate
// to a boolean:
//
//	v, err := claimx.NewExprClaim("st-tier", `value in ["gold", "platinum"]`, time.Hour)
type ExprClaim struct {
	name    string
	source  string
	maxAge  time.Duration
	program *vm.Program
}

// NewExprClaim compiles the expression once up front so a bad policy fails
// at configuration time, not per request.
func NewExprClaim(claimName, expression string, maxAge time.Duration) (*ExprClaim, error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &ExprClaim{
		name:    claimName,
		source:  expression,
		maxAge:  maxAge,
		program: program,
	}, nil
}

func (c *ExprClaim) ClaimName() string { return c.name }

func (c *ExprClaim) Validate(now time.Time, value Value) Result {
	if value.Stale(now, c.maxAge) {
		return Refetch()
	}

	out, err := expr.Run(c.program, map[string]any{
		"value":     value.Value,
		"fetchedAt": value.FetchedAt,
	})
	if err != nil {
		return Invalid("expression error: %v", err)
	}
	if pass, _ := out.(bool); !pass {
		return Invalid("expression %q evaluated to false", c.source)
	}
	return Valid()
}
