package claimx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sessionkit/pkg/claimx"
)

func TestBoolClaim(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	validator := claimx.BoolClaim{Name: "email-verified", Expected: true, MaxAge: time.Minute}

	fresh := func(v any) claimx.Value {
		return claimx.Value{Present: true, Value: v, FetchedAt: now}
	}

	require.Equal(t, claimx.VerdictValid, validator.Validate(now, fresh(true)).Verdict)
	require.Equal(t, claimx.VerdictInvalid, validator.Validate(now, fresh(false)).Verdict)
	require.Equal(t, claimx.VerdictInvalid, validator.Validate(now, fresh("yes")).Verdict)
	require.Equal(t, claimx.VerdictRefetch, validator.Validate(now, claimx.Value{}).Verdict)

	stale := claimx.Value{Present: true, Value: true, FetchedAt: now.Add(-2 * time.Minute)}
	require.Equal(t, claimx.VerdictRefetch, validator.Validate(now, stale).Verdict)
}

func TestListClaimIncludes(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	validator := claimx.ListClaim{
		Name:     "permissions",
		Mode:     claimx.ListIncludes,
		Elements: []any{"read", "write"},
	}

	granted := claimx.Value{Present: true, Value: []any{"read", "write", "admin"}, FetchedAt: now}
	require.Equal(t, claimx.VerdictValid, validator.Validate(now, granted).Verdict)

	partial := claimx.Value{Present: true, Value: []any{"read"}, FetchedAt: now}
	result := validator.Validate(now, partial)
	require.Equal(t, claimx.VerdictInvalid, result.Verdict)
	require.Contains(t, result.Reason, "write")

	notAList := claimx.Value{Present: true, Value: "read", FetchedAt: now}
	require.Equal(t, claimx.VerdictInvalid, validator.Validate(now, notAList).Verdict)
}

func TestListClaimExcludes(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	validator := claimx.ListClaim{
		Name:     "roles",
		Mode:     claimx.ListExcludes,
		Elements: []any{"banned"},
	}

	clean := claimx.Value{Present: true, Value: []any{"member"}, FetchedAt: now}
	require.Equal(t, claimx.VerdictValid, validator.Validate(now, clean).Verdict)

	banned := claimx.Value{Present: true, Value: []any{"member", "banned"}, FetchedAt: now}
	result := validator.Validate(now, banned)
	require.Equal(t, claimx.VerdictInvalid, result.Verdict)
	require.Contains(t, result.Reason, "banned")
}

func TestExprClaim(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	validator, err := claimx.NewExprClaim("tier", `value in ["gold", "platinum"]`, time.Hour)
	require.NoError(t, err)
	require.Equal(t, "tier", validator.ClaimName())

	gold := claimx.Value{Present: true, Value: "gold", FetchedAt: now}
	require.Equal(t, claimx.VerdictValid, validator.Validate(now, gold).Verdict)

	bronze := claimx.Value{Present: true, Value: "bronze", FetchedAt: now}
	result := validator.Validate(now, bronze)
	require.Equal(t, claimx.VerdictInvalid, result.Verdict)
	require.Contains(t, result.Reason, "evaluated to false")

	stale := claimx.Value{Present: true, Value: "gold", FetchedAt: now.Add(-2 * time.Hour)}
	require.Equal(t, claimx.VerdictRefetch, validator.Validate(now, stale).Verdict)
}

func TestExprClaim_CompileError(t *testing.T) {
	_, err := claimx.NewExprClaim("tier", `value in [`, 0)
	require.Error(t, err)
}
