package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/normal"
	"github.com/matzehuels/cliq/pkg/observability"
	"github.com/matzehuels/cliq/pkg/resolve"
)

// Eval parses a program and reduces its target to normal form. The
// resolve stage covers both definition expansion and the distributive
// rewrite, so its duration includes normalization.
func Eval(ctx context.Context, opts Options) (expr.Expr, error) {
	if err := opts.ValidateForEval(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageParse)
	p, err := expr.ParseProgramDepth([]byte(opts.Program), opts.MaxDepth)
	hooks.OnStageComplete(ctx, observability.StageParse, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageResolve)
	n, err := resolve.ResolveProgram(p, resolve.Config{
		AllowShadowing: opts.AllowShadowing,
		Limits:         normal.Limits{MaxMembers: opts.MaxMembers},
	})
	hooks.OnStageComplete(ctx, observability.StageResolve, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return n, nil
}
