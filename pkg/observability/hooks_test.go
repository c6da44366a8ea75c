package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	stages []string
}

func (h *recordingPipelineHooks) OnStageStart(_ context.Context, stage string) {
	h.stages = append(h.stages, stage)
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)

	ctx := context.Background()
	Pipeline().OnStageStart(ctx, StageParse)
	Pipeline().OnStageStart(ctx, StageNormalize)
	Pipeline().OnStageComplete(ctx, StageNormalize, time.Millisecond, nil)

	if len(ph.stages) != 2 || ph.stages[0] != StageParse || ph.stages[1] != StageNormalize {
		t.Errorf("recorded stages = %v", ph.stages)
	}
}

func TestCacheHooks(t *testing.T) {
	defer Reset()

	ch := &recordingCacheHooks{}
	SetCacheHooks(ch)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "eval")
	Cache().OnCacheHit(ctx, "eval")
	Cache().OnCacheHit(ctx, "artifact")

	if ch.hits != 2 || ch.misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", ch.hits, ch.misses)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnStageStart(context.Background(), StageResolve)
	if len(ph.stages) != 1 {
		t.Errorf("nil registration replaced hooks: %v", ph.stages)
	}
}

func TestReset(t *testing.T) {
	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	Reset()

	Pipeline().OnStageStart(context.Background(), StageParse)
	if len(ph.stages) != 0 {
		t.Errorf("Reset did not restore no-op hooks: %v", ph.stages)
	}
}
