package ingesthandlers

import (
	"context"
	"sync"

	ingestservice "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application"
	"github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application/parsers"
)

// FakeService is a programmable stub for ingestservice.Service.
type FakeService struct {
	mu    sync.Mutex
	trace []string

	LoadGameDataFunc func(ctx context.Context, path string) (*parsers.GameSheets, error)
	IngestFileFunc   func(ctx context.Context, path string, leagueID int64) (ingestservice.IngestResult, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) LoadGameData(ctx context.Context, path string) (*parsers.GameSheets, error) {
	f.record("LoadGameData")
	if f.LoadGameDataFunc != nil {
		return f.LoadGameDataFunc(ctx, path)
	}
	return &parsers.GameSheets{}, nil
}

func (f *FakeService) IngestFile(ctx context.Context, path string, leagueID int64) (ingestservice.IngestResult, error) {
	f.record("IngestFile")
	if f.IngestFileFunc != nil {
		return f.IngestFileFunc(ctx, path, leagueID)
	}
	return ingestservice.IngestResult{}, nil
}

var _ ingestservice.Service = (*FakeService)(nil)
