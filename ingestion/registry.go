// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/pagevault/core"
	"github.com/poiesic/pagevault/storage"
)

// maxRetainedRuns bounds how many finalized summaries stay in memory.
// Older ones are evicted; they remain readable from the run repository.
const maxRetainedRuns = 32

// Coordinator manages import runs. Starting a run returns a run ID
// immediately; the import executes on a worker pool and its summary is
// persisted when it finishes.
type Coordinator struct {
	importer    *Importer
	credentials storage.CredentialRepository
	runs        storage.RunRepository
	pool        *ants.Pool
	logger      *slog.Logger

	mu        sync.Mutex
	active    map[string]*core.RunSummary
	cancels   map[string]context.CancelFunc // in-flight runs only
	finalized []string                      // eviction order, oldest first
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator) error

// WithPoolSize sets the worker pool size for concurrent import runs.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) CoordinatorOption {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}
		if c.pool != nil {
			c.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		c.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// NewCoordinator creates a new import coordinator.
func NewCoordinator(
	importer *Importer,
	credentials storage.CredentialRepository,
	runs storage.RunRepository,
	opts ...CoordinatorOption,
) (*Coordinator, error) {
	if importer == nil {
		return nil, ErrImporterRequired
	}
	if credentials == nil {
		return nil, ErrCredentialRepositoryRequired
	}
	if runs == nil {
		return nil, ErrRunRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		importer:    importer,
		credentials: credentials,
		runs:        runs,
		pool:        pool,
		logger:      slog.Default().With("component", "coordinator"),
		active:      make(map[string]*core.RunSummary),
		cancels:     make(map[string]context.CancelFunc),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}

	return c, nil
}

// StartImport begins an import run for the user and returns its run ID.
// A non-nil credential is used as supplied; otherwise the user's stored
// credential is loaded, and ErrNoCredential is returned when none exists.
// The run itself executes asynchronously; poll ImportStatus for progress.
func (c *Coordinator) StartImport(ctx context.Context, userID string, credential *core.Credential) (string, error) {
	if userID == "" {
		return "", core.ErrEmptyUserID
	}

	if credential == nil {
		stored, err := c.credentials.GetCredential(ctx, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", ErrNoCredential
			}
			return "", err
		}
		credential = stored
	}

	runID := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Deliberately detached from the caller's context: the run outlives
	// the StartImport request. CancelImport stops it between pages.
	runCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.active[runID] = &core.RunSummary{
		RunID:     runID,
		UserID:    userID,
		State:     core.RunStateRunning,
		StartedAt: now,
	}
	c.cancels[runID] = cancel
	c.mu.Unlock()

	submitErr := c.pool.Submit(func() {
		summary, runErr := c.importer.Run(runCtx, userID, credential)
		summary.RunID = runID
		if runErr != nil {
			c.logger.Error("import run failed", "run", runID, "user", userID, "err", runErr)
		}
		c.finalize(summary)
	})
	if submitErr != nil {
		c.mu.Lock()
		delete(c.active, runID)
		delete(c.cancels, runID)
		c.mu.Unlock()
		cancel()
		return "", submitErr
	}

	c.logger.Info("import run started", "run", runID, "user", userID)
	return runID, nil
}

// CancelImport signals an in-flight run to stop between pages. The run
// still finalizes (as failed) and its partial summary is persisted.
// Returns ErrRunNotFound when no in-flight run has the ID.
func (c *Coordinator) CancelImport(runID string) error {
	c.mu.Lock()
	cancel, ok := c.cancels[runID]
	c.mu.Unlock()
	if !ok {
		return ErrRunNotFound
	}
	cancel()
	return nil
}

// ImportStatus returns a snapshot of the run with the given ID.
// Finalized runs evicted from memory are read back from storage.
// Returns ErrRunNotFound if the run ID is unknown.
func (c *Coordinator) ImportStatus(ctx context.Context, runID string) (*core.RunSummary, error) {
	c.mu.Lock()
	summary, ok := c.active[runID]
	c.mu.Unlock()
	if ok {
		return summary.Clone(), nil
	}

	persisted, err := c.runs.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return persisted, nil
}

// finalize records a finished run, persists it, and evicts old entries.
func (c *Coordinator) finalize(summary *core.RunSummary) {
	if err := c.runs.SaveRun(context.Background(), summary); err != nil {
		c.logger.Error("error persisting run summary", "run", summary.RunID, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cancel, ok := c.cancels[summary.RunID]; ok {
		cancel()
		delete(c.cancels, summary.RunID)
	}
	c.active[summary.RunID] = summary
	c.finalized = append(c.finalized, summary.RunID)
	for len(c.finalized) > maxRetainedRuns {
		evicted := c.finalized[0]
		c.finalized = c.finalized[1:]
		delete(c.active, evicted)
	}
}

// Release releases the worker pool.
// The coordinator should not be used after calling Release.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}
