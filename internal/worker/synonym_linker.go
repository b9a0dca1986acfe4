package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/anrodrig/comanda/internal/adapter/llm"
	"github.com/anrodrig/comanda/internal/domain/model"
)

// LexiconFacade exposes the subset of application functionality required by
// the linker.
type LexiconFacade interface {
	WordsForLinking(ctx context.Context, limit int) ([]model.Word, error)
	LexiconExcept(ctx context.Context, id int64) ([]model.Word, error)
	CompareDefinitions(ctx context.Context, a, b *model.Word) (bool, error)
	LinkSynonyms(ctx context.Context, a, b *model.Word) error
}

// SynonymLinker pairs newly created words against the existing lexicon
// through the language model and records synonym edges concurrently.
type SynonymLinker struct {
	facade       LexiconFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Word
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSynonymLinker constructs the linker worker pool.
func NewSynonymLinker(facade LexiconFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *SynonymLinker {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SynonymLinker{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Word, batchSize*workers),
	}
}

// Start launches background processing.
func (l *SynonymLinker) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	for i := 0; i < l.workers; i++ {
		l.wg.Add(1)
		go l.worker(runCtx)
	}

	l.wg.Add(1)
	go l.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (l *SynonymLinker) Stop() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *SynonymLinker) dispatch(ctx context.Context) {
	defer l.wg.Done()
	defer close(l.jobs)
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.fetchAndDispatch(ctx)
		}
	}
}

func (l *SynonymLinker) fetchAndDispatch(ctx context.Context) {
	words, err := l.facade.WordsForLinking(ctx, l.batchSize)
	if err != nil {
		l.logger.Error("fetch words for linking failed", slog.String("error", err.Error()))
		return
	}
	for _, word := range words {
		select {
		case <-ctx.Done():
			return
		case l.jobs <- word:
		}
	}
}

func (l *SynonymLinker) worker(ctx context.Context) {
	defer l.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case word, ok := <-l.jobs:
			if !ok {
				return
			}
			l.handleWord(ctx, word)
		}
	}
}

func (l *SynonymLinker) handleWord(ctx context.Context, word model.Word) {
	candidates, err := l.facade.LexiconExcept(ctx, word.ID)
	if err != nil {
		l.logger.Error("fetch lexicon failed", slog.String("word", word.Word), slog.String("error", err.Error()))
		return
	}

	for i := range candidates {
		candidate := candidates[i]
		match, err := l.facade.CompareDefinitions(ctx, &word, &candidate)
		if err != nil {
			switch e := err.(type) {
			case llm.TooManyRequestsError:
				l.logger.Warn("llm rate limited", slog.Duration("retry_after", e.RetryAfter))
				select {
				case <-ctx.Done():
					return
				case <-time.After(e.RetryAfter):
				}
			default:
				l.logger.Error("compare definitions failed",
					slog.String("word", word.Word),
					slog.String("candidate", candidate.Word),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		if !match {
			continue
		}
		if err := l.facade.LinkSynonyms(ctx, &word, &candidate); err != nil {
			l.logger.Error("link synonyms failed",
				slog.String("word", word.Word),
				slog.String("candidate", candidate.Word),
				slog.String("error", err.Error()),
			)
		}
	}
}
