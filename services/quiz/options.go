package quiz

import (
	"context"
	"slices"

	"github.com/beastars1/lingvo-widget/services/dict"
	"github.com/beastars1/lingvo-widget/services/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// prepareOptions returns the correct translation followed by distinct
// distractors. Candidates for all missing slots are fetched concurrently;
// a failed candidate leaves its slot empty for the next round.
func (g *Game) prepareOptions(ctx context.Context, correct string) ([]string, error) {
	options := make([]string, 0, g.opts.OptionsCount)
	options = append(options, correct)
	for round := 0; len(options) < g.opts.OptionsCount; round++ {
		if round >= g.opts.MaxOptionRounds {
			return nil, ErrNotEnoughOptions
		}
		candidates := g.fetchCandidates(ctx, g.opts.OptionsCount-len(options))
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, c := range candidates {
			if len(options) == g.opts.OptionsCount {
				break
			}
			if c == "" || slices.Contains(options, c) {
				continue
			}
			options = append(options, c)
		}
	}
	return options, nil
}

func (g *Game) fetchCandidates(ctx context.Context, n int) []string {
	candidates := make([]string, n)
	var eg errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			word, err := g.words.RandomWord(ctx)
			if err != nil {
				logger.Warn("option word fetch failed", zap.Error(err))
				return nil
			}
			tr, err := g.tr.Translate(ctx, word, g.opts.LangPair)
			switch {
			case errors.Is(err, dict.ErrNotFound):
				logger.Debug("option word has no translation", "word", word)
			case err != nil:
				logger.Warn("option translation failed", zap.Error(err), "word", word)
			default:
				candidates[i] = tr
			}
			return nil
		})
	}
	_ = eg.Wait()
	return candidates
}
