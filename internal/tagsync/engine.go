package tagsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/centsible/backend/internal/domain"
)

const (
	// maxTagLength is the longest accepted tag name, in runes, after
	// trimming. Longer names are dropped silently during normalization.
	maxTagLength = 50

	// maxTagsPerExpense caps how many tags one expense can carry. Input is
	// truncated to the first maxTagsPerExpense unique names, in order.
	maxTagsPerExpense = 10
)

// Syncer is the tag reconciliation engine.
//
// Sync never fails as a whole: the expense write it follows is already
// committed, so tag sync is best-effort and reports per-tag problems as
// strings for the caller to surface as warnings.
type Syncer struct {
	exec *Executor
	log  *slog.Logger
}

// NewSyncer constructs a Syncer that routes every store call through exec.
func NewSyncer(exec *Executor, log *slog.Logger) *Syncer {
	return &Syncer{exec: exec, log: log}
}

// Sync makes the expense's persisted tag links match the desired set parsed
// from raw. It returns human-readable messages for every tag that could not
// be reconciled; an empty slice means full success. Callers must check the
// slice length — Sync never panics and has no error return.
//
// Two concurrent Sync calls for the same expense are not coordinated; the
// last writer's link set wins. Cancelling ctx stops waiting between retries,
// but an in-flight store write the caller no longer observes may still land.
func (s *Syncer) Sync(ctx context.Context, ownerID, expenseID uuid.UUID, raw string) []string {
	desired := normalizeTags(raw)

	current, err := RunWithFallback(ctx, s.exec, func(ctx context.Context, st Store) ([]domain.Tag, error) {
		return st.ListExpenseTags(ctx, expenseID)
	})
	if err != nil {
		// Without the current state no diff is safe to apply.
		return s.report(expenseID, []error{fmt.Errorf("load current tags: %w", err)})
	}

	toAdd, toRemove := diffTags(current, desired)

	var (
		mu       sync.Mutex
		failures []error
	)
	record := func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}

	// Remove and add phases are independent: a failed removal must not stop
	// additions, and vice versa.
	if len(toRemove) > 0 {
		_, err := Run(ctx, s.exec, func(ctx context.Context, st Store) (struct{}, error) {
			return struct{}{}, st.UnlinkTags(ctx, expenseID, toRemove)
		})
		if err != nil {
			record(fmt.Errorf("remove stale tags: %w", err))
		}
	}

	var g errgroup.Group
	for _, name := range toAdd {
		name := name
		g.Go(func() error {
			if err := s.addTag(ctx, ownerID, expenseID, name); err != nil {
				record(err)
			}
			// Always nil: one tag's failure must not cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()

	return s.report(expenseID, failures)
}

// addTag resolves name to a persisted tag (find, or create, or re-find after
// losing a creation race) and links it to the expense.
func (s *Syncer) addTag(ctx context.Context, ownerID, expenseID uuid.UUID, name string) error {
	tag, err := s.resolveTag(ctx, ownerID, name)
	if err != nil {
		return fmt.Errorf("tag %q: %w", name, err)
	}

	_, err = Run(ctx, s.exec, func(ctx context.Context, st Store) (struct{}, error) {
		return struct{}{}, st.LinkTag(ctx, expenseID, tag.ID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// The link already exists — the desired end state is achieved.
			return nil
		}
		return fmt.Errorf("tag %q: link: %w", name, err)
	}
	return nil
}

// resolveTag finds the owner's tag by name, creating it when absent.
// A creation conflict means another client created the same name
// concurrently, so the tag is looked up once more instead of failing.
func (s *Syncer) resolveTag(ctx context.Context, ownerID uuid.UUID, name string) (domain.Tag, error) {
	find := func(ctx context.Context, st Store) (*domain.Tag, error) {
		return st.FindTagByName(ctx, ownerID, name)
	}

	found, err := RunWithFallback(ctx, s.exec, find)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("lookup: %w", err)
	}
	if found != nil {
		return *found, nil
	}

	tag, err := RunWithFallback(ctx, s.exec, func(ctx context.Context, st Store) (domain.Tag, error) {
		return st.CreateTag(ctx, ownerID, name)
	})
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return domain.Tag{}, fmt.Errorf("create: %w", err)
	}

	found, err = RunWithFallback(ctx, s.exec, find)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("lookup after create conflict: %w", err)
	}
	if found == nil {
		// Lost the race but the winner's row is gone again; give up on
		// this one name rather than looping.
		return domain.Tag{}, errors.New("created concurrently but no longer present")
	}
	return *found, nil
}

// report logs the combined failure (if any) once and renders the per-tag
// messages for the caller. The returned slice is never nil.
func (s *Syncer) report(expenseID uuid.UUID, failures []error) []string {
	combined := multierr.Combine(failures...)
	if combined == nil {
		return []string{}
	}

	s.log.Warn("tag sync finished with failures",
		"expense_id", expenseID,
		"failed", len(multierr.Errors(combined)),
		"error", combined,
	)

	msgs := make([]string, 0, len(failures))
	for _, err := range multierr.Errors(combined) {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// normalizeTags parses a raw comma-separated tag string into the desired
// name list: trimmed, lowercased, empties and over-length names dropped,
// de-duplicated keeping first occurrence, truncated to maxTagsPerExpense.
func normalizeTags(raw string) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || utf8.RuneCountInString(name) > maxTagLength {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
		if len(names) == maxTagsPerExpense {
			break
		}
	}
	return names
}

// diffTags computes the minimal change set between the currently linked tags
// and the desired names: names to add (in desired order) and tag IDs whose
// links must be removed. Tags present in both sets are left untouched.
func diffTags(current []domain.Tag, desired []string) (toAdd []string, toRemove []uuid.UUID) {
	desiredSet := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		desiredSet[name] = struct{}{}
	}

	currentSet := make(map[string]struct{}, len(current))
	for _, tag := range current {
		name := strings.ToLower(tag.Name)
		currentSet[name] = struct{}{}
		if _, wanted := desiredSet[name]; !wanted {
			toRemove = append(toRemove, tag.ID)
		}
	}

	for _, name := range desired {
		if _, linked := currentSet[name]; !linked {
			toAdd = append(toAdd, name)
		}
	}
	return toAdd, toRemove
}
