package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"golang.org/x/sync/errgroup"
)

// Derived status labels for a report group.
const (
	GroupPending  = "pending"
	GroupResolved = "resolved"
)

const existenceCheckConcurrency = 8

// ReportGroup is the moderator-facing view of every report against one target.
// It is computed per query and never stored.
type ReportGroup struct {
	TargetType models.TargetType `json:"target_type"`
	TargetID   int64             `json:"target_id"`
	Count      int64             `json:"count"`
	Reports    []models.Report   `json:"reports"`
	Status     string            `json:"status"`
}

// ReportAggregator builds read-only projections over the report store. Reads
// take no locks; a report filed mid-query may or may not be included.
type ReportAggregator struct {
	reports   *store.ReportStore
	content   ContentLookup
	threshold int64
}

func NewReportAggregator(reports *store.ReportStore, content ContentLookup, threshold int64) *ReportAggregator {
	return &ReportAggregator{reports: reports, content: content, threshold: threshold}
}

// DefaultThreshold is the configured minimum pending count for surfacing a target.
func (a *ReportAggregator) DefaultThreshold() int64 {
	return a.threshold
}

// FindOverThreshold lists targets of one type with at least minCount pending
// reports, highest count first and ties broken by ascending target id.
func (a *ReportAggregator) FindOverThreshold(ctx context.Context, targetType models.TargetType, minCount int64) ([]store.TargetCount, error) {
	if !targetType.Valid() {
		return nil, apperrors.Validation("invalid target type %q", targetType)
	}
	if minCount < 1 {
		return nil, apperrors.Validation("threshold must be at least 1")
	}
	rows, err := a.reports.PendingCountsAtLeast(ctx, targetType, minCount)
	if err != nil {
		return nil, a.fail("find over threshold", err)
	}
	return rows, nil
}

// ListAllWithReports groups every report of one target type by target, drops
// targets whose entity no longer exists, and labels each group.
func (a *ReportAggregator) ListAllWithReports(ctx context.Context, targetType models.TargetType) ([]ReportGroup, error) {
	source, err := a.source(targetType)
	if err != nil {
		return nil, err
	}

	reports, err := a.reports.ListByTargetType(ctx, targetType)
	if err != nil {
		return nil, a.fail("list reports by target", err)
	}

	groups := groupByTarget(targetType, reports)

	exists := make([]bool, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(existenceCheckConcurrency)
	for i := range groups {
		i := i // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			ok, err := source.Exists(gctx, groups[i].TargetID)
			if err != nil {
				return err
			}
			exists[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, a.fail("check target existence", err)
	}

	live := make([]ReportGroup, 0, len(groups))
	for i, grp := range groups {
		if exists[i] {
			live = append(live, grp)
		}
	}

	slices.SortStableFunc(live, func(x, y ReportGroup) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.TargetID, y.TargetID)
	})
	return live, nil
}

// Detail returns the pending reports against one live target plus its label.
func (a *ReportAggregator) Detail(ctx context.Context, targetType models.TargetType, targetID int64) (*ReportGroup, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return nil, err
	}
	source, err := a.source(targetType)
	if err != nil {
		return nil, err
	}

	ok, err := source.Exists(ctx, targetID)
	if err != nil {
		return nil, a.fail("check target existence", err)
	}
	if !ok {
		return nil, apperrors.NotFound(strings.ToLower(string(targetType)), targetID)
	}

	pending, err := a.reports.List(ctx, store.ReportFilter{
		Status:     models.StatusPending,
		TargetType: targetType,
		TargetID:   targetID,
	})
	if err != nil {
		return nil, a.fail("list pending reports", err)
	}

	return &ReportGroup{
		TargetType: targetType,
		TargetID:   targetID,
		Count:      int64(len(pending)),
		Reports:    pending,
		Status:     deriveStatus(pending),
	}, nil
}

func (a *ReportAggregator) source(targetType models.TargetType) (content.Source, error) {
	if !targetType.Valid() {
		return nil, apperrors.Validation("invalid target type %q", targetType)
	}
	source, ok := a.content.Get(targetType)
	if !ok {
		return nil, apperrors.Validation("no content source registered for %s", targetType)
	}
	return source, nil
}

func (a *ReportAggregator) fail(op string, err error) error {
	err = apperrors.Ensure(op, err)
	if isStorage(err) {
		slog.Error("report aggregation failed", "action", op, "error", err)
	}
	return err
}

// groupByTarget expects reports ordered by target id.
func groupByTarget(targetType models.TargetType, reports []models.Report) []ReportGroup {
	var groups []ReportGroup
	for _, r := range reports {
		if n := len(groups); n == 0 || groups[n-1].TargetID != r.TargetID {
			groups = append(groups, ReportGroup{TargetType: targetType, TargetID: r.TargetID})
		}
		last := &groups[len(groups)-1]
		last.Reports = append(last.Reports, r)
		last.Count++
	}
	for i := range groups {
		groups[i].Status = deriveStatus(groups[i].Reports)
	}
	return groups
}

func deriveStatus(reports []models.Report) string {
	for _, r := range reports {
		if r.Status == models.StatusPending {
			return GroupPending
		}
	}
	return GroupResolved
}
