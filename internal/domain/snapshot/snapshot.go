// Package snapshot builds Week Card snapshots and merges them into history.
//
// A Week Card freezes the score for one Monday-aligned calendar week. The
// upsert rule keeps the invariant that history holds at most one card per
// week, ordered most recent first, no matter how many times the weekly
// workflows run.
package snapshot

import (
	"sort"

	"github.com/okian/ledgerweek/internal/domain/dates"
	"github.com/okian/ledgerweek/internal/domain/model"
	"github.com/okian/ledgerweek/internal/domain/scoring"
)

// Build packages a score computation into a Week Card keyed by its week
// start. WeekStartISO defaults to the Monday of the week containing the
// input's reference date. Notes and actions are left empty for the calling
// workflow to fill in.
func Build(engine *scoring.Engine, in scoring.Input, weekStartISO string) model.WeekCard {
	ref := in.ReferenceDate
	if ref == "" {
		ref = dates.Today()
		in.ReferenceDate = ref
	}
	if weekStartISO == "" {
		weekStartISO = dates.StartOfWeekISO(ref)
	}

	res := engine.Compute(in)

	return model.WeekCard{
		ID:           weekStartISO,
		WeekStartISO: weekStartISO,
		CreatedAtISO: ref,
		Score:        res.Score,
		Label:        res.Label,
		Metrics:      res.Metrics,
		Notes:        "",
		Actions:      []string{},
	}
}

// Upsert merges card into history: a card with the same WeekStartISO is
// replaced in place, otherwise the new card is added, and the result is
// sorted strictly descending by WeekStartISO. The input slice is not
// mutated.
func Upsert(history []model.WeekCard, card model.WeekCard) []model.WeekCard {
	out := make([]model.WeekCard, 0, len(history)+1)
	replaced := false
	for _, c := range history {
		if c.WeekStartISO == card.WeekStartISO {
			out = append(out, card)
			replaced = true
			continue
		}
		out = append(out, c)
	}
	if !replaced {
		out = append(out, card)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStartISO > out[j].WeekStartISO
	})
	return out
}
