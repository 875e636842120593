// Package pipeline drives a Record through every classification stage in
// sequence (purpose → actor/role → duty type → popimar) and exposes a
// batch entry point that dispatches records to a worker pool, preserving
// input order in its output. Records are independent of one another, so the
// batch path parallelizes at record granularity; stages within a record stay
// sequential because each consumes the previous stage's enrichment.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shotleylegal/taxaengine/internal/actorlib"
	"github.com/shotleylegal/taxaengine/internal/clause"
	"github.com/shotleylegal/taxaengine/internal/dutytype"
	"github.com/shotleylegal/taxaengine/internal/jsonb"
	"github.com/shotleylegal/taxaengine/internal/making"
	"github.com/shotleylegal/taxaengine/internal/popimar"
	"github.com/shotleylegal/taxaengine/internal/purpose"
	"github.com/shotleylegal/taxaengine/internal/record"
	"github.com/shotleylegal/taxaengine/internal/rolekind"
	"github.com/shotleylegal/taxaengine/internal/rolematch"
)

// Options configures a Pipeline. A zero Options uses every package default.
type Options struct {
	WindowThreshold int // text length above which rolematch windows its scan
	ClauseOptions   clause.Options
	Concurrency     int // worker pool size for ClassifyBatch; <=0 means unlimited
	Metrics         *rolematch.Metrics
}

// Pipeline classifies Records against the DRRP/POPIMAR/Purpose taxonomy.
// The zero value is ready to use.
type Pipeline struct {
	opts Options
}

// New constructs a Pipeline with the given Options.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// ClassifyOne runs every stage against a single record, returning the
// enriched copy (the input is never mutated) and the per-role-kind Match
// lists used to build a JSONB sidecar document.
func (p *Pipeline) ClassifyOne(rec record.Record) (record.Record, map[rolekind.Kind][]rolematch.Match) {
	out := record.Clone(rec)
	matchesByKind := map[rolekind.Kind][]rolematch.Match{}

	if out.Text == "" {
		return out, matchesByKind
	}

	purposeTags := purpose.Classify(out.Text)
	isAmendment := len(purposeTags) == 1 && purposeTags[0] == purpose.Amendment

	out.Purpose = tagStrings(purposeTags)

	if isAmendment {
		// Amendment suppresses holder assignment entirely: duty_type stays
		// empty and no holder field is populated.
		return out, matchesByKind
	}

	var allDutyTypes []string
	for _, kind := range rolekind.All {
		var actorLabels []string
		switch kind.ActorUniverse() {
		case actorlib.Governed:
			actorLabels = out.Role
		case actorlib.Government:
			actorLabels = out.RoleGvt
		}

		_, matches := rolematch.FindRoleHoldersWithOptions(kind, actorLabels, out.Text, p.opts.Metrics, rolematch.Options{
			WindowThreshold: p.opts.WindowThreshold,
			Clause:          p.opts.ClauseOptions,
		})
		if len(matches) == 0 {
			continue
		}

		holdersByKind := map[rolekind.Kind][]string{}
		seenByKind := map[rolekind.Kind]map[string]bool{}
		for i := range matches {
			effectiveKind := rolematch.DutyTypeForModal(kind, matches[i].ModalKind)
			matches[i].Kind = effectiveKind

			if seenByKind[effectiveKind] == nil {
				seenByKind[effectiveKind] = map[string]bool{}
			}
			if !seenByKind[effectiveKind][matches[i].Actor] {
				seenByKind[effectiveKind][matches[i].Actor] = true
				holdersByKind[effectiveKind] = append(holdersByKind[effectiveKind], matches[i].Actor)
			}

			matchesByKind[effectiveKind] = append(matchesByKind[effectiveKind], matches[i])
		}

		for effectiveKind, holders := range holdersByKind {
			assignHolders(&out, effectiveKind, holders)
			allDutyTypes = append(allDutyTypes, effectiveKind.Tag())
		}
	}

	out.DutyType = dutytype.Sort(dutytype.Dedup(allDutyTypes))

	popimarTags := popimar.Classify(out.Text, out.DutyType)
	out.Popimar = popimarTagStrings(popimar.Sort(popimarTags))

	return out, matchesByKind
}

func assignHolders(rec *record.Record, kind rolekind.Kind, holders []string) {
	switch kind {
	case rolekind.Duty:
		rec.DutyHolder = append(rec.DutyHolder, holders...)
	case rolekind.Right:
		rec.RightsHolder = append(rec.RightsHolder, holders...)
	case rolekind.Responsibility:
		rec.ResponsibilityHolder = append(rec.ResponsibilityHolder, holders...)
	case rolekind.Power:
		rec.PowerHolder = append(rec.PowerHolder, holders...)
	}
}

func tagStrings[T ~string](tags []T) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func popimarTagStrings(tags []popimar.Tag) []string {
	return tagStrings(tags)
}

// Result pairs a classified Record with its JSONB sidecar documents, keyed
// by the RoleKind each document covers.
type Result struct {
	Record    record.Record
	Sidecars  map[rolekind.Kind]jsonb.Document
}

// ClassifyBatch classifies every record in recs concurrently, bounding
// in-flight work to opts.Concurrency workers (unbounded if <=0), and
// returns results in the same order as recs regardless of completion
// order.
func (p *Pipeline) ClassifyBatch(ctx context.Context, recs []record.Record) ([]Result, error) {
	results := make([]Result, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	if p.opts.Concurrency > 0 {
		g.SetLimit(p.opts.Concurrency)
	}

	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			enriched, matchesByKind := p.ClassifyOne(rec)
			sidecars := make(map[rolekind.Kind]jsonb.Document, len(matchesByKind))
			for kind, matches := range matchesByKind {
				sidecars[kind] = jsonb.BuildDocument(matchesToEntries(matches))
			}
			results[i] = Result{Record: enriched, Sidecars: sidecars}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func matchesToEntries(matches []rolematch.Match) []jsonb.Entry {
	entries := make([]jsonb.Entry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, jsonb.Entry{
			Holder:   m.Actor,
			DutyType: m.Kind.Tag(),
			Clause:   m.Clause,
		})
	}
	return entries
}

// DetectMaking runs the metadata-only MakingDetector stage against a
// Record's title/description/structural fields.
func DetectMaking(rec record.Record, cal making.Calibration) making.DetectionResult {
	return making.Detect(making.Metadata{
		TitleEn:         rec.TitleEn,
		MdDescription:   rec.MdDescription,
		MdBodyParas:     rec.MdBodyParas,
		MdScheduleParas: rec.MdScheduleParas,
	}, cal)
}
