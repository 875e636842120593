// Package making classifies a law as making, not_making, or uncertain from
// document metadata alone. No section text is consulted: the title, the
// description, and the body/schedule paragraph counts carry enough signal
// once combined into a log-odds composite score.
package making

import (
	"math"
	"strings"
)

// SchemaVersion tags the persisted signal payload shape, bumped whenever a
// tier or signal key is added or renamed.
const SchemaVersion = 1

// Classification is one of the three closed outcomes.
type Classification string

const (
	MakingClass    Classification = "making"
	NotMakingClass Classification = "not_making"
	Uncertain      Classification = "uncertain"
)

// Direction is the polarity a Signal argues for.
type Direction string

const (
	DirMaking    Direction = "making"
	DirNotMaking Direction = "not_making"
)

// Calibration bundles the tunable constants taxaconfig may override.
type Calibration struct {
	BaseRate       float64
	LowThreshold   float64
	HighThreshold  float64
}

// DefaultCalibration carries the empirical base rate of "making" across the
// corpus and the classification thresholds tuned against it.
var DefaultCalibration = Calibration{
	BaseRate:      0.173,
	LowThreshold:  0.30,
	HighThreshold: 0.70,
}

// Signal is one piece of evidence the detector found, carrying enough
// context for the audit trail persisted alongside DetectionResult.
type Signal struct {
	Name       string    `json:"name"`
	Tier       int       `json:"tier"`
	Confidence float64   `json:"confidence"`
	Direction  Direction `json:"direction"`
	Value      string    `json:"value,omitempty"`
}

// DetectionResult is the full output of Detect.
type DetectionResult struct {
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Tier           int            `json:"tier"`
	Signals        []Signal       `json:"signals"`
	Version        int            `json:"version"`
}

// Metadata is the document metadata the detector consumes.
// MdBodyParas/MdScheduleParas are pointers because "not supplied" and
// "supplied as zero" are different facts here: a nil pointer means the
// caller never measured this field, so no tier-3 structural signal may
// fire; a pointer to 0 means the caller counted zero paragraphs, which is
// itself evidence. A negative value is inconsistent metadata and is also
// treated as missing.
type Metadata struct {
	TitleEn         string
	MdDescription   string
	MdBodyParas     *int
	MdScheduleParas *int
}

var makingCues = []string{
	"make provision for securing", "provision for", "to require", "to prohibit", "to regulate", "to impose",
}

var notMakingCues = []string{
	"to amend", "to revoke", "to repeal", "consequential amendments",
}

// Detect runs the full tiered signal emission plus composite scoring
// against meta, using cal for calibration. A zero Calibration is replaced
// with DefaultCalibration.
func Detect(meta Metadata, cal Calibration) DetectionResult {
	if cal == (Calibration{}) {
		cal = DefaultCalibration
	}

	signals := []Signal{}
	signals = append(signals, tier1Signals(meta.TitleEn)...)
	signals = append(signals, tier2Signals(meta.TitleEn)...)
	signals = append(signals, tier3Signals(meta.MdBodyParas, meta.MdScheduleParas)...)
	signals = append(signals, tier4Signals(meta.MdDescription)...)

	return score(signals, cal)
}

func tier1Signals(title string) []Signal {
	var out []Signal
	lower := strings.ToLower(title)
	if strings.Contains(lower, "(commencement") {
		out = append(out, Signal{Name: "title_commencement", Tier: 1, Confidence: 0.99, Direction: DirNotMaking, Value: title})
	}
	if strings.Contains(lower, "(appointed day") {
		out = append(out, Signal{Name: "title_appointed_day", Tier: 1, Confidence: 1.00, Direction: DirNotMaking, Value: title})
	}
	return out
}

var tier2Markers = []struct {
	needle string
	name   string
}{
	{"(amendment", "title_amendment"},
	{"(revocation", "title_revocation"},
	{"(repeal", "title_repeal"},
	{"(consequential", "title_consequential"},
	{"(transitional", "title_transitional"},
}

func tier2Signals(title string) []Signal {
	var out []Signal
	lower := strings.ToLower(title)
	for _, m := range tier2Markers {
		if strings.Contains(lower, m.needle) {
			out = append(out, Signal{Name: m.name, Tier: 2, Confidence: 0.80, Direction: DirNotMaking, Value: title})
		}
	}
	return out
}

// presentNonNegative reports whether p was supplied and is not negative,
// returning its value when true. A nil pointer (not supplied) or a negative
// value (inconsistent metadata) both report false.
func presentNonNegative(p *int) (int, bool) {
	if p == nil || *p < 0 {
		return 0, false
	}
	return *p, true
}

func tier3Signals(bodyParas, scheduleParas *int) []Signal {
	var out []Signal

	body, bodyOK := presentNonNegative(bodyParas)
	if !bodyOK {
		return out
	}
	schedule, scheduleOK := presentNonNegative(scheduleParas)

	if scheduleOK && body <= 5 && schedule >= 50 {
		out = append(out, Signal{Name: "low_body_high_schedule", Tier: 3, Confidence: 0.75, Direction: DirNotMaking})
	}
	if body <= 5 {
		out = append(out, Signal{Name: "very_low_body_paras", Tier: 3, Confidence: 0.70, Direction: DirNotMaking})
	}
	if body > 40 {
		conf := 0.40 + float64(body-40)/500.0
		if conf > 0.85 {
			conf = 0.85
		}
		out = append(out, Signal{Name: "high_body_paras", Tier: 3, Confidence: conf, Direction: DirMaking})
	}
	return out
}

func tier4Signals(description string) []Signal {
	if description == "" {
		return nil
	}
	lower := strings.ToLower(description)
	truncated := description
	if len(truncated) > 200 {
		truncated = truncated[:200]
	}

	var out []Signal
	for _, cue := range makingCues {
		if strings.Contains(lower, cue) {
			out = append(out, Signal{Name: "description_" + slug(cue), Tier: 4, Confidence: 0.80, Direction: DirMaking, Value: truncated})
		}
	}
	for _, cue := range notMakingCues {
		if strings.Contains(lower, cue) {
			out = append(out, Signal{Name: "description_" + slug(cue), Tier: 4, Confidence: 0.75, Direction: DirNotMaking, Value: truncated})
		}
	}
	return out
}

func slug(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

func score(signals []Signal, cal Calibration) DetectionResult {
	l0 := logit(cal.BaseRate)
	sum := l0
	maxTier := 0
	var tier1Dir Direction
	hasTier1 := false

	for _, s := range signals {
		delta := math.Log(s.Confidence / (1 - s.Confidence))
		if s.Direction == DirNotMaking {
			delta = -delta
		}
		sum += delta
		if s.Tier > maxTier {
			maxTier = s.Tier
		}
		if s.Tier == 1 && !hasTier1 {
			hasTier1 = true
			tier1Dir = s.Direction
		}
	}

	p := sigmoid(sum)

	var class Classification
	switch {
	case p >= cal.HighThreshold:
		class = MakingClass
	case p <= cal.LowThreshold:
		class = NotMakingClass
	default:
		class = Uncertain
	}

	if hasTier1 {
		if tier1Dir == DirMaking {
			class = MakingClass
		} else {
			class = NotMakingClass
		}
	}

	return DetectionResult{
		Classification: class,
		Confidence:     p,
		Tier:           maxTier,
		Signals:        signals,
		Version:        SchemaVersion,
	}
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// ParsedLawFields is the persistence shape produced by ToParsedLawFields.
type ParsedLawFields struct {
	MakingConfidence       float64                `json:"making_confidence"`
	MakingClassification   string                 `json:"making_classification"`
	MakingDetectionTier    int                    `json:"making_detection_tier"`
	MakingDetectionSignals SignalEnvelope         `json:"making_detection_signals"`
}

// SignalEnvelope wraps the signal audit list with a schema version and the
// time it was produced. detectedAt is supplied by the caller so the
// persistence layer controls the timestamp format and clock.
type SignalEnvelope struct {
	Version    int              `json:"version"`
	DetectedAt string           `json:"detected_at"`
	Signals    []SignalRecord   `json:"signals"`
}

// SignalRecord stringifies Signal.Direction for JSON persistence.
type SignalRecord struct {
	Name       string  `json:"name"`
	Tier       int     `json:"tier"`
	Confidence float64 `json:"confidence"`
	Direction  string  `json:"direction"`
	Value      string  `json:"value,omitempty"`
}

// ToParsedLawFields converts a DetectionResult into the persistence map
// shape, stamping detectedAt verbatim (the caller supplies it).
func ToParsedLawFields(result DetectionResult, detectedAt string) ParsedLawFields {
	records := make([]SignalRecord, 0, len(result.Signals))
	for _, s := range result.Signals {
		records = append(records, SignalRecord{
			Name:       s.Name,
			Tier:       s.Tier,
			Confidence: s.Confidence,
			Direction:  string(s.Direction),
			Value:      s.Value,
		})
	}

	return ParsedLawFields{
		MakingConfidence:     result.Confidence,
		MakingClassification: string(result.Classification),
		MakingDetectionTier:  result.Tier,
		MakingDetectionSignals: SignalEnvelope{
			Version:    SchemaVersion,
			DetectedAt: detectedAt,
			Signals:    records,
		},
	}
}
