package making

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int {
	return &n
}

func TestDetect_BaseRateWithNoEvidence(t *testing.T) {
	// Absent any evidence the detector still returns a classification, at
	// the base rate, tier 0, no signals.
	result := Detect(Metadata{}, DefaultCalibration)

	require.Equal(t, NotMakingClass, result.Classification)
	require.InDelta(t, 0.173, result.Confidence, 0.001)
	require.Equal(t, 0, result.Tier)
	require.Empty(t, result.Signals)
}

func TestDetect_CommencementTitle(t *testing.T) {
	meta := Metadata{
		TitleEn:     "Environment Act 2024 (Commencement No. 3) Order",
		MdBodyParas: intPtr(3),
	}
	result := Detect(meta, DefaultCalibration)

	require.Equal(t, NotMakingClass, result.Classification)
	require.Less(t, result.Confidence, 0.10)
	require.GreaterOrEqual(t, result.Tier, 1)

	var names []string
	for _, s := range result.Signals {
		names = append(names, s.Name)
	}
	require.Contains(t, names, "title_commencement")
}

func TestDetect_CleanMakingLaw(t *testing.T) {
	meta := Metadata{
		TitleEn:       "Workplace Health and Safety Regulations 2024",
		MdBodyParas:   intPtr(85),
		MdDescription: "An Act to make provision for securing the health, safety and welfare of persons at work",
	}
	result := Detect(meta, DefaultCalibration)

	require.Equal(t, MakingClass, result.Classification)
	require.GreaterOrEqual(t, result.Confidence, 0.70)
}

func TestDetect_AppointedDayForcesNotMaking(t *testing.T) {
	meta := Metadata{TitleEn: "The Act (Appointed Day) Order 2024", MdBodyParas: intPtr(90)}
	result := Detect(meta, DefaultCalibration)
	require.Equal(t, NotMakingClass, result.Classification)
}

func TestDetect_NegativeMetadataTreatedAsMissing(t *testing.T) {
	meta := Metadata{MdBodyParas: intPtr(-1), MdScheduleParas: intPtr(-1)}
	result := Detect(meta, DefaultCalibration)
	require.Empty(t, result.Signals)
}

func TestDetect_ZeroBodyParasIsEvidenceNotMissing(t *testing.T) {
	// Unlike Metadata{} (nil pointer, "never measured"), an explicit zero is
	// itself evidence and must fire the tier-3 signal.
	meta := Metadata{MdBodyParas: intPtr(0)}
	result := Detect(meta, DefaultCalibration)

	var names []string
	for _, s := range result.Signals {
		names = append(names, s.Name)
	}
	require.Contains(t, names, "very_low_body_paras")
}

func TestToParsedLawFields_PersistenceShape(t *testing.T) {
	result := Detect(Metadata{TitleEn: "The Act (Commencement) Order"}, DefaultCalibration)
	fields := ToParsedLawFields(result, "2026-08-01T00:00:00Z")

	require.Equal(t, "not_making", fields.MakingClassification)
	require.Equal(t, result.Confidence, fields.MakingConfidence)
	require.Equal(t, result.Tier, fields.MakingDetectionTier)
	require.Equal(t, SchemaVersion, fields.MakingDetectionSignals.Version)
	require.Equal(t, "2026-08-01T00:00:00Z", fields.MakingDetectionSignals.DetectedAt)
	require.Len(t, fields.MakingDetectionSignals.Signals, len(result.Signals))
	for i, rec := range fields.MakingDetectionSignals.Signals {
		require.Equal(t, string(result.Signals[i].Direction), rec.Direction)
	}
}

func TestThresholds_Symmetric(t *testing.T) {
	require.Equal(t, NotMakingClass, score([]Signal{}, DefaultCalibration).Classification)

	hi := score([]Signal{{Confidence: 0.99, Direction: DirMaking, Tier: 4}}, DefaultCalibration)
	require.GreaterOrEqual(t, hi.Confidence, DefaultCalibration.HighThreshold)
	require.Equal(t, MakingClass, hi.Classification)
}
