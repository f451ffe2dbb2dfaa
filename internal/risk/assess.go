package risk

import "fmt"

// Factor is a single scoring band that contributed to the total, with a
// human-readable explanation for clinicians and audit trails.
type Factor struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// Assessment is the outcome of scoring one set of factors. Score is the
// raw weighted sum, retained for auditing; Factors lists every band
// that scored above zero, in evaluation order.
type Assessment struct {
	Score   int      `json:"score"`
	Level   Level    `json:"level"`
	Factors []Factor `json:"factors"`
}

// Assess converts a patient's risk factors into a risk classification.
// It is pure and deterministic: no I/O, no clock, identical input
// always yields an identical result. The bands are evaluated in a
// fixed order which also fixes the order of the contributing factors.
func Assess(f Factors) (Assessment, error) {
	if err := f.Validate(); err != nil {
		return Assessment{}, err
	}

	a := Assessment{Factors: []Factor{}}

	a.add(ageScore(f.Age))

	if f.Underweight {
		note := "Underweight (BMI below 18.5)"
		if f.UnderweightApprox {
			note = "Underweight (low body weight, height unknown; approximate)"
		}
		a.add(3, "underweight", note)
	}

	if f.HadAbnormalPregnancyHistory {
		a.add(4, "abnormal_pregnancy_history", "Previous pregnancy with adverse outcome")
	}

	a.add(miscarriageScore(f.PreviousMiscarriages))
	a.add(cesareanScore(f.PreviousCesareans))

	if f.HasChronicConditions {
		a.add(3, "chronic_conditions", "Pre-existing chronic condition")
	}

	if f.BloodPressure != nil {
		a.add(bloodPressureScore(*f.BloodPressure))
	}
	if f.Hemoglobin != nil {
		a.add(hemoglobinScore(*f.Hemoglobin))
	}
	if f.BloodGlucose != nil {
		a.add(glucoseScore(*f.BloodGlucose))
	}

	a.Level = Classify(a.Score)
	return a, nil
}

// add accumulates one band. Bands that scored zero are omitted from the
// contributing factor list.
func (a *Assessment) add(points int, name, note string) {
	if points == 0 {
		return
	}
	a.Score += points
	a.Factors = append(a.Factors, Factor{Name: name, Note: note})
}

// ageScore bands are mutually exclusive and checked in order, so age 19
// lands in the 18-19 band, not the under-18 one.
func ageScore(age int) (int, string, string) {
	switch {
	case age < 18:
		return 3, "age", fmt.Sprintf("Adolescent pregnancy (%d years)", age)
	case age <= 19:
		return 2, "age", fmt.Sprintf("Young maternal age (%d years)", age)
	case age > 40:
		return 4, "age", fmt.Sprintf("Advanced maternal age (%d years)", age)
	case age > 35:
		return 2, "age", fmt.Sprintf("Advanced maternal age (%d years)", age)
	default:
		return 0, "age", ""
	}
}

func miscarriageScore(count int) (int, string, string) {
	switch {
	case count >= 3:
		return 4, "previous_miscarriages", fmt.Sprintf("Recurrent miscarriage (%d previous)", count)
	case count == 2:
		return 3, "previous_miscarriages", "Two previous miscarriages"
	case count == 1:
		return 1, "previous_miscarriages", "One previous miscarriage"
	default:
		return 0, "previous_miscarriages", ""
	}
}

func cesareanScore(count int) (int, string, string) {
	switch {
	case count >= 3:
		return 3, "previous_cesareans", fmt.Sprintf("Multiple previous cesareans (%d)", count)
	case count == 2:
		return 2, "previous_cesareans", "Two previous cesareans"
	case count == 1:
		return 1, "previous_cesareans", "One previous cesarean"
	default:
		return 0, "previous_cesareans", ""
	}
}

// bloodPressureScore takes the first matching severity band: either
// component alone is enough, so 165/70 scores as severe hypertension
// via the systolic reading.
func bloodPressureScore(bp BloodPressure) (int, string, string) {
	switch {
	case bp.Systolic >= 160 || bp.Diastolic >= 110:
		return 5, "blood_pressure", fmt.Sprintf("Severe hypertension (%d/%d mmHg)", bp.Systolic, bp.Diastolic)
	case bp.Systolic >= 140 || bp.Diastolic >= 90:
		return 3, "blood_pressure", fmt.Sprintf("Hypertension (%d/%d mmHg)", bp.Systolic, bp.Diastolic)
	case bp.Systolic >= 130 || bp.Diastolic >= 85:
		return 1, "blood_pressure", fmt.Sprintf("Elevated blood pressure (%d/%d mmHg)", bp.Systolic, bp.Diastolic)
	default:
		return 0, "blood_pressure", ""
	}
}

func hemoglobinScore(gdl float64) (int, string, string) {
	switch {
	case gdl < 7:
		return 5, "hemoglobin", fmt.Sprintf("Severe anemia (%.1f g/dL)", gdl)
	case gdl < 9:
		return 3, "hemoglobin", fmt.Sprintf("Moderate anemia (%.1f g/dL)", gdl)
	case gdl < 11:
		return 2, "hemoglobin", fmt.Sprintf("Mild anemia (%.1f g/dL)", gdl)
	default:
		return 0, "hemoglobin", ""
	}
}

func glucoseScore(mgdl float64) (int, string, string) {
	switch {
	case mgdl >= 200:
		return 5, "blood_glucose", fmt.Sprintf("Severe hyperglycemia (%.0f mg/dL)", mgdl)
	case mgdl >= 140:
		return 3, "blood_glucose", fmt.Sprintf("Hyperglycemia (%.0f mg/dL)", mgdl)
	case mgdl >= 100:
		return 1, "blood_glucose", fmt.Sprintf("Elevated blood glucose (%.0f mg/dL)", mgdl)
	default:
		return 0, "blood_glucose", ""
	}
}
