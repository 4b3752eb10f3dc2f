package prompt

// questions are the benefit categories every SBC is interrogated for.
// The order is the order the model is asked to answer in.
var questions = [...]string{
	"What is the overall deductible? - Individual",
	"What is the overall deductible? - Family",
	"What is the out-of-pocket limit for this plan? - Individual",
	"What is the out-of-pocket limit for this plan? - Family",
	"If you visit a health care provider's office or clinic: Primary care visit to treat an injury or illness",
	"If you visit a health care provider's office or clinic: Specialist visit",
	"If you visit a health care provider's office or clinic: Preventive care/screening/ immunization",
	"If you have a test: Diagnostic test (x-ray, blood work)",
	"If you have a test: Diagnostic Lab Work",
	"If you have a test: Imaging (CT/PET scans, MRIs)",
	"If you have outpatient surgery: Physician/surgeon fees",
	"If you have a hospital stay: Physician/surgeon fees",
	"If you need mental health, behavioral health, or substance abuse services: Outpatient services",
	"If you need mental health, behavioral health, or substance abuse services: Inpatient services",
	"If you are pregnant: Childbirth/delivery professional services",
}

// exampleAnswers illustrate the accepted answer formats. Some entries keep
// the quoting and line breaks they had in the source spreadsheet.
var exampleAnswers = [...]string{
	"$2,250 individual",
	"$4,500 family",
	"$4,500 individual",
	"$9,000 family",
	"$10 copay per visit; deductible does not apply",
	"\"$35 copay per visit;\ndeductible does not apply\"",
	"No charge",
	"20% coinsurance; deductible does not apply in outpatient setting",
	"20% coinsurance; deductible does not apply in outpatient setting",
	"\"20% coinsurance; deductible does not\napply\"",
	"20% coinsurance after deductible",
	"20% coinsurance after deductible",
	"$10 copay per individual visit; $5 copay per group visit.",
	"20% coinsurance after deductible",
	"20% coinsurance after deductible",
}

// Questions returns a copy of the fixed question list.
func Questions() []string {
	out := make([]string, len(questions))
	copy(out, questions[:])
	return out
}

// ExampleAnswers returns a copy of the example answer list.
func ExampleAnswers() []string {
	out := make([]string, len(exampleAnswers))
	copy(out, exampleAnswers[:])
	return out
}
