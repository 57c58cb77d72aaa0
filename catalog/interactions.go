package catalog

// Severity grades an interaction pair
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	// SeverityMedium only appears in the known-interactions screening table
	SeverityMedium Severity = "medium"
)

// InteractionPair is a known interacting drug pair.
// The pair is directional: DrugA is matched against the earlier input position.
type InteractionPair struct {
	DrugA       string   `json:"drug1"`
	DrugB       string   `json:"drug2"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// interactionPairs use lowercase generic names, matched after normalization
var interactionPairs = []InteractionPair{
	{"warfarin", "aspirin", SeverityHigh, "Increased risk of bleeding. Both drugs affect blood clotting."},
	{"metformin", "alcohol", SeverityHigh, "Risk of lactic acidosis. Avoid alcohol when taking metformin."},
	{"lisinopril", "potassium", SeverityHigh, "Risk of hyperkalemia. ACE inhibitors increase potassium levels."},
	{"simvastatin", "erythromycin", SeverityHigh, "Increased risk of rhabdomyolysis (muscle breakdown)."},
	{"ciprofloxacin", "antacids", SeverityModerate, "Antacids reduce absorption of ciprofloxacin. Take 2 hours apart."},
	{"metformin", "iodinated contrast", SeverityHigh, "Risk of lactic acidosis. Stop metformin 48h before contrast."},
	{"ssri", "tramadol", SeverityHigh, "Risk of serotonin syndrome. Avoid combination."},
	{"amlodipine", "simvastatin", SeverityModerate, "Amlodipine may increase simvastatin levels. Limit simvastatin to 20mg."},
	{"omeprazole", "clopidogrel", SeverityHigh, "Omeprazole reduces effectiveness of clopidogrel."},
	{"ibuprofen", "aspirin", SeverityModerate, "Ibuprofen may reduce the cardioprotective effects of aspirin."},
	{"amoxicillin", "methotrexate", SeverityHigh, "Amoxicillin may increase methotrexate toxicity."},
	{"fluconazole", "warfarin", SeverityHigh, "Fluconazole increases warfarin effects. Monitor INR closely."},
	{"paracetamol", "warfarin", SeverityModerate, "High doses of paracetamol may enhance warfarin effect."},
	{"paracetamol", "ibuprofen", SeverityModerate, "Regular combined use raises the risk of gastrointestinal and renal side effects. Do not exceed daily limits."},
	{"azithromycin", "amiodarone", SeverityHigh, "Risk of QT prolongation and cardiac arrhythmia."},
	{"cetirizine", "alcohol", SeverityModerate, "Enhanced sedation and drowsiness."},
	{"metformin", "cimetidine", SeverityModerate, "Cimetidine increases metformin levels. Monitor blood glucose."},
	{"amlodipine", "cyclosporine", SeverityModerate, "Amlodipine may increase cyclosporine levels."},
	{"diclofenac", "lithium", SeverityHigh, "NSAIDs increase lithium levels. Risk of lithium toxicity."},
}

// knownInteractions is the screening table used with clean, well-known drug names.
// Entries are reported verbatim, so names keep their display casing.
var knownInteractions = []InteractionPair{
	{"Warfarin", "Aspirin", SeverityHigh, "Increased risk of bleeding. Both drugs thin blood through different mechanisms."},
	{"Metformin", "Alcohol", SeverityHigh, "Risk of lactic acidosis. Alcohol impairs liver's ability to clear metformin."},
	{"Lisinopril", "Potassium", SeverityMedium, "Risk of hyperkalemia. ACE inhibitors can increase potassium levels."},
	{"Simvastatin", "Grapefruit", SeverityMedium, "Grapefruit increases statin levels, raising risk of muscle damage."},
	{"Omeprazole", "Clopidogrel", SeverityHigh, "Omeprazole reduces effectiveness of Clopidogrel antiplatelet action."},
	{"Metformin", "Contrast dye", SeverityHigh, "Risk of kidney damage and lactic acidosis during contrast imaging."},
	{"Amlodipine", "Simvastatin", SeverityMedium, "Amlodipine can increase simvastatin levels, raising muscle damage risk."},
}

// InteractionPairs returns a copy of the normalized-name interaction catalog
func InteractionPairs() []InteractionPair {
	out := make([]InteractionPair, len(interactionPairs))
	copy(out, interactionPairs)
	return out
}

// KnownInteractions returns a copy of the screening catalog
func KnownInteractions() []InteractionPair {
	out := make([]InteractionPair, len(knownInteractions))
	copy(out, knownInteractions)
	return out
}

var drugAliases = map[string]string{
	"crocin": "paracetamol", "tylenol": "paracetamol", "dolo": "paracetamol",
	"brufen": "ibuprofen", "advil": "ibuprofen", "nurofen": "ibuprofen",
	"augmentin": "amoxicillin", "mox": "amoxicillin",
	"zithromax": "azithromycin", "azee": "azithromycin",
	"norvasc": "amlodipine", "stamlo": "amlodipine",
	"glucophage": "metformin", "glycomet": "metformin",
	"prilosec": "omeprazole", "omez": "omeprazole",
	"zyrtec": "cetirizine", "cetzine": "cetirizine",
	"ecosprin": "aspirin", "disprin": "aspirin",
	"coumadin": "warfarin",
	"cipro": "ciprofloxacin", "ciplox": "ciprofloxacin",
	"voveran": "diclofenac", "voltaren": "diclofenac",
}

// AliasTable maps brand or common names to canonical generic names
type AliasTable struct {
	aliases map[string]string
}

var defaultAliases = &AliasTable{aliases: drugAliases}

// Aliases returns the built-in brand alias table
func Aliases() *AliasTable {
	return defaultAliases
}

// Resolve returns the generic name for an alias, or name unchanged
func (a *AliasTable) Resolve(name string) string {
	if generic, ok := a.aliases[name]; ok {
		return generic
	}
	return name
}

// Len returns the number of aliases
func (a *AliasTable) Len() int {
	return len(a.aliases)
}
