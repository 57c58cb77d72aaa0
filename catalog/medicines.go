package catalog

// Medicine is a recommended medicine with its usual regimen
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// DiseaseMedicines groups the medicines recommended for one disease
type DiseaseMedicines struct {
	Disease   string
	Medicines []Medicine
}

var medicineCatalog = []DiseaseMedicines{
	{"Influenza", []Medicine{
		{"Oseltamivir (Tamiflu)", "75mg", "BD", "5 days"},
		{"Paracetamol", "500mg", "TID", "3 days"},
		{"Cetirizine", "10mg", "OD", "5 days"},
	}},
	{"Dengue Fever", []Medicine{
		{"Paracetamol", "500mg", "TID", "5 days"},
		{"ORS (Oral Rehydration)", "1 sachet", "TID", "7 days"},
		{"Platelet-boosting supplements", "As directed", "OD", "7 days"},
	}},
	{"Hypertension", []Medicine{
		{"Amlodipine", "5mg", "OD", "30 days"},
		{"Losartan", "50mg", "OD", "30 days"},
	}},
	{"Type 2 Diabetes", []Medicine{
		{"Metformin", "500mg", "BD", "30 days"},
		{"Glimepiride", "1mg", "OD", "30 days"},
	}},
	{"Common Cold", []Medicine{
		{"Cetirizine", "10mg", "OD", "5 days"},
		{"Paracetamol", "500mg", "TID", "3 days"},
		{"Steam Inhalation", "-", "BD", "5 days"},
	}},
	{"Gastroenteritis", []Medicine{
		{"ORS", "1 sachet", "TID", "3 days"},
		{"Omeprazole", "20mg", "BD", "5 days"},
		{"Loperamide", "2mg", "SOS", "2 days"},
	}},
	{"Asthma", []Medicine{
		{"Salbutamol Inhaler", "2 puffs", "SOS", "As needed"},
		{"Montelukast", "10mg", "HS", "30 days"},
	}},
	{"Bronchitis", []Medicine{
		{"Ambroxol", "30mg", "BD", "5 days"},
		{"Azithromycin", "500mg", "OD", "3 days"},
	}},
	{"Allergic Rhinitis", []Medicine{
		{"Cetirizine", "10mg", "OD", "7 days"},
		{"Fluticasone Nasal Spray", "2 sprays", "OD", "14 days"},
	}},
	{"Skin Infections", []Medicine{
		{"Clotrimazole Cream", "Apply thin layer", "BD", "14 days"},
		{"Cetirizine", "10mg", "OD", "5 days"},
	}},
	{"Typhoid", []Medicine{
		{"Azithromycin", "500mg", "OD", "7 days"},
		{"Paracetamol", "500mg", "TID", "5 days"},
	}},
	{"Malaria", []Medicine{
		{"Chloroquine", "600mg base", "See schedule", "3 days"},
		{"Primaquine", "15mg", "OD", "14 days"},
	}},
}

// MedicineCatalog returns the disease → medicines table in catalog order.
// The returned slice must not be modified.
func MedicineCatalog() []DiseaseMedicines {
	return medicineCatalog
}
