package dataset

// Built-in demo datasets. These are read-only seeds: stores copy or read
// them, nothing mutates them after init.

var demographicsRegions = []Region{
	{RegionID: "US-NE-001", RegionName: "Boston Metropolitan Area", Population: 4941632, MedianAge: 38.9, UrbanPct: 0.92},
	{RegionID: "US-NE-002", RegionName: "Northern New England", Population: 2362219, MedianAge: 43.1, UrbanPct: 0.61},
	{RegionID: "US-CA-001", RegionName: "San Francisco Bay Area", Population: 7765640, MedianAge: 39.2, UrbanPct: 0.95},
	{RegionID: "US-CA-002", RegionName: "Greater Los Angeles", Population: 13211000, MedianAge: 36.7, UrbanPct: 0.97},
	{RegionID: "US-TX-001", RegionName: "Dallas-Fort Worth Metroplex", Population: 7637387, MedianAge: 35.3, UrbanPct: 0.89},
	{RegionID: "US-FL-001", RegionName: "Greater Miami", Population: 6138333, MedianAge: 41.8, UrbanPct: 0.96},
	{RegionID: "US-IL-001", RegionName: "Chicago Metropolitan Area", Population: 9458539, MedianAge: 37.6, UrbanPct: 0.91},
	{RegionID: "US-WA-001", RegionName: "Puget Sound", Population: 4018762, MedianAge: 37.9, UrbanPct: 0.85},
}

var patientPools = []PatientPool{
	{PoolID: "POOL-001", RegionID: "US-NE-001", RegionName: "Boston Metropolitan Area", Disease: "Type 2 Diabetes", EstimatedPopulation: 412000, AgeRange: "35-75", DataSource: "regional health registry"},
	{PoolID: "POOL-002", RegionID: "US-NE-001", RegionName: "Boston Metropolitan Area", Disease: "Hypertension", EstimatedPopulation: 1180000, AgeRange: "40-80", DataSource: "claims analysis"},
	{PoolID: "POOL-003", RegionID: "US-NE-002", RegionName: "Northern New England", Disease: "Rheumatoid Arthritis", EstimatedPopulation: 31500, AgeRange: "30-70", DataSource: "regional health registry"},
	{PoolID: "POOL-004", RegionID: "US-CA-001", RegionName: "San Francisco Bay Area", Disease: "Asthma", EstimatedPopulation: 642000, AgeRange: "18-65", DataSource: "claims analysis"},
	{PoolID: "POOL-005", RegionID: "US-CA-001", RegionName: "San Francisco Bay Area", Disease: "Breast Cancer", EstimatedPopulation: 58400, AgeRange: "40-75", DataSource: "tumor registry"},
	{PoolID: "POOL-006", RegionID: "US-CA-002", RegionName: "Greater Los Angeles", Disease: "Type 2 Diabetes", EstimatedPopulation: 1340000, AgeRange: "35-75", DataSource: "claims analysis"},
	{PoolID: "POOL-007", RegionID: "US-TX-001", RegionName: "Dallas-Fort Worth Metroplex", Disease: "Type 2 Diabetes", EstimatedPopulation: 893000, AgeRange: "35-75", DataSource: "regional health registry"},
	{PoolID: "POOL-008", RegionID: "US-TX-001", RegionName: "Dallas-Fort Worth Metroplex", Disease: "Chronic Kidney Disease", EstimatedPopulation: 176000, AgeRange: "45-80", DataSource: "claims analysis"},
	{PoolID: "POOL-009", RegionID: "US-FL-001", RegionName: "Greater Miami", Disease: "Type 2 Diabetes", EstimatedPopulation: 724000, AgeRange: "40-80", DataSource: "claims analysis"},
	{PoolID: "POOL-010", RegionID: "US-FL-001", RegionName: "Greater Miami", Disease: "Breast Cancer", EstimatedPopulation: 49100, AgeRange: "40-75", DataSource: "tumor registry"},
	{PoolID: "POOL-011", RegionID: "US-IL-001", RegionName: "Chicago Metropolitan Area", Disease: "Hypertension", EstimatedPopulation: 2210000, AgeRange: "40-80", DataSource: "claims analysis"},
	{PoolID: "POOL-012", RegionID: "US-IL-001", RegionName: "Chicago Metropolitan Area", Disease: "Rheumatoid Arthritis", EstimatedPopulation: 87300, AgeRange: "30-70", DataSource: "regional health registry"},
	{PoolID: "POOL-013", RegionID: "US-WA-001", RegionName: "Puget Sound", Disease: "Asthma", EstimatedPopulation: 331000, AgeRange: "18-65", DataSource: "regional health registry"},
}

var sites = []Site{
	{SiteID: "SITE-001", SiteName: "Boston Clinical Research Center", Region: "US-NE-001", State: "Massachusetts", City: "Boston", Specialties: []string{"Endocrinology", "Cardiology", "Internal Medicine"}, EnrollmentCapacity: 350, ActiveTrials: 12},
	{SiteID: "SITE-002", SiteName: "Harbor Medical Research Institute", Region: "US-NE-001", State: "Massachusetts", City: "Cambridge", Specialties: []string{"Oncology", "Endocrinology"}, EnrollmentCapacity: 220, ActiveTrials: 8},
	{SiteID: "SITE-003", SiteName: "Green Mountain Trial Partners", Region: "US-NE-002", State: "Vermont", City: "Burlington", Specialties: []string{"Rheumatology", "Immunology"}, EnrollmentCapacity: 140, ActiveTrials: 5},
	{SiteID: "SITE-004", SiteName: "Bay Area Clinical Institute", Region: "US-CA-001", State: "California", City: "San Francisco", Specialties: []string{"Pulmonology", "Oncology"}, EnrollmentCapacity: 400, ActiveTrials: 15},
	{SiteID: "SITE-005", SiteName: "Pacific Coast Research Group", Region: "US-CA-002", State: "California", City: "Los Angeles", Specialties: []string{"Endocrinology", "Neurology"}, EnrollmentCapacity: 310, ActiveTrials: 11},
	{SiteID: "SITE-006", SiteName: "Lone Star Clinical Research", Region: "US-TX-001", State: "Texas", City: "Dallas", Specialties: []string{"Cardiology", "Endocrinology", "Nephrology"}, EnrollmentCapacity: 280, ActiveTrials: 9},
	{SiteID: "SITE-007", SiteName: "Everglades Health Research", Region: "US-FL-001", State: "Florida", City: "Miami", Specialties: []string{"Oncology", "Endocrinology"}, EnrollmentCapacity: 260, ActiveTrials: 7},
	{SiteID: "SITE-008", SiteName: "Cascade Research Partners", Region: "US-WA-001", State: "Washington", City: "Seattle", Specialties: []string{"Pulmonology", "Immunology"}, EnrollmentCapacity: 180, ActiveTrials: 6},
	{SiteID: "SITE-009", SiteName: "Lakeshore Clinical Trials", Region: "US-IL-001", State: "Illinois", City: "Chicago", Specialties: []string{"Cardiology", "Rheumatology"}, EnrollmentCapacity: 330, ActiveTrials: 13},
}

var siteCapabilities = map[string]Capabilities{
	"SITE-001": {SiteID: "SITE-001", SiteName: "Boston Clinical Research Center", Equipment: []string{"MRI", "CT", "DEXA", "CGM devices"}, Certifications: []string{"GCP", "CLIA", "CAP"}, OnSiteLab: true, OvernightBeds: 20},
	"SITE-002": {SiteID: "SITE-002", SiteName: "Harbor Medical Research Institute", Equipment: []string{"PET-CT", "MRI", "Infusion suite"}, Certifications: []string{"GCP", "CLIA"}, OnSiteLab: true, OvernightBeds: 8},
	"SITE-003": {SiteID: "SITE-003", SiteName: "Green Mountain Trial Partners", Equipment: []string{"Ultrasound", "Infusion suite"}, Certifications: []string{"GCP"}, OnSiteLab: false, OvernightBeds: 0},
	"SITE-004": {SiteID: "SITE-004", SiteName: "Bay Area Clinical Institute", Equipment: []string{"Spirometry lab", "PET-CT", "MRI"}, Certifications: []string{"GCP", "CLIA", "CAP"}, OnSiteLab: true, OvernightBeds: 24},
	"SITE-005": {SiteID: "SITE-005", SiteName: "Pacific Coast Research Group", Equipment: []string{"MRI", "EEG", "CGM devices"}, Certifications: []string{"GCP", "CLIA"}, OnSiteLab: true, OvernightBeds: 12},
	"SITE-006": {SiteID: "SITE-006", SiteName: "Lone Star Clinical Research", Equipment: []string{"Echo lab", "DEXA", "Dialysis unit"}, Certifications: []string{"GCP", "CLIA"}, OnSiteLab: true, OvernightBeds: 10},
	"SITE-007": {SiteID: "SITE-007", SiteName: "Everglades Health Research", Equipment: []string{"Infusion suite", "CT"}, Certifications: []string{"GCP"}, OnSiteLab: false, OvernightBeds: 4},
	"SITE-008": {SiteID: "SITE-008", SiteName: "Cascade Research Partners", Equipment: []string{"Spirometry lab", "Ultrasound"}, Certifications: []string{"GCP", "CLIA"}, OnSiteLab: true, OvernightBeds: 6},
	"SITE-009": {SiteID: "SITE-009", SiteName: "Lakeshore Clinical Trials", Equipment: []string{"Echo lab", "MRI", "Infusion suite"}, Certifications: []string{"GCP", "CLIA", "CAP"}, OnSiteLab: true, OvernightBeds: 16},
}

var enrollmentHistory = map[string][]TrialRecord{
	"SITE-001": {
		{TrialID: "TRIAL-1101", Indication: "Type 2 Diabetes", Phase: "Phase III", Enrolled: 182, Target: 175, CompletionYear: 2025, CompletionRate: 0.91},
		{TrialID: "TRIAL-1102", Indication: "Hypertension", Phase: "Phase II", Enrolled: 96, Target: 100, CompletionYear: 2024, CompletionRate: 0.88},
		{TrialID: "TRIAL-1103", Indication: "Type 2 Diabetes", Phase: "Phase II", Enrolled: 74, Target: 80, CompletionYear: 2022, CompletionRate: 0.85},
		{TrialID: "TRIAL-1104", Indication: "Hyperlipidemia", Phase: "Phase III", Enrolled: 210, Target: 200, CompletionYear: 2021, CompletionRate: 0.93},
	},
	"SITE-002": {
		{TrialID: "TRIAL-1201", Indication: "Breast Cancer", Phase: "Phase II", Enrolled: 64, Target: 70, CompletionYear: 2025, CompletionRate: 0.82},
		{TrialID: "TRIAL-1202", Indication: "Type 2 Diabetes", Phase: "Phase III", Enrolled: 142, Target: 150, CompletionYear: 2023, CompletionRate: 0.87},
	},
	"SITE-003": {
		{TrialID: "TRIAL-1301", Indication: "Rheumatoid Arthritis", Phase: "Phase II", Enrolled: 48, Target: 50, CompletionYear: 2024, CompletionRate: 0.90},
		{TrialID: "TRIAL-1302", Indication: "Psoriatic Arthritis", Phase: "Phase II", Enrolled: 39, Target: 45, CompletionYear: 2022, CompletionRate: 0.79},
	},
	"SITE-004": {
		{TrialID: "TRIAL-1401", Indication: "Severe Asthma", Phase: "Phase III", Enrolled: 221, Target: 220, CompletionYear: 2025, CompletionRate: 0.94},
		{TrialID: "TRIAL-1402", Indication: "NSCLC", Phase: "Phase II", Enrolled: 58, Target: 60, CompletionYear: 2023, CompletionRate: 0.86},
		{TrialID: "TRIAL-1403", Indication: "COPD", Phase: "Phase III", Enrolled: 194, Target: 210, CompletionYear: 2021, CompletionRate: 0.81},
	},
	"SITE-005": {
		{TrialID: "TRIAL-1501", Indication: "Type 2 Diabetes", Phase: "Phase III", Enrolled: 168, Target: 160, CompletionYear: 2024, CompletionRate: 0.92},
		{TrialID: "TRIAL-1502", Indication: "Migraine", Phase: "Phase II", Enrolled: 82, Target: 90, CompletionYear: 2022, CompletionRate: 0.84},
	},
	"SITE-006": {
		{TrialID: "TRIAL-1601", Indication: "Chronic Kidney Disease", Phase: "Phase III", Enrolled: 131, Target: 140, CompletionYear: 2025, CompletionRate: 0.83},
		{TrialID: "TRIAL-1602", Indication: "Type 2 Diabetes", Phase: "Phase II", Enrolled: 71, Target: 75, CompletionYear: 2023, CompletionRate: 0.89},
	},
	"SITE-007": {
		{TrialID: "TRIAL-1701", Indication: "Type 2 Diabetes", Phase: "Phase III", Enrolled: 119, Target: 130, CompletionYear: 2024, CompletionRate: 0.80},
		{TrialID: "TRIAL-1702", Indication: "Breast Cancer", Phase: "Phase II", Enrolled: 41, Target: 50, CompletionYear: 2021, CompletionRate: 0.76},
	},
	"SITE-008": {
		{TrialID: "TRIAL-1801", Indication: "Severe Asthma", Phase: "Phase II", Enrolled: 56, Target: 60, CompletionYear: 2025, CompletionRate: 0.88},
		{TrialID: "TRIAL-1802", Indication: "Atopic Dermatitis", Phase: "Phase III", Enrolled: 102, Target: 110, CompletionYear: 2022, CompletionRate: 0.85},
	},
	"SITE-009": {
		{TrialID: "TRIAL-1901", Indication: "Heart Failure", Phase: "Phase III", Enrolled: 204, Target: 200, CompletionYear: 2025, CompletionRate: 0.91},
		{TrialID: "TRIAL-1902", Indication: "Rheumatoid Arthritis", Phase: "Phase II", Enrolled: 66, Target: 70, CompletionYear: 2023, CompletionRate: 0.87},
		{TrialID: "TRIAL-1903", Indication: "Atrial Fibrillation", Phase: "Phase III", Enrolled: 175, Target: 190, CompletionYear: 2021, CompletionRate: 0.82},
	},
}
