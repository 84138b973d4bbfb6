package controllers

import "github.com/shaikhmoiz3010/pointsolution-server/models"

// seedCatalog is the built-in service catalog installed by
// POST /api/services/seed.
var seedCatalog = []models.Service{
	// Driving licence services
	{
		Category:            "driving-licence",
		ServiceID:           "A",
		Name:                "Learner Licence",
		Description:         "Apply for new learner driving licence",
		DetailedDescription: "Complete process for obtaining learner driving licence including document verification and test.",
		Fee:                 500,
		GovernmentFee:       200,
		ServiceFee:          300,
		ProcessingTime:      "3-5 days",
		Requirements:        []string{"Age Proof", "Address Proof", "Medical Certificate"},
		DocumentsRequired:   []string{"Aadhaar Card", "Passport Photos", "Address Proof"},
		Steps: []models.ServiceStep{
			{StepNumber: 1, Title: "Document Submission", Description: "Submit required documents"},
			{StepNumber: 2, Title: "Application Form", Description: "Fill application form"},
			{StepNumber: 3, Title: "Test Appointment", Description: "Schedule learner test"},
		},
		IsActive: true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "B",
		Name:           "Permanent Licence",
		Description:    "Get permanent driving licence",
		Fee:            1000,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "C",
		Name:           "Renewal Licence",
		Description:    "Renew your existing driving licence",
		Fee:            800,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "D",
		Name:           "Duplicate Licence",
		Description:    "Apply for duplicate driving licence if lost",
		Fee:            600,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "E",
		Name:           "Change of Address in Licence",
		Description:    "Update address in driving licence",
		Fee:            400,
		ProcessingTime: "3-5 days",
		IsActive:       true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "F",
		Name:           "International Driving Permit",
		Description:    "Apply for international driving permit",
		Fee:            1500,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "G",
		Name:           "DL Extract",
		Description:    "Get extract of driving licence",
		Fee:            300,
		ProcessingTime: "2-3 days",
		IsActive:       true,
	},
	{
		Category:       "driving-licence",
		ServiceID:      "H",
		Name:           "Add Class of Vehicle",
		Description:    "Add new vehicle class to existing licence",
		Fee:            700,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},

	// Registration certificate services
	{
		Category:       "registration-certificate",
		ServiceID:      "A",
		Name:           "New Registration of Vehicle",
		Description:    "Register new vehicle",
		Fee:            2000,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "B",
		Name:           "Transfer of Vehicle Ownership",
		Description:    "Transfer vehicle ownership",
		Fee:            1500,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "C",
		Name:           "Hypothecation Add",
		Description:    "Add hypothecation to RC",
		Fee:            1000,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "D",
		Name:           "Hypothecation Terminate",
		Description:    "Remove hypothecation from RC",
		Fee:            1000,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "E",
		Name:           "Duplicate Registration Certificate",
		Description:    "Apply for duplicate RC",
		Fee:            800,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "F",
		Name:           "Issue NOC",
		Description:    "Get No Objection Certificate",
		Fee:            600,
		ProcessingTime: "3-5 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "G",
		Name:           "CNG Add & Remove",
		Description:    "Add or remove CNG from RC",
		Fee:            1200,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "H",
		Name:           "Fancy Choice Number",
		Description:    "Select fancy vehicle number",
		Fee:            5000,
		ProcessingTime: "10-15 days",
		IsActive:       true,
	},
	{
		Category:       "registration-certificate",
		ServiceID:      "I",
		Name:           "Renewal of Vehicle Registration",
		Description:    "Renew vehicle registration certificate",
		Fee:            1000,
		ProcessingTime: "5-7 days",
		IsActive:       true,
	},

	// Passport services
	{
		Category:       "passport",
		ServiceID:      "A",
		Name:           "New / Renew Passport",
		Description:    "Apply for new or renew passport",
		Fee:            2500,
		ProcessingTime: "15-20 days",
		IsActive:       true,
	},
	{
		Category:       "passport",
		ServiceID:      "B",
		Name:           "Tatkal Passport",
		Description:    "Fast-track passport service",
		Fee:            4000,
		ProcessingTime: "3-5 days",
		IsActive:       true,
	},
	{
		Category:       "passport",
		ServiceID:      "C",
		Name:           "Police Clearance Certificate",
		Description:    "Get PCC for passport",
		Fee:            1500,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},

	// Other services
	{
		Category:       "marriage-certificate",
		ServiceID:      "A",
		Name:           "Marriage Certificate",
		Description:    "Register marriage and get certificate",
		Fee:            2000,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "legal-heir-certificate",
		ServiceID:      "A",
		Name:           "Legal Heir Certificate",
		Description:    "Obtain legal heir certificate",
		Fee:            1500,
		ProcessingTime: "10-15 days",
		IsActive:       true,
	},
	{
		Category:       "rti",
		ServiceID:      "A",
		Name:           "RTI File Return",
		Description:    "File and track RTI applications",
		Fee:            500,
		ProcessingTime: "15-20 days",
		IsActive:       true,
	},
	{
		Category:       "gst-registration",
		ServiceID:      "A",
		Name:           "GST Registration",
		Description:    "Register for GST and compliance",
		Fee:            3000,
		ProcessingTime: "10-15 days",
		IsActive:       true,
	},
	{
		Category:       "vehicle-challan",
		ServiceID:      "A",
		Name:           "Pay Vehicle Challan",
		Description:    "Pay traffic challans online",
		Fee:            100,
		ProcessingTime: "Instant",
		IsActive:       true,
	},
	{
		Category:       "birth-certificate",
		ServiceID:      "A",
		Name:           "Birth Certificate & All Common Services",
		Description:    "Get birth certificate and other common services",
		Fee:            800,
		ProcessingTime: "7-10 days",
		IsActive:       true,
	},
	{
		Category:       "insurance",
		ServiceID:      "A",
		Name:           "All Type Insurance",
		Description:    "Life, Health, Vehicle insurance services",
		Fee:            500,
		ProcessingTime: "3-5 days",
		IsActive:       true,
	},
	{
		Category:       "visa",
		ServiceID:      "A",
		Name:           "Visa Services",
		Description:    "Visa application services",
		Fee:            5000,
		ProcessingTime: "15-30 days",
		IsActive:       false,
	},
}
