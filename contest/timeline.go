package contest

type (
	// TimelineStage is one phase of the national schedule.
	TimelineStage struct {
		StageID   int64  `json:"stageId"`
		Name      string `json:"name"`
		DateRange string `json:"dateRange"`
	}

	// DistrictSchedule is the per-region schedule shown on the
	// registration pages.
	DistrictSchedule struct {
		Region            string `json:"region"`
		RegistrationDates string `json:"registrationDates"`
		PreliminaryDates  string `json:"preliminaryDates"`
		FinalDate         string `json:"finalDate"`
	}

	Timeline struct {
		Stages    []TimelineStage    `json:"stages"`
		Districts []DistrictSchedule `json:"districts"`
	}
)

// DefaultTimeline is the published schedule for the current season. It
// is static data; editing it per-season happens here, not in storage.
func DefaultTimeline() Timeline {
	return Timeline{
		Stages: []TimelineStage{
			{StageID: 1, Name: "Registration", DateRange: "Sep 1 - Oct 15"},
			{StageID: 2, Name: "Preliminary round", DateRange: "Oct 20 - Nov 5"},
			{StageID: 3, Name: "Regional finals", DateRange: "Nov 15 - Dec 5"},
			{StageID: 4, Name: "National final", DateRange: "Dec 20 - Dec 22"},
		},
		Districts: []DistrictSchedule{
			{Region: "north", RegistrationDates: "09-01 ~ 09-20", PreliminaryDates: "10-10 ~ 10-15", FinalDate: "12-10"},
			{Region: "east", RegistrationDates: "09-05 ~ 09-25", PreliminaryDates: "10-12 ~ 10-18", FinalDate: "12-12"},
			{Region: "southwest", RegistrationDates: "09-10 ~ 09-28", PreliminaryDates: "10-15 ~ 10-20", FinalDate: "12-15"},
			{Region: "northeast", RegistrationDates: "09-12 ~ 09-30", PreliminaryDates: "10-18 ~ 10-22", FinalDate: "12-18"},
		},
	}
}

// Universities is the pick-list offered on the student registration
// form. The last entry is the catch-all for unlisted schools.
func Universities() []string {
	return []string{
		"Tsinghua University", "Peking University", "Fudan University",
		"Zhejiang University", "Shanghai Jiao Tong University",
		"Nanjing University", "Wuhan University", "Renmin University of China",
		"Harbin Institute of Technology", "Sichuan University",
		"Xi'an Jiaotong University", "Sun Yat-sen University",
		"Beihang University", "Huazhong University of Science and Technology",
		"Nankai University", "Tianjin University", "Tongji University",
		"Xiamen University", "Central South University", "Shandong University",
		"Jilin University", "East China Normal University",
		"Beijing Normal University", "Southeast University",
		"Northwestern Polytechnical University",
		"University of Electronic Science and Technology of China",
		"Hunan University", "Lanzhou University", "Chongqing University",
		"Beijing Institute of Technology", "Northeastern University",
		"Other institutions",
	}
}
