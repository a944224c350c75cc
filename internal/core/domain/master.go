package domain

// Master-data records are read-only reference lists maintained by
// administrators out of band. They are served straight from the database with
// a short cache in front.

type State struct {
	ID   int64  `json:"state_id"`
	Name string `json:"state_name"`
	Code string `json:"state_code"`
}

type District struct {
	ID      int64  `json:"district_id"`
	Name    string `json:"district_name"`
	Code    string `json:"district_code"`
	StateID int64  `json:"state_id"`
}

type College struct {
	ID      int64  `json:"college_id"`
	Name    string `json:"college_name"`
	StateID int64  `json:"state_id"`
}

type Caste struct {
	ID   int64  `json:"caste_id"`
	Name string `json:"caste_name"`
}
