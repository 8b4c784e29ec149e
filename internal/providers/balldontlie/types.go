package balldontlie

type teamsResponse struct {
	Data []teamResponse `json:"data"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	Location     string `json:"location"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}
