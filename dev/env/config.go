package devenv

// TabroomTestConfig is read from dev/.state/tabroom_config.json5, tests that
// talk to the live site skip themselves when it does not exist.
type TabroomTestConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	// a tournament the account has entered, used by history tests
	TournamentId int `json:"tournament_id"`
	JudgeId      int `json:"judge_id"`
}

const TabroomTestConfigFile = "tabroom_config.json5"
