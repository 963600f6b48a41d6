package jira

// jiraIssue represents the subset of the Jira issue response we consume
type jiraIssue struct {
	Key    string `json:"key"`
	Self   string `json:"self"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		Issuetype struct {
			Name string `json:"name"`
		} `json:"issuetype"`
		Reporter struct {
			AccountID    string `json:"accountId"`
			DisplayName  string `json:"displayName"`
			EmailAddress string `json:"emailAddress"`
		} `json:"reporter"`
	} `json:"fields"`
}

// jiraVersionRequest is the body of the create version call
type jiraVersionRequest struct {
	Name    string `json:"name"`
	Project string `json:"project"`
}
