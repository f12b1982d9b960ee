package domain

// Client is an agency customer listed in the admin workspace.
type Client struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Status     string `json:"status"`
	Projects   int    `json:"projects"`
	JoinedDate string `json:"joined_date"`
}

// TaskTally counts a project's tasks.
type TaskTally struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Project is shown to clients in their workspace.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Progress    int       `json:"progress"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Team        []string  `json:"team"`
	Tasks       TaskTally `json:"tasks"`
	Description string    `json:"description"`
}

// Metric is one headline card on the admin dashboard.
type Metric struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	Change     string `json:"change"`
	ChangeType string `json:"change_type"`
}
