package domain

// Person is an actor or actress credited in at least one parsed record.
type Person struct {
	ID   string
	Name string
}

// Title is a movie parsed from the titles dataset.
type Title struct {
	ID   string
	Name string
}

// Credit links a person to a title they appeared in.
type Credit struct {
	PersonID string
	TitleID  string
}

// PersonCandidate is a name lookup hit together with the titles the person is credited in.
type PersonCandidate struct {
	ID     string
	Name   string
	Titles []string
}
