package models

// Match — событие в формате, который рендерит фронтенд (карточка матча).
type Match struct {
	ID            string `json:"id"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	HomeScore     int    `json:"homeScore"`
	AwayScore     int    `json:"awayScore"`
	Time          string `json:"time"`
	Status        string `json:"status"` // live | halftime | finished | scheduled
	Sport         string `json:"sport"`
	League        string `json:"league"`
	Date          string `json:"date"`
	Venue         string `json:"venue,omitempty"`
	HomeTeamBadge string `json:"homeTeamBadge,omitempty"`
	AwayTeamBadge string `json:"awayTeamBadge,omitempty"`
}

type League struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Sport   string `json:"sport"`
	Country string `json:"country,omitempty"`
	Badge   string `json:"badge,omitempty"`
}
