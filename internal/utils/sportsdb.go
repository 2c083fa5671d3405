package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SportsDBClient — клиент TheSportsDB v1 JSON API. Данные матчей берём
// оттуда; свой ключ подставляется в путь (бесплатный ключ "3").
type SportsDBClient struct {
	BaseURL string
	client  *http.Client
}

type SportsDBEvent struct {
	IDEvent      string `json:"idEvent"`
	StrHomeTeam  string `json:"strHomeTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	IntHomeScore string `json:"intHomeScore"`
	IntAwayScore string `json:"intAwayScore"`
	StrStatus    string `json:"strStatus"`
	StrTime      string `json:"strTime"`
	StrDate      string `json:"dateEvent"`
	StrLeague    string `json:"strLeague"`
	StrSport     string `json:"strSport"`
	StrHomeBadge string `json:"strHomeTeamBadge"`
	StrAwayBadge string `json:"strAwayTeamBadge"`
	StrVenue     string `json:"strVenue"`
}

type SportsDBLeague struct {
	IDLeague   string `json:"idLeague"`
	StrLeague  string `json:"strLeague"`
	StrSport   string `json:"strSport"`
	StrCountry string `json:"strCountry"`
	StrBadge   string `json:"strBadge"`
}

type eventsResponse struct {
	Events []SportsDBEvent `json:"events"`
}

type leaguesResponse struct {
	Leagues []SportsDBLeague `json:"leagues"`
}

func NewSportsDBClient(baseURL string) *SportsDBClient {
	if baseURL == "" {
		baseURL = "https://www.thesportsdb.com/api/v1/json/3"
	}
	return &SportsDBClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SportsDBClient) get(path string, query url.Values, out any) error {
	apiURL := c.BaseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}
	resp, err := c.client.Get(apiURL)
	if err != nil {
		return fmt.Errorf("sportsdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sportsdb returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sportsdb read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("sportsdb parse response: %w", err)
	}
	return nil
}

// EventsByDay — события за дату (YYYY-MM-DD). API может вернуть events=null.
func (c *SportsDBClient) EventsByDay(date string) ([]SportsDBEvent, error) {
	var resp eventsResponse
	q := url.Values{"d": {date}}
	if err := c.get("/eventsday.php", q, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *SportsDBClient) AllLeagues() ([]SportsDBLeague, error) {
	var resp leaguesResponse
	if err := c.get("/all_leagues.php", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leagues, nil
}

func (c *SportsDBClient) LeaguesBySport(sport string) ([]SportsDBLeague, error) {
	var resp leaguesResponse
	q := url.Values{"s": {sport}}
	if err := c.get("/search_all_leagues.php", q, &resp); err != nil {
		return nil, err
	}
	return resp.Leagues, nil
}
