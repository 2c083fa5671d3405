package services

import (
	"strconv"
	"strings"
	"time"

	"livescore/internal/models"
	"livescore/internal/utils"
)

// SportsAPI — то, что нужно сервису от клиента TheSportsDB.
type SportsAPI interface {
	EventsByDay(date string) ([]utils.SportsDBEvent, error)
	AllLeagues() ([]utils.SportsDBLeague, error)
	LeaguesBySport(sport string) ([]utils.SportsDBLeague, error)
}

type ScoresService interface {
	TodayEvents() ([]models.Match, error)
	LiveEvents() ([]models.Match, error)
	// EventsBySport — события за дату (пустая дата = сегодня) по виду спорта.
	EventsBySport(sport, date string) ([]models.Match, error)
	Leagues(sport string) ([]models.League, error)
}

type scoresService struct {
	api SportsAPI
}

func NewScoresService(api SportsAPI) ScoresService {
	return &scoresService{api: api}
}

// алиасы названий видов спорта, как их вводит фронтенд
var sportAliases = map[string][]string{
	"Soccer":     {"soccer", "football", "futbol"},
	"Basketball": {"basketball", "baloncesto"},
	"Baseball":   {"baseball", "beisbol"},
}

func canonicalSport(sport string) string {
	lower := strings.ToLower(strings.TrimSpace(sport))
	for canonical, aliases := range sportAliases {
		if strings.EqualFold(canonical, lower) {
			return canonical
		}
		for _, a := range aliases {
			if a == lower {
				return canonical
			}
		}
	}
	return strings.TrimSpace(sport)
}

// convertStatus — нормализация статуса TheSportsDB под карточку матча.
func convertStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "live", "in play":
		return "live"
	case "halftime", "ht":
		return "halftime"
	case "finished", "match finished", "ft":
		return "finished"
	default:
		return "scheduled"
	}
}

func parseScore(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func convertEvent(e utils.SportsDBEvent) models.Match {
	return models.Match{
		ID:            e.IDEvent,
		HomeTeam:      e.StrHomeTeam,
		AwayTeam:      e.StrAwayTeam,
		HomeScore:     parseScore(e.IntHomeScore),
		AwayScore:     parseScore(e.IntAwayScore),
		Time:          e.StrTime,
		Status:        convertStatus(e.StrStatus),
		Sport:         e.StrSport,
		League:        e.StrLeague,
		Date:          e.StrDate,
		Venue:         e.StrVenue,
		HomeTeamBadge: e.StrHomeBadge,
		AwayTeamBadge: e.StrAwayBadge,
	}
}

// validEvent — у API встречаются пустые/битые строки, фильтруем до конвертации.
func validEvent(e utils.SportsDBEvent) bool {
	return e.StrHomeTeam != "" && e.StrAwayTeam != "" && e.StrSport != ""
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func (s *scoresService) TodayEvents() ([]models.Match, error) {
	events, err := s.api.EventsByDay(today())
	if err != nil {
		return nil, err
	}
	out := make([]models.Match, 0, len(events))
	for _, e := range events {
		if validEvent(e) {
			out = append(out, convertEvent(e))
		}
	}
	return out, nil
}

func (s *scoresService) LiveEvents() ([]models.Match, error) {
	matches, err := s.TodayEvents()
	if err != nil {
		return nil, err
	}
	out := make([]models.Match, 0)
	for _, m := range matches {
		if m.Status == "live" || m.Status == "halftime" {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *scoresService) EventsBySport(sport, date string) ([]models.Match, error) {
	if strings.TrimSpace(sport) == "" {
		return nil, ErrValidation
	}
	if date == "" {
		date = today()
	}
	events, err := s.api.EventsByDay(date)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(canonicalSport(sport))
	out := make([]models.Match, 0)
	for _, e := range events {
		if !validEvent(e) {
			continue
		}
		eventSport := strings.ToLower(e.StrSport)
		if strings.Contains(eventSport, target) || strings.Contains(target, eventSport) {
			out = append(out, convertEvent(e))
		}
	}
	return out, nil
}

func (s *scoresService) Leagues(sport string) ([]models.League, error) {
	var (
		leagues []utils.SportsDBLeague
		err     error
	)
	if strings.TrimSpace(sport) == "" {
		leagues, err = s.api.AllLeagues()
	} else {
		leagues, err = s.api.LeaguesBySport(canonicalSport(sport))
	}
	if err != nil {
		return nil, err
	}

	out := make([]models.League, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, models.League{
			ID:      l.IDLeague,
			Name:    l.StrLeague,
			Sport:   l.StrSport,
			Country: l.StrCountry,
			Badge:   l.StrBadge,
		})
	}
	return out, nil
}
