package testutil

import (
	"errors"

	"livescore/internal/utils"
)

var errFailAll = errors.New("smtp unavailable")

// FakeSportsAPI — подмена TheSportsDB для тестов сервиса скорборда.
type FakeSportsAPI struct {
	Events      []utils.SportsDBEvent
	LeaguesList []utils.SportsDBLeague
	Err         error

	LastDate  string
	LastSport string
}

func (f *FakeSportsAPI) EventsByDay(date string) ([]utils.SportsDBEvent, error) {
	f.LastDate = date
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Events, nil
}

func (f *FakeSportsAPI) AllLeagues() ([]utils.SportsDBLeague, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.LeaguesList, nil
}

func (f *FakeSportsAPI) LeaguesBySport(sport string) ([]utils.SportsDBLeague, error) {
	f.LastSport = sport
	if f.Err != nil {
		return nil, f.Err
	}
	return f.LeaguesList, nil
}
