package models

const SettingChampion = "champion"

type TournamentSettings struct {
	Champion *string `json:"champion"`
}
