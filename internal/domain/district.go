package domain

// District - запись справочника районных администраций (구청)
type District struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// DistrictStat - количество станций в районе
type DistrictStat struct {
	District     *District `json:"district"`
	StationCount int       `json:"stationCount"`
}
