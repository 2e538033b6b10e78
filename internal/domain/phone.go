package domain

type Phone struct {
	Number      string `json:"number"`
	CityCode    string `json:"citycode"`
	CountryCode string `json:"countrycode"`
}
