package countries

// apiCountry is one element of the REST Countries response when requested with fields=name.
type apiCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
}
