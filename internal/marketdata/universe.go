package marketdata

// stock holds the static facts the synthetic provider knows about a
// ticker: display name, sector, a reference price level and liquidity.
type stock struct {
	name      string
	sector    string
	basePrice float64
	baseVol   int64
	marketCap float64
	peRatio   float64
	divYield  float64
}

// Curated universe of liquid B3 names. Prices are plausible levels, not
// live data; the random-walk generator evolves them per ticker.
var universe = map[string]stock{
	"PETR4": {"Petrobras PN", "Petróleo e Gás", 38.50, 45_000_000, 500e9, 4.2, 12.5},
	"PETR3": {"Petrobras ON", "Petróleo e Gás", 41.20, 12_000_000, 500e9, 4.5, 12.1},
	"PRIO3": {"PetroRio ON", "Petróleo e Gás", 44.80, 9_000_000, 38e9, 6.1, 0.0},
	"VALE3": {"Vale ON", "Mineração", 61.30, 28_000_000, 280e9, 5.8, 8.9},
	"GGBR4": {"Gerdau PN", "Mineração", 18.90, 11_000_000, 32e9, 6.4, 5.2},
	"CSNA3": {"CSN ON", "Mineração", 12.40, 8_000_000, 17e9, 9.8, 4.1},
	"USIM5": {"Usiminas PNA", "Mineração", 7.10, 7_500_000, 9e9, 5.5, 3.4},
	"ITUB4": {"Itaú Unibanco PN", "Bancos", 33.70, 25_000_000, 330e9, 9.1, 5.6},
	"BBDC4": {"Bradesco PN", "Bancos", 13.20, 30_000_000, 140e9, 8.7, 6.8},
	"BBAS3": {"Banco do Brasil ON", "Bancos", 27.90, 14_000_000, 160e9, 4.6, 9.3},
	"SANB11": {"Santander Unit", "Bancos", 28.40, 4_000_000, 105e9, 8.2, 6.0},
	"BPAC11": {"BTG Pactual Unit", "Bancos", 32.60, 9_500_000, 150e9, 11.4, 2.2},
	"MGLU3": {"Magazine Luiza ON", "Varejo", 2.10, 55_000_000, 14e9, 0.0, 0.0},
	"LREN3": {"Lojas Renner ON", "Varejo", 14.80, 13_000_000, 14e9, 13.6, 3.1},
	"ASAI3": {"Assaí ON", "Varejo", 9.60, 16_000_000, 13e9, 14.2, 1.0},
	"ELET3": {"Eletrobras ON", "Energia", 37.40, 10_000_000, 86e9, 7.9, 2.4},
	"EGIE3": {"Engie Brasil ON", "Energia", 40.10, 3_000_000, 33e9, 10.8, 8.1},
	"TAEE11": {"Taesa Unit", "Energia", 34.90, 2_800_000, 12e9, 8.6, 9.8},
	"CMIG4": {"Cemig PN", "Energia", 10.60, 12_000_000, 25e9, 5.3, 10.2},
	"ABEV3": {"Ambev ON", "Bebidas", 12.90, 22_000_000, 200e9, 14.1, 5.4},
	"JBSS3": {"JBS ON", "Alimentos", 33.20, 9_000_000, 73e9, 8.9, 3.6},
	"BRFS3": {"BRF ON", "Alimentos", 22.70, 10_500_000, 38e9, 17.3, 0.0},
	"VIVT3": {"Vivo ON", "Telecomunicações", 52.30, 3_200_000, 87e9, 15.2, 7.0},
	"TIMS3": {"TIM ON", "Telecomunicações", 16.80, 6_800_000, 41e9, 13.5, 5.9},
	"CYRE3": {"Cyrela ON", "Construção", 21.50, 5_400_000, 8e9, 7.7, 6.5},
	"MRVE3": {"MRV ON", "Construção", 6.90, 8_200_000, 4e9, 11.9, 2.8},
	"SUZB3": {"Suzano ON", "Papel e Celulose", 51.80, 6_700_000, 66e9, 6.2, 2.9},
	"KLBN11": {"Klabin Unit", "Papel e Celulose", 21.90, 5_000_000, 25e9, 9.4, 5.1},
	"RAIL3": {"Rumo ON", "Logística", 20.40, 8_800_000, 38e9, 24.6, 1.2},
	"RENT3": {"Localiza ON", "Logística", 44.30, 7_900_000, 47e9, 18.8, 2.0},
	"AZUL4": {"Azul PN", "Logística", 5.20, 18_000_000, 4e9, 0.0, 0.0},
	"EMBR3": {"Embraer ON", "Indústria", 62.40, 6_100_000, 46e9, 21.3, 0.6},
	"WEGE3": {"WEG ON", "Indústria", 52.70, 8_300_000, 220e9, 30.4, 1.4},
	"TOTS3": {"Totvs ON", "Tecnologia", 31.20, 5_600_000, 19e9, 27.1, 1.1},
	"LWSA3": {"Locaweb ON", "Tecnologia", 4.40, 9_700_000, 3e9, 32.8, 0.7},
	"RADL3": {"Raia Drogasil ON", "Saúde", 25.60, 10_200_000, 44e9, 33.9, 1.0},
	"HAPV3": {"Hapvida ON", "Saúde", 3.80, 42_000_000, 29e9, 22.7, 0.9},
	"FLRY3": {"Fleury ON", "Saúde", 14.20, 4_300_000, 8e9, 15.0, 5.7},
	"YDUQ3": {"Yduqs ON", "Educação", 11.30, 6_400_000, 3e9, 9.3, 4.3},
	"COGN3": {"Cogna ON", "Educação", 1.90, 38_000_000, 4e9, 0.0, 0.0},
	"B3SA3": {"B3 ON", "Serviços Financeiros", 11.10, 27_000_000, 60e9, 13.8, 6.2},
	"BBSE3": {"BB Seguridade ON", "Seguros", 34.50, 5_900_000, 69e9, 8.5, 9.6},
	"PSSA3": {"Porto Seguro ON", "Seguros", 33.80, 2_100_000, 22e9, 9.7, 5.0},
	"MULT3": {"Multiplan ON", "Shoppings", 25.10, 4_700_000, 15e9, 15.5, 3.9},
	"ALSO3": {"Allos ON", "Shoppings", 22.60, 5_500_000, 13e9, 14.3, 4.6},
}

// sectors groups the universe for the sector-performance aggregation.
var sectors = map[string][]string{
	"Petróleo e Gás":       {"PETR4", "PETR3", "PRIO3"},
	"Mineração":            {"VALE3", "GGBR4", "CSNA3", "USIM5"},
	"Bancos":               {"ITUB4", "BBDC4", "BBAS3", "SANB11", "BPAC11"},
	"Varejo":               {"MGLU3", "LREN3", "ASAI3"},
	"Energia":              {"ELET3", "EGIE3", "TAEE11", "CMIG4"},
	"Bebidas":              {"ABEV3"},
	"Alimentos":            {"JBSS3", "BRFS3"},
	"Telecomunicações":     {"VIVT3", "TIMS3"},
	"Construção":           {"CYRE3", "MRVE3"},
	"Papel e Celulose":     {"SUZB3", "KLBN11"},
	"Logística":            {"RAIL3", "RENT3", "AZUL4"},
	"Indústria":            {"EMBR3", "WEGE3"},
	"Tecnologia":           {"TOTS3", "LWSA3"},
	"Saúde":                {"RADL3", "HAPV3", "FLRY3"},
	"Educação":             {"YDUQ3", "COGN3"},
	"Serviços Financeiros": {"B3SA3"},
	"Seguros":              {"BBSE3", "PSSA3"},
	"Shoppings":            {"MULT3", "ALSO3"},
}
