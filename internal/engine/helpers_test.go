package engine

import "vgsales/internal/models"

func game(name, platform string, year int, genre, publisher string, na, eu, jp, other, global float64) models.Row {
	return models.Row{
		Name: name, Platform: platform, Year: year, Genre: genre, Publisher: publisher,
		NASales: na, EUSales: eu, JPSales: jp, OtherSales: other, GlobalSales: global,
	}
}

func titles(names ...string) *Table {
	rows := make([]models.Row, len(names))
	for i, n := range names {
		rows[i] = game(n, "PS2", 2000+i, "Action", "Acme", 0, 0, 0, 0, 1)
		rows[i].Rank = i + 1
	}
	return NewTable(rows)
}

const sampleCSV = `Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales
1,Wii Sports,Wii,2006,Sports,Nintendo,41.49,29.02,3.77,8.46,82.74
2,Super Mario Bros.,NES,1985,Platform,Nintendo,29.08,3.58,6.81,0.77,40.24
3,"Pokemon Red/Pokemon Blue",GB,1996,Role-Playing,Nintendo,11.27,8.89,10.22,1,31.37
4,Madden NFL 2004,PS2,N/A,Sports,Electronic Arts,0.6,0.2,0,0.1,0.9
5,Game X,PS2,2004,Sports,N/A,0.6,0.2,0,0.1,0.9
6,Game Y,PS2,2004,Sports,Foo,abc,0.2,0,0.1,0.9
7,"Final Fantasy VII: Remake",PS4,2020.0,Role-Playing,"Square Enix, Inc.",1,1,1,1,4
8,Final Fantasy VII,PS,1997,Role-Playing,Sony,3.01,2.47,3.28,0.96,9.72
9,,PS,1997,Role-Playing,Sony,1,1,1,1,4
`
