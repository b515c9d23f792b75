package curated

import (
	"time"

	"github.com/abelbrown/scroll/internal/content"
)

func img(path string) string { return commons + path }

var datasets = map[content.Kind][]content.Item{
	content.KindWiki: {
		{ID: "19331", Title: "Octopus", Body: "The octopus is a soft-bodied, eight-limbed mollusc of the order Octopoda. It has a complex nervous system and excellent sight, and is among the most intelligent invertebrates.", Image: img("5/57/Octopus2.jpg/640px-Octopus2.jpg"), URL: "https://en.wikipedia.org/wiki/Octopus", Category: "Biology", ReadTime: 4, Tags: []string{"animals", "ocean"}},
		{ID: "18426", Title: "Lighthouse of Alexandria", Body: "The Lighthouse of Alexandria was a lighthouse built by the Ptolemaic Kingdom during the reign of Ptolemy II Philadelphus. It stood over 100 metres tall and was one of the Seven Wonders of the Ancient World.", Image: img("e/e5/Lighthouse_-_Thiersch.png/640px-Lighthouse_-_Thiersch.png"), URL: "https://en.wikipedia.org/wiki/Lighthouse_of_Alexandria", Category: "History", ReadTime: 5, Tags: []string{"ancient world"}},
		{ID: "4348", Title: "Black hole", Body: "A black hole is a region of spacetime where gravity is so strong that nothing, not even light, can escape it. General relativity predicts that a sufficiently compact mass can deform spacetime to form one.", Image: img("4/4f/Black_hole_-_Messier_87_crop_max_res.jpg/640px-Black_hole_-_Messier_87_crop_max_res.jpg"), URL: "https://en.wikipedia.org/wiki/Black_hole", Category: "Astronomy", ReadTime: 7, Tags: []string{"space", "physics"}},
		{ID: "5373", Title: "Coral reef", Body: "A coral reef is an underwater ecosystem characterized by reef-building corals. Reefs occupy less than 0.1% of the ocean area, yet provide a home for at least 25% of all marine species.", Image: img("a/ab/Coral_reef_at_palmyra.jpg/640px-Coral_reef_at_palmyra.jpg"), URL: "https://en.wikipedia.org/wiki/Coral_reef", Category: "Ecology", ReadTime: 5, Tags: []string{"ocean"}},
		{ID: "21148", Title: "Nikola Tesla", Body: "Nikola Tesla was a Serbian-American engineer, futurist and inventor. He is known for his contributions to the design of the modern alternating current electricity supply system.", Image: img("7/79/Tesla_circa_1890.jpeg/640px-Tesla_circa_1890.jpeg"), URL: "https://en.wikipedia.org/wiki/Nikola_Tesla", Category: "People", ReadTime: 6, Tags: []string{"inventors", "electricity"}},
		{ID: "30718", Title: "Tardigrade", Body: "Tardigrades are a phylum of eight-legged segmented micro-animals. They are known to survive extreme conditions, including exposure to the vacuum of outer space.", Image: img("1/1c/SEM_image_of_Milnesium_tardigradum_in_active_state_-_journal.pone.0045682.g001-2.png/640px-SEM_image.png"), URL: "https://en.wikipedia.org/wiki/Tardigrade", Category: "Biology", ReadTime: 3, Tags: []string{"animals", "extremophiles"}},
		{ID: "34405", Title: "Great Wall of China", Body: "The Great Wall of China is a series of fortifications built across the historical northern borders of ancient Chinese states to protect against nomadic groups from the Eurasian Steppe.", Image: img("2/23/The_Great_Wall_of_China_at_Jinshanling-edit.jpg/640px-The_Great_Wall_of_China_at_Jinshanling-edit.jpg"), URL: "https://en.wikipedia.org/wiki/Great_Wall_of_China", Category: "History", ReadTime: 6, Tags: []string{"architecture"}},
		{ID: "20646", Title: "Aurora", Body: "An aurora is a natural light display in Earth's sky, predominantly seen in high-latitude regions. Auroras are produced when the magnetosphere is disturbed by the solar wind.", Image: img("a/aa/Polarlicht_2.jpg/640px-Polarlicht_2.jpg"), URL: "https://en.wikipedia.org/wiki/Aurora", Category: "Earth science", ReadTime: 4, Tags: []string{"space", "weather"}},
		{ID: "25433", Title: "Rosetta Stone", Body: "The Rosetta Stone is a stele of granodiorite inscribed with three versions of a decree issued in 196 BC. It was the key to deciphering Egyptian hieroglyphs.", Image: img("2/23/Rosetta_Stone.JPG/640px-Rosetta_Stone.JPG"), URL: "https://en.wikipedia.org/wiki/Rosetta_Stone", Category: "History", ReadTime: 5, Tags: []string{"archaeology", "language"}},
		{ID: "39127", Title: "Honey bee", Body: "A honey bee is a eusocial flying insect within the genus Apis. Honey bees are known for their construction of perennial colonial nests from wax and for their waggle dance.", Image: img("4/4d/Apis_mellifera_Western_honey_bee.jpg/640px-Apis_mellifera_Western_honey_bee.jpg"), URL: "https://en.wikipedia.org/wiki/Honey_bee", Category: "Biology", ReadTime: 4, Tags: []string{"animals", "insects"}},
		{ID: "1461", Title: "Apollo 11", Body: "Apollo 11 was the American spaceflight that first landed humans on the Moon. Neil Armstrong and Buzz Aldrin landed the lunar module Eagle on July 20, 1969.", Image: img("9/98/Aldrin_Apollo_11_original.jpg/640px-Aldrin_Apollo_11_original.jpg"), URL: "https://en.wikipedia.org/wiki/Apollo_11", Category: "Spaceflight", ReadTime: 8, Tags: []string{"space", "moon"}},
		{ID: "32927", Title: "Volcano", Body: "A volcano is a rupture in the crust of a planetary-mass object that allows hot lava, volcanic ash and gases to escape from a magma chamber below the surface.", Image: img("f/f6/Sakurajima_2009.jpg/640px-Sakurajima_2009.jpg"), URL: "https://en.wikipedia.org/wiki/Volcano", Category: "Earth science", ReadTime: 6, Tags: []string{"geology"}},
	},
	content.KindNews: {
		{ID: "offline-1", Title: "Feeds are offline", Body: "Live headlines could not be loaded. Scroll on for articles while the connection recovers.", Image: img("6/6b/Newspapers_icon.png/640px-Newspapers_icon.png"), Source: "scroll", IsBreaking: true, PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "offline-2", Title: "Researchers map the deep ocean floor", Body: "A multi-year survey has charted a quarter of the seabed in high resolution.", Image: img("4/4b/Seafloor_map.jpg/640px-Seafloor_map.jpg"), Source: "scroll", IsBreaking: true, PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "offline-3", Title: "Night trains return to European routes", Body: "Several operators have added sleeper services between major capitals.", Image: img("3/3a/Nightjet.jpg/640px-Nightjet.jpg"), Source: "scroll", IsBreaking: true, PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	},
	content.KindFact: {
		{Title: "Honey never spoils", Body: "Archaeologists have found pots of honey in ancient Egyptian tombs that are over 3,000 years old and still edible.", Image: img("1/1c/Runny_hunny.jpg/640px-Runny_hunny.jpg"), Category: "Food"},
		{Title: "Octopuses have three hearts", Body: "Two pump blood to the gills, while the third pumps it to the rest of the body.", Image: img("5/57/Octopus2.jpg/640px-Octopus2.jpg"), Category: "Animals"},
		{Title: "A day on Venus is longer than its year", Body: "Venus takes 243 Earth days to rotate once but only 225 to orbit the Sun.", Image: img("e/e5/Venus-real_color.jpg/640px-Venus-real_color.jpg"), Category: "Space"},
		{Title: "Bananas are berries", Body: "Botanically, bananas qualify as berries while strawberries do not.", Image: img("8/8a/Banana-Single.jpg/640px-Banana-Single.jpg"), Category: "Plants"},
		{Title: "The Eiffel Tower grows in summer", Body: "Thermal expansion can make the iron tower up to 15 cm taller on hot days.", Image: img("a/a8/Tour_Eiffel_Wikimedia_Commons.jpg/640px-Tour_Eiffel_Wikimedia_Commons.jpg"), Category: "Engineering"},
		{Title: "Sharks predate trees", Body: "Sharks have existed for around 450 million years; the first trees appeared about 385 million years ago.", Image: img("5/56/White_shark.jpg/640px-White_shark.jpg"), Category: "Animals"},
	},
	content.KindQuote: {
		{Title: "The only way to do great work is to love what you do.", Image: img("f/f5/Steve_Jobs_Headshot_2010-CROP2.jpg/640px-Steve_Jobs.jpg"), Attrs: attrs("author", "Steve Jobs"), Category: "Work"},
		{Title: "Imagination is more important than knowledge.", Image: img("3/3e/Einstein_1921_by_F_Schmutzer_-_restoration.jpg/640px-Einstein.jpg"), Attrs: attrs("author", "Albert Einstein"), Category: "Science"},
		{Title: "Not all those who wander are lost.", Image: img("b/b4/Tolkien_1916.jpg/640px-Tolkien_1916.jpg"), Attrs: attrs("author", "J. R. R. Tolkien"), Category: "Literature"},
		{Title: "Nothing in life is to be feared, it is only to be understood.", Image: img("6/69/Marie_Curie_c1920.jpg/640px-Marie_Curie_c1920.jpg"), Attrs: attrs("author", "Marie Curie"), Category: "Science"},
		{Title: "Simplicity is the ultimate sophistication.", Image: img("b/ba/Leonardo_self.jpg/640px-Leonardo_self.jpg"), Attrs: attrs("author", "Leonardo da Vinci"), Category: "Art"},
	},
	content.KindMovie: {
		{Title: "Spirited Away", Body: "A girl wanders into a world ruled by gods and spirits and must work in a bathhouse to free her parents.", Image: img("d/db/Spirited_Away_Japanese_poster.png/640px-Spirited_Away.png"), Attrs: attrs("year", "2001", "rating", "8.6"), Category: "Animation"},
		{Title: "Arrival", Body: "A linguist works with the military to communicate with alien lifeforms after twelve spacecraft land around the world.", Image: img("d/df/Arrival%2C_Movie_Poster.jpg/640px-Arrival.jpg"), Attrs: attrs("year", "2016", "rating", "7.9"), Category: "Science fiction"},
		{Title: "Amélie", Body: "A shy waitress in Paris decides to change the lives of those around her for the better.", Image: img("5/53/Amelie_poster.jpg/640px-Amelie_poster.jpg"), Attrs: attrs("year", "2001", "rating", "8.3"), Category: "Comedy"},
		{Title: "Seven Samurai", Body: "A village of farmers hires seven ronin to defend them against bandits.", Image: img("b/b7/Seven_Samurai_movie_poster.jpg/640px-Seven_Samurai.jpg"), Attrs: attrs("year", "1954", "rating", "8.6"), Category: "Drama"},
	},
	content.KindTVShow: {
		{Title: "Planet Earth", Body: "A landmark documentary series surveying the planet's habitats.", Image: img("8/8b/Planet_Earth_title.jpg/640px-Planet_Earth.jpg"), Attrs: attrs("year", "2006", "rating", "9.4"), Category: "Documentary"},
		{Title: "The Wire", Body: "The Baltimore drug scene, seen through the eyes of drug dealers and law enforcement.", Image: img("4/43/The_Wire_logo.svg/640px-The_Wire_logo.png"), Attrs: attrs("year", "2002", "rating", "9.3"), Category: "Drama"},
		{Title: "Cosmos", Body: "An exploration of the universe and our place in it.", Image: img("0/04/Cosmos_title.jpg/640px-Cosmos.jpg"), Attrs: attrs("year", "1980", "rating", "9.3"), Category: "Documentary"},
		{Title: "Fawlty Towers", Body: "A rude hotel owner and his staff struggle with guests at a seaside hotel.", Image: img("b/b2/Fawlty_Towers_title.jpg/640px-Fawlty_Towers.jpg"), Attrs: attrs("year", "1975", "rating", "8.8"), Category: "Comedy"},
	},
	content.KindSong: {
		{Title: "Clair de Lune", Body: "The third movement of the Suite bergamasque.", Image: img("f/f6/Claude_Debussy_atelier_Nadar.jpg/640px-Debussy.jpg"), Attrs: attrs("artist", "Claude Debussy"), Category: "Classical"},
		{Title: "So What", Body: "The opening track of Kind of Blue, built on two modal scales.", Image: img("1/1d/Miles_Davis_by_Palumbo.jpg/640px-Miles_Davis.jpg"), Attrs: attrs("artist", "Miles Davis"), Category: "Jazz"},
		{Title: "Bohemian Rhapsody", Body: "A six-minute suite without a refrain, released as a single in 1975.", Image: img("9/9f/Queen_A_Night_At_The_Opera.png/640px-Queen.png"), Attrs: attrs("artist", "Queen"), Category: "Rock"},
		{Title: "Redemption Song", Body: "The closing track of Uprising, performed on acoustic guitar.", Image: img("5/5e/Bob-Marley.jpg/640px-Bob-Marley.jpg"), Attrs: attrs("artist", "Bob Marley"), Category: "Reggae"},
	},
	content.KindAlbum: {
		{Title: "Kind of Blue", Body: "The best-selling jazz record of all time, recorded in two sessions in 1959.", Image: img("9/9c/MilesDavisKindofBlue.jpg/640px-Kind_of_Blue.jpg"), Attrs: attrs("artist", "Miles Davis", "year", "1959"), Category: "Jazz"},
		{Title: "Abbey Road", Body: "The last album the Beatles recorded together.", Image: img("4/42/Beatles_-_Abbey_Road.jpg/640px-Abbey_Road.jpg"), Attrs: attrs("artist", "The Beatles", "year", "1969"), Category: "Rock"},
		{Title: "Homogenic", Body: "Strings and electronic beats inspired by Iceland's landscape.", Image: img("a/af/Bjork_Homogenic.png/640px-Homogenic.png"), Attrs: attrs("artist", "Björk", "year", "1997"), Category: "Electronic"},
		{Title: "Rumours", Body: "Written amid breakups within the band, it became one of the best-selling albums ever.", Image: img("f/fb/FMacRumours.PNG/640px-Rumours.png"), Attrs: attrs("artist", "Fleetwood Mac", "year", "1977"), Category: "Rock"},
	},
	content.KindStock: {
		{Title: "Apple Inc.", Image: img("f/fa/Apple_logo_black.svg/640px-Apple_logo.png"), Attrs: attrs("symbol", "AAPL", "price", "231.40", "change", "+1.2%"), Category: "Technology"},
		{Title: "Toyota Motor", Image: img("9/9d/Toyota_carlogo.svg/640px-Toyota.png"), Attrs: attrs("symbol", "TM", "price", "178.05", "change", "-0.4%"), Category: "Automotive"},
		{Title: "Novo Nordisk", Image: img("2/2b/Novo_Nordisk_-_Logo.svg/640px-Novo_Nordisk.png"), Attrs: attrs("symbol", "NVO", "price", "92.10", "change", "+0.8%"), Category: "Healthcare"},
		{Title: "Shell plc", Image: img("e/e8/Shell_logo.svg/640px-Shell.png"), Attrs: attrs("symbol", "SHEL", "price", "66.32", "change", "+0.1%"), Category: "Energy"},
	},
	content.KindWeather: {
		{Title: "Reykjavík", Body: "Gusty wind with passing showers.", Image: img("a/a2/Reykjavik_from_Hallgrimskirkja.jpg/640px-Reykjavik.jpg"), Attrs: attrs("location", "Reykjavík", "temperature", "4°C", "condition", "Showers")},
		{Title: "Lisbon", Body: "Clear skies and a light breeze off the Atlantic.", Image: img("b/b0/Lisbon_panorama.jpg/640px-Lisbon.jpg"), Attrs: attrs("location", "Lisbon", "temperature", "21°C", "condition", "Sunny")},
		{Title: "Tokyo", Body: "Overcast with rain arriving in the evening.", Image: img("b/b2/Skyscrapers_of_Shinjuku_2009_January.jpg/640px-Tokyo.jpg"), Attrs: attrs("location", "Tokyo", "temperature", "17°C", "condition", "Cloudy")},
		{Title: "Nairobi", Body: "Warm afternoon, thunderstorms possible later.", Image: img("4/4d/Nairobi_skyline.jpg/640px-Nairobi.jpg"), Attrs: attrs("location", "Nairobi", "temperature", "24°C", "condition", "Storms")},
	},
	content.KindHistory: {
		{Title: "The Berlin Wall falls", Body: "East German authorities opened the border crossings, and crowds began dismantling the wall.", Image: img("1/1c/BerlinWall-BrandenburgGate.jpg/640px-BerlinWall.jpg"), Attrs: attrs("year", "1989"), Category: "Europe"},
		{Title: "First powered flight", Body: "The Wright brothers flew the Wright Flyer for 12 seconds at Kitty Hawk.", Image: img("1/1b/First_flight2.jpg/640px-First_flight2.jpg"), Attrs: attrs("year", "1903"), Category: "Aviation"},
		{Title: "Magna Carta sealed", Body: "King John agreed to a charter of rights at Runnymede.", Image: img("e/ee/Magna_Carta_%28British_Library_Cotton_MS_Augustus_II.106%29.jpg/640px-Magna_Carta.jpg"), Attrs: attrs("year", "1215"), Category: "Law"},
		{Title: "Penicillin discovered", Body: "Alexander Fleming noticed mould killing bacteria in a culture dish.", Image: img("4/4c/Alexander_Fleming_3.jpg/640px-Alexander_Fleming.jpg"), Attrs: attrs("year", "1928"), Category: "Medicine"},
	},
	content.KindPicture: {
		{Title: "Milky Way over Paranal", Body: "The galactic centre above the Very Large Telescope.", Image: img("6/60/ESO_-_Milky_Way.jpg/640px-ESO_-_Milky_Way.jpg"), Attrs: attrs("credit", "ESO"), Category: "Astronomy"},
		{Title: "Kingfisher", Body: "A common kingfisher with its catch.", Image: img("9/9c/Common_Kingfisher_Alcedo_atthis.jpg/640px-Kingfisher.jpg"), Attrs: attrs("credit", "Andreas Trepte"), Category: "Nature"},
		{Title: "Moraine Lake", Body: "Glacier-fed lake in Banff National Park.", Image: img("c/c5/Moraine_Lake_17092005.jpg/640px-Moraine_Lake.jpg"), Attrs: attrs("credit", "Gorgo"), Category: "Landscape"},
		{Title: "Snowflake", Body: "A stellar dendrite photographed under a microscope.", Image: img("d/d7/Snowflake_macro_photography_1.jpg/640px-Snowflake.jpg"), Attrs: attrs("credit", "Alexey Kljatov"), Category: "Macro"},
	},
}
