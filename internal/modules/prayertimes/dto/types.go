package dto

type TimesOutput struct {
	Fajr     string
	Sunrise  string
	Dhuhr    string
	Asr      string
	Sunset   string
	Maghrib  string
	Isha     string
	Imsak    string
	Midnight string

	HijriDay       int
	HijriMonth     int
	HijriMonthName string
	HijriYear      int
	GregorianDay   int
	GregorianMonth int
	GregorianYear  int

	City    string
	Country string
}

type ScheduleEntry struct {
	Name    string
	Time    string
	Passive bool
	Next    bool
}

type CountdownOutput struct {
	Hours   string
	Minutes string
	Seconds string
	Done    bool
}

type NextPrayerOutput struct {
	Name     string
	Time     string
	Tomorrow bool
}

type LocationOutput struct {
	City    string
	Country string
	Lat     float64
	Lng     float64
	Manual  bool
}
